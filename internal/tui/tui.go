// Package tui provides a Bubble Tea terminal user interface for audioconv.
package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/audioconv/internal/audio"
	"github.com/handiism/audioconv/internal/config"
	"github.com/handiism/audioconv/internal/convert"
	"github.com/handiism/audioconv/internal/model"
	"github.com/handiism/audioconv/internal/pipeline"
	"go.uber.org/zap"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	formatStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F8B500"))
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateConverting
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   convert.ProgressLevel
}

// maxLogs is how many progress lines stay on screen.
const maxLogs = 10

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	log       *zap.Logger
	logs      []LogEntry
	err       error

	// Conversion context
	ctx    context.Context
	cancel context.CancelFunc

	converter *convert.Converter
	events    chan convert.ProgressEvent
	inputs    []string
	summary   convert.Summary

	// Conversion progress
	processed int32
	failed    int32
	total     int32

	// Options
	outputs   []model.Format
	format    model.Format
	sameDir   bool
	overwrite bool
	verbose   bool

	width  int
	height int
}

// NewModel creates a new TUI model. Defaults for the options come from
// settings.
func NewModel(settings *config.Settings, log *zap.Logger) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	if log == nil {
		log = zap.NewNop()
	}

	ti := textinput.New()
	ti.Placeholder = "~/Music/album/*.flac"
	ti.Focus()
	ti.CharLimit = 1000
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	outputs := convert.NewResolver(settings.ToTools()).OutputFormats()
	format := model.FormatFromString(settings.OutputFormat)
	if !slices.Contains(outputs, format) {
		format = model.FormatMP3
	}

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		log:       log,
		logs:      make([]LogEntry, 0),
		ctx:       ctx,
		cancel:    cancel,
		outputs:   outputs,
		format:    format,
		sameDir:   settings.OutputSameDir,
		overwrite: settings.Overwrite,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg carries one event from the converter.
	ProgressMsg struct {
		Event convert.ProgressEvent
	}

	// ConvertDoneMsg is sent when the batch has finished.
	ConvertDoneMsg struct {
		Summary convert.Summary
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateConverting {
				// The running file finishes; the batch stops before the next one.
				m.cancel()
			}

		case "enter":
			if m.state == StateInput && strings.TrimSpace(m.textInput.Value()) != "" {
				return m.start()
			}

		case "tab":
			if m.state == StateInput {
				m.format = nextFormat(m.outputs, m.format, 1)
				return m, nil
			}

		case "shift+tab":
			if m.state == StateInput {
				m.format = nextFormat(m.outputs, m.format, -1)
				return m, nil
			}

		case "ctrl+s":
			if m.state == StateInput {
				m.sameDir = !m.sameDir
				return m, nil
			}

		case "ctrl+o":
			if m.state == StateInput {
				m.overwrite = !m.overwrite
				return m, nil
			}

		case "ctrl+t":
			if m.state == StateInput {
				m.verbose = !m.verbose
				return m, nil
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Reset for a new batch
				m.state = StateInput
				m.logs = nil
				m.err = nil
				m.inputs = nil
				m.summary = convert.Summary{}
				m.processed, m.failed, m.total = 0, 0, 0
				m.converter = nil
				m.events = nil
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.textInput.SetValue("")
				m.textInput.Focus()
				return m, textinput.Blink
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		cmds = append(cmds, waitForEvent(m.events))
		// Filter verbose messages if not in verbose mode
		if msg.Event.Level == convert.LevelVerbose && !m.verbose {
			break
		}
		m.logs = append(m.logs, LogEntry{
			Message: msg.Event.Message,
			Level:   msg.Event.Level,
		})
		if len(m.logs) > maxLogs {
			m.logs = m.logs[len(m.logs)-maxLogs:]
		}

	case ConvertDoneMsg:
		m.summary = msg.Summary
		if m.converter != nil {
			m.processed, m.failed, m.total = m.converter.GetProgress()
		}
		switch {
		case msg.Summary.Cancelled:
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		default:
			m.state = StateComplete
		}
		cmds = append(cmds, m.progress.SetPercent(1))

	case TickMsg:
		// Update progress from the converter
		if m.converter != nil && m.state == StateConverting {
			m.processed, m.failed, m.total = m.converter.GetProgress()

			var percent float64
			if m.total > 0 {
				percent = float64(m.processed) / float64(m.total)
			}
			cmds = append(cmds, m.progress.SetPercent(percent), tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text input
	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// start expands the entered paths and launches the batch.
func (m Model) start() (tea.Model, tea.Cmd) {
	inputs, err := expandInputs(m.textInput.Value())
	if err == nil && len(inputs) == 0 {
		err = fmt.Errorf("no files match %q", m.textInput.Value())
	}
	if err != nil {
		m.state = StateError
		m.err = err
		return m, nil
	}

	settings := m.settings.ToModelSettings()
	settings.Overwrite = m.overwrite

	opts := convert.Options{
		OutputFormat: m.format,
		OutputDir:    m.settings.OutputDir,
		SameDir:      m.sameDir,
		Prefix:       m.settings.OutputPrefix,
		Settings:     settings,
	}

	tools := m.settings.ToTools()
	events := make(chan convert.ProgressEvent, 64)
	conv := convert.NewConverter(opts, convert.Deps{
		Resolver:  convert.NewResolver(tools),
		Extractor: audio.NewExtractor(tools, m.log),
		Executor:  pipeline.NewExecutor(m.log),
		Logger:    m.log,
	}, func(e convert.ProgressEvent) {
		events <- e
	})

	m.state = StateConverting
	m.inputs = inputs
	m.converter = conv
	m.events = events

	return m, tea.Batch(
		runConversion(m.ctx, conv, inputs, events),
		waitForEvent(events),
		tickProgress(),
		m.spinner.Tick,
	)
}

// runConversion converts inputs in the background and closes events
// when the batch is over.
func runConversion(ctx context.Context, conv *convert.Converter, inputs []string, events chan convert.ProgressEvent) tea.Cmd {
	return func() tea.Msg {
		sum := conv.ConvertAll(ctx, inputs)
		close(events)
		return ConvertDoneMsg{Summary: sum}
	}
}

// waitForEvent delivers the next converter event as a ProgressMsg.
func waitForEvent(events <-chan convert.ProgressEvent) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		e, ok := <-events
		if !ok {
			return nil
		}
		return ProgressMsg{Event: e}
	}
}

// tickProgress returns a command to tick progress updates.
func tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// nextFormat cycles through formats in either direction.
func nextFormat(formats []model.Format, f model.Format, step int) model.Format {
	if len(formats) == 0 {
		return f
	}
	i := 0
	for j, g := range formats {
		if g == f {
			i = j
			break
		}
	}
	i = (i + step + len(formats)) % len(formats)
	return formats[i]
}

// expandInputs splits the input line on whitespace and expands glob
// patterns. A pattern that matches nothing is kept as a literal path so
// the converter reports it.
func expandInputs(line string) ([]string, error) {
	var inputs []string
	for _, field := range strings.Fields(line) {
		if strings.HasPrefix(field, "~/") {
			if home, err := os.UserHomeDir(); err == nil {
				field = filepath.Join(home, field[2:])
			}
		}
		matches, err := filepath.Glob(field)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", field, err)
		}
		if len(matches) == 0 {
			matches = []string{field}
		}
		inputs = append(inputs, matches...)
	}
	return inputs, nil
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("🎵 Audio Converter"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Convert between WAV, FLAC, Ogg Vorbis, MP3, APE and WMA"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateConverting:
		b.WriteString(m.viewConverting())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func checkbox(on bool) string {
	if on {
		return "[×]"
	}
	return "[ ]"
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Files to convert (paths or glob patterns):"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	b.WriteString(infoStyle.Render("Output format: "))
	b.WriteString(formatStyle.Render(m.format.String()))
	b.WriteString(dimStyle.Render("  (tab / shift+tab)"))
	b.WriteString("\n\n")

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Write next to the source file (ctrl+s)\n", checkbox(m.sameDir)))
	b.WriteString(fmt.Sprintf("  %s Overwrite existing files (ctrl+o)\n", checkbox(m.overwrite)))
	b.WriteString(fmt.Sprintf("  %s Verbose output (ctrl+t)\n", checkbox(m.verbose)))
	b.WriteString("\n")

	dir := m.settings.OutputDir
	if m.sameDir {
		dir = "same as source"
	} else if dir == "" {
		dir = "current directory"
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("Output directory: %s", dir)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewConverting() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Converting %d file(s) to %s...", len(m.inputs), m.format)))
	b.WriteString("\n\n")

	// Progress bar
	b.WriteString(m.progress.View())
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf(
		"Files: %d/%d | Failed: %d",
		m.processed,
		m.total,
		m.failed,
	)))
	b.WriteString("\n\n")

	// Logs
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	box := boxStyle.Render(fmt.Sprintf(
		"✨ Conversion Complete!\n\n"+
			"Converted: %d\n"+
			"Skipped: %d\n"+
			"Failed: %d",
		m.summary.Count(convert.OutcomeConverted),
		m.summary.Count(convert.OutcomeSkipped),
		m.summary.Count(convert.OutcomeFailed),
	))
	b.WriteString(box)
	b.WriteString("\n")

	if failed := m.summary.FailedFiles(); len(failed) > 0 {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Failed files:"))
		b.WriteString("\n")
		for _, f := range failed {
			b.WriteString(errorStyle.Render("  ✗ " + f))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case convert.LevelError:
			style = errorStyle
			prefix = "✗"
		case convert.LevelWarning:
			style = warningStyle
			prefix = "!"
		case convert.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case convert.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: start • tab: format • ctrl+s: same dir • ctrl+o: overwrite • ctrl+t: verbose • esc: quit"
	case StateConverting:
		return "esc: stop after current file"
	case StateComplete, StateError:
		return "r: new batch • q: quit"
	}
	return ""
}

// Run starts the TUI application.
func Run(settings *config.Settings, log *zap.Logger) error {
	p := tea.NewProgram(NewModel(settings, log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

package tui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/handiism/audioconv/internal/config"
	"github.com/handiism/audioconv/internal/convert"
	"github.com/handiism/audioconv/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextFormat(t *testing.T) {
	formats := []model.Format{model.FormatWAVE, model.FormatFLAC, model.FormatOGG, model.FormatMP3}
	assert.Equal(t, model.FormatFLAC, nextFormat(formats, model.FormatWAVE, 1))
	assert.Equal(t, model.FormatWAVE, nextFormat(formats, model.FormatMP3, 1))
	assert.Equal(t, model.FormatMP3, nextFormat(formats, model.FormatWAVE, -1))
	assert.Equal(t, model.FormatFLAC, nextFormat(formats, model.FormatInvalid, 1))
	assert.Equal(t, model.FormatOGG, nextFormat(nil, model.FormatOGG, 1))
}

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.flac", "b.flac", "c.ogg"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	inputs, err := expandInputs(filepath.Join(dir, "*.flac") + "  " + filepath.Join(dir, "missing.wav"))

	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.flac"),
		filepath.Join(dir, "b.flac"),
		filepath.Join(dir, "missing.wav"),
	}, inputs)

	_, err = expandInputs("[")
	assert.Error(t, err)
}

func TestNewModel_DefaultsFromSettings(t *testing.T) {
	s := config.DefaultSettings()
	s.OutputFormat = "ogg"
	s.OutputSameDir = true

	m := NewModel(s, nil)
	assert.Equal(t, model.FormatOGG, m.format)
	assert.True(t, m.sameDir)
	assert.Equal(t, StateInput, m.state)

	m = NewModel(nil, nil)
	assert.Equal(t, model.FormatMP3, m.format)

	s.OutputFormat = "ape"
	m = NewModel(s, nil)
	assert.Equal(t, model.FormatMP3, m.format)
	assert.NotContains(t, m.outputs, model.FormatAPE)
	assert.NotContains(t, m.outputs, model.FormatWMA)
}

func TestUpdate_OptionKeys(t *testing.T) {
	m := NewModel(config.DefaultSettings(), nil)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	assert.Equal(t, model.FormatWAVE, m.format)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
	m = next.(Model)
	assert.True(t, m.overwrite)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = next.(Model)
	assert.True(t, m.sameDir)

	assert.Contains(t, m.View(), "wav")
}

func TestUpdate_VerboseEventsFiltered(t *testing.T) {
	m := NewModel(config.DefaultSettings(), nil)

	next, _ := m.Update(ProgressMsg{Event: convert.ProgressEvent{Message: "Pipeline: x", Level: convert.LevelVerbose}})
	m = next.(Model)
	assert.Empty(t, m.logs)

	next, _ = m.Update(ProgressMsg{Event: convert.ProgressEvent{Message: "Converted a", Level: convert.LevelSuccess}})
	m = next.(Model)
	require.Len(t, m.logs, 1)
	assert.Equal(t, "Converted a", m.logs[0].Message)
}

func TestUpdate_EnterWithoutMatches(t *testing.T) {
	m := NewModel(config.DefaultSettings(), nil)
	m.textInput.SetValue("[")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	assert.Equal(t, StateError, m.state)
	assert.Error(t, m.err)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/handiism/audioconv/internal/audio"
	"github.com/handiism/audioconv/internal/config"
	"github.com/handiism/audioconv/internal/convert"
	ioutils "github.com/handiism/audioconv/internal/io"
	"github.com/handiism/audioconv/internal/logger"
	"github.com/handiism/audioconv/internal/pipeline"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// errFilesFailed makes the process exit 1 after the summary is printed.
var errFilesFailed = errors.New("some files could not be converted")

// app carries what every subcommand needs.
type app struct {
	flags  cliFlags
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	settings *config.Settings
	log      *zap.Logger
}

func execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if a.log != nil {
		_ = a.log.Sync()
	}
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errFilesFailed):
		return 1
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(stderr, "Conversion cancelled.")
		return 130
	default:
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "audioconv [flags] input...",
		Short: "Convert audio files between WAV, FLAC, Ogg Vorbis, MP3, APE and WMA.",
		Long: `audioconv converts audio files by chaining external codec programs
(lame, flac, oggenc, oggdec, mac, ffmpeg) through pipes. Tags are read from
the source file and can be overridden on the command line.

For interactive mode, use: audioconv-tui`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.flags.check {
				return a.checkTools()
			}
			if len(args) == 0 {
				_ = cmd.Usage()
				return errors.New("no input files")
			}
			return a.convert(cmd, args)
		},
	}

	a.flags.register(root)
	root.AddCommand(a.formatsCmd())
	return root
}

// setup loads the config file, the environment and the logger.
func (a *app) setup(cmd *cobra.Command) error {
	path := a.flags.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	settings, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading config %s: %w", path, err)
	}
	if err := settings.ApplyEnv(); err != nil {
		return fmt.Errorf("loading .env: %w", err)
	}
	a.flags.apply(cmd, settings)

	logCfg := settings.ToLoggerConfig()
	logCfg.Console = a.stderr
	log, err := logger.New(logCfg)
	if err != nil {
		return err
	}
	a.settings = settings
	a.log = log
	return nil
}

func (a *app) convert(cmd *cobra.Command, inputs []string) error {
	opts, err := buildOptions(a.settings, a.flags)
	if err != nil {
		return err
	}
	if err := opts.Validate(len(inputs)); err != nil {
		return err
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			fmt.Fprintln(a.stderr, "\nInterrupted, stopping after the current file...")
			cancel()
		case <-ctx.Done():
		}
	}()

	tools := a.settings.ToTools()
	conv := convert.NewConverter(opts, convert.Deps{
		Resolver:  convert.NewResolver(tools),
		Extractor: audio.NewExtractor(tools, a.log),
		Executor:  pipeline.NewExecutor(a.log),
		Confirm: func(path string) bool {
			return ioutils.AskOverwrite(a.stdin, a.stderr, path)
		},
		Logger: a.log,
	}, a.printProgress)

	summary := conv.ConvertAll(ctx, inputs)
	a.printSummary(summary)

	if summary.Cancelled {
		return context.Canceled
	}
	if summary.HasFailures() {
		return errFilesFailed
	}
	return nil
}

func (a *app) printProgress(event convert.ProgressEvent) {
	if event.Level == convert.LevelVerbose && !a.flags.verbose {
		return
	}

	prefix := ""
	switch event.Level {
	case convert.LevelError:
		prefix = "❌ "
	case convert.LevelWarning:
		prefix = "⚠️  "
	case convert.LevelSuccess:
		prefix = "✅ "
	case convert.LevelInfo:
		prefix = "ℹ️  "
	default:
		prefix = "   "
	}

	fmt.Fprintln(a.stdout, prefix+event.Message)
}

func (a *app) printSummary(s convert.Summary) {
	fmt.Fprintln(a.stdout)
	fmt.Fprintf(a.stdout, "✨ Converted %d, skipped %d, failed %d\n",
		s.Count(convert.OutcomeConverted),
		s.Count(convert.OutcomeSkipped),
		s.Count(convert.OutcomeFailed))
	for _, f := range s.FailedFiles() {
		fmt.Fprintf(a.stdout, "   failed: %s\n", f)
	}
}

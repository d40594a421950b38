package pipeline

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/handiism/audioconv/internal/codec"
	"github.com/handiism/audioconv/internal/model"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Executor spawns a pipeline's stages as OS processes connected by pipes.
//
// Run blocks until every stage has exited. There is no timeout: a hung
// codec program blocks the conversion.
type Executor struct {
	log *zap.Logger
}

// NewExecutor creates an Executor. A nil logger discards output.
func NewExecutor(log *zap.Logger) *Executor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Executor{log: log}
}

// running is one started stage.
type running struct {
	stage  codec.Stage
	cmd    *exec.Cmd
	stderr io.ReadCloser
}

// Run executes p, reading inputFile and writing outputFile.
//
// meta and s are handed to the final stage only; earlier stages get empty
// metadata and zero settings. The returned bool reports whether the final
// stage exited with status zero. Exit statuses of earlier stages are
// logged but do not affect the result, so a failing decoder followed by
// an encoder that still exits cleanly counts as success.
//
// An error is returned when a stage cannot be built or started; in that
// case every stage that was already started is killed and reaped.
func (e *Executor) Run(p Pipeline, inputFile, outputFile string, meta *model.Metadata, s model.Settings) (bool, error) {
	stages := p.Stages()
	if len(stages) == 0 {
		return false, ErrEmptyPipeline
	}

	procs := make([]running, 0, len(stages))
	var upstream *os.File // read end of the pipe fed by the previous stage

	abort := func(err error) (bool, error) {
		if upstream != nil {
			upstream.Close()
		}
		for _, r := range procs {
			_ = r.cmd.Process.Kill()
			_, _ = io.Copy(io.Discard, r.stderr)
			_ = r.cmd.Wait()
		}
		return false, err
	}

	last := len(stages) - 1
	for i, stage := range stages {
		in := codec.File(inputFile)
		if i > 0 {
			in = codec.Stream
		}
		out := codec.File(outputFile)

		var downstream, pw *os.File
		if i < last {
			r, w, err := os.Pipe()
			if err != nil {
				return abort(fmt.Errorf("create pipe after %s: %w", stage.Name(), err))
			}
			downstream, pw = r, w
			out = codec.Stream
		}

		stageMeta, stageSettings := model.NewMetadata(), model.Settings{}
		if i == last {
			stageMeta, stageSettings = meta, s
		}

		cmd, err := stage.Command(in, out, stageMeta, stageSettings)
		if err != nil {
			closeAll(downstream, pw)
			return abort(err)
		}
		detach(cmd)
		if upstream != nil {
			cmd.Stdin = upstream
		}
		if pw != nil {
			cmd.Stdout = pw
		}
		stderr, err := cmd.StderrPipe()
		if err != nil {
			closeAll(downstream, pw)
			return abort(fmt.Errorf("stderr pipe for %s: %w", stage.Name(), err))
		}

		e.log.Debug("starting stage",
			zap.Int("stage", i+1),
			zap.Int("stages", len(stages)),
			zap.String("codec", stage.Name()),
			zap.String("command", codec.CommandLine(cmd.Path, cmd.Args[1:])))

		if err := cmd.Start(); err != nil {
			closeAll(downstream, pw)
			return abort(fmt.Errorf("start %s: %w", stage.Name(), err))
		}
		procs = append(procs, running{stage: stage, cmd: cmd, stderr: stderr})

		// The children hold their own copies now. Keeping ours open would
		// stop EOF from reaching the next stage.
		closeAll(upstream, pw)
		upstream = downstream
	}

	var g errgroup.Group
	for i, r := range procs {
		i, r := i, r
		g.Go(func() error {
			e.drainStderr(i+1, r)
			return nil
		})
	}
	_ = g.Wait()

	ok := false
	for i, r := range procs {
		err := r.cmd.Wait()
		code := r.cmd.ProcessState.ExitCode()
		switch {
		case i == last:
			ok = err == nil
			if !ok {
				e.log.Debug("final stage failed",
					zap.String("codec", r.stage.Name()),
					zap.Int("exit_code", code),
					zap.Error(err))
			}
		case err != nil:
			var exitErr *exec.ExitError
			if !errors.As(err, &exitErr) {
				e.log.Warn("waiting for stage failed", zap.String("codec", r.stage.Name()), zap.Error(err))
				continue
			}
			e.log.Warn("upstream stage exited non-zero; result decided by final stage",
				zap.String("codec", r.stage.Name()),
				zap.Int("exit_code", code))
		}
	}
	return ok, nil
}

func (e *Executor) drainStderr(n int, r running) {
	sc := bufio.NewScanner(r.stderr)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		e.log.Debug("stage stderr",
			zap.Int("stage", n),
			zap.String("codec", r.stage.Name()),
			zap.String("line", sc.Text()))
	}
	// Keep reading past an over-long line so the child never blocks on a
	// full stderr pipe.
	_, _ = io.Copy(io.Discard, r.stderr)
}

func closeAll(files ...*os.File) {
	for _, f := range files {
		if f != nil {
			f.Close()
		}
	}
}

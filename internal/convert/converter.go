package convert

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/handiism/audioconv/internal/audio"
	"github.com/handiism/audioconv/internal/codec"
	ioutils "github.com/handiism/audioconv/internal/io"
	"github.com/handiism/audioconv/internal/model"
	"github.com/handiism/audioconv/internal/pipeline"
	"go.uber.org/zap"
)

// ErrConversionFailed is returned when the final stage of a pipeline exits
// non-zero.
var ErrConversionFailed = errors.New("conversion failed")

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a conversion progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
	File    string
}

// Outcome is the result of converting one file.
type Outcome int

const (
	OutcomeConverted Outcome = iota
	OutcomeSkipped
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeConverted:
		return "converted"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

// Result describes one processed file.
type Result struct {
	Input    string
	Output   string
	Pipeline string
	Outcome  Outcome
	Err      error
}

// Options selects the destination and the tags and tuning applied to
// every file of a run.
type Options struct {
	OutputFormat model.Format

	// OutputFile names the destination explicitly. Only valid for a
	// single input.
	OutputFile string

	// OutputDir is the destination directory; empty means the current
	// directory. Ignored when SameDir is set.
	OutputDir string

	// SameDir writes each output next to its input.
	SameDir bool

	// Prefix is prepended to the output base name.
	Prefix string

	// Metadata overrides extracted tags. A key present here replaces all
	// extracted values for that key.
	Metadata *model.Metadata

	Settings model.Settings
}

// Validate checks the options against the number of inputs of a run.
func (o Options) Validate(inputs int) error {
	if !o.OutputFormat.Valid() {
		return fmt.Errorf("invalid output format %q", o.OutputFormat)
	}
	if o.OutputFile != "" && inputs > 1 {
		return fmt.Errorf("an output file name can only be given for a single input, got %d inputs", inputs)
	}
	return nil
}

// ConfirmFunc is asked before an existing destination is overwritten.
type ConfirmFunc func(path string) bool

// Deps are the collaborators of a Converter. Nil fields get defaults
// built from codec.DefaultTools; a nil Confirm declines every overwrite.
type Deps struct {
	Resolver  *Resolver
	Extractor audio.Extractor
	Executor  *pipeline.Executor
	Confirm   ConfirmFunc
	Logger    *zap.Logger
}

// Converter runs conversions one file at a time.
type Converter struct {
	opts      Options
	resolver  *Resolver
	extractor audio.Extractor
	executor  *pipeline.Executor
	confirm   ConfirmFunc
	log       *zap.Logger

	totalFiles     int32
	processedFiles int32
	failedFiles    int32

	onProgress func(ProgressEvent)
}

// NewConverter creates a Converter.
func NewConverter(opts Options, deps Deps, onProgress func(ProgressEvent)) *Converter {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if deps.Resolver == nil {
		deps.Resolver = NewResolver(codec.DefaultTools())
	}
	if deps.Extractor == nil {
		deps.Extractor = audio.NewExtractor(codec.DefaultTools(), log)
	}
	if deps.Executor == nil {
		deps.Executor = pipeline.NewExecutor(log)
	}
	if deps.Confirm == nil {
		deps.Confirm = func(string) bool { return false }
	}
	if opts.Metadata == nil {
		opts.Metadata = model.NewMetadata()
	}

	return &Converter{
		opts:       opts,
		resolver:   deps.Resolver,
		extractor:  deps.Extractor,
		executor:   deps.Executor,
		confirm:    deps.Confirm,
		log:        log,
		onProgress: onProgress,
	}
}

// Destination returns the path input is converted to.
func (c *Converter) Destination(input string) string {
	if c.opts.OutputFile != "" {
		return c.opts.OutputFile
	}
	base, _ := ioutils.SplitExt(input)
	dir := c.opts.OutputDir
	if c.opts.SameDir {
		dir = filepath.Dir(input)
	}
	return ioutils.OutputPath(dir, c.opts.Prefix, base, c.opts.OutputFormat.Extension())
}

// Convert converts one file.
//
// A declined overwrite yields OutcomeSkipped and a nil error. Every other
// problem yields OutcomeFailed and the cause: a *FileFormatError for a
// missing extension or an unsupported pair, ErrSameFile when the
// destination is the input itself, a wrapped start error from the
// executor, or ErrConversionFailed when the final stage exits
// non-zero.
func (c *Converter) Convert(ctx context.Context, input string) (Result, error) {
	res := Result{Input: input, Outcome: OutcomeFailed}

	_, ext := ioutils.SplitExt(input)
	if ext == "" {
		res.Err = &FileFormatError{Path: input}
		return res, res.Err
	}
	inFormat := model.FormatFromExtension(ext)

	p, err := c.resolver.Resolve(inFormat, c.opts.OutputFormat)
	if err != nil {
		res.Err = err
		return res, err
	}
	res.Pipeline = p.String()

	dst := c.Destination(input)
	res.Output = dst
	if ioutils.SameFile(input, dst) {
		res.Err = fmt.Errorf("%w: %s", ErrSameFile, input)
		return res, res.Err
	}

	settings := c.opts.Settings
	if !settings.Overwrite && ioutils.Exists(dst) {
		if !c.confirm(dst) {
			res.Outcome = OutcomeSkipped
			return res, nil
		}
		settings.Overwrite = true
	}

	if dir := filepath.Dir(dst); dir != "." {
		if err := ioutils.EnsureDir(dir); err != nil {
			res.Err = fmt.Errorf("create output directory: %w", err)
			return res, res.Err
		}
	}

	meta := model.NewMetadata()
	if inFormat.HasEmbeddedTags() {
		meta, err = c.extractor.Extract(ctx, inFormat, input)
		if err != nil {
			c.log.Warn("reading source tags failed", zap.String("file", input), zap.Error(err))
			c.progress(ProgressEvent{Message: fmt.Sprintf("Could not read tags of %s: %v", input, err), Level: LevelWarning, File: input})
		}
	}
	merged := meta.Clone()
	merged.Update(c.opts.Metadata)

	c.log.Debug("converting",
		zap.String("input", input),
		zap.String("output", dst),
		zap.String("pipeline", res.Pipeline),
		zap.Stringer("metadata", merged))

	ok, err := c.executor.Run(p, input, dst, merged, settings)
	if err != nil {
		res.Err = err
		return res, err
	}
	if !ok {
		res.Err = fmt.Errorf("%w: %s", ErrConversionFailed, res.Pipeline)
		return res, res.Err
	}

	res.Outcome = OutcomeConverted
	return res, nil
}

// Summary collects the results of a batch.
type Summary struct {
	Results   []Result
	Cancelled bool
}

// Count returns how many results have outcome o.
func (s Summary) Count(o Outcome) int {
	n := 0
	for _, r := range s.Results {
		if r.Outcome == o {
			n++
		}
	}
	return n
}

// FailedFiles lists the inputs that could not be converted, in order.
func (s Summary) FailedFiles() []string {
	var files []string
	for _, r := range s.Results {
		if r.Outcome == OutcomeFailed {
			files = append(files, r.Input)
		}
	}
	return files
}

// HasFailures reports whether any file failed.
func (s Summary) HasFailures() bool {
	return s.Count(OutcomeFailed) > 0
}

// ConvertAll converts inputs one after another. A failed file is
// reported and the batch moves on. Cancelling ctx stops the batch before
// the next file; a conversion already running is not interrupted.
func (c *Converter) ConvertAll(ctx context.Context, inputs []string) Summary {
	atomic.StoreInt32(&c.totalFiles, int32(len(inputs)))
	atomic.StoreInt32(&c.processedFiles, 0)
	atomic.StoreInt32(&c.failedFiles, 0)

	var sum Summary
	for _, input := range inputs {
		if ctx.Err() != nil {
			c.progress(ProgressEvent{Message: "Conversion cancelled", Level: LevelWarning})
			sum.Cancelled = true
			break
		}

		c.progress(ProgressEvent{Message: fmt.Sprintf("Converting %s", input), Level: LevelInfo, File: input})

		res, err := c.Convert(ctx, input)
		switch res.Outcome {
		case OutcomeConverted:
			c.progress(ProgressEvent{Message: fmt.Sprintf("Converted %s -> %s", input, res.Output), Level: LevelSuccess, File: input})
			c.progress(ProgressEvent{Message: fmt.Sprintf("Pipeline: %s", res.Pipeline), Level: LevelVerbose, File: input})
		case OutcomeSkipped:
			c.progress(ProgressEvent{Message: fmt.Sprintf("Skipped %s: %s exists", input, res.Output), Level: LevelWarning, File: input})
		case OutcomeFailed:
			atomic.AddInt32(&c.failedFiles, 1)
			c.log.Info("conversion failed", zap.String("file", input), zap.Error(err))
			c.progress(ProgressEvent{Message: fmt.Sprintf("Failed %s: %v", input, err), Level: LevelError, File: input})
		}

		atomic.AddInt32(&c.processedFiles, 1)
		sum.Results = append(sum.Results, res)
	}
	return sum
}

// GetProgress returns current batch progress.
func (c *Converter) GetProgress() (processed, failed, total int32) {
	return atomic.LoadInt32(&c.processedFiles), atomic.LoadInt32(&c.failedFiles), atomic.LoadInt32(&c.totalFiles)
}

func (c *Converter) progress(event ProgressEvent) {
	if c.onProgress != nil {
		c.onProgress(event)
	}
}

package convert

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/handiism/audioconv/internal/codec"
	"github.com/handiism/audioconv/internal/model"
	"github.com/handiism/audioconv/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// stubDecoder runs script with the input endpoint as $1 and the output
// endpoint as $2.
type stubDecoder struct{ script string }

func (d stubDecoder) Name() string    { return "stub-decoder" }
func (d stubDecoder) Program() string { return "/bin/sh" }

func (d stubDecoder) DecodeArgs(in, out codec.Endpoint) ([]string, error) {
	return []string{"-c", d.script, "stub", in.Arg(), out.Arg()}, nil
}

// stubEncoder additionally passes the comma-joined track values as $3 and
// the overwrite setting as $4.
type stubEncoder struct{ script string }

func (e stubEncoder) Name() string    { return "stub-encoder" }
func (e stubEncoder) Program() string { return "/bin/sh" }

func (e stubEncoder) EncodeArgs(in, out codec.Endpoint, meta *model.Metadata, s model.Settings) ([]string, error) {
	return []string{"-c", e.script, "stub", in.Arg(), out.Arg(),
		strings.Join(meta.Get(model.TagTrack), ","), strconv.FormatBool(s.Overwrite)}, nil
}

// stubExtractor returns fixed tags and records the files it was asked about.
type stubExtractor struct {
	mu    sync.Mutex
	meta  *model.Metadata
	err   error
	calls []string
}

func (x *stubExtractor) Extract(_ context.Context, _ model.Format, path string) (*model.Metadata, error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.calls = append(x.calls, path)
	if x.err != nil {
		return model.NewMetadata(), x.err
	}
	return x.meta.Clone(), nil
}

// stubResolver converts FLAC to MP3 through two shell stages that copy the
// input and append "|<track>|<overwrite>". WAV to MP3 does the same in a
// single stage, and MP3 to MP3 copies its input straight to the output.
// FLAC to OGG always fails.
func stubResolver() *Resolver {
	return newResolver(map[Pair][]codec.Stage{
		{model.FormatWAVE, model.FormatMP3}: {
			codec.Encode(stubEncoder{`{ cat "$1"; printf '|%s|%s' "$3" "$4"; } > "$2"`}),
		},
		{model.FormatMP3, model.FormatMP3}: {
			codec.Encode(stubEncoder{`cat "$1" > "$2"`}),
		},
		{model.FormatFLAC, model.FormatMP3}: {
			codec.Decode(stubDecoder{`cat "$1"`}),
			codec.Encode(stubEncoder{`{ cat; printf '|%s|%s' "$3" "$4"; } > "$2"`}),
		},
		{model.FormatFLAC, model.FormatOGG}: {
			codec.Encode(stubEncoder{`exit 1`}),
		},
	})
}

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

type harness struct {
	conv      *Converter
	extractor *stubExtractor
	events    []ProgressEvent
	confirms  []string
}

func newHarness(t *testing.T, opts Options, answer bool) *harness {
	h := &harness{extractor: &stubExtractor{meta: model.NewMetadata()}}
	log := zaptest.NewLogger(t)
	h.conv = NewConverter(opts, Deps{
		Resolver:  stubResolver(),
		Extractor: h.extractor,
		Executor:  pipeline.NewExecutor(log),
		Confirm: func(path string) bool {
			h.confirms = append(h.confirms, path)
			return answer
		},
		Logger: log,
	}, func(e ProgressEvent) {
		h.events = append(h.events, e)
	})
	return h
}

func TestConvert_SameDirDestination(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "song.flac", "PCM")

	h := newHarness(t, Options{OutputFormat: model.FormatMP3, SameDir: true, OutputDir: "/elsewhere"}, false)
	res, err := h.conv.Convert(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, OutcomeConverted, res.Outcome)
	assert.Equal(t, filepath.Join(dir, "song.mp3"), res.Output)
	assert.Equal(t, "stub-decoder(/bin/sh) | stub-encoder(/bin/sh)", res.Pipeline)
	assert.Equal(t, "PCM||false", readOutput(t, res.Output))
	assert.Equal(t, []string{input}, h.extractor.calls)
}

func TestConvert_OutputDirAndPrefix(t *testing.T) {
	input := writeInput(t, t.TempDir(), "song.flac", "PCM")
	outDir := filepath.Join(t.TempDir(), "converted", "mp3")

	h := newHarness(t, Options{OutputFormat: model.FormatMP3, OutputDir: outDir, Prefix: "new-"}, false)
	res, err := h.conv.Convert(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "new-song.mp3"), res.Output)
	assert.FileExists(t, res.Output)
}

func TestConvert_ExplicitOutputFile(t *testing.T) {
	input := writeInput(t, t.TempDir(), "song.flac", "PCM")
	out := filepath.Join(t.TempDir(), "renamed.mp3")

	h := newHarness(t, Options{OutputFormat: model.FormatMP3, OutputFile: out}, false)
	res, err := h.conv.Convert(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, out, res.Output)
	assert.Equal(t, "PCM||false", readOutput(t, out))
}

func TestConvert_OverrideReplacesExtractedValues(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "song.flac", "PCM")

	overrides := model.NewMetadata()
	overrides.Set(model.TagTrack, "3")

	h := newHarness(t, Options{OutputFormat: model.FormatMP3, SameDir: true, Metadata: overrides}, false)
	h.extractor.meta.Set(model.TagTrack, "03/12")

	res, err := h.conv.Convert(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "PCM|3|false", readOutput(t, res.Output))
}

func TestConvert_ExtractedTagsReachEncoder(t *testing.T) {
	input := writeInput(t, t.TempDir(), "song.flac", "PCM")

	h := newHarness(t, Options{OutputFormat: model.FormatMP3, SameDir: true}, false)
	h.extractor.meta.Set(model.TagTrack, "03/12", "B")

	res, err := h.conv.Convert(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "PCM|03/12,B|false", readOutput(t, res.Output))
}

func TestConvert_ExtractorFailureIsNotFatal(t *testing.T) {
	input := writeInput(t, t.TempDir(), "song.flac", "PCM")

	h := newHarness(t, Options{OutputFormat: model.FormatMP3, SameDir: true}, false)
	h.extractor.err = errors.New("metaflac missing")

	res, err := h.conv.Convert(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, OutcomeConverted, res.Outcome)
	require.NotEmpty(t, h.events)
	assert.Equal(t, LevelWarning, h.events[0].Level)
	assert.Contains(t, h.events[0].Message, "metaflac missing")
}

func TestConvert_UntaggedFormatSkipsExtractor(t *testing.T) {
	input := writeInput(t, t.TempDir(), "song.wav", "PCM")

	h := newHarness(t, Options{OutputFormat: model.FormatMP3, SameDir: true}, false)
	h.extractor.meta.Set(model.TagTrack, "7")

	res, err := h.conv.Convert(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "PCM||false", readOutput(t, res.Output))
	assert.Empty(t, h.extractor.calls)
}

func TestConvert_RefusesToOverwriteInput(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "song.mp3", "ORIGINAL-AUDIO")

	tests := []struct {
		name string
		opts Options
	}{
		{"same directory", Options{OutputFormat: model.FormatMP3, SameDir: true}},
		{"output directory", Options{OutputFormat: model.FormatMP3, OutputDir: dir}},
		{"explicit output file", Options{OutputFormat: model.FormatMP3, OutputFile: filepath.Join(dir, ".", "song.mp3")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Settings.Overwrite = true
			h := newHarness(t, tt.opts, true)

			res, err := h.conv.Convert(context.Background(), input)

			require.ErrorIs(t, err, ErrSameFile)
			assert.Equal(t, OutcomeFailed, res.Outcome)
			assert.Empty(t, h.confirms)
			assert.Empty(t, h.extractor.calls)
			assert.Equal(t, "ORIGINAL-AUDIO", readOutput(t, input))
		})
	}

	// A prefix moves the output away from the input.
	h := newHarness(t, Options{OutputFormat: model.FormatMP3, SameDir: true, Prefix: "copy-"}, false)
	res, err := h.conv.Convert(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "ORIGINAL-AUDIO", readOutput(t, res.Output))
}

func TestConvert_DeclinedOverwriteSkips(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "song.flac", "PCM")
	existing := writeInput(t, dir, "song.mp3", "OLD")

	h := newHarness(t, Options{OutputFormat: model.FormatMP3, SameDir: true}, false)
	res, err := h.conv.Convert(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, res.Outcome)
	assert.Equal(t, []string{existing}, h.confirms)
	assert.Equal(t, "OLD", readOutput(t, existing))
	assert.Empty(t, h.extractor.calls)
}

func TestConvert_ConfirmedOverwriteSetsOverwrite(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "song.flac", "PCM")
	existing := writeInput(t, dir, "song.mp3", "OLD")

	h := newHarness(t, Options{OutputFormat: model.FormatMP3, SameDir: true}, true)
	res, err := h.conv.Convert(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, OutcomeConverted, res.Outcome)
	assert.Equal(t, "PCM||true", readOutput(t, existing))
}

func TestConvert_OverwriteSettingSkipsPrompt(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "song.flac", "PCM")
	writeInput(t, dir, "song.mp3", "OLD")

	h := newHarness(t, Options{
		OutputFormat: model.FormatMP3,
		SameDir:      true,
		Settings:     model.Settings{Overwrite: true},
	}, false)
	res, err := h.conv.Convert(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, OutcomeConverted, res.Outcome)
	assert.Empty(t, h.confirms)
}

func TestConvert_MissingExtension(t *testing.T) {
	h := newHarness(t, Options{OutputFormat: model.FormatMP3}, false)

	res, err := h.conv.Convert(context.Background(), "/music/README")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFileFormat))
	assert.Equal(t, "/music/README: file has no extension", err.Error())
	assert.Equal(t, OutcomeFailed, res.Outcome)
}

func TestConvert_UnsupportedPair(t *testing.T) {
	h := newHarness(t, Options{OutputFormat: model.FormatMP3}, false)

	res, err := h.conv.Convert(context.Background(), "song.aiff")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFileFormat))
	assert.Equal(t, "format conversion from invalid to mp3 not supported", err.Error())
	assert.Equal(t, OutcomeFailed, res.Outcome)
}

func TestConvert_FinalStageFailure(t *testing.T) {
	input := writeInput(t, t.TempDir(), "song.flac", "PCM")

	h := newHarness(t, Options{OutputFormat: model.FormatOGG, SameDir: true}, false)
	res, err := h.conv.Convert(context.Background(), input)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConversionFailed))
	assert.Equal(t, OutcomeFailed, res.Outcome)
}

func TestConvertAll_ContinuesPastFailures(t *testing.T) {
	dir := t.TempDir()
	a := writeInput(t, dir, "a.flac", "A")
	b := filepath.Join(dir, "b.txt")
	c := writeInput(t, dir, "c.flac", "C")

	h := newHarness(t, Options{OutputFormat: model.FormatMP3, SameDir: true}, false)
	sum := h.conv.ConvertAll(context.Background(), []string{a, b, c})

	require.Len(t, sum.Results, 3)
	assert.False(t, sum.Cancelled)
	assert.Equal(t, 2, sum.Count(OutcomeConverted))
	assert.Equal(t, []string{b}, sum.FailedFiles())
	assert.True(t, sum.HasFailures())
	assert.Equal(t, "A||false", readOutput(t, filepath.Join(dir, "a.mp3")))
	assert.Equal(t, "C||false", readOutput(t, filepath.Join(dir, "c.mp3")))

	processed, failed, total := h.conv.GetProgress()
	assert.Equal(t, int32(3), processed)
	assert.Equal(t, int32(1), failed)
	assert.Equal(t, int32(3), total)

	var levels []ProgressLevel
	for _, e := range h.events {
		if e.File == b {
			levels = append(levels, e.Level)
		}
	}
	assert.Equal(t, []ProgressLevel{LevelInfo, LevelError}, levels)
}

func TestConvertAll_StopsWhenCancelled(t *testing.T) {
	input := writeInput(t, t.TempDir(), "a.flac", "A")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := newHarness(t, Options{OutputFormat: model.FormatMP3, SameDir: true}, false)
	sum := h.conv.ConvertAll(ctx, []string{input})

	assert.True(t, sum.Cancelled)
	assert.Empty(t, sum.Results)
	assert.False(t, sum.HasFailures())
}

func TestOptions_Validate(t *testing.T) {
	assert.NoError(t, Options{OutputFormat: model.FormatMP3, OutputFile: "x.mp3"}.Validate(1))
	assert.Error(t, Options{OutputFormat: model.FormatMP3, OutputFile: "x.mp3"}.Validate(2))
	assert.NoError(t, Options{OutputFormat: model.FormatMP3}.Validate(5))
	assert.Error(t, Options{}.Validate(1))
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "converted", OutcomeConverted.String())
	assert.Equal(t, "skipped", OutcomeSkipped.String())
	assert.Equal(t, "failed", OutcomeFailed.String())
}

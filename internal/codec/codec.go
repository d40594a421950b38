package codec

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/handiism/audioconv/internal/model"
)

// ErrStreamInputUnsupported is returned by codecs whose program can only
// read from a named file.
var ErrStreamInputUnsupported = errors.New("codec does not support stream input")

// Endpoint is the input or output of a stage: either a named file or a
// stream connected to the adjacent stage through a pipe.
type Endpoint struct {
	path string
}

// Stream is the endpoint connected to a neighbouring stage.
var Stream = Endpoint{}

// File returns an endpoint for a named path.
func File(path string) Endpoint {
	return Endpoint{path: path}
}

// IsStream reports whether e is a pipe endpoint.
func (e Endpoint) IsStream() bool {
	return e.path == ""
}

// Path returns the file path, or "" for streams.
func (e Endpoint) Path() string {
	return e.path
}

// Arg renders the endpoint the way most codec programs expect it on the
// command line: "-" for stdin/stdout, the path otherwise.
func (e Endpoint) Arg() string {
	if e.IsStream() {
		return "-"
	}
	return e.path
}

func (e Endpoint) String() string {
	if e.IsStream() {
		return "<stream>"
	}
	return e.path
}

// Decoder is an external program that turns a compressed file into WAVE.
type Decoder interface {
	// Name identifies the codec in logs, e.g. "flac-decoder".
	Name() string

	// Program is the executable that is spawned.
	Program() string

	// DecodeArgs builds the argument list (without the program name).
	DecodeArgs(in, out Endpoint) ([]string, error)
}

// Encoder is an external program that produces the target format and
// writes tags.
type Encoder interface {
	Name() string
	Program() string

	// EncodeArgs builds the argument list. meta may be nil.
	EncodeArgs(in, out Endpoint, meta *model.Metadata, s model.Settings) ([]string, error)
}

// Stage is one element of a pipeline. Exactly one of its fields is set;
// use Decode or Encode to construct it.
type Stage struct {
	decoder Decoder
	encoder Encoder
}

// Decode wraps a decoder as a pipeline stage.
func Decode(d Decoder) Stage {
	return Stage{decoder: d}
}

// Encode wraps an encoder as a pipeline stage.
func Encode(e Encoder) Stage {
	return Stage{encoder: e}
}

// Name returns the wrapped codec's name.
func (s Stage) Name() string {
	switch {
	case s.encoder != nil:
		return s.encoder.Name()
	case s.decoder != nil:
		return s.decoder.Name()
	default:
		return "<empty>"
	}
}

// Args builds the stage's argument list. Decoders ignore meta and settings.
func (s Stage) Args(in, out Endpoint, meta *model.Metadata, settings model.Settings) ([]string, error) {
	switch {
	case s.encoder != nil:
		return s.encoder.EncodeArgs(in, out, meta, settings)
	case s.decoder != nil:
		return s.decoder.DecodeArgs(in, out)
	default:
		return nil, errors.New("empty pipeline stage")
	}
}

// Program returns the wrapped codec's executable.
func (s Stage) Program() string {
	switch {
	case s.encoder != nil:
		return s.encoder.Program()
	case s.decoder != nil:
		return s.decoder.Program()
	default:
		return ""
	}
}

// Command builds the process for this stage. The caller attaches
// stdin/stdout for stream endpoints, starts it and must wait on it.
func (s Stage) Command(in, out Endpoint, meta *model.Metadata, settings model.Settings) (*exec.Cmd, error) {
	args, err := s.Args(in, out, meta, settings)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name(), err)
	}
	return exec.Command(s.Program(), args...), nil
}

// String renders the stage as "name(program)".
func (s Stage) String() string {
	return s.Name() + "(" + s.Program() + ")"
}

// CommandLine renders program and args for logging.
func CommandLine(program string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, program)
	for _, a := range args {
		if a == "" || strings.ContainsAny(a, " \t'\"") {
			a = "'" + strings.ReplaceAll(a, "'", `'\''`) + "'"
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

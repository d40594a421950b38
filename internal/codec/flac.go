package codec

import "github.com/handiism/audioconv/internal/model"

// flac writes to stdout with -c and to a file with -o.
func flacOutput(out Endpoint) []string {
	if out.IsStream() {
		return []string{"-c"}
	}
	return []string{"-o", out.Path()}
}

// FlacDecoder runs flac -d.
type FlacDecoder struct {
	program string
}

// NewFlacDecoder creates a FLAC decoder using program.
func NewFlacDecoder(program string) *FlacDecoder {
	return &FlacDecoder{program: program}
}

func (d *FlacDecoder) Name() string    { return "flac-decoder" }
func (d *FlacDecoder) Program() string { return d.program }

// DecodeArgs: flac -s -d <-c | -o out> <in>.
func (d *FlacDecoder) DecodeArgs(in, out Endpoint) ([]string, error) {
	args := append([]string{"-s", "-d"}, flacOutput(out)...)
	return append(args, in.Arg()), nil
}

// FlacEncoder runs flac.
type FlacEncoder struct {
	program string
}

// NewFlacEncoder creates a FLAC encoder using program.
func NewFlacEncoder(program string) *FlacEncoder {
	return &FlacEncoder{program: program}
}

func (e *FlacEncoder) Name() string    { return "flac-encoder" }
func (e *FlacEncoder) Program() string { return e.program }

// EncodeArgs: flac -s <-c | -o out> [-f] [-T FIELD=VALUE...] <in>.
//
// flac refuses to replace an existing file unless -f is given.
func (e *FlacEncoder) EncodeArgs(in, out Endpoint, meta *model.Metadata, s model.Settings) ([]string, error) {
	args := append([]string{"-s"}, flacOutput(out)...)
	if s.Overwrite {
		args = append(args, "-f")
	}
	args = append(args, flacTags.args(meta)...)
	return append(args, in.Arg()), nil
}

package codec

import "github.com/handiism/audioconv/internal/model"

// OggDecoder runs oggdec.
type OggDecoder struct {
	program string
}

// NewOggDecoder creates an Ogg Vorbis decoder using program.
func NewOggDecoder(program string) *OggDecoder {
	return &OggDecoder{program: program}
}

func (d *OggDecoder) Name() string    { return "ogg-decoder" }
func (d *OggDecoder) Program() string { return d.program }

// DecodeArgs: oggdec -Q -o <out> <in>.
func (d *OggDecoder) DecodeArgs(in, out Endpoint) ([]string, error) {
	return []string{"-Q", "-o", out.Arg(), in.Arg()}, nil
}

// OggEncoder runs oggenc.
type OggEncoder struct {
	program string
}

// NewOggEncoder creates an Ogg Vorbis encoder using program.
func NewOggEncoder(program string) *OggEncoder {
	return &OggEncoder{program: program}
}

func (e *OggEncoder) Name() string    { return "ogg-encoder" }
func (e *OggEncoder) Program() string { return e.program }

// EncodeArgs: oggenc -Q -o <out> [tags] [-q Q] [-b B] <in>.
func (e *OggEncoder) EncodeArgs(in, out Endpoint, meta *model.Metadata, s model.Settings) ([]string, error) {
	args := []string{"-Q", "-o", out.Arg()}
	args = append(args, vorbisTags.args(meta)...)
	if s.Quality != "" {
		args = append(args, "-q", s.Quality)
	}
	if s.Bitrate != "" {
		args = append(args, "-b", s.Bitrate)
	}
	return append(args, in.Arg()), nil
}

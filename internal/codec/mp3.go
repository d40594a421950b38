package codec

import "github.com/handiism/audioconv/internal/model"

// Mp3Decoder runs lame in decode mode.
type Mp3Decoder struct {
	program string
}

// NewMp3Decoder creates an MP3 decoder using program (normally lame).
func NewMp3Decoder(program string) *Mp3Decoder {
	return &Mp3Decoder{program: program}
}

func (d *Mp3Decoder) Name() string    { return "mp3-decoder" }
func (d *Mp3Decoder) Program() string { return d.program }

// DecodeArgs: lame --silent --decode <in> <out>.
func (d *Mp3Decoder) DecodeArgs(in, out Endpoint) ([]string, error) {
	return []string{"--silent", "--decode", in.Arg(), out.Arg()}, nil
}

// Mp3Encoder runs lame.
//
// Tags are written as ID3v2 (or ID3v1 with Settings.NoID3v2). Custom
// tags have no lame flag and are dropped.
type Mp3Encoder struct {
	program string
}

// NewMp3Encoder creates an MP3 encoder using program (normally lame).
func NewMp3Encoder(program string) *Mp3Encoder {
	return &Mp3Encoder{program: program}
}

func (e *Mp3Encoder) Name() string    { return "mp3-encoder" }
func (e *Mp3Encoder) Program() string { return e.program }

// EncodeArgs: lame -S [id3 mode + tags] [-q Q] [-b B] [--vbr-new -V V] <in> <out>.
func (e *Mp3Encoder) EncodeArgs(in, out Endpoint, meta *model.Metadata, s model.Settings) ([]string, error) {
	args := []string{"-S"}
	if !meta.Empty() {
		if s.NoID3v2 {
			args = append(args, "--id3v1-only")
		} else {
			args = append(args, "--id3v2-only")
		}
		args = append(args, id3Tags.args(meta)...)
	}
	if s.Quality != "" {
		args = append(args, "-q", s.Quality)
	}
	if s.Bitrate != "" {
		args = append(args, "-b", s.Bitrate)
	}
	if s.VBR != "" {
		args = append(args, "--vbr-new", "-V", s.VBR)
	}
	return append(args, in.Arg(), out.Arg()), nil
}

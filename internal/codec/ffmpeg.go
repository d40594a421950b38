package codec

// FFmpegDecoder decodes anything ffmpeg understands (used for WMA) to WAVE.
type FFmpegDecoder struct {
	program string
}

// NewFFmpegDecoder creates an ffmpeg-based decoder using program.
func NewFFmpegDecoder(program string) *FFmpegDecoder {
	return &FFmpegDecoder{program: program}
}

func (d *FFmpegDecoder) Name() string    { return "ffmpeg-decoder" }
func (d *FFmpegDecoder) Program() string { return d.program }

// DecodeArgs: ffmpeg -hide_banner -loglevel error -y -i <in> <-f wav - | out>.
//
// -y is always passed: the destination was already confirmed by the
// caller and ffmpeg must never stop to ask on its own.
func (d *FFmpegDecoder) DecodeArgs(in, out Endpoint) ([]string, error) {
	args := []string{"-hide_banner", "-loglevel", "error", "-y", "-i", in.Arg()}
	if out.IsStream() {
		return append(args, "-f", "wav", "-"), nil
	}
	return append(args, out.Path()), nil
}

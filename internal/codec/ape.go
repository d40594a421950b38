package codec

// ApeDecoder runs Monkey's Audio (mac). mac cannot read from stdin, so
// an APE decoder must always be the first stage of a pipeline.
type ApeDecoder struct {
	program string
}

// NewApeDecoder creates an APE decoder using program.
func NewApeDecoder(program string) *ApeDecoder {
	return &ApeDecoder{program: program}
}

func (d *ApeDecoder) Name() string    { return "ape-decoder" }
func (d *ApeDecoder) Program() string { return d.program }

// DecodeArgs: mac <in> <out> -d.
func (d *ApeDecoder) DecodeArgs(in, out Endpoint) ([]string, error) {
	if in.IsStream() {
		return nil, ErrStreamInputUnsupported
	}
	return []string{in.Path(), out.Arg(), "-d"}, nil
}

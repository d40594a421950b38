package model

// Settings holds encoder tuning options for one conversion request.
//
// Settings is passed by value to every encoder stage and is never mutated
// by them. String options are forwarded verbatim to the encoder program;
// an empty string means "not set" and the corresponding flag is omitted
// from the command line instead of being defaulted.
type Settings struct {
	// Bitrate in kb/s (oggenc -b, lame -b).
	Bitrate string

	// Quality level (oggenc -q, lame -q).
	Quality string

	// VBR selects lame's variable bitrate mode (--vbr-new -V).
	VBR string

	// Overwrite replaces existing destination files without asking.
	// The FLAC encoder also receives -f.
	Overwrite bool

	// NoID3v2 makes the MP3 encoder write ID3v1 tags only.
	NoID3v2 bool
}

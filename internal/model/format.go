package model

// Format represents a supported audio container/codec.
//
// The set is closed: every value other than the six listed below is
// FormatInvalid. Each format has exactly one canonical file extension,
// which doubles as its short name (e.g. "flac").
type Format int

const (
	// FormatInvalid is returned for any unrecognized extension or name.
	FormatInvalid Format = iota

	// FormatWAVE is uncompressed RIFF/WAVE PCM.
	FormatWAVE

	// FormatFLAC is Free Lossless Audio Codec.
	FormatFLAC

	// FormatOGG is Ogg Vorbis.
	FormatOGG

	// FormatMP3 is MPEG-1 Audio Layer III.
	FormatMP3

	// FormatAPE is Monkey's Audio.
	FormatAPE

	// FormatWMA is Windows Media Audio.
	FormatWMA
)

var formatExtensions = map[Format]string{
	FormatWAVE: "wav",
	FormatFLAC: "flac",
	FormatOGG:  "ogg",
	FormatMP3:  "mp3",
	FormatAPE:  "ape",
	FormatWMA:  "wma",
}

var extensionFormats = func() map[string]Format {
	m := make(map[string]Format, len(formatExtensions))
	for f, ext := range formatExtensions {
		m[ext] = f
	}
	return m
}()

// Formats returns all valid formats in declaration order.
func Formats() []Format {
	return []Format{FormatWAVE, FormatFLAC, FormatOGG, FormatMP3, FormatAPE, FormatWMA}
}

// FormatFromExtension maps a file extension (without the leading dot) to a
// Format. The lookup is case-sensitive; anything unknown yields FormatInvalid.
//
// Example:
//
//	FormatFromExtension("flac") // FormatFLAC
//	FormatFromExtension("FLAC") // FormatInvalid
func FormatFromExtension(ext string) Format {
	if f, ok := extensionFormats[ext]; ok {
		return f
	}
	return FormatInvalid
}

// FormatFromString maps a short format name such as "mp3" to a Format.
// Short names and extensions share one table.
func FormatFromString(s string) Format {
	return FormatFromExtension(s)
}

// Extension returns the canonical file extension, without the dot.
// FormatInvalid has no extension and returns "".
func (f Format) Extension() string {
	return formatExtensions[f]
}

// String returns the canonical short name, or "invalid".
func (f Format) String() string {
	if ext, ok := formatExtensions[f]; ok {
		return ext
	}
	return "invalid"
}

// Valid reports whether f is one of the six supported formats.
func (f Format) Valid() bool {
	_, ok := formatExtensions[f]
	return ok
}

// HasEmbeddedTags reports whether files of this format carry tags that
// can be read back before conversion.
func (f Format) HasEmbeddedTags() bool {
	switch f {
	case FormatFLAC, FormatOGG, FormatMP3:
		return true
	default:
		return false
	}
}

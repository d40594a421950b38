package codec

// Tools names the external programs the codecs spawn. Each field may be a
// bare program name resolved through PATH or an absolute path.
type Tools struct {
	Lame          string
	Flac          string
	OggEnc        string
	OggDec        string
	Mac           string
	FFmpeg        string
	MetaFlac      string
	VorbisComment string
}

// DefaultTools returns the stock program names.
func DefaultTools() Tools {
	return Tools{
		Lame:          "lame",
		Flac:          "flac",
		OggEnc:        "oggenc",
		OggDec:        "oggdec",
		Mac:           "mac",
		FFmpeg:        "ffmpeg",
		MetaFlac:      "metaflac",
		VorbisComment: "vorbiscomment",
	}
}

// WithDefaults fills empty fields from DefaultTools.
func (t Tools) WithDefaults() Tools {
	d := DefaultTools()
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&t.Lame, d.Lame)
	fill(&t.Flac, d.Flac)
	fill(&t.OggEnc, d.OggEnc)
	fill(&t.OggDec, d.OggDec)
	fill(&t.Mac, d.Mac)
	fill(&t.FFmpeg, d.FFmpeg)
	fill(&t.MetaFlac, d.MetaFlac)
	fill(&t.VorbisComment, d.VorbisComment)
	return t
}

// Named returns every tool keyed by its role, in a stable order.
func (t Tools) Named() []NamedTool {
	return []NamedTool{
		{"lame", t.Lame},
		{"flac", t.Flac},
		{"oggenc", t.OggEnc},
		{"oggdec", t.OggDec},
		{"mac", t.Mac},
		{"ffmpeg", t.FFmpeg},
		{"metaflac", t.MetaFlac},
		{"vorbiscomment", t.VorbisComment},
	}
}

// NamedTool pairs a tool role with its configured program.
type NamedTool struct {
	Role    string
	Program string
}

package main

import (
	"fmt"
	"strings"

	"github.com/handiism/audioconv/internal/codec"
	"github.com/handiism/audioconv/internal/config"
	"github.com/handiism/audioconv/internal/convert"
	"github.com/handiism/audioconv/internal/model"
	"github.com/spf13/cobra"
)

// cliFlags mirrors the command line.
type cliFlags struct {
	outputFormat string
	output       string
	outputDir    string
	sameDir      bool
	prefix       string
	overwrite    bool

	titles   []string
	artists  []string
	albums   []string
	tracks   []string
	years    []string
	comments []string
	tags     []string

	bitrate string
	quality string
	vbr     string
	noID3v2 bool

	configPath string
	logLevel   string
	logFile    string
	check      bool
	verbose    bool
}

func (f *cliFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.outputFormat, "output-format", "f", "", "output format: "+outputFormatList())
	fs.StringVarP(&f.output, "output", "o", "", "output file name (single input only)")
	fs.StringVarP(&f.outputDir, "output-dir", "O", "", "output directory (default: current directory)")
	fs.BoolVarP(&f.sameDir, "output-same", "S", false, "write each output next to its input")
	fs.StringVarP(&f.prefix, "output-prefix", "P", "", "prefix for output file names")
	fs.BoolVarP(&f.overwrite, "overwrite", "y", false, "overwrite existing files without asking")

	fs.StringArrayVar(&f.titles, "title", nil, "set the title tag (repeatable)")
	fs.StringArrayVar(&f.artists, "artist", nil, "set the artist tag (repeatable)")
	fs.StringArrayVar(&f.albums, "album", nil, "set the album tag (repeatable)")
	fs.StringArrayVar(&f.tracks, "track", nil, "set the track number tag (repeatable)")
	fs.StringArrayVar(&f.years, "year", nil, "set the year tag (repeatable)")
	fs.StringArrayVar(&f.comments, "comment", nil, "set the comment tag (repeatable)")
	fs.StringArrayVar(&f.tags, "tag", nil, "set a custom tag as KEY=VALUE (repeatable)")

	fs.StringVarP(&f.bitrate, "bitrate", "b", "", "encoder bitrate in kb/s")
	fs.StringVarP(&f.quality, "quality", "q", "", "encoder quality level")
	fs.StringVarP(&f.vbr, "vbr", "v", "", "lame VBR quality (--vbr-new -V)")
	fs.BoolVar(&f.noID3v2, "no-id3v2", false, "write ID3v1 tags only when encoding MP3")

	fs.BoolVar(&f.check, "check", false, "check that the codec programs can be found and exit")
	fs.BoolVar(&f.verbose, "verbose", false, "show verbose progress")

	pfs := cmd.PersistentFlags()
	pfs.StringVar(&f.configPath, "config", "", "config file (default: "+config.DefaultPath()+")")
	pfs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pfs.StringVar(&f.logFile, "log-file", "", "also write JSON logs to this file")
}

// apply overrides settings with the flags that were given explicitly.
func (f *cliFlags) apply(cmd *cobra.Command, s *config.Settings) {
	changed := func(name string) bool {
		fl := cmd.Flags().Lookup(name)
		return fl != nil && fl.Changed
	}

	if changed("output-format") {
		s.OutputFormat = f.outputFormat
	}
	if changed("output-dir") {
		s.OutputDir = f.outputDir
	}
	if changed("output-same") {
		s.OutputSameDir = f.sameDir
	}
	if changed("output-prefix") {
		s.OutputPrefix = f.prefix
	}
	if changed("overwrite") {
		s.Overwrite = f.overwrite
	}
	if changed("bitrate") {
		s.Bitrate = f.bitrate
	}
	if changed("quality") {
		s.Quality = f.quality
	}
	if changed("vbr") {
		s.VBR = f.vbr
	}
	if changed("no-id3v2") {
		s.NoID3v2 = f.noID3v2
	}
	if changed("log-level") {
		s.LogLevel = f.logLevel
	}
	if changed("log-file") {
		s.LogFile = f.logFile
	}
}

// outputFormatList names the formats some conversion can produce.
func outputFormatList() string {
	var names []string
	for _, f := range convert.NewResolver(codec.DefaultTools()).OutputFormats() {
		names = append(names, f.String())
	}
	return strings.Join(names, ", ")
}

// parseFormat accepts a short name or extension in any case, with or
// without a leading dot.
func parseFormat(s string) (model.Format, error) {
	if s == "" {
		return model.FormatInvalid, fmt.Errorf("no output format given, use -f")
	}
	f := model.FormatFromString(strings.ToLower(strings.TrimPrefix(s, ".")))
	if !f.Valid() {
		return model.FormatInvalid, fmt.Errorf("unknown output format %q", s)
	}
	return f, nil
}

// metadataFromFlags collects the tag flags. Named tags come first, in a
// fixed order, followed by --tag entries in command line order.
func metadataFromFlags(f cliFlags) (*model.Metadata, error) {
	meta := model.NewMetadata()
	named := []struct {
		tag    string
		values []string
	}{
		{model.TagTitle, f.titles},
		{model.TagArtist, f.artists},
		{model.TagAlbum, f.albums},
		{model.TagTrack, f.tracks},
		{model.TagYear, f.years},
		{model.TagComment, f.comments},
	}
	for _, n := range named {
		for _, v := range n.values {
			meta.Append(n.tag, v)
		}
	}

	for _, kv := range f.tags {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid --tag %q, want KEY=VALUE", kv)
		}
		meta.Append(key, value)
	}
	return meta, nil
}

// buildOptions combines the effective settings with the per-run flags.
func buildOptions(s *config.Settings, f cliFlags) (convert.Options, error) {
	format, err := parseFormat(s.OutputFormat)
	if err != nil {
		return convert.Options{}, err
	}
	meta, err := metadataFromFlags(f)
	if err != nil {
		return convert.Options{}, err
	}

	return convert.Options{
		OutputFormat: format,
		OutputFile:   f.output,
		OutputDir:    s.OutputDir,
		SameDir:      s.OutputSameDir,
		Prefix:       s.OutputPrefix,
		Metadata:     meta,
		Settings:     s.ToModelSettings(),
	}, nil
}

package audio

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/handiism/audioconv/internal/model"
)

// ParseError describes one malformed line of extractor output.
type ParseError struct {
	Line int
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid comment on line %d: %q", e.Line, e.Text)
}

// vorbisAliases maps Vorbis field names to the tag names used elsewhere.
var vorbisAliases = map[string]string{
	"date":        model.TagYear,
	"tracknumber": model.TagTrack,
}

// ParseVorbisComment parses KEY=value lines as printed by
// `vorbiscomment -l` and `metaflac --export-tags-to=-`.
//
// Keys are case-insensitive and stored lowercase; DATE becomes "year" and
// TRACKNUMBER becomes "track". Repeated keys accumulate values. A line
// without '=' is reported in the returned slice and skipped; blank lines
// are ignored.
//
// Example:
//
//	meta, warnings := ParseVorbisComment(strings.NewReader("TITLE=Song\nDATE=1999\n"))
//	meta.Get("year") // []string{"1999"}
func ParseVorbisComment(r io.Reader) (*model.Metadata, []error) {
	meta := model.NewMetadata()
	var warnings []error

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			warnings = append(warnings, &ParseError{Line: n, Text: line})
			continue
		}
		key = strings.ToLower(key)
		if alias, ok := vorbisAliases[key]; ok {
			key = alias
		}
		meta.Append(key, value)
	}
	if err := sc.Err(); err != nil {
		warnings = append(warnings, fmt.Errorf("read comments: %w", err))
	}

	return meta, warnings
}

package audio

import (
	"strings"

	"github.com/bogem/id3v2"
	"github.com/handiism/audioconv/internal/model"
)

// ReadID3 reads the ID3v2 tag of an MP3 file into Metadata.
//
// The following frames are mapped:
//   - TIT2 → title, TPE1 → artist, TALB → album
//   - TYER/TDRC → year, TRCK → track
//   - COMM → comment (one value per frame)
//   - TXXX → custom tag named after the frame description
//
// A file without a tag yields empty Metadata.
func ReadID3(path string) (*model.Metadata, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, err
	}
	defer tag.Close()

	meta := model.NewMetadata()
	add := func(name, value string) {
		value = strings.TrimRight(value, "\x00")
		if name != "" && value != "" {
			meta.Append(name, value)
		}
	}

	add(model.TagTitle, tag.Title())
	add(model.TagArtist, tag.Artist())
	add(model.TagAlbum, tag.Album())
	add(model.TagYear, tag.Year())
	add(model.TagTrack, tag.GetTextFrame(tag.CommonID("Track number/Position in set")).Text)

	for _, f := range tag.GetFrames(tag.CommonID("Comments")) {
		if c, ok := f.(id3v2.CommentFrame); ok {
			add(model.TagComment, c.Text)
		}
	}

	for _, f := range tag.GetFrames(tag.CommonID("User defined text information frame")) {
		if u, ok := f.(id3v2.UserDefinedTextFrame); ok {
			add(strings.ToLower(u.Description), u.Value)
		}
	}

	return meta, nil
}

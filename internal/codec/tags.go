package codec

import "github.com/handiism/audioconv/internal/model"

// tagTable translates one tag value into the target program's flags.
type tagTable struct {
	known  map[string]func(v string) []string
	custom func(tag, v string) []string // nil drops custom tags
}

func (t tagTable) args(meta *model.Metadata) []string {
	var args []string
	for _, tag := range meta.Keys() {
		add, ok := t.known[tag]
		if !ok {
			if t.custom == nil {
				continue
			}
			tag := tag
			add = func(v string) []string { return t.custom(tag, v) }
		}
		for _, v := range meta.Get(tag) {
			args = append(args, add(v)...)
		}
	}
	return args
}

func optionArg(name string) func(string) []string {
	return func(v string) []string { return []string{name, v} }
}

func fieldArg(flagName, field string) func(string) []string {
	return func(v string) []string { return []string{flagName, field + "=" + v} }
}

// vorbisTags is used by oggenc.
var vorbisTags = tagTable{
	known: map[string]func(string) []string{
		model.TagTitle:   optionArg("-t"),
		model.TagArtist:  optionArg("-a"),
		model.TagAlbum:   optionArg("-l"),
		model.TagYear:    optionArg("-d"),
		model.TagTrack:   optionArg("-N"),
		model.TagComment: fieldArg("-c", "COMMENT"),
	},
	custom: func(tag, v string) []string { return []string{"-c", tag + "=" + v} },
}

// flacTags is used by the flac encoder, which only knows -T FIELD=VALUE.
var flacTags = tagTable{
	known: map[string]func(string) []string{
		model.TagTitle:   fieldArg("-T", "TITLE"),
		model.TagArtist:  fieldArg("-T", "ARTIST"),
		model.TagAlbum:   fieldArg("-T", "ALBUM"),
		model.TagYear:    fieldArg("-T", "DATE"),
		model.TagTrack:   fieldArg("-T", "TRACKNUMBER"),
		model.TagComment: fieldArg("-T", "COMMENT"),
	},
	custom: func(tag, v string) []string { return []string{"-T", tag + "=" + v} },
}

// id3Tags is used by lame. ID3 has no free-form fields here, so custom
// tags are dropped.
var id3Tags = tagTable{
	known: map[string]func(string) []string{
		model.TagTitle:   optionArg("--tt"),
		model.TagArtist:  optionArg("--ta"),
		model.TagAlbum:   optionArg("--tl"),
		model.TagYear:    optionArg("--ty"),
		model.TagTrack:   optionArg("--tn"),
		model.TagComment: optionArg("--tc"),
	},
}

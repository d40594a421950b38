// Package audio reads the tags embedded in source audio files.
//
// # Extraction
//
// ToolExtractor picks the right reader for a format:
//
//	x := audio.NewExtractor(tools, log)
//	meta, err := x.Extract(ctx, model.FormatFLAC, "song.flac")
//
// FLAC and Ogg Vorbis tags are read by running metaflac and vorbiscomment
// and parsing their KEY=value output with ParseVorbisComment. MP3 tags
// are read in-process from the ID3v2 frames.
//
// # Vorbis comments
//
// ParseVorbisComment lowercases keys, renames DATE to "year" and
// TRACKNUMBER to "track", and collects repeated keys into one multi-valued
// tag. Malformed lines are returned as warnings instead of failing the
// whole parse.
package audio

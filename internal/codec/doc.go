// Package codec wraps the external decoder and encoder programs used by
// the conversion pipeline.
//
// Every codec knows how to build its own command line for a given pair of
// endpoints. An endpoint is either a named file or a stream ("-" on the
// command line) that the pipeline executor connects to the neighbouring
// stage with a pipe:
//
//	enc := codec.NewMp3Encoder("lame")
//	args, _ := enc.EncodeArgs(codec.Stream, codec.File("song.mp3"), meta, settings)
//	// lame -S --id3v2-only --tt "Song" - song.mp3
//
// # Decoders and Encoders
//
// Decoders (oggdec, lame --decode, flac -d, mac, ffmpeg) only take
// endpoints. Encoders (oggenc, lame, flac) also take the tag Metadata and
// the encoder Settings. Both are wrapped in a Stage, the unit the resolver
// puts into a pipeline.
//
// # Tags
//
// Each encoder translates Metadata with its own table. Custom tag names
// become KEY=VALUE comments for Ogg Vorbis and FLAC; lame has no
// free-form ID3 field and drops them.
package codec

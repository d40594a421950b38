// Package model defines the core data structures shared by the
// conversion engine.
//
// # Format
//
// Format is the closed set of supported audio formats. Lookups from
// arbitrary strings never fail; unknown input yields FormatInvalid:
//
//	f := model.FormatFromExtension("flac") // model.FormatFLAC
//	f.Extension()                          // "flac"
//	model.FormatFromExtension("aiff")      // model.FormatInvalid
//
// # Metadata
//
// Metadata carries tags (title, artist, album, track, year, comment and
// custom tags) across pipeline stages. Every tag holds an ordered slice of
// values:
//
//	var meta model.Metadata
//	meta.Append("artist", "Someone")
//	meta.Set("track", "3")
//
// # Settings
//
// Settings is the per-request encoder tuning record (bitrate, quality,
// VBR mode, overwrite). It is a plain value and is copied into each
// encoder stage.
package model

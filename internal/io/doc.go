// Package ioutils provides file system helpers for the converter.
//
// This package contains functions for:
//   - Splitting a source path into base name and extension
//   - Building destination paths
//   - Directory creation
//   - Asking the user before overwriting a file
//
// # Destination paths
//
// A converted file keeps its base name and takes the target format's
// extension, optionally with a prefix:
//
//	base, ext := ioutils.SplitExt("/music/song.flac") // "song", "flac"
//	dst := ioutils.OutputPath("/out", "", base, "mp3") // "/out/song.mp3"
//
// # Overwrite prompt
//
// AskOverwrite works on any reader/writer pair, so the CLI passes
// os.Stdin and os.Stderr while tests pass buffers.
package ioutils

package ioutils

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// SplitExt splits a file name into its base name (without directory) and
// extension (without the leading dot).
//
// Only the last dot counts, and a leading dot does not start an
// extension, so hidden files have none:
//
//	SplitExt("/music/song.flac")     // "song", "flac"
//	SplitExt("live.2001.ogg")        // "live.2001", "ogg"
//	SplitExt("README")               // "README", ""
//	SplitExt(".hidden")              // ".hidden", ""
func SplitExt(path string) (base, ext string) {
	name := filepath.Base(path)
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return name, ""
	}
	return name[:i], name[i+1:]
}

// OutputPath builds the destination path {dir}/{prefix}{base}.{ext}.
//
// An empty dir yields a path relative to the current directory.
//
// Example:
//
//	OutputPath("/music", "conv-", "song", "mp3") // "/music/conv-song.mp3"
//	OutputPath("", "", "song", "ogg")            // "song.ogg"
func OutputPath(dir, prefix, base, ext string) string {
	name := prefix + base + "." + ext
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}

// Exists reports whether path exists. Errors other than "not exist" are
// treated as existing so the caller does not clobber something it cannot
// inspect.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, os.ErrNotExist)
}

// SameFile reports whether a and b name the same file. Existing files
// are compared with os.SameFile so links and relative names match;
// otherwise the cleaned absolute paths are compared.
func SameFile(a, b string) bool {
	if ai, err := os.Stat(a); err == nil {
		if bi, err := os.Stat(b); err == nil {
			return os.SameFile(ai, bi)
		}
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, or path is empty, no error is returned.
//
// Example:
//
//	err := EnsureDir("/music/converted/mp3")
func EnsureDir(path string) error {
	if path == "" {
		return nil
	}
	return os.MkdirAll(path, 0755)
}

// AskOverwrite prints "File '<path>' exists. Overwrite? [y/N] " to w and
// reads one line from r. Only "y" or "yes" (any case) confirm; anything
// else, including EOF, declines.
func AskOverwrite(r io.Reader, w io.Writer, path string) bool {
	fmt.Fprintf(w, "File '%s' exists. Overwrite? [y/N] ", path)

	line, err := readLine(r)
	if err != nil && line == "" {
		fmt.Fprintln(w)
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// readLine reads up to and including the next newline one byte at a time,
// so answers to later prompts stay in r.
func readLine(r io.Reader) (string, error) {
	var sb strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if buf[0] == '\n' {
				return sb.String(), nil
			}
			sb.WriteByte(buf[0])
		}
		if err != nil {
			return sb.String(), err
		}
	}
}

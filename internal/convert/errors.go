package convert

import (
	"errors"
	"fmt"

	"github.com/handiism/audioconv/internal/model"
)

// ErrFileFormat matches every *FileFormatError via errors.Is.
var ErrFileFormat = errors.New("unsupported file format")

// ErrSameFile is returned when a file would be converted onto itself.
var ErrSameFile = errors.New("output file is the input file")

// FileFormatError reports a file that cannot be converted because of its
// format: an unsupported (input, output) pair, or a name without an
// extension.
type FileFormatError struct {
	Input  model.Format
	Output model.Format
	Path   string // set when the file name has no extension
}

func (e *FileFormatError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: file has no extension", e.Path)
	}
	return fmt.Sprintf("format conversion from %s to %s not supported", e.Input, e.Output)
}

// Is lets errors.Is(err, ErrFileFormat) match.
func (e *FileFormatError) Is(target error) bool {
	return target == ErrFileFormat
}

package resource

import (
	"errors"
	"fmt"
)

// ErrDirectoryMisuse is matched by errors raised when a single-pair
// operation targets a directory.
var ErrDirectoryMisuse = errors.New("directory used as single resource")

// DirectoryError reports a filesystem handle that resolves to a directory.
type DirectoryError struct {
	Path string
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("attempting to run single diff operation on directory %s, if intended use '--batch' flag", e.Path)
}

// Unwrap allows errors.Is(err, ErrDirectoryMisuse).
func (e *DirectoryError) Unwrap() error {
	return ErrDirectoryMisuse
}

package storage

import (
	"errors"
	"fmt"
)

// ErrIO is matched by every backend fetch, list, stat or put failure,
// whether it came from the object store or the local filesystem.
var ErrIO = errors.New("storage i/o failure")

// IOError wraps a backend failure with the operation and locator involved.
type IOError struct {
	Op      string
	Locator string
	Err     error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Locator, e.Err)
}

// Unwrap returns the underlying backend error.
func (e *IOError) Unwrap() error {
	return e.Err
}

// Is allows errors.Is(err, ErrIO) while keeping the backend error reachable.
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

// WrapIO wraps err in an IOError. A nil err stays nil.
func WrapIO(op, locator string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Op: op, Locator: locator, Err: err}
}

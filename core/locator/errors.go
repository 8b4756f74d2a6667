package locator

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedLocator is matched by errors for locators with an unknown scheme.
	ErrUnsupportedLocator = errors.New("unsupported locator")
	// ErrNamingConstraint is matched by errors for invalid object-store bucket names.
	ErrNamingConstraint = errors.New("naming constraint violated")
)

// UnsupportedError reports a locator whose scheme is neither file:// nor s3://.
type UnsupportedError struct {
	Locator string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("invalid locator %q: only file:// and s3:// locators are supported", e.Locator)
}

// Unwrap allows errors.Is(err, ErrUnsupportedLocator).
func (e *UnsupportedError) Unwrap() error {
	return ErrUnsupportedLocator
}

// NamingError reports a bucket name rejected by the object store naming rules.
type NamingError struct {
	Bucket string
	Reason string
}

func (e *NamingError) Error() string {
	return fmt.Sprintf("invalid bucket name %q: %s", e.Bucket, e.Reason)
}

// Unwrap allows errors.Is(err, ErrNamingConstraint).
func (e *NamingError) Unwrap() error {
	return ErrNamingConstraint
}

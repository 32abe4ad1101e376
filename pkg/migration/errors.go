package migration

import (
	"errors"
	"fmt"
)

// ErrNotMapping is wrapped by ParseError when the document root is a sequence or scalar.
var ErrNotMapping = errors.New("configuration root is not a mapping")

// ParseError is returned when a configuration cannot be loaded.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse packit configuration: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsParseError reports whether err, or anything it wraps, is a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

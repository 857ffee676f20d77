package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidArgument is the sentinel every InvalidArgumentError matches.
var ErrInvalidArgument = errors.New("invalid argument")

// InvalidArgumentError represents a value outside the accepted set for a field.
type InvalidArgumentError struct {
	Field   string
	Value   string
	Allowed []string
	// Err is an optional, more specific sentinel wrapped by this error.
	Err error
}

// Error implements the error interface
func (e *InvalidArgumentError) Error() string {
	msg := fmt.Sprintf("invalid %s %q", e.Field, e.Value)
	if len(e.Allowed) > 0 {
		msg += fmt.Sprintf(" (expected one of: %s)", strings.Join(e.Allowed, ", "))
	}
	return msg
}

// Unwrap exposes both the generic sentinel and the specific one, if any.
func (e *InvalidArgumentError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidArgument, e.Err}
	}
	return []error{ErrInvalidArgument}
}

// NewInvalidArgument creates a new InvalidArgumentError
func NewInvalidArgument(field, value string, allowed []string, err error) *InvalidArgumentError {
	return &InvalidArgumentError{
		Field:   field,
		Value:   value,
		Allowed: allowed,
		Err:     err,
	}
}

// IsInvalidArgument reports whether err, or anything it wraps, is an invalid-argument error.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

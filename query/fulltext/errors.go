package fulltext

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned for requests that cannot be rendered.
var ErrInvalidArgument = errors.New("invalid argument")

// ValidationError reports which part of a request was rejected.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidArgument, e.Field, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidArgument.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidArgument
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

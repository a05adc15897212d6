package pipeline

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned when a request is missing its project path
// or names a path that does not exist.
var ErrInvalidInput = errors.New("invalid input")

// InputError records which request field was rejected and why.
type InputError struct {
	Field string
	Err   error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

// Unwrap exposes both ErrInvalidInput and the underlying cause.
func (e *InputError) Unwrap() []error {
	return []error{ErrInvalidInput, e.Err}
}

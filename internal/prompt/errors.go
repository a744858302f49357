package prompt

import (
	"errors"
	"fmt"
)

// ErrValidation marks an answer that does not satisfy its question.
var ErrValidation = errors.New("validation failed")

// ValidationError reports which question rejected its answer.
type ValidationError struct {
	Key    string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: answer for %q: %s", ErrValidation, e.Key, e.Reason)
}

// Unwrap lets errors.Is match ErrValidation.
func (e *ValidationError) Unwrap() error { return ErrValidation }

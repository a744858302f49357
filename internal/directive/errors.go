package directive

import (
	"errors"
	"fmt"
)

// ErrMalformedTemplate marks unbalanced, mismatched, or unknown markers.
var ErrMalformedTemplate = errors.New("malformed template")

// TemplateError locates a directive problem in a template file.
type TemplateError struct {
	Path string
	Line int
	Msg  string
	Err  error // underlying cause, e.g. an invalid predicate
}

func (e *TemplateError) Error() string {
	msg := fmt.Sprintf("%s: %s:%d: %s", ErrMalformedTemplate, e.Path, e.Line, e.Msg)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes ErrMalformedTemplate and the underlying cause.
func (e *TemplateError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformedTemplate, e.Err}
	}
	return []error{ErrMalformedTemplate}
}

package meta

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig marks a template configuration that cannot be used.
var ErrInvalidConfig = errors.New("invalid template configuration")

// Issue is one problem found in a configuration file.
type Issue struct {
	Path    string // location in the document, e.g. "/questions/3/when"
	Message string
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// ConfigError lists every issue found in one configuration file.
type ConfigError struct {
	Source string
	Issues []Issue
	Err    error // first underlying cause, e.g. expr.ErrUnknownKey
}

func (e *ConfigError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, is := range e.Issues {
		parts[i] = is.String()
	}
	return fmt.Sprintf("%s: %s: %s", ErrInvalidConfig, e.Source, strings.Join(parts, "; "))
}

// Unwrap exposes ErrInvalidConfig and the first underlying cause.
func (e *ConfigError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidConfig, e.Err}
	}
	return []error{ErrInvalidConfig}
}

// issues collects problems while compiling.
type issues struct {
	list  []Issue
	cause error
}

func (is *issues) add(path string, err error) {
	is.list = append(is.list, Issue{Path: path, Message: err.Error()})
	if is.cause == nil {
		is.cause = err
	}
}

func (is *issues) addf(path, format string, args ...any) {
	is.list = append(is.list, Issue{Path: path, Message: fmt.Sprintf(format, args...)})
}

func (is *issues) err(source string) error {
	if len(is.list) == 0 {
		return nil
	}
	return &ConfigError{Source: source, Issues: is.list, Err: is.cause}
}

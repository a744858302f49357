package scaffold

import (
	"errors"
	"fmt"
)

// ErrDestinationNotEmpty is returned when the destination already holds
// files and neither Force nor in-place generation was requested.
var ErrDestinationNotEmpty = errors.New("destination directory is not empty")

// Stage names the phase of generation that failed.
type Stage string

const (
	StageFilter    Stage = "filter"
	StageDirective Stage = "directive"
	StageWrite     Stage = "write"
)

// Error wraps a generation failure with its stage.
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func stageErr(stage Stage, err error) error {
	return &Error{Stage: stage, Err: err}
}

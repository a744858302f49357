package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/skelgen-labs/skelgen/internal/expr"
)

// ErrStepFailure marks a pipeline aborted by a failing step.
var ErrStepFailure = errors.New("completion step failed")

// StepError names the step that failed.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStepFailure, e.Step, e.Err)
}

// Unwrap exposes ErrStepFailure and the step's own error.
func (e *StepError) Unwrap() []error { return []error{ErrStepFailure, e.Err} }

// State is the lifecycle state of one step.
type State int

const (
	StatePending State = iota
	StateRunning
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateRunning:
		return "running"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// RunState is the lifecycle state of a whole run.
type RunState int

const (
	RunPending RunState = iota
	RunRunning
	RunCompleted
	RunAborted
)

func (s RunState) String() string {
	switch s {
	case RunPending:
		return "pending"
	case RunRunning:
		return "running"
	case RunCompleted:
		return "completed"
	case RunAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Action performs a step.
type Action func(ctx context.Context, env *Env) error

// Step describes one pipeline stage.
type Step struct {
	Name string

	// Gate enables the step; nil means always enabled.
	Gate *expr.Program

	// Requires names earlier steps that must have executed, not merely
	// been enabled, for this step to run.
	Requires []string

	// Disabled, when set, skips the step unconditionally with this reason.
	Disabled string

	Action Action
}

// StepResult is the outcome of one step.
type StepResult struct {
	Name     string
	State    State
	Skipped  bool   // disabled by its gate or an unmet requirement
	Reason   string // why the step was skipped
	Err      error
	Duration time.Duration
}

// Executed reports whether the step ran its action successfully.
func (r StepResult) Executed() bool {
	return r.State == StateSucceeded && !r.Skipped
}

// Report summarizes a run.
type Report struct {
	RunID string
	State RunState
	Steps []StepResult
}

// Step returns the result for the named step.
func (r *Report) Step(name string) (StepResult, bool) {
	if r == nil {
		return StepResult{}, false
	}
	for _, s := range r.Steps {
		if s.Name == name {
			return s, true
		}
	}
	return StepResult{}, false
}

// Executed reports whether the named step ran successfully.
func (r *Report) Executed(name string) bool {
	s, ok := r.Step(name)
	return ok && s.Executed()
}

// Failed returns the result of the failing step, if any.
func (r *Report) Failed() (StepResult, bool) {
	if r == nil {
		return StepResult{}, false
	}
	for _, s := range r.Steps {
		if s.State == StateFailed {
			return s, true
		}
	}
	return StepResult{}, false
}

package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/skelgen-labs/skelgen/internal/compat"
	"github.com/skelgen-labs/skelgen/internal/directive"
	"github.com/skelgen-labs/skelgen/internal/expr"
	"github.com/skelgen-labs/skelgen/internal/filter"
	"github.com/skelgen-labs/skelgen/internal/meta"
	"github.com/skelgen-labs/skelgen/internal/pipeline"
	"github.com/skelgen-labs/skelgen/internal/prompt"
	"github.com/skelgen-labs/skelgen/internal/scaffold"
	"github.com/skelgen-labs/skelgen/internal/source"
)

// Stage names the phase of a command that failed.
type Stage string

const (
	StageConfig    Stage = "config"
	StagePrompt    Stage = "prompt"
	StageFilter    Stage = "filter"
	StageDirective Stage = "directive"
	StageWrite     Stage = "write"
	StagePipeline  Stage = "pipeline"
)

// Process exit codes.
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitValidation = 2
	ExitConfig     = 3
	ExitTemplate   = 4
	ExitPipeline   = 5
)

// StageError attributes an error to a stage.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string { return e.Err.Error() }

func (e *StageError) Unwrap() error { return e.Err }

func stageError(stage Stage, err error) error {
	if err == nil {
		return nil
	}
	var se *StageError
	if errors.As(err, &se) {
		return err
	}
	var ge *scaffold.Error
	if errors.As(err, &ge) {
		return &StageError{Stage: Stage(ge.Stage), Err: ge.Err}
	}
	return &StageError{Stage: stage, Err: err}
}

// ExitCode maps err to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, pipeline.ErrStepFailure):
		return ExitPipeline
	case errors.Is(err, directive.ErrMalformedTemplate):
		return ExitTemplate
	case errors.Is(err, meta.ErrInvalidConfig),
		errors.Is(err, expr.ErrInvalidExpression),
		errors.Is(err, expr.ErrUnknownKey),
		errors.Is(err, filter.ErrBadPattern),
		errors.Is(err, compat.ErrIncompatible),
		errors.Is(err, source.ErrUnknownTemplate),
		errors.Is(err, source.ErrOffline):
		return ExitConfig
	case errors.Is(err, prompt.ErrValidation):
		return ExitValidation
	}
	return ExitFailure
}

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)

// PrintError writes err once, naming its stage when known.
func PrintError(w io.Writer, err error) {
	var se *StageError
	if errors.As(err, &se) {
		fmt.Fprintf(w, "%s [%s]: %v\n", errorStyle.Render("Error"), se.Stage, se.Err)
		return
	}
	fmt.Fprintf(w, "%s: %v\n", errorStyle.Render("Error"), err)
}

package runtime

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"go.uber.org/zap"
)

// ExitError reports a command that ran and exited non-zero.
type ExitError struct {
	Command Command
	Code    int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Command, e.Code)
}

// ExecRunner runs commands as child processes.
type ExecRunner struct {
	// Stdout and Stderr receive the streamed output; defaults to
	// os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer

	Log *zap.Logger
}

// Run starts cmd, streams its output and waits for it to finish.
func (r *ExecRunner) Run(ctx context.Context, c Command) (*Output, error) {
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}

	bin, err := exec.LookPath(c.Name)
	if err != nil {
		return nil, fmt.Errorf("%s not found on PATH: %w", c.Name, err)
	}

	cmd := exec.CommandContext(ctx, bin, c.Args...)
	cmd.Dir = c.Dir

	stdout := r.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := r.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = io.MultiWriter(stdout, &stdoutBuf)
	cmd.Stderr = io.MultiWriter(stderr, &stderrBuf)

	log.Debug("running command", zap.Stringer("cmd", c), zap.String("dir", c.Dir))
	err = cmd.Run()

	output := &Output{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			output.ExitCode = exitErr.ExitCode()
			return output, &ExitError{Command: c, Code: output.ExitCode}
		}
		return output, fmt.Errorf("running %s: %w", c, err)
	}
	return output, nil
}

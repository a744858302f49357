package runtime

import (
	"context"
	"strings"
)

// Command is one external process invocation.
type Command struct {
	Name string
	Args []string
	Dir  string // working directory; empty means the current one
}

// String renders the command line the way a user would type it.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Output captures the result of a command.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner executes commands. A non-zero exit is reported as an error
// together with the captured Output.
type Runner interface {
	Run(ctx context.Context, cmd Command) (*Output, error)
}

package source

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/skelgen-labs/skelgen/internal/runtime"
)

// Fetcher retrieves git repositories.
type Fetcher interface {
	Clone(ctx context.Context, url, dir string) error
	Pull(ctx context.Context, dir string) error
}

// GitFetcher shells out to git through a runtime.Runner.
type GitFetcher struct {
	Runner runtime.Runner
}

// NewGitFetcher returns a fetcher whose git output is captured rather
// than streamed.
func NewGitFetcher() *GitFetcher {
	return &GitFetcher{Runner: &runtime.ExecRunner{Stdout: io.Discard, Stderr: io.Discard}}
}

// Clone performs a shallow clone of url into dir.
func (g *GitFetcher) Clone(ctx context.Context, url, dir string) error {
	return g.git(ctx, "", "clone", "--depth=1", url, dir)
}

// Pull fast-forwards the shallow clone in dir.
func (g *GitFetcher) Pull(ctx context.Context, dir string) error {
	return g.git(ctx, dir, "pull", "--depth=1", "--rebase")
}

func (g *GitFetcher) git(ctx context.Context, dir string, args ...string) error {
	cmd := runtime.Command{Name: "git", Args: args, Dir: dir}
	out, err := g.Runner.Run(ctx, cmd)
	if err != nil {
		if out != nil && strings.TrimSpace(out.Stderr) != "" {
			return fmt.Errorf("%w\n%s", err, strings.TrimSpace(out.Stderr))
		}
		return err
	}
	return nil
}

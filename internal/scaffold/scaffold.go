package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/skelgen-labs/skelgen/internal/answers"
	"github.com/skelgen-labs/skelgen/internal/directive"
	"github.com/skelgen-labs/skelgen/internal/filter"
	"github.com/skelgen-labs/skelgen/internal/meta"
	"github.com/skelgen-labs/skelgen/internal/platform"
	"github.com/skelgen-labs/skelgen/internal/tree"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds parallel file transforms when Options leaves
// it unset.
const DefaultConcurrency = 8

// stagingPrefix names the temporary directory files are written to.
const stagingPrefix = ".skelgen-staging-"

// Options configures a Generator.
type Options struct {
	// Dest is the output directory. "" or "." generates in place.
	Dest string

	// Force allows writing into a non-empty destination.
	Force bool

	Concurrency int
	Logger      *zap.Logger
}

// Result holds the outcome of a generation.
type Result struct {
	OutputDir string
	Files     []string // written, relative to OutputDir
	Skipped   []string // excluded by filter rules
}

// Generator turns one template into a project tree.
type Generator struct {
	tree    fs.FS
	filters *filter.Engine
	proc    *directive.Processor
	opts    Options
	log     *zap.Logger
}

// New prepares a generator for tmpl, whose files are read from tree.
func New(tree fs.FS, tmpl *meta.Template, opts Options) (*Generator, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	proc, err := directive.New(directive.Options{
		TemplateVersion:   tmpl.Version,
		SkipInterpolation: tmpl.SkipInterpolation,
		Logger:            log,
	})
	if err != nil {
		return nil, err
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	return &Generator{
		tree:    tree,
		filters: filter.New(tmpl.Rules, log),
		proc:    proc,
		opts:    opts,
		log:     log,
	}, nil
}

// InPlace reports whether the generator writes into the working directory.
func (g *Generator) InPlace() bool {
	return g.opts.Dest == "" || g.opts.Dest == "."
}

// rendered is one transformed file awaiting its write.
type rendered struct {
	file tree.File
	data []byte
}

// Plan lists the template files and splits them by the filter rules.
func (g *Generator) Plan(ctx answers.Lookup) (kept []tree.File, skipped []string, err error) {
	files, err := tree.Walk(g.tree, ".", g.log)
	if err != nil {
		return nil, nil, stageErr(StageFilter, err)
	}
	for _, f := range files {
		d := g.filters.Decide(f.Path, ctx)
		if !d.Included {
			skipped = append(skipped, f.Path)
			continue
		}
		kept = append(kept, f)
	}
	return kept, skipped, nil
}

// Generate filters, transforms, and writes the tree. Nothing is written
// to the destination unless every file transformed successfully.
func (g *Generator) Generate(ctx context.Context, ans *answers.Context) (*Result, error) {
	dest, err := g.destination()
	if err != nil {
		return nil, err
	}

	kept, skipped, err := g.Plan(ans)
	if err != nil {
		return nil, err
	}

	out, err := g.transform(ctx, kept, ans)
	if err != nil {
		return nil, err
	}

	if err := g.write(dest, out); err != nil {
		return nil, stageErr(StageWrite, err)
	}

	result := &Result{OutputDir: dest, Skipped: skipped}
	for _, r := range out {
		result.Files = append(result.Files, r.file.Path)
	}
	g.log.Info("project generated",
		zap.String("dest", dest),
		zap.Int("files", len(result.Files)),
		zap.Int("skipped", len(skipped)))
	return result, nil
}

// Check parses every template file, ignoring the filter rules, and joins
// the malformed-template errors.
func (g *Generator) Check() error {
	files, err := tree.Walk(g.tree, ".", g.log)
	if err != nil {
		return stageErr(StageFilter, err)
	}
	var errs []error
	for _, f := range files {
		data, err := fs.ReadFile(g.tree, f.Path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := g.proc.Check(f.Path, data); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return stageErr(StageDirective, errors.Join(errs...))
	}
	return nil
}

// transform runs the directive processor over files with bounded
// parallelism. Output order follows input order.
func (g *Generator) transform(ctx context.Context, files []tree.File, ans *answers.Context) ([]rendered, error) {
	out := make([]rendered, len(files))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.opts.Concurrency)

	for i, f := range files {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := fs.ReadFile(g.tree, f.Path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", f.Path, err)
			}
			data, err = g.proc.Process(f.Path, data, ans)
			if err != nil {
				return err
			}
			out[i] = rendered{file: f, data: data}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, stageErr(StageDirective, err)
	}
	return out, nil
}

// destination resolves the output directory and enforces the emptiness
// rule.
func (g *Generator) destination() (string, error) {
	dest := g.opts.Dest
	if g.InPlace() {
		dest = "."
	}
	abs, err := filepath.Abs(dest)
	if err != nil {
		return "", stageErr(StageWrite, fmt.Errorf("resolving destination: %w", err))
	}

	entries, err := os.ReadDir(abs)
	switch {
	case os.IsNotExist(err):
		return abs, nil
	case err != nil:
		return "", stageErr(StageWrite, fmt.Errorf("reading destination: %w", err))
	}
	if len(entries) > 0 && !g.opts.Force && !g.InPlace() {
		return "", stageErr(StageWrite, fmt.Errorf("%w: %s (use --force to write anyway)", ErrDestinationNotEmpty, abs))
	}
	return abs, nil
}

// write stages files under a unique directory and moves them into dest.
// A missing dest is created by renaming the staging directory itself.
func (g *Generator) write(dest string, files []rendered) error {
	_, statErr := os.Stat(dest)
	fresh := os.IsNotExist(statErr)

	var staging string
	if fresh {
		if err := os.MkdirAll(filepath.Dir(dest), platform.DirPerm); err != nil {
			return fmt.Errorf("creating parent directory: %w", err)
		}
		staging = filepath.Join(filepath.Dir(dest), stagingPrefix+uuid.NewString())
	} else {
		staging = filepath.Join(dest, stagingPrefix+uuid.NewString())
	}
	defer os.RemoveAll(staging)

	if err := os.Mkdir(staging, platform.DirPerm); err != nil {
		return fmt.Errorf("creating staging directory: %w", err)
	}
	for _, r := range files {
		p := filepath.Join(staging, filepath.FromSlash(r.file.Path))
		if err := os.MkdirAll(filepath.Dir(p), platform.DirPerm); err != nil {
			return fmt.Errorf("creating directory for %s: %w", r.file.Path, err)
		}
		if err := platform.WriteFile(p, r.data, r.file.Mode); err != nil {
			return fmt.Errorf("writing %s: %w", r.file.Path, err)
		}
	}
	g.log.Debug("files staged", zap.String("staging", staging), zap.Int("files", len(files)))

	if fresh {
		if err := os.Rename(staging, dest); err != nil {
			return fmt.Errorf("finalizing %s: %w", dest, err)
		}
		return nil
	}

	for _, r := range files {
		rel := filepath.FromSlash(r.file.Path)
		target := filepath.Join(dest, rel)
		if err := os.MkdirAll(filepath.Dir(target), platform.DirPerm); err != nil {
			return fmt.Errorf("creating directory for %s: %w", r.file.Path, err)
		}
		if err := os.Rename(filepath.Join(staging, rel), target); err != nil {
			return fmt.Errorf("moving %s into place: %w", r.file.Path, err)
		}
	}
	return nil
}

package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/skelgen-labs/skelgen/internal/meta"
	"go.uber.org/zap"
)

// ErrOffline is returned when a git template is not cached and fetching
// is disabled.
var ErrOffline = errors.New("template not cached and offline mode is on")

// Source is a resolved template: its configuration and file tree.
type Source struct {
	Ref      Ref
	Dir      string // on-disk root; empty for builtin templates
	Template *meta.Template

	root fs.FS
}

// FS returns the template root, holding the configuration file.
func (s *Source) FS() fs.FS { return s.root }

// Tree returns the file tree to materialize.
func (s *Source) Tree() (fs.FS, error) {
	sub, err := fs.Sub(s.root, meta.TreeDir)
	if err != nil {
		return nil, err
	}
	if _, err := fs.Stat(sub, "."); err != nil {
		return nil, fmt.Errorf("template %s has no %s/ directory: %w", s.Ref.Name, meta.TreeDir, err)
	}
	return sub, nil
}

// Resolver turns references into Sources.
type Resolver struct {
	CacheDir string
	RepoBase string

	// Offline uses cached clones only.
	Offline bool
	MaxAge  time.Duration

	Fetcher Fetcher
	Log     *zap.Logger
}

func (r *Resolver) logger() *zap.Logger {
	if r.Log == nil {
		return zap.NewNop()
	}
	return r.Log
}

// Parse classifies raw against the local filesystem.
func (r *Resolver) Parse(raw string) (Ref, error) {
	return ParseRef(expandHome(raw), r.RepoBase, isDir)
}

// Resolve fetches raw if needed and loads its configuration.
func (r *Resolver) Resolve(ctx context.Context, raw string) (*Source, error) {
	ref, err := r.Parse(raw)
	if err != nil {
		return nil, err
	}
	return r.Open(ctx, ref)
}

// Open loads the template ref points to.
func (r *Resolver) Open(ctx context.Context, ref Ref) (*Source, error) {
	src := &Source{Ref: ref}
	switch ref.Kind {
	case KindBuiltin:
		root, err := builtin(ref.Name)
		if err != nil {
			return nil, fmt.Errorf("opening builtin template %s: %w", ref.Name, err)
		}
		src.root = root
	case KindLocal:
		info, err := os.Stat(ref.Path)
		if err != nil {
			return nil, fmt.Errorf("opening template %s: %w", ref.Path, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("template %s is not a directory", ref.Path)
		}
		src.Dir = ref.Path
		src.root = os.DirFS(ref.Path)
	case KindGit:
		dir, err := r.fetch(ctx, ref)
		if err != nil {
			return nil, err
		}
		src.Dir = dir
		src.root = os.DirFS(dir)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTemplate, ref.Raw)
	}

	t, err := meta.Load(src.root)
	if err != nil {
		return nil, fmt.Errorf("loading template %s: %w", ref.Raw, err)
	}
	src.Template = t
	r.logger().Debug("template resolved",
		zap.String("ref", ref.Raw),
		zap.Stringer("kind", ref.Kind),
		zap.String("config", t.Source))
	return src, nil
}

// CachePath returns the cache directory of a git ref.
func (r *Resolver) CachePath(ref Ref) string {
	return filepath.Join(r.CacheDir, ref.Name)
}

// fetch makes sure a usable clone of ref exists and returns its path.
func (r *Resolver) fetch(ctx context.Context, ref Ref) (string, error) {
	dir := r.CachePath(ref)
	log := r.logger().With(zap.String("template", ref.Name))

	_, statErr := os.Stat(dir)
	cached := statErr == nil

	switch {
	case r.Offline && cached:
		log.Debug("using cached template (offline)")
		return dir, nil
	case r.Offline:
		return "", fmt.Errorf("%w: %s", ErrOffline, ref.Raw)
	case cached && !IsStale(dir, r.maxAge()):
		return dir, nil
	case cached:
		if err := r.Update(ctx, ref); err != nil {
			log.Warn("refreshing cached template failed, using stale copy", zap.Error(err))
		}
		return dir, nil
	}

	if err := r.Clone(ctx, ref); err != nil {
		return "", err
	}
	return dir, nil
}

func (r *Resolver) maxAge() time.Duration {
	if r.MaxAge > 0 {
		return r.MaxAge
	}
	return DefaultMaxAge
}

// Clone performs a shallow clone of ref into the cache.
//
// The clone is atomic: it writes to a .tmp directory first, then renames
// on success. On failure the .tmp directory is cleaned up.
func (r *Resolver) Clone(ctx context.Context, ref Ref) error {
	if ref.Kind != KindGit {
		return fmt.Errorf("template %s is not a git repository", ref.Raw)
	}
	if r.Fetcher == nil {
		return errors.New("no git fetcher configured")
	}

	targetDir := r.CachePath(ref)
	tmpDir := targetDir + tmpSuffix

	// Clean up any leftover tmp dir from a previous failed attempt.
	_ = os.RemoveAll(tmpDir)

	if err := os.MkdirAll(filepath.Dir(tmpDir), dirPerm); err != nil {
		return fmt.Errorf("creating template cache: %w", err)
	}

	r.logger().Info("cloning template", zap.String("url", ref.URL))
	if err := r.Fetcher.Clone(ctx, ref.URL, tmpDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("cloning template %s: %w", ref.URL, err)
	}

	if err := os.RemoveAll(targetDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("removing existing template dir: %w", err)
	}
	if err := os.Rename(tmpDir, targetDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("finalizing template clone: %w", err)
	}

	return WriteFreshnessMarker(targetDir)
}

// Update pulls the latest changes of a cached ref.
// If the clone doesn't exist, it calls Clone instead.
func (r *Resolver) Update(ctx context.Context, ref Ref) error {
	if ref.Kind != KindGit {
		return fmt.Errorf("template %s is not a git repository", ref.Raw)
	}
	if r.Fetcher == nil {
		return errors.New("no git fetcher configured")
	}

	dir := r.CachePath(ref)
	if _, err := os.Stat(filepath.Join(dir, ".git")); os.IsNotExist(err) {
		return r.Clone(ctx, ref)
	}

	if err := r.Fetcher.Pull(ctx, dir); err != nil {
		return fmt.Errorf("pulling template updates: %w", err)
	}
	return WriteFreshnessMarker(dir)
}

// UpdateAll refreshes every cached clone, returning the first error after
// attempting all of them.
func (r *Resolver) UpdateAll(ctx context.Context) ([]Cached, error) {
	if r.Fetcher == nil {
		return nil, errors.New("no git fetcher configured")
	}
	entries, err := List(r.CacheDir)
	if err != nil {
		return nil, err
	}
	var firstErr error
	for _, c := range entries {
		if err := r.Fetcher.Pull(ctx, c.Dir); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("updating %s: %w", c.Name, err)
			}
			continue
		}
		if err := WriteFreshnessMarker(c.Dir); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	updated, err := List(r.CacheDir)
	if err != nil {
		return nil, err
	}
	return updated, firstErr
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

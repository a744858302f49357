package source

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrUnknownTemplate is returned for references that name no builtin,
// directory, or repository.
var ErrUnknownTemplate = errors.New("unknown template")

// Kind classifies a template reference.
type Kind int

const (
	KindBuiltin Kind = iota
	KindLocal
	KindGit
)

func (k Kind) String() string {
	switch k {
	case KindBuiltin:
		return "builtin"
	case KindLocal:
		return "local"
	case KindGit:
		return "git"
	}
	return "unknown"
}

// Ref is a parsed template reference.
type Ref struct {
	Raw  string
	Kind Kind

	// Name identifies the template: the builtin name, the directory base
	// name, or the cache key of a repository.
	Name string
	Path string // local directory
	URL  string // git remote
}

var (
	shorthandRE = regexp.MustCompile(`^[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+$`)
	unsafeRE    = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)
)

// ParseRef classifies raw. repoBase expands "owner/repo" shorthands.
// Paths starting with ".", "/" or "~" and existing directories are local;
// URLs and shorthands are git; anything else must be a builtin.
func ParseRef(raw, repoBase string, isDir func(string) bool) (Ref, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Ref{}, fmt.Errorf("%w: empty reference", ErrUnknownTemplate)
	}

	switch {
	case isURL(raw):
		return Ref{Raw: raw, Kind: KindGit, Name: cacheKey(raw), URL: raw}, nil
	case isPathLike(raw) || (isDir != nil && isDir(raw)):
		p := filepath.Clean(raw)
		return Ref{Raw: raw, Kind: KindLocal, Name: filepath.Base(p), Path: p}, nil
	case IsBuiltin(raw):
		return Ref{Raw: raw, Kind: KindBuiltin, Name: raw}, nil
	case shorthandRE.MatchString(raw):
		if repoBase == "" {
			return Ref{}, fmt.Errorf("%w: %q needs a template repository base URL", ErrUnknownTemplate, raw)
		}
		url := strings.TrimSuffix(repoBase, "/") + "/" + raw
		return Ref{Raw: raw, Kind: KindGit, Name: cacheKey(raw), URL: url}, nil
	}
	return Ref{}, fmt.Errorf("%w %q (builtin templates: %s)", ErrUnknownTemplate, raw, strings.Join(Builtins(), ", "))
}

func isURL(s string) bool {
	for _, prefix := range []string{"https://", "http://", "ssh://", "git://", "file://", "git@"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

func isPathLike(s string) bool {
	return strings.HasPrefix(s, ".") || strings.HasPrefix(s, "/") || strings.HasPrefix(s, "~") || filepath.IsAbs(s)
}

// cacheKey turns a remote into a flat directory name:
// "https://github.com/acme/vue.git" becomes "github.com-acme-vue".
func cacheKey(remote string) string {
	s := remote
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	s = strings.TrimPrefix(s, "git@")
	s = strings.TrimSuffix(strings.TrimSuffix(s, "/"), ".git")
	s = unsafeRE.ReplaceAllString(s, "-")
	return strings.Trim(s, "-.")
}

package filter

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// ErrBadPattern marks a rule pattern that cannot be compiled.
var ErrBadPattern = errors.New("bad filter pattern")

const globstar = "**"

// Pattern is a compiled slash-separated glob. A "**" segment matches zero
// or more path segments; every other segment is matched with path.Match
// and never crosses a slash. Leading dots get no special treatment.
type Pattern struct {
	src  string
	segs []string
}

// CompilePattern validates and compiles src.
func CompilePattern(src string) (Pattern, error) {
	clean := strings.TrimPrefix(strings.TrimSpace(src), "./")
	if clean == "" {
		return Pattern{}, fmt.Errorf("%w: empty pattern", ErrBadPattern)
	}
	if strings.HasPrefix(clean, "/") {
		return Pattern{}, fmt.Errorf("%w: %q must be relative to the template root", ErrBadPattern, src)
	}

	segs := strings.Split(strings.TrimSuffix(clean, "/"), "/")
	for _, seg := range segs {
		if seg == "" {
			return Pattern{}, fmt.Errorf("%w: %q has an empty segment", ErrBadPattern, src)
		}
		if seg == globstar {
			continue
		}
		if strings.Contains(seg, globstar) {
			return Pattern{}, fmt.Errorf("%w: %q: ** must be a whole segment", ErrBadPattern, src)
		}
		// path.Match validates the whole pattern even when the match fails.
		if _, err := path.Match(seg, ""); err != nil {
			return Pattern{}, fmt.Errorf("%w: %q: segment %q is malformed", ErrBadPattern, src, seg)
		}
	}
	return Pattern{src: src, segs: segs}, nil
}

// String returns the pattern as written.
func (p Pattern) String() string { return p.src }

// Match reports whether the slash-separated relative path name matches.
func (p Pattern) Match(name string) bool {
	name = strings.TrimPrefix(name, "./")
	return matchSegs(p.segs, strings.Split(name, "/"))
}

func matchSegs(pat, name []string) bool {
	for len(pat) > 0 {
		if pat[0] == globstar {
			// Collapse consecutive globstars.
			for len(pat) > 0 && pat[0] == globstar {
				pat = pat[1:]
			}
			if len(pat) == 0 {
				return true
			}
			for i := 0; i <= len(name); i++ {
				if matchSegs(pat, name[i:]) {
					return true
				}
			}
			return false
		}
		if len(name) == 0 {
			return false
		}
		ok, _ := path.Match(pat[0], name[0])
		if !ok {
			return false
		}
		pat, name = pat[1:], name[1:]
	}
	return len(name) == 0
}

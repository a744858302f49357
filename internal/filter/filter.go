package filter

import (
	"fmt"

	"github.com/skelgen-labs/skelgen/internal/answers"
	"github.com/skelgen-labs/skelgen/internal/expr"
	"go.uber.org/zap"
)

// Rule excludes the files its pattern matches whenever its predicate is
// false.
type Rule struct {
	Pattern Pattern
	When    *expr.Program
}

// NewRule compiles a pattern and its predicate.
func NewRule(pattern, when string) (Rule, error) {
	p, err := CompilePattern(pattern)
	if err != nil {
		return Rule{}, err
	}
	prog, err := expr.Compile(when)
	if err != nil {
		return Rule{}, fmt.Errorf("rule %q: %w", pattern, err)
	}
	return Rule{Pattern: p, When: prog}, nil
}

// Decision explains why a path was kept or dropped.
type Decision struct {
	Path     string
	Included bool

	// Matched lists the patterns of every rule that matched Path.
	Matched []string

	// RejectedBy lists the patterns whose predicate evaluated false.
	RejectedBy []string
}

// Engine applies an ordered rule set.
type Engine struct {
	rules []Rule
	log   *zap.Logger
}

// New returns an Engine over rules. A nil logger discards log output.
func New(rules []Rule, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{rules: rules, log: log}
}

// Rules returns the configured rules.
func (e *Engine) Rules() []Rule { return e.rules }

// Decide evaluates every rule against path. All matching rules are
// consulted, so overlapping rules combine with AND.
func (e *Engine) Decide(path string, ctx answers.Lookup) Decision {
	d := Decision{Path: path, Included: true}
	for _, r := range e.rules {
		if !r.Pattern.Match(path) {
			continue
		}
		d.Matched = append(d.Matched, r.Pattern.String())
		if !r.When.Eval(ctx) {
			d.Included = false
			d.RejectedBy = append(d.RejectedBy, r.Pattern.String())
		}
	}
	if !d.Included {
		e.log.Debug("file excluded", zap.String("path", path), zap.Strings("rules", d.RejectedBy))
	}
	return d
}

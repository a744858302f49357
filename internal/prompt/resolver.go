package prompt

import (
	"context"
	"fmt"

	"github.com/skelgen-labs/skelgen/internal/answers"
	"go.uber.org/zap"
)

// Collector asks one question and returns one answer. Implementations do
// not need to validate; the Resolver validates every returned value.
type Collector interface {
	Ask(ctx context.Context, q Question) (answers.Value, error)
}

// Resolver walks the question list in declaration order.
type Resolver struct {
	questions []Question
	derived   []Derivation
	log       *zap.Logger
}

// NewResolver builds a Resolver. A nil logger discards log output.
func NewResolver(questions []Question, derived []Derivation, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{questions: questions, derived: derived, log: log}
}

// Questions returns the configured questions.
func (r *Resolver) Questions() []Question { return r.questions }

// Resolve asks every visible question and returns the frozen Answer Context.
//
// Seed values (synthetic keys such as isNotTest, or scenario answers) are
// present before the first question. A hidden question is skipped; its key
// stays absent unless it declares a static default and nothing seeded the
// key. Derived keys are computed last, in declaration order.
func (r *Resolver) Resolve(ctx context.Context, seed *answers.Context, c Collector) (*answers.Context, error) {
	b := answers.From(seed)

	for _, q := range r.questions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if !q.Visible(b) {
			if q.Default != nil && b.SetIfAbsent(q.Key, *q.Default) {
				r.log.Debug("question hidden, default applied", zap.String("key", q.Key))
			} else {
				r.log.Debug("question hidden", zap.String("key", q.Key))
			}
			continue
		}

		v, err := c.Ask(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("asking %q: %w", q.Key, err)
		}
		if err := q.Validate(v); err != nil {
			return nil, err
		}
		b.Set(q.Key, v)
		r.log.Debug("question answered", zap.String("key", q.Key), zap.Stringer("value", v))
	}

	for _, d := range r.derived {
		v := answers.Bool(d.When.Eval(b))
		b.Set(d.Key, v)
		r.log.Debug("derived key computed", zap.String("key", d.Key), zap.Stringer("value", v))
	}

	return b.Freeze(), nil
}

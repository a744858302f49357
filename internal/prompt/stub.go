package prompt

import (
	"context"

	"github.com/skelgen-labs/skelgen/internal/answers"
)

// StubCollector answers from a fixed map, for automated runs and tests.
// Questions without a supplied answer receive their effective default.
type StubCollector struct {
	Answers map[string]answers.Value

	// Asked records the keys of every question presented, in order.
	Asked []string
}

// NewStubCollector returns a StubCollector over vals.
func NewStubCollector(vals map[string]answers.Value) *StubCollector {
	if vals == nil {
		vals = map[string]answers.Value{}
	}
	return &StubCollector{Answers: vals}
}

// Ask implements Collector.
func (s *StubCollector) Ask(_ context.Context, q Question) (answers.Value, error) {
	s.Asked = append(s.Asked, q.Key)

	v, ok := s.Answers[q.Key]
	if !ok {
		return q.EffectiveDefault(), nil
	}
	return coerce(q, v), nil
}

// coerce adapts loosely typed file answers to the question type: a list
// question may be answered by a choice label, a checkbox by a single string.
// Anything it cannot adapt is returned unchanged for Validate to reject.
func coerce(q Question, v answers.Value) answers.Value {
	switch q.Type {
	case TypeList:
		if q.hasChoice(v) {
			return v
		}
		if c, ok := q.ChoiceFor(v.String()); ok {
			return c.Value
		}
	case TypeCheckbox:
		if v.Kind() == answers.KindString {
			if v.Str() == "" {
				return answers.List()
			}
			return answers.List(v.Str())
		}
	case TypeConfirm:
		if v.Kind() == answers.KindString {
			switch v.Str() {
			case "true", "yes", "y":
				return answers.Bool(true)
			case "false", "no", "n":
				return answers.Bool(false)
			}
		}
	}
	return v
}

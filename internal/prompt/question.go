package prompt

import (
	"fmt"
	"strings"

	"github.com/skelgen-labs/skelgen/internal/answers"
	"github.com/skelgen-labs/skelgen/internal/expr"
)

// Type is the declared answer type of a question.
type Type string

// Supported question types.
const (
	TypeString   Type = "string"
	TypeConfirm  Type = "confirm"
	TypeList     Type = "list"
	TypeCheckbox Type = "checkbox"
)

// ParseType normalizes a declared type name, accepting the aliases
// "boolean", "choice", and "multi".
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "string", "input":
		return TypeString, nil
	case "confirm", "boolean":
		return TypeConfirm, nil
	case "list", "choice":
		return TypeList, nil
	case "checkbox", "multi":
		return TypeCheckbox, nil
	default:
		return "", fmt.Errorf("unknown question type %q", s)
	}
}

// Choice is one selectable option of a list or checkbox question.
type Choice struct {
	Name  string // display label
	Value answers.Value
	Short string // label echoed after selection
}

// Label returns the short label, falling back to the display name.
func (c Choice) Label() string {
	if c.Short != "" {
		return c.Short
	}
	return c.Name
}

// Question is one entry of the ordered question list. Questions are built
// once when the template configuration loads and never modified.
type Question struct {
	Key      string
	Type     Type
	When     *expr.Program // nil means always visible
	Message  string
	Required bool
	Choices  []Choice
	Default  *answers.Value // static default, nil when none declared
}

// Visible reports whether the question should be asked given the answers
// collected so far.
func (q Question) Visible(ctx answers.Lookup) bool {
	return q.When == nil || q.When.Eval(ctx)
}

// EffectiveDefault returns the value offered when the user accepts the
// default: the declared default, else true for confirm, the first choice for
// list, an empty selection for checkbox, and "" for string.
func (q Question) EffectiveDefault() answers.Value {
	if q.Default != nil {
		return *q.Default
	}
	switch q.Type {
	case TypeConfirm:
		return answers.Bool(true)
	case TypeList:
		if len(q.Choices) > 0 {
			return q.Choices[0].Value
		}
		return answers.String("")
	case TypeCheckbox:
		return answers.List()
	default:
		return answers.String("")
	}
}

// Validate checks v against the declared type and choices.
func (q Question) Validate(v answers.Value) error {
	switch q.Type {
	case TypeString:
		if v.Kind() != answers.KindString {
			return &ValidationError{Key: q.Key, Reason: fmt.Sprintf("expected a string, got %s", v.Kind())}
		}
		if q.Required && strings.TrimSpace(v.Str()) == "" {
			return &ValidationError{Key: q.Key, Reason: "a value is required"}
		}
	case TypeConfirm:
		if v.Kind() != answers.KindBool {
			return &ValidationError{Key: q.Key, Reason: fmt.Sprintf("expected true or false, got %s %q", v.Kind(), v.String())}
		}
	case TypeList:
		if !q.hasChoice(v) {
			return &ValidationError{Key: q.Key, Reason: fmt.Sprintf("%q is not one of %s", v.String(), q.choiceValues())}
		}
	case TypeCheckbox:
		if v.Kind() != answers.KindList {
			return &ValidationError{Key: q.Key, Reason: fmt.Sprintf("expected a list, got %s", v.Kind())}
		}
		for _, item := range v.Items() {
			if !q.hasChoice(answers.String(item)) {
				return &ValidationError{Key: q.Key, Reason: fmt.Sprintf("%q is not one of %s", item, q.choiceValues())}
			}
		}
		if q.Required && len(v.Items()) == 0 {
			return &ValidationError{Key: q.Key, Reason: "select at least one option"}
		}
	}
	return nil
}

func (q Question) hasChoice(v answers.Value) bool {
	for _, c := range q.Choices {
		if c.Value.Kind() == v.Kind() && c.Value.Equal(v) {
			return true
		}
	}
	return false
}

func (q Question) choiceValues() string {
	vals := make([]string, len(q.Choices))
	for i, c := range q.Choices {
		vals[i] = c.Value.String()
	}
	return "[" + strings.Join(vals, ", ") + "]"
}

// ChoiceFor returns the choice whose value or label matches s. It lets
// non-interactive sources refer to a choice such as `autoInstall: "no"`.
func (q Question) ChoiceFor(s string) (Choice, bool) {
	for _, c := range q.Choices {
		if c.Value.String() == s || c.Short == s || c.Name == s {
			return c, true
		}
	}
	return Choice{}, false
}

// Derivation computes a synthetic key from the collected answers. It runs
// after every question has been processed.
type Derivation struct {
	Key  string
	When *expr.Program
}

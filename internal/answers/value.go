package answers

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Kind identifies the dynamic type held by a Value.
type Kind uint8

const (
	// KindString is a free-form or single-choice answer.
	KindString Kind = iota
	// KindBool is a confirm answer or a boolean choice value.
	KindBool
	// KindList is a multi-choice answer.
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Value is a single answer. The zero value is the empty string.
type Value struct {
	kind Kind
	str  string
	b    bool
	list []string
}

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// List returns a list Value holding a copy of items.
func List(items ...string) Value {
	return Value{kind: KindList, list: slices.Clone(items)}
}

// Kind reports the dynamic type of v.
func (v Value) Kind() Kind { return v.kind }

// Str returns the string payload, or "" for non-string values.
func (v Value) Str() string { return v.str }

// BoolValue returns the boolean payload, or false for non-bool values.
func (v Value) BoolValue() bool { return v.b }

// Items returns a copy of the list payload.
func (v Value) Items() []string { return slices.Clone(v.list) }

// Truthy reports whether v counts as true when used as a bare predicate.
// Strings are truthy when non-empty and not the literal "false".
func (v Value) Truthy() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindList:
		return len(v.list) > 0
	default:
		return v.str != "" && v.str != "false"
	}
}

// Equal compares v and o strictly by kind. A list compared with a string is
// equal when the list contains the string.
func (v Value) Equal(o Value) bool {
	switch {
	case v.kind == KindList && o.kind == KindString:
		return slices.Contains(v.list, o.str)
	case v.kind == KindString && o.kind == KindList:
		return slices.Contains(o.list, v.str)
	case v.kind != o.kind:
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == o.b
	case KindList:
		return slices.Equal(v.list, o.list)
	default:
		return v.str == o.str
	}
}

// String renders v the way it is interpolated into template content.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindList:
		return strings.Join(v.list, ",")
	default:
		return v.str
	}
}

// Interface returns v as a plain Go value (string, bool, or []string).
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindList:
		return v.Items()
	default:
		return v.str
	}
}

// FromInterface converts a decoded YAML/JSON scalar or sequence to a Value.
// Numbers are kept as their decimal text.
func FromInterface(raw any) (Value, error) {
	switch val := raw.(type) {
	case nil:
		return String(""), nil
	case string:
		return String(val), nil
	case bool:
		return Bool(val), nil
	case int:
		return String(strconv.Itoa(val)), nil
	case int64:
		return String(strconv.FormatInt(val, 10)), nil
	case uint64:
		return String(strconv.FormatUint(val, 10)), nil
	case float64:
		return String(strconv.FormatFloat(val, 'f', -1, 64)), nil
	case []string:
		return List(val...), nil
	case []any:
		items := make([]string, 0, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return Value{}, fmt.Errorf("list item %d is %T, want string", i, item)
			}
			items = append(items, s)
		}
		return List(items...), nil
	default:
		return Value{}, fmt.Errorf("unsupported answer type %T", raw)
	}
}

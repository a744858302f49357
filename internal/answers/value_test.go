package answers

import "testing"

func TestTruthy(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"true", Bool(true), true},
		{"false", Bool(false), false},
		{"non-empty string", String("npm"), true},
		{"empty string", String(""), false},
		{"literal false string", String("false"), false},
		{"zero value", Value{}, false},
		{"non-empty list", List("a"), true},
		{"empty list", List(), false},
	}

	for _, tt := range tests {
		if got := tt.v.Truthy(); got != tt.want {
			t.Errorf("%s: Truthy() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"same string", String("lint"), String("lint"), true},
		{"different string", String("lint"), String("node"), false},
		{"bool vs string false", Bool(false), String("false"), false},
		{"same bool", Bool(true), Bool(true), true},
		{"list contains", List("jest", "karma"), String("karma"), true},
		{"string in list", String("jest"), List("jest"), true},
		{"list missing", List("jest"), String("karma"), false},
		{"equal lists", List("a", "b"), List("a", "b"), true},
		{"different lists", List("a"), List("b"), false},
	}

	for _, tt := range tests {
		if got := tt.a.Equal(tt.b); got != tt.want {
			t.Errorf("%s: Equal() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestFromInterface(t *testing.T) {
	tests := []struct {
		raw  any
		want Value
	}{
		{"npm", String("npm")},
		{false, Bool(false)},
		{3, String("3")},
		{1.5, String("1.5")},
		{[]any{"a", "b"}, List("a", "b")},
		{nil, String("")},
	}

	for _, tt := range tests {
		got, err := FromInterface(tt.raw)
		if err != nil {
			t.Fatalf("FromInterface(%v) error: %v", tt.raw, err)
		}
		if !got.Equal(tt.want) || got.Kind() != tt.want.Kind() {
			t.Errorf("FromInterface(%v) = %v (%s), want %v (%s)", tt.raw, got, got.Kind(), tt.want, tt.want.Kind())
		}
	}

	if _, err := FromInterface([]any{1}); err == nil {
		t.Error("expected error for non-string list item")
	}
	if _, err := FromInterface(map[string]any{}); err == nil {
		t.Error("expected error for mapping value")
	}
}

func TestListIsCopied(t *testing.T) {
	src := []string{"a", "b"}
	v := List(src...)
	src[0] = "z"
	if v.Items()[0] != "a" {
		t.Error("List should copy its input")
	}
}

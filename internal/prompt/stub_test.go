package prompt

import (
	"context"
	"testing"

	"github.com/skelgen-labs/skelgen/internal/answers"
)

func TestStubCoerce(t *testing.T) {
	list := Question{Key: "autoInstall", Type: TypeList, Choices: installChoices}
	confirm := Question{Key: "router", Type: TypeConfirm}
	checkbox := Question{Key: "globals", Type: TypeCheckbox}

	tests := []struct {
		name string
		q    Question
		in   answers.Value
		want answers.Value
	}{
		{"list value", list, answers.String("yarn"), answers.String("yarn")},
		{"list label", list, answers.String("no"), answers.Bool(false)},
		{"list display name", list, answers.String("Yes, use NPM"), answers.String("npm")},
		{"confirm yes", confirm, answers.String("yes"), answers.Bool(true)},
		{"confirm false", confirm, answers.String("false"), answers.Bool(false)},
		{"confirm passthrough", confirm, answers.String("maybe"), answers.String("maybe")},
		{"checkbox single", checkbox, answers.String("jsdoc"), answers.List("jsdoc")},
		{"checkbox empty", checkbox, answers.String(""), answers.List()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewStubCollector(map[string]answers.Value{tt.q.Key: tt.in})
			got, err := c.Ask(context.Background(), tt.q)
			if err != nil {
				t.Fatalf("Ask() error: %v", err)
			}
			if got.Kind() != tt.want.Kind() || !got.Equal(tt.want) {
				t.Errorf("Ask() = %v (%s), want %v (%s)", got, got.Kind(), tt.want, tt.want.Kind())
			}
		})
	}
}

func TestStubDefaults(t *testing.T) {
	c := NewStubCollector(nil)
	v, err := c.Ask(context.Background(), Question{Key: "router", Type: TypeConfirm})
	if err != nil {
		t.Fatal(err)
	}
	if !v.BoolValue() {
		t.Error("confirm without answer should default to true")
	}
	if len(c.Asked) != 1 || c.Asked[0] != "router" {
		t.Errorf("Asked = %v", c.Asked)
	}
}

package prompt

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/skelgen-labs/skelgen/internal/answers"
)

var installChoices = []Choice{
	{Name: "Yes, use NPM", Value: answers.String("npm"), Short: "npm"},
	{Name: "Yes, use Yarn", Value: answers.String("yarn"), Short: "yarn"},
	{Name: "No, I will handle that myself", Value: answers.Bool(false), Short: "no"},
}

func TestTerminalAskString(t *testing.T) {
	def := answers.String("A Vue.js project")
	q := Question{Key: "description", Type: TypeString, Message: "Project description", Default: &def}

	tests := []struct {
		input string
		want  string
	}{
		{"\n", "A Vue.js project"},
		{"My app\n", "My app"},
		{"  padded  \n", "padded"},
		{"no newline", "no newline"},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		c := NewTerminalCollector(strings.NewReader(tt.input), &out)
		v, err := c.Ask(context.Background(), q)
		if err != nil {
			t.Fatalf("Ask(%q) error: %v", tt.input, err)
		}
		if v.Str() != tt.want {
			t.Errorf("Ask(%q) = %q, want %q", tt.input, v.Str(), tt.want)
		}
		if !strings.Contains(out.String(), "(A Vue.js project)") {
			t.Errorf("prompt should show the default, got %q", out.String())
		}
	}
}

func TestTerminalAskConfirm(t *testing.T) {
	q := Question{Key: "router", Type: TypeConfirm, Message: "Install vue-router?"}

	tests := []struct {
		input string
		want  bool
	}{
		{"\n", true},
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"No\n", false},
	}
	for _, tt := range tests {
		c := NewTerminalCollector(strings.NewReader(tt.input), &bytes.Buffer{})
		v, err := c.Ask(context.Background(), q)
		if err != nil {
			t.Fatalf("Ask(%q) error: %v", tt.input, err)
		}
		if v.Kind() != answers.KindBool || v.BoolValue() != tt.want {
			t.Errorf("Ask(%q) = %v, want %v", tt.input, v, tt.want)
		}
	}

	c := NewTerminalCollector(strings.NewReader("maybe\n"), &bytes.Buffer{})
	_, err := c.Ask(context.Background(), q)
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Key != q.Key {
		t.Errorf("unrecognized confirm answer: err = %v, want *ValidationError for %q", err, q.Key)
	}
}

func TestTerminalAskConfirmDefaultNo(t *testing.T) {
	def := answers.Bool(false)
	q := Question{Key: "e2e", Type: TypeConfirm, Message: "Setup e2e tests?", Default: &def}

	var out bytes.Buffer
	c := NewTerminalCollector(strings.NewReader("\n"), &out)
	v, err := c.Ask(context.Background(), q)
	if err != nil {
		t.Fatalf("Ask() error: %v", err)
	}
	if v.BoolValue() {
		t.Error("empty answer should take the false default")
	}
	if !strings.Contains(out.String(), "(y/N)") {
		t.Errorf("prompt should show (y/N), got %q", out.String())
	}
}

func TestTerminalAskList(t *testing.T) {
	q := Question{Key: "autoInstall", Type: TypeList, Message: "Run install?", Choices: installChoices}

	tests := []struct {
		input string
		want  answers.Value
	}{
		{"\n", answers.String("npm")},
		{"2\n", answers.String("yarn")},
		{"3\n", answers.Bool(false)},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		c := NewTerminalCollector(strings.NewReader(tt.input), &out)
		v, err := c.Ask(context.Background(), q)
		if err != nil {
			t.Fatalf("Ask(%q) error: %v", tt.input, err)
		}
		if v.Kind() != tt.want.Kind() || !v.Equal(tt.want) {
			t.Errorf("Ask(%q) = %v, want %v", tt.input, v, tt.want)
		}
		if !strings.Contains(out.String(), "3) No, I will handle that myself") {
			t.Errorf("menu missing third choice:\n%s", out.String())
		}
	}

	for _, bad := range []string{"0\n", "4\n", "npm\n"} {
		c := NewTerminalCollector(strings.NewReader(bad), &bytes.Buffer{})
		if _, err := c.Ask(context.Background(), q); !errors.Is(err, ErrValidation) {
			t.Errorf("Ask(%q) error = %v, want ErrValidation", bad, err)
		}
	}
}

func TestTerminalAskListDeclaredDefault(t *testing.T) {
	def := answers.String("yarn")
	q := Question{Key: "autoInstall", Type: TypeList, Message: "Run install?", Choices: installChoices, Default: &def}

	var out bytes.Buffer
	c := NewTerminalCollector(strings.NewReader("\n"), &out)
	v, err := c.Ask(context.Background(), q)
	if err != nil {
		t.Fatalf("Ask() error: %v", err)
	}
	if v.Str() != "yarn" {
		t.Errorf("Ask() = %v, want yarn", v)
	}
	if !strings.Contains(out.String(), "[1-3] (2)") {
		t.Errorf("prompt should offer choice 2 as default, got %q", out.String())
	}
}

func TestTerminalAskCheckbox(t *testing.T) {
	q := Question{Key: "globals", Type: TypeCheckbox, Message: "Global tools", Choices: []Choice{
		{Name: "jsdoc", Value: answers.String("jsdoc")},
		{Name: "commitizen", Value: answers.String("commitizen")},
	}}

	c := NewTerminalCollector(strings.NewReader("2, 1\n"), &bytes.Buffer{})
	v, err := c.Ask(context.Background(), q)
	if err != nil {
		t.Fatalf("Ask() error: %v", err)
	}
	if got := v.Items(); len(got) != 2 || got[0] != "commitizen" || got[1] != "jsdoc" {
		t.Errorf("Ask() = %v, want [commitizen jsdoc]", got)
	}

	c = NewTerminalCollector(strings.NewReader("\n"), &bytes.Buffer{})
	v, err = c.Ask(context.Background(), q)
	if err != nil {
		t.Fatalf("Ask() error: %v", err)
	}
	if v.Kind() != answers.KindList || len(v.Items()) != 0 {
		t.Errorf("empty answer should be an empty list, got %v", v)
	}
}

func TestTerminalEOF(t *testing.T) {
	q := Question{Key: "name", Type: TypeString, Message: "Project name"}
	c := NewTerminalCollector(strings.NewReader(""), &bytes.Buffer{})
	if _, err := c.Ask(context.Background(), q); err == nil {
		t.Error("expected error on closed input")
	}
}

func TestTerminalDrivesResolver(t *testing.T) {
	qs := []Question{
		{Key: "name", Type: TypeString, Message: "Project name", Required: true},
		{Key: "uselint", Type: TypeConfirm, Message: "Use ESLint?"},
		{Key: "lint", Type: TypeList, When: when(t, "uselint"), Message: "Eslint instance", Choices: []Choice{
			{Name: "node", Value: answers.String("node")},
			{Name: "lint", Value: answers.String("lint")},
		}},
	}
	in := strings.NewReader("demo\nn\n")
	r := NewResolver(qs, nil, nil)

	ctx, err := r.Resolve(context.Background(), Seed("demo", nil), NewTerminalCollector(in, &bytes.Buffer{}))
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if ctx.Has("lint") {
		t.Error("lint should be absent after declining uselint")
	}
	if ctx.Get("name").Str() != "demo" {
		t.Errorf("name = %q, want demo", ctx.Get("name").Str())
	}
}

func TestTerminalMalformedInputIsValidationError(t *testing.T) {
	qs := []Question{
		{Key: "uselint", Type: TypeConfirm, Message: "Use ESLint?"},
		{Key: "autoInstall", Type: TypeList, Message: "Run npm install?", Choices: installChoices},
	}
	for _, input := range []string{"maybe\n", "y\n7\n"} {
		r := NewResolver(qs, nil, nil)
		_, err := r.Resolve(context.Background(), Seed("demo", nil), NewTerminalCollector(strings.NewReader(input), &bytes.Buffer{}))
		if !errors.Is(err, ErrValidation) {
			t.Errorf("Resolve(%q) error = %v, want ErrValidation", input, err)
		}
	}
}

package directive

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/skelgen-labs/skelgen/internal/answers"
	"github.com/skelgen-labs/skelgen/internal/expr"
	"github.com/skelgen-labs/skelgen/internal/filter"
)

const mainJS = `import Vue from 'vue'
import App from './App'
{{#router}}
import router from './router'
{{/router}}
{{#axios}}
import http from './api/apiList'
{{/axios}}
{{#axios}}
Vue.prototype.$http = http
{{/axios}}
Vue.config.productionTip = false
new Vue({
  el: '#app',
  {{#router}}
  router,
  {{/router}}
  template: '<App/>'
})
`

func TestZeroMarkersByteIdentical(t *testing.T) {
	inputs := []string{
		"",
		"plain text\nwith lines\n",
		"<template>\n  <p>{{ message }}</p>\n</template>\n",
		"const x = '{{'\n",
	}
	p := processor(t, Options{})
	for _, in := range inputs {
		src := []byte(in)
		got, err := p.Process("file.txt", src, ctxOf(nil))
		if err != nil {
			t.Fatalf("Process(%q) error: %v", in, err)
		}
		if string(got) != in {
			t.Errorf("Process(%q) = %q", in, got)
		}
		if len(src) > 0 && &got[0] != &src[0] {
			t.Errorf("Process(%q) should return the input slice unchanged", in)
		}
	}
}

func TestMainJSAxiosRemoval(t *testing.T) {
	p := processor(t, Options{})
	ctx := ctxOf(map[string]answers.Value{
		"router": answers.Bool(true),
		"axios":  answers.Bool(false),
	})

	got, err := p.Process("src/main.js", []byte(mainJS), ctx)
	if err != nil {
		t.Fatalf("Process() error: %v", err)
	}
	want := `import Vue from 'vue'
import App from './App'
import router from './router'
Vue.config.productionTip = false
new Vue({
  el: '#app',
  router,
  template: '<App/>'
})
`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("Process() mismatch (-want +got):\n%s", diff)
	}
}

func TestMainJSKeepsAllBlocks(t *testing.T) {
	p := processor(t, Options{})
	ctx := ctxOf(map[string]answers.Value{
		"router": answers.Bool(true),
		"axios":  answers.Bool(true),
	})

	got, err := p.Process("src/main.js", []byte(mainJS), ctx)
	if err != nil {
		t.Fatalf("Process() error: %v", err)
	}
	var want []string
	for _, line := range strings.SplitAfter(mainJS, "\n") {
		if strings.Contains(line, "{{") {
			continue
		}
		want = append(want, line)
	}
	if diff := cmp.Diff(strings.Join(want, ""), string(got)); diff != "" {
		t.Errorf("Process() mismatch (-want +got):\n%s", diff)
	}
}

func TestBlocks(t *testing.T) {
	tests := []struct {
		name string
		src  string
		ctx  map[string]answers.Value
		want string
	}{
		{
			name: "section kept",
			src:  "a\n{{#store}}\nstore\n{{/store}}\nb\n",
			ctx:  map[string]answers.Value{"store": answers.Bool(true)},
			want: "a\nstore\nb\n",
		},
		{
			name: "section dropped",
			src:  "a\n{{#store}}\nstore\n{{/store}}\nb\n",
			ctx:  map[string]answers.Value{"store": answers.Bool(false)},
			want: "a\nb\n",
		},
		{
			name: "absent key is falsy",
			src:  "{{#store}}\nstore\n{{/store}}\n",
			want: "",
		},
		{
			name: "inverted",
			src:  "{{^unit}}\nno tests\n{{/unit}}\n",
			ctx:  map[string]answers.Value{"unit": answers.Bool(false)},
			want: "no tests\n",
		},
		{
			name: "inline keeps surrounding text",
			src:  "a {{#x}}b{{/x}} c\n",
			ctx:  map[string]answers.Value{"x": answers.Bool(false)},
			want: "a  c\n",
		},
		{
			name: "if predicate with else",
			src:  "{{#if lint === \"node\"}}\nnode\n{{else}}\nother\n{{/if}}\n",
			ctx:  map[string]answers.Value{"lint": answers.String("lint")},
			want: "other\n",
		},
		{
			name: "unless",
			src:  "{{#unless e2e}}\nskip e2e\n{{/unless}}\n",
			ctx:  map[string]answers.Value{"e2e": answers.Bool(false)},
			want: "skip e2e\n",
		},
		{
			name: "if_or",
			src:  "{{#if_or unit e2e}}\ntest env\n{{/if_or}}\n",
			ctx:  map[string]answers.Value{"unit": answers.Bool(false), "e2e": answers.Bool(true)},
			want: "test env\n",
		},
		{
			name: "nesting requires every enclosing block",
			src:  "{{#unit}}\nunit\n{{#if runner === 'jest'}}\njest\n{{/if}}\n{{/unit}}\n",
			ctx:  map[string]answers.Value{"unit": answers.Bool(false), "runner": answers.String("jest")},
			want: "",
		},
		{
			name: "nested block kept",
			src:  "{{#unit}}\nunit\n{{#if runner === 'jest'}}\njest\n{{/if}}\n{{/unit}}\n",
			ctx:  map[string]answers.Value{"unit": answers.Bool(true), "runner": answers.String("jest")},
			want: "unit\njest\n",
		},
		{
			name: "indented standalone markers",
			src:  "  {{#router}}\n  router,\n  {{/router}}\n",
			ctx:  map[string]answers.Value{"router": answers.Bool(true)},
			want: "  router,\n",
		},
		{
			name: "crlf standalone markers",
			src:  "{{#router}}\r\nrouter\r\n{{/router}}\r\nend\r\n",
			ctx:  map[string]answers.Value{"router": answers.Bool(true)},
			want: "router\r\nend\r\n",
		},
		{
			name: "standalone at end of file",
			src:  "x\n{{#a}}\ny\n{{/a}}",
			ctx:  map[string]answers.Value{"a": answers.Bool(true)},
			want: "x\ny\n",
		},
		{
			name: "comment removed",
			src:  "{{! generated }}\nbody\n",
			want: "body\n",
		},
		{
			name: "multi-choice membership",
			src:  "{{#if tools === \"jsdoc\"}}\njsdoc\n{{/if}}\n",
			ctx:  map[string]answers.Value{"tools": answers.List("jsdoc", "commitizen")},
			want: "jsdoc\n",
		},
	}

	p := processor(t, Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Process("f.js", []byte(tt.src), ctxOf(tt.ctx))
			if err != nil {
				t.Fatalf("Process() error: %v", err)
			}
			if diff := cmp.Diff(tt.want, string(got)); diff != "" {
				t.Errorf("Process() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInterpolation(t *testing.T) {
	p := processor(t, Options{TemplateVersion: "1.2.0"})
	ctx := ctxOf(map[string]answers.Value{
		"name":        answers.String("demo"),
		"description": answers.String("A <b>Vue</b> project"),
		"router":      answers.Bool(true),
	})

	tests := []struct {
		src  string
		want string
	}{
		{`"name": "{{ name }}"`, `"name": "demo"`},
		{`{{{description}}}`, `A <b>Vue</b> project`},
		{`{{description}}`, `A <b>Vue</b> project`},
		{`router: {{router}}`, `router: true`},
		{`"version": "{{template_version}}"`, `"version": "1.2.0"`},
		{`<p>{{ msg }}</p> {{name}}`, `<p>{{ msg }}</p> demo`},
		{`\{{name}}`, `{{name}}`},
		{`{{ a + b }}`, `{{ a + b }}`},
		{`<p>{{ !flag }}</p>`, `<p>{{ !flag }}</p>`},
		{`<p>{{!flag}}</p>`, `<p></p>`},
	}
	for _, tt := range tests {
		got, err := p.Process("f", []byte(tt.src), ctx)
		if err != nil {
			t.Fatalf("Process(%q) error: %v", tt.src, err)
		}
		if string(got) != tt.want {
			t.Errorf("Process(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestMalformed(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
		msg  string
	}{
		{"never closed", "a\n{{#router}}\nx\n", 2, "never closed"},
		{"stray close", "a\nb\n{{/router}}\n", 3, "closes nothing"},
		{"mismatch", "{{#router}}\n{{/store}}\n", 2, "does not match"},
		{"duplicate else", "{{#a}}\n{{else}}\n{{else}}\n{{/a}}\n", 3, "second {{else}}"},
		{"else outside block", "{{else}}\n", 1, "outside of a block"},
		{"unknown helper", "x\n{{#each items}}\n{{/each}}\n", 2, "unknown block helper"},
		{"if without predicate", "{{#if}}\n{{/if}}\n", 1, "needs a predicate"},
		{"if_or arity", "{{#if_or a}}\n{{/if_or}}\n", 1, "two arguments"},
		{"unterminated", "ok\n{{#router\nfoo\n", 2, "unterminated"},
	}

	p := processor(t, Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Process("src/main.js", []byte(tt.src), ctxOf(nil))
			if !errors.Is(err, ErrMalformedTemplate) {
				t.Fatalf("Process() error = %v, want ErrMalformedTemplate", err)
			}
			var te *TemplateError
			if !errors.As(err, &te) {
				t.Fatalf("error is %T, want *TemplateError", err)
			}
			if te.Path != "src/main.js" || te.Line != tt.line {
				t.Errorf("location = %s:%d, want src/main.js:%d", te.Path, te.Line, tt.line)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("error %q does not mention %q", err, tt.msg)
			}
		})
	}
}

func TestInvalidPredicateInDirective(t *testing.T) {
	p := processor(t, Options{})
	_, err := p.Process("f", []byte("{{#if router &&}}\nx\n{{/if}}\n"), ctxOf(nil))
	if !errors.Is(err, ErrMalformedTemplate) {
		t.Errorf("error = %v, want ErrMalformedTemplate", err)
	}
	if !errors.Is(err, expr.ErrInvalidExpression) {
		t.Errorf("error = %v, want ErrInvalidExpression cause", err)
	}
}

func TestSkipInterpolation(t *testing.T) {
	p := processor(t, Options{SkipInterpolation: []string{"src/**/*.vue"}})
	src := []byte("<p>{{#router}}x{{/router}}</p>")

	got, err := p.Process("src/components/Hello.vue", src, ctxOf(nil))
	if err != nil {
		t.Fatalf("Process() error: %v", err)
	}
	if string(got) != string(src) {
		t.Errorf("skipped file changed: %q", got)
	}
	if err := p.Check("src/components/Broken.vue", []byte("{{#open}}")); err != nil {
		t.Errorf("Check() on skipped file = %v, want nil", err)
	}

	if _, err := New(Options{SkipInterpolation: []string{"src/[x"}}); !errors.Is(err, filter.ErrBadPattern) {
		t.Errorf("New() error = %v, want ErrBadPattern", err)
	}
}

func TestBinaryPassThrough(t *testing.T) {
	p := processor(t, Options{})
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR{{#x}}")
	got, err := p.Process("static/logo.png", png, ctxOf(nil))
	if err != nil {
		t.Fatalf("Process() error: %v", err)
	}
	if string(got) != string(png) {
		t.Error("binary content changed")
	}
}

func TestParseMarkers(t *testing.T) {
	tpl, err := Parse("src/main.js", []byte(mainJS))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if got := tpl.Markers(); got != 8 {
		t.Errorf("Markers() = %d, want 8", got)
	}
}

// ─── Test Helpers ──────────────────────────────────────────────────

func processor(t *testing.T, opts Options) *Processor {
	t.Helper()
	p, err := New(opts)
	if err != nil {
		t.Fatalf("New(): %v", err)
	}
	return p
}

func ctxOf(vals map[string]answers.Value) *answers.Context {
	b := answers.NewBuilder()
	for k, v := range vals {
		b.Set(k, v)
	}
	return b.Freeze()
}

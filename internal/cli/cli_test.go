package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/skelgen-labs/skelgen/internal/directive"
	"github.com/skelgen-labs/skelgen/internal/expr"
	"github.com/skelgen-labs/skelgen/internal/meta"
	"github.com/skelgen-labs/skelgen/internal/pipeline"
	"github.com/skelgen-labs/skelgen/internal/prompt"
	"github.com/skelgen-labs/skelgen/internal/runtime"
	"github.com/skelgen-labs/skelgen/internal/scaffold"
	"github.com/skelgen-labs/skelgen/internal/source"
)

const lintAnswers = `name: demo
author: me
router: true
store: false
elementUI: false
jsdoc: false
commitizen: false
installGlobalDependencies: false
axios: false
uselint: true
lint: lint
lintConfig: standard
unit: false
e2e: false
initGit: false
useGitLint: false
autoInstall: npm
`

func TestRunNewScenario(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "app")
	runner := &fakeRunner{}
	var out bytes.Buffer

	res, err := runNew(context.Background(), newOptions{
		Dest:     dest,
		Template: "webpack",
		Scenario: "minimal",
		Out:      &out,
		Resolver: &source.Resolver{},
		Runner:   runner,
	})
	if err != nil {
		t.Fatalf("runNew() error: %v", err)
	}
	if res.Report.State != pipeline.RunCompleted {
		t.Errorf("run state = %v, want completed", res.Report.State)
	}
	if len(runner.commands) != 0 {
		t.Errorf("minimal scenario ran commands: %v", runner.commands)
	}
	if _, err := os.Stat(filepath.Join(dest, "package.json")); err != nil {
		t.Errorf("package.json not generated: %v", err)
	}
	if !strings.Contains(out.String(), "cd app") {
		t.Errorf("final message missing cd hint:\n%s", out.String())
	}
}

func TestRunNewAnswersFileRunsPipeline(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "app")
	answersPath := writeAnswers(t, dir, lintAnswers)
	runner := &fakeRunner{}

	res, err := runNew(context.Background(), newOptions{
		Dest:        dest,
		Template:    "webpack",
		AnswersFile: answersPath,
		Out:         &bytes.Buffer{},
		Resolver:    &source.Resolver{},
		Runner:      runner,
	})
	if err != nil {
		t.Fatalf("runNew() error: %v", err)
	}

	want := []string{"npm install", "npm run lint -- --fix"}
	if diff := cmp.Diff(want, runner.commands); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
	if r, _ := res.Report.Step(pipeline.StepInstallGlobal); !r.Skipped {
		t.Errorf("install-global = %+v, want skipped", r)
	}
	if _, err := os.Stat(filepath.Join(dest, "src", "router", "index.js")); err != nil {
		t.Errorf("router not generated: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dest, "src", "store")); !os.IsNotExist(err) {
		t.Error("store generated although disabled")
	}
}

func TestRunNewPipelineFailureKeepsTree(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "app")
	runner := &fakeRunner{fail: map[string]bool{"npm install": true}}

	res, err := runNew(context.Background(), newOptions{
		Dest:        dest,
		Template:    "webpack",
		AnswersFile: writeAnswers(t, dir, lintAnswers),
		Out:         &bytes.Buffer{},
		Resolver:    &source.Resolver{},
		Runner:      runner,
	})
	if ExitCode(err) != ExitPipeline {
		t.Fatalf("ExitCode = %d (err %v), want %d", ExitCode(err), err, ExitPipeline)
	}
	assertStage(t, err, StagePipeline)

	if res.Report.State != pipeline.RunAborted {
		t.Errorf("run state = %v", res.Report.State)
	}
	if r, _ := res.Report.Step(pipeline.StepLintFix); r.State != pipeline.StatePending {
		t.Errorf("lint-fix state = %v, want pending", r.State)
	}
	if _, err := os.Stat(filepath.Join(dest, "package.json")); err != nil {
		t.Errorf("tree removed after pipeline failure: %v", err)
	}
}

func TestRunNewSkipComplete(t *testing.T) {
	runner := &fakeRunner{}
	res, err := runNew(context.Background(), newOptions{
		Dest:         filepath.Join(t.TempDir(), "app"),
		Template:     "webpack",
		Scenario:     "full",
		SkipComplete: true,
		Resolver:     &source.Resolver{},
		Runner:       runner,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Report != nil {
		t.Error("pipeline ran with SkipComplete")
	}
}

func TestRunNewErrors(t *testing.T) {
	dir := t.TempDir()
	occupied := filepath.Join(dir, "occupied")
	if err := os.MkdirAll(occupied, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(occupied, "x"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		opts  newOptions
		stage Stage
		code  int
	}{
		{
			name:  "unknown template",
			opts:  newOptions{Dest: filepath.Join(dir, "a"), Template: "nope"},
			stage: StageConfig,
			code:  ExitConfig,
		},
		{
			name:  "unknown scenario",
			opts:  newOptions{Dest: filepath.Join(dir, "b"), Template: "webpack", Scenario: "huge"},
			stage: StageConfig,
			code:  ExitFailure,
		},
		{
			name:  "invalid answer",
			opts:  newOptions{Dest: filepath.Join(dir, "c"), Template: "webpack", AnswersFile: writeAnswers(t, dir, "name: demo\nrunner: mocha\nunit: true\n")},
			stage: StagePrompt,
			code:  ExitValidation,
		},
		{
			name:  "non-empty destination",
			opts:  newOptions{Dest: occupied, Template: "webpack", Scenario: "minimal"},
			stage: StageWrite,
			code:  ExitFailure,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Resolver = &source.Resolver{}
			tt.opts.Runner = &fakeRunner{}
			_, err := runNew(context.Background(), tt.opts)
			if err == nil {
				t.Fatal("expected error")
			}
			assertStage(t, err, tt.stage)
			if got := ExitCode(err); got != tt.code {
				t.Errorf("ExitCode = %d, want %d (err %v)", got, tt.code, err)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, ExitOK},
		{errors.New("boom"), ExitFailure},
		{&prompt.ValidationError{Key: "name", Reason: "a value is required"}, ExitValidation},
		{&meta.ConfigError{Source: "meta.yaml"}, ExitConfig},
		{fmt.Errorf("when: %w", expr.ErrUnknownKey), ExitConfig},
		{&directive.TemplateError{Path: "a.js", Line: 1, Msg: "bad"}, ExitTemplate},
		{&pipeline.StepError{Step: "install-dependencies", Err: errors.New("exit 1")}, ExitPipeline},
		{stageError(StagePipeline, &pipeline.StepError{Step: "lint-fix", Err: errors.New("x")}), ExitPipeline},
	}
	for _, tt := range tests {
		if got := ExitCode(tt.err); got != tt.want {
			t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestStageErrorUnwrapsGeneratorStage(t *testing.T) {
	inner := &scaffold.Error{Stage: scaffold.StageDirective, Err: &directive.TemplateError{Path: "a", Line: 2, Msg: "x"}}
	err := stageError(StageWrite, inner)
	assertStage(t, err, StageDirective)
	if ExitCode(err) != ExitTemplate {
		t.Errorf("ExitCode = %d", ExitCode(err))
	}
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	PrintError(&buf, stageError(StageConfig, errors.New("no meta.yaml found")))
	if !strings.Contains(buf.String(), "[config]: no meta.yaml found") {
		t.Errorf("PrintError = %q", buf.String())
	}
}

// ─── Test Helpers ───

type fakeRunner struct {
	commands []string
	fail     map[string]bool
}

func (f *fakeRunner) Run(_ context.Context, c runtime.Command) (*runtime.Output, error) {
	f.commands = append(f.commands, c.String())
	if f.fail[c.String()] {
		return &runtime.Output{ExitCode: 1}, &runtime.ExitError{Command: c, Code: 1}
	}
	return &runtime.Output{}, nil
}

func writeAnswers(t *testing.T, dir, content string) string {
	t.Helper()
	f, err := os.CreateTemp(dir, "answers-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		t.Fatal(err)
	}
	return f.Name()
}

func assertStage(t *testing.T, err error, want Stage) {
	t.Helper()
	var se *StageError
	if !errors.As(err, &se) {
		t.Fatalf("error %v carries no stage", err)
	}
	if se.Stage != want {
		t.Errorf("stage = %s, want %s (err %v)", se.Stage, want, err)
	}
}

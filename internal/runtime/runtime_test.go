package runtime

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"testing"
)

func TestDispatchManager(t *testing.T) {
	for _, name := range []string{ManagerNPM, ManagerYarn} {
		m, err := DispatchManager(name)
		if err != nil {
			t.Fatalf("DispatchManager(%q) error: %v", name, err)
		}
		if m.Name() != name {
			t.Errorf("Name() = %q, want %q", m.Name(), name)
		}
	}
	if _, err := DispatchManager("pnpm"); err == nil {
		t.Error("expected error for unknown manager")
	}
}

func TestManagerCommands(t *testing.T) {
	npmM, _ := DispatchManager(ManagerNPM)
	yarnM, _ := DispatchManager(ManagerYarn)

	tests := []struct {
		name string
		cmd  Command
		want string
	}{
		{"npm install", npmM.Install("/p"), "npm install"},
		{"yarn install", yarnM.Install("/p"), "yarn"},
		{"npm global", npmM.GlobalInstall("jsdoc", "commitizen"), "npm install -g jsdoc commitizen"},
		{"yarn global", yarnM.GlobalInstall("jsdoc"), "yarn global add jsdoc"},
		{"npm lint fix", npmM.RunScript("/p", "lint", "--fix"), "npm run lint -- --fix"},
		{"yarn lint fix", yarnM.RunScript("/p", "lint", "--fix"), "yarn run lint --fix"},
		{"npm no args", npmM.RunScript("/p", "dev"), "npm run dev"},
	}
	for _, tt := range tests {
		if got := tt.cmd.String(); got != tt.want {
			t.Errorf("%s: %q, want %q", tt.name, got, tt.want)
		}
	}
	if d := npmM.Install("/p").Dir; d != "/p" {
		t.Errorf("Install dir = %q, want /p", d)
	}
}

func TestExecRunner(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available, skipping")
	}

	var stdout bytes.Buffer
	r := &ExecRunner{Stdout: &stdout, Stderr: &bytes.Buffer{}}

	out, err := r.Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "echo hello"}, Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if out.Stdout != "hello\n" || stdout.String() != "hello\n" {
		t.Errorf("stdout = %q / %q, want hello", out.Stdout, stdout.String())
	}

	out, err = r.Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "echo oops >&2; exit 3"}})
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 3 {
		t.Fatalf("Run() error = %v, want ExitError with code 3", err)
	}
	if out.ExitCode != 3 || out.Stderr != "oops\n" {
		t.Errorf("output = %+v", out)
	}
}

func TestExecRunnerMissingBinary(t *testing.T) {
	r := &ExecRunner{}
	if _, err := r.Run(context.Background(), Command{Name: "definitely-not-a-real-binary-xyz"}); err == nil {
		t.Error("expected error for missing binary")
	}
}

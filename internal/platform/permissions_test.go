package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestChmod(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "test.txt")
	if err := os.WriteFile(path, []byte("test"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Chmod(path, 0600); err != nil {
		t.Fatalf("Chmod failed: %v", err)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("permissions = %o, want %o", perm, 0600)
		}
	}
}

func TestChmodDir(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "secure")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}

	if err := Chmod(dir, 0700); err != nil {
		t.Fatalf("Chmod on dir failed: %v", err)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != 0700 {
			t.Errorf("permissions = %o, want %o", perm, 0700)
		}
	}
}

func TestPerm(t *testing.T) {
	tests := []struct {
		in   os.FileMode
		want os.FileMode
	}{
		{0444, FilePerm},
		{0644, FilePerm},
		{0600, FilePerm},
		{0755, ExecPerm},
		{0700, ExecPerm},
		{0555, ExecPerm},
	}
	for _, tt := range tests {
		if got := Perm(tt.in); got != tt.want {
			t.Errorf("Perm(%o) = %o, want %o", tt.in, got, tt.want)
		}
	}
}

func TestWriteFileKeepsExecutableBit(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "run.sh")
	if err := WriteFile(path, []byte("#!/bin/sh\n"), 0555); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != ExecPerm {
			t.Errorf("permissions = %o, want %o", perm, ExecPerm)
		}
	}
}

package platform

import (
	"io/fs"
	"os"
	"runtime"
)

// Permission constants for generated output.
const (
	DirPerm  os.FileMode = 0755
	FilePerm os.FileMode = 0644
	ExecPerm os.FileMode = 0755
)

// Chmod sets file permissions. On Windows this is a no-op because Windows
// does not support Unix-style permission bits.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}

// Perm maps the mode of a template file to the mode of its generated copy.
// Only the executable bit survives; embedded files report read-only modes.
func Perm(mode fs.FileMode) os.FileMode {
	if mode&0111 != 0 {
		return ExecPerm
	}
	return FilePerm
}

// WriteFile writes data to path with the permissions derived from mode,
// regardless of the process umask.
func WriteFile(path string, data []byte, mode fs.FileMode) error {
	perm := Perm(mode)
	if err := os.WriteFile(path, data, perm); err != nil {
		return err
	}
	return Chmod(path, perm)
}

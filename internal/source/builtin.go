package source

import (
	"embed"
	"io/fs"
	"path"
	"slices"
)

//go:embed all:builtin
var builtinFS embed.FS

const builtinRoot = "builtin"

// Builtins returns the names of the embedded templates, sorted.
func Builtins() []string {
	entries, err := builtinFS.ReadDir(builtinRoot)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)
	return names
}

// IsBuiltin reports whether name is an embedded template.
func IsBuiltin(name string) bool {
	return slices.Contains(Builtins(), name)
}

func builtin(name string) (fs.FS, error) {
	return fs.Sub(builtinFS, path.Join(builtinRoot, name))
}

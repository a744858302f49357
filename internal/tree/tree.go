// Package tree lists the files of a template tree and classifies them.
package tree

import (
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

// excludedNames are never part of a generated project.
var excludedNames = map[string]bool{
	"node_modules": true,
	".git":         true,
	".DS_Store":    true,
}

// File is one regular file of a template tree.
type File struct {
	Path string // slash-separated, relative to the tree root
	Mode fs.FileMode
	Size int64
}

// Walk lists the regular files below root in fsys, sorted by path.
// node_modules/, .git/, and .DS_Store are skipped. Symlinks and other
// special files are not followed; each one is logged at debug level.
func Walk(fsys fs.FS, root string, log *zap.Logger) ([]File, error) {
	if root == "" {
		root = "."
	}
	if log == nil {
		log = zap.NewNop()
	}
	var files []File
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p != root && excludedNames[d.Name()] {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			if !d.IsDir() {
				log.Debug("special file skipped", zap.String("path", p), zap.Stringer("type", d.Type()))
			}
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel := p
		if root != "." {
			rel = p[len(root)+1:]
		}
		files = append(files, File{Path: rel, Mode: info.Mode(), Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking template tree %s: %w", root, err)
	}
	slices.SortFunc(files, func(a, b File) int { return strings.Compare(a.Path, b.Path) })
	return files, nil
}

// Paths returns the paths of files in order.
func Paths(files []File) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}

// Sub returns the subtree of fsys rooted at dir, or fsys itself for ".".
func Sub(fsys fs.FS, dir string) (fs.FS, error) {
	if dir == "" || dir == "." {
		return fsys, nil
	}
	return fs.Sub(fsys, path.Clean(dir))
}

// IsBinary reports whether data should be copied without processing.
// Content is sniffed; anything outside the text/plain family is binary.
func IsBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return false
		}
	}
	return true
}

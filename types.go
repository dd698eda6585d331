package datasheet

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Paths locates the trees a Generator reads from and writes to.
// All fields must be absolute.
type Paths struct {
	ProjectRoot string // base for console paths and the renderer base URL
	InputDir    string // Markdown datasheets, searched recursively
	OutputDir   string // mirrored PDF tree
	AssetsDir   string // target of the relative asset prefixes
}

// Validate reports an ErrInvalidPaths error when a field is empty or relative.
func (p Paths) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"project root", p.ProjectRoot},
		{"input dir", p.InputDir},
		{"output dir", p.OutputDir},
		{"assets dir", p.AssetsDir},
	} {
		if f.value == "" {
			return fmt.Errorf("%w: %s is empty", ErrInvalidPaths, f.name)
		}
		if !filepath.IsAbs(f.value) {
			return fmt.Errorf("%w: %s %q is not absolute", ErrInvalidPaths, f.name, f.value)
		}
	}
	return nil
}

// relToProject returns path relative to the project root for console output,
// or path itself when it lies elsewhere.
func (p Paths) relToProject(path string) string {
	rel, err := filepath.Rel(p.ProjectRoot, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

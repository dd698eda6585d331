package datasheet

import (
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
)

// markdownExtensions are matched case-insensitively.
var markdownExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
}

// Document is one Markdown file found under the input root.
type Document struct {
	InputPath  string // absolute path of the Markdown file
	RelPath    string // path relative to the input root
	OutputPath string // mirrored .pdf path under the output root
}

// Discover checks that inputRoot is a directory and returns a lazy sequence
// of every Markdown file beneath it, in lexical walk order. Hidden
// directories are included. Walk errors are yielded with a zero Document and
// iteration continues unless the consumer stops.
func Discover(inputRoot, outputRoot string) (iter.Seq2[Document, error], error) {
	info, err := os.Stat(inputRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDirectoryNotFound, inputRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrDirectoryNotFound, inputRoot)
	}

	seq := func(yield func(Document, error) bool) {
		_ = filepath.WalkDir(inputRoot, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				if !yield(Document{}, fmt.Errorf("walking %s: %w", path, walkErr)) {
					return filepath.SkipAll
				}
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() || !isMarkdown(path) {
				return nil
			}

			rel, err := filepath.Rel(inputRoot, path)
			if err != nil {
				if !yield(Document{}, err) {
					return filepath.SkipAll
				}
				return nil
			}

			doc := Document{
				InputPath:  path,
				RelPath:    rel,
				OutputPath: OutputPathFor(outputRoot, rel),
			}
			if !yield(doc, nil) {
				return filepath.SkipAll
			}
			return nil
		})
	}
	return seq, nil
}

// OutputPathFor mirrors a Markdown path relative to the input root into the
// output root with a .pdf extension: a/b/c.md becomes <outputRoot>/a/b/c.pdf.
// Slash-separated relPaths are accepted on every platform.
func OutputPathFor(outputRoot, relPath string) string {
	rel := filepath.FromSlash(relPath)
	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + ".pdf"
	return filepath.Join(outputRoot, rel)
}

func isMarkdown(path string) bool {
	return markdownExtensions[strings.ToLower(filepath.Ext(path))]
}

package datasheet

// Notes:
// - Discovery order follows filepath.WalkDir (lexical); tests sort nothing
// - Permission-based walk errors are not tested: they depend on the user
//   running the tests (root ignores directory modes)

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeTree creates files (slash-separated, relative to root) with content.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
}

// ---------------------------------------------------------------------------
// TestDiscover - Recursive Markdown enumeration
// ---------------------------------------------------------------------------

func TestDiscover(t *testing.T) {
	t.Parallel()

	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "pdf")
	writeTree(t, in, map[string]string{
		"a.md":              "# A",
		"b/c.md":            "# C",
		"b/d/e.MARKDOWN":    "# E",
		"b/notes.txt":       "skip",
		".hidden/f.md":      "# F",
		"image.png":         "skip",
		"b/d/readme.md.bak": "skip",
	})

	seq, err := Discover(in, out)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	var got []Document
	for doc, err := range seq {
		if err != nil {
			t.Fatalf("unexpected walk error: %v", err)
		}
		got = append(got, doc)
	}

	want := []string{".hidden/f.md", "a.md", "b/c.md", "b/d/e.MARKDOWN"}
	if len(got) != len(want) {
		t.Fatalf("got %d documents, want %d: %+v", len(got), len(want), got)
	}
	for i, doc := range got {
		if filepath.ToSlash(doc.RelPath) != want[i] {
			t.Errorf("doc[%d].RelPath = %q, want %q", i, doc.RelPath, want[i])
		}
		if doc.InputPath != filepath.Join(in, doc.RelPath) {
			t.Errorf("doc[%d].InputPath = %q", i, doc.InputPath)
		}
		if doc.OutputPath != OutputPathFor(out, doc.RelPath) {
			t.Errorf("doc[%d].OutputPath = %q", i, doc.OutputPath)
		}
	}
}

func TestDiscover_EmptyDirectory(t *testing.T) {
	t.Parallel()

	seq, err := Discover(t.TempDir(), t.TempDir())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	for doc, err := range seq {
		t.Errorf("unexpected item: %+v, %v", doc, err)
	}
}

func TestDiscover_MissingRoot(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "nope")
	_, err := Discover(missing, t.TempDir())
	if !errors.Is(err, ErrDirectoryNotFound) {
		t.Errorf("expected ErrDirectoryNotFound, got %v", err)
	}
}

func TestDiscover_RootIsFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"file.md": "# x"})

	_, err := Discover(filepath.Join(dir, "file.md"), t.TempDir())
	if !errors.Is(err, ErrDirectoryNotFound) {
		t.Errorf("expected ErrDirectoryNotFound, got %v", err)
	}
}

func TestDiscover_StopsWhenConsumerBreaks(t *testing.T) {
	t.Parallel()

	in := t.TempDir()
	writeTree(t, in, map[string]string{"a.md": "", "b.md": "", "c.md": ""})

	seq, err := Discover(in, t.TempDir())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	count := 0
	for range seq {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

// ---------------------------------------------------------------------------
// TestOutputPathFor - Mirrored output path
// ---------------------------------------------------------------------------

func TestOutputPathFor(t *testing.T) {
	t.Parallel()

	out := filepath.Join("root", "pdf")

	tests := []struct {
		name string
		rel  string
		want string
	}{
		{"slash separated", "a/b/c.md", filepath.Join(out, "a", "b", "c.pdf")},
		{"platform separated", filepath.Join("a", "b", "c.md"), filepath.Join(out, "a", "b", "c.pdf")},
		{"top level", "c.md", filepath.Join(out, "c.pdf")},
		{"markdown extension", "x/y.markdown", filepath.Join(out, "x", "y.pdf")},
		{"upper case extension", "Z.MD", filepath.Join(out, "Z.pdf")},
		{"dots in name", "v1.2/notes.v2.md", filepath.Join(out, "v1.2", "notes.v2.pdf")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := OutputPathFor(out, tt.rel); got != tt.want {
				t.Errorf("OutputPathFor(%q) = %q, want %q", tt.rel, got, tt.want)
			}
		})
	}
}

func TestOutputPathFor_RelativeToOutputRoot(t *testing.T) {
	t.Parallel()

	out := t.TempDir()
	got := OutputPathFor(out, "a/b/c.md")

	rel, err := filepath.Rel(out, got)
	if err != nil {
		t.Fatalf("Rel: %v", err)
	}
	if filepath.ToSlash(rel) != "a/b/c.pdf" {
		t.Errorf("relative output = %q, want a/b/c.pdf", filepath.ToSlash(rel))
	}
}

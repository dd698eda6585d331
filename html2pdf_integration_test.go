//go:build integration

package datasheet

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

func assertValidPDF(t *testing.T, data []byte) int {
	t.Helper()

	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("data does not have PDF magic bytes, got prefix: %q", data[:min(10, len(data))])
	}

	pages, err := PDFCPUValidator{}.Validate(data)
	if err != nil {
		t.Fatalf("pdfcpu rejected the PDF: %v", err)
	}
	return pages
}

// TestRodRenderer_RenderPDF_Integration tests PDF generation using go-rod.
// Rod automatically downloads Chromium on first run if not found.
func TestRodRenderer_RenderPDF_Integration(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	t.Run("valid HTML produces PDF", func(t *testing.T) {
		html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body><h1>Hello, World!</h1><p>This is a test document.</p></body>
</html>`

		data, err := testRenderer.RenderPDF(ctx, html, "")
		if err != nil {
			t.Fatalf("RenderPDF() error = %v", err)
		}
		if pages := assertValidPDF(t, data); pages != 1 {
			t.Errorf("pages = %d, want 1", pages)
		}
	})

	t.Run("long document spans several pages", func(t *testing.T) {
		var body bytes.Buffer
		for range 200 {
			body.WriteString("<p>Lorem ipsum dolor sit amet, consectetur adipiscing elit.</p>\n")
		}
		html := "<!DOCTYPE html><html><head></head><body>" + body.String() + "</body></html>"

		data, err := testRenderer.RenderPDF(ctx, html, "")
		if err != nil {
			t.Fatalf("RenderPDF() error = %v", err)
		}
		if pages := assertValidPDF(t, data); pages < 2 {
			t.Errorf("pages = %d, want at least 2", pages)
		}
	})

	t.Run("relative reference resolves against base URL", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "style.css"), []byte("body{color:red}"), 0o600); err != nil {
			t.Fatal(err)
		}
		html := `<html><head><link rel="stylesheet" href="style.css"></head><body>x</body></html>`

		data, err := testRenderer.RenderPDF(ctx, html, "file://"+filepath.ToSlash(dir)+"/")
		if err != nil {
			t.Fatalf("RenderPDF() error = %v", err)
		}
		assertValidPDF(t, data)
	})
}

// TestGenerator_Run_Integration converts a small project tree end to end.
func TestGenerator_Run_Integration(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*testTimeout)
	defer cancel()

	paths := testPaths(t)
	writeTree(t, paths.InputDir, map[string]string{
		"core/mod.md": "# Datasheet: trencadis_example_module\n\n" +
			"| Pin | Role |\n|---|---|\n| 1 | VCC |\n\n" +
			"```go\nfunc main() {}\n```\n\n" +
			"![logo](assets/logo.svg)\n",
		"other.md": "# Datasheet: trencadis_other\n\nsnake_case_word stays plain.\n",
	})
	svg := `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10"/></svg>`
	writeTree(t, paths.AssetsDir, map[string]string{"logo.svg": svg})

	var stdout, stderr bytes.Buffer
	gen, err := NewGenerator(paths,
		WithRenderer(sharedRenderer{testRenderer}),
		WithStdout(&stdout),
		WithStderr(&stderr),
	)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	defer gen.Close()

	report, err := gen.Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Succeeded != 2 || report.Failed != 0 {
		t.Fatalf("report = %+v\nstderr: %s", report, stderr.String())
	}

	for _, out := range report.Outputs {
		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatalf("reading %s: %v", out, err)
		}
		assertValidPDF(t, data)
	}
}

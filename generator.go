package datasheet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alnah/go-datasheet/internal/assets"
	"github.com/alnah/go-datasheet/internal/fileutil"
	"github.com/alnah/go-datasheet/internal/hints"
	"github.com/alnah/go-datasheet/internal/pipeline"
)

// Console lines printed by Generator.Run.
const (
	bannerLine    = "--- Starting Datasheet Generation (Material Theme) ---"
	separatorLine = "--------------------"
	noFilesLine   = "No Markdown files found to convert."
)

// DefaultAssetPrefixes are the relative src prefixes that point into the
// assets directory.
var DefaultAssetPrefixes = pipeline.DefaultAssetPrefixes

// Report summarizes a generation run.
type Report struct {
	Succeeded    int
	Failed       int
	Errors       []*DocumentError // one entry per failed document, in order
	Outputs      []string         // written PDF paths, in order
	InputMissing bool             // the input directory did not exist; nothing ran
}

// Option configures a Generator.
type Option func(*Generator)

// generatorConfig holds the tunable parts of a Generator.
type generatorConfig struct {
	timeout       time.Duration
	titleRule     TitleRule
	stylesheet    string
	stylesheetSet bool
	assetPrefixes []string
	fontURL       string
}

// Generator converts every Markdown datasheet under Paths.InputDir into a
// PDF under Paths.OutputDir. Documents are processed one at a time and a
// failure in one never stops the others. Create with NewGenerator and call
// Close when done.
type Generator struct {
	paths         Paths
	cfg           generatorConfig
	stdout        io.Writer
	stderr        io.Writer
	logger        *slog.Logger
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
	composer      *Composer
	renderer      PDFRenderer
	validator     PDFValidator
	writer        *PDFWriter
}

// WithStdout sets the writer for progress lines. Defaults to os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(g *Generator) { g.stdout = w }
}

// WithStderr sets the writer for error and warning lines. Defaults to os.Stderr.
func WithStderr(w io.Writer) Option {
	return func(g *Generator) { g.stderr = w }
}

// WithLogger sets the diagnostic logger. Defaults to a discarding logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// WithTimeout bounds the conversion of a single document.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("datasheet: WithTimeout duration must be positive")
	}
	return func(g *Generator) { g.cfg.timeout = d }
}

// WithTitleRule sets the heading rewrite applied to every document.
func WithTitleRule(rule TitleRule) Option {
	return func(g *Generator) { g.cfg.titleRule = rule }
}

// WithStylesheet replaces the embedded Material theme with css.
func WithStylesheet(css string) Option {
	return func(g *Generator) {
		g.cfg.stylesheet = css
		g.cfg.stylesheetSet = true
	}
}

// WithAssetPrefixes sets the relative src prefixes rewritten to Paths.AssetsDir.
func WithAssetPrefixes(prefixes ...string) Option {
	return func(g *Generator) { g.cfg.assetPrefixes = append([]string(nil), prefixes...) }
}

// WithFontURL sets the external font stylesheet. An empty URL disables it.
func WithFontURL(url string) Option {
	return func(g *Generator) { g.cfg.fontURL = url }
}

// WithPreprocessor replaces the Markdown normalizer.
func WithPreprocessor(p pipeline.MarkdownPreprocessor) Option {
	return func(g *Generator) { g.preprocessor = p }
}

// WithHTMLConverter replaces the goldmark Markdown renderer.
func WithHTMLConverter(c pipeline.HTMLConverter) Option {
	return func(g *Generator) { g.htmlConverter = c }
}

// WithRenderer replaces the headless Chrome renderer. The Generator closes it.
func WithRenderer(r PDFRenderer) Option {
	return func(g *Generator) { g.renderer = r }
}

// WithValidator replaces the pdfcpu validator. A nil validator disables
// validation.
func WithValidator(v PDFValidator) Option {
	return func(g *Generator) { g.validator = v }
}

// NewGenerator creates a Generator for paths. The browser is not started
// until the first document is rendered.
func NewGenerator(paths Paths, opts ...Option) (*Generator, error) {
	if err := paths.Validate(); err != nil {
		return nil, err
	}

	g := &Generator{
		paths: paths,
		cfg: generatorConfig{
			timeout:       DefaultRenderTimeout,
			titleRule:     DefaultTitleRule,
			assetPrefixes: append([]string(nil), DefaultAssetPrefixes...),
			fontURL:       FontStylesheetURL,
		},
		stdout:        os.Stdout,
		stderr:        os.Stderr,
		preprocessor:  &pipeline.CommonMarkPreprocessor{},
		htmlConverter: pipeline.NewGoldmarkConverter(),
		validator:     PDFCPUValidator{},
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.logger == nil {
		g.logger = slog.New(slog.DiscardHandler)
	}

	if !g.cfg.stylesheetSet {
		css, err := assets.LoadStyle(assets.DefaultStyleName)
		if err != nil {
			return nil, fmt.Errorf("loading default style: %w", err)
		}
		g.cfg.stylesheet = css
	}

	composer, err := NewComposer(ComposerConfig{
		Stylesheet:    g.cfg.stylesheet,
		AssetsDir:     paths.AssetsDir,
		AssetPrefixes: g.cfg.assetPrefixes,
		FontURL:       g.cfg.fontURL,
	})
	if err != nil {
		return nil, err
	}
	g.composer = composer
	g.writer = NewPDFWriter(g.validator)

	// Create the renderer if not injected (e.g., by tests)
	if g.renderer == nil {
		g.renderer = NewRodRenderer(g.cfg.timeout, g.logger)
	}

	return g, nil
}

// Run converts every discovered document and returns the run summary.
//
// A missing input directory is reported on stderr and yields a Report with
// InputMissing set and a nil error. Per-document failures are recorded in
// the Report, never returned. The only error returned is the context error
// when ctx is cancelled; documents not yet started are then skipped.
func (g *Generator) Run(ctx context.Context) (*Report, error) {
	report := &Report{}
	_, _ = fmt.Fprintln(g.stdout, bannerLine)

	docs, err := Discover(g.paths.InputDir, g.paths.OutputDir)
	if err != nil {
		_, _ = fmt.Fprintf(g.stderr, "Error: Input directory not found at '%s'\n", g.paths.InputDir)
		g.logger.Debug("discovery failed", "error", err)
		report.InputMissing = true
		return report, nil
	}

	seen := 0
	for doc, walkErr := range docs {
		if ctxErr := ctx.Err(); ctxErr != nil {
			g.logger.Info("generation cancelled", "processed", seen)
			return report, ctxErr
		}
		seen++

		if walkErr != nil {
			g.fail(report, &DocumentError{Path: g.paths.InputDir, Err: walkErr})
			_, _ = fmt.Fprintln(g.stdout, separatorLine)
			continue
		}

		_, _ = fmt.Fprintf(g.stdout, "Converting %s...\n", g.paths.relToProject(doc.InputPath))
		if err := g.convert(ctx, doc); err != nil {
			g.fail(report, &DocumentError{Path: doc.InputPath, Err: err})
		} else {
			report.Succeeded++
			report.Outputs = append(report.Outputs, doc.OutputPath)
			_, _ = fmt.Fprintf(g.stdout, "Success! Saved to %s\n", g.paths.relToProject(doc.OutputPath))
		}
		_, _ = fmt.Fprintln(g.stdout, separatorLine)
	}

	if seen == 0 {
		_, _ = fmt.Fprintln(g.stdout, noFilesLine)
		return report, nil
	}

	_, _ = fmt.Fprintf(g.stdout, "--- Generation finished: %d succeeded, %d failed ---\n", report.Succeeded, report.Failed)
	return report, nil
}

// Close releases the renderer (headless Chrome browser).
func (g *Generator) Close() error {
	if g.renderer != nil {
		return g.renderer.Close()
	}
	return nil
}

// fail records and prints a document failure.
func (g *Generator) fail(report *Report, docErr *DocumentError) {
	report.Failed++
	report.Errors = append(report.Errors, docErr)
	_, _ = fmt.Fprintf(g.stderr, "Error converting %s: %v\n", docErr.Path, docErr.Err)
	g.logger.Debug("document failed", "path", docErr.Path, "error", docErr.Err)
}

// convert runs the pipeline for one document. Panics from any stage are
// recovered and reported as ErrInternal so the batch can continue.
func (g *Generator) convert(ctx context.Context, doc Document) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, g.cfg.timeout)
	defer cancel()

	started := time.Now()

	raw, err := os.ReadFile(doc.InputPath) // #nosec G304 -- path comes from directory discovery
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}

	md := g.preprocessor.PreprocessMarkdown(ctx, string(raw))
	md = FormatTitle(md, g.cfg.titleRule)

	fragment, err := g.htmlConverter.ToHTML(ctx, md)
	if err != nil {
		return fmt.Errorf("converting to HTML: %w", err)
	}

	composed, err := g.composer.Compose(ctx, fragment)
	if err != nil {
		return err
	}
	if len(composed.Unresolved) > 0 {
		g.warnUnresolved(doc, composed.Unresolved)
	}

	pdf, err := g.renderer.RenderPDF(ctx, composed.HTML, g.baseURL())
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %v%s", ErrPDFGeneration, err, hints.ForTimeout())
		}
		return err
	}

	pages, err := g.writer.Write(doc.OutputPath, pdf)
	if err != nil {
		return err
	}

	g.logger.Debug("document converted",
		"input", doc.RelPath,
		"output", doc.OutputPath,
		"pages", pages,
		"bytes", len(pdf),
		"elapsed", time.Since(started),
	)
	return nil
}

// warnUnresolved reports relative image references that no prefix matched.
func (g *Generator) warnUnresolved(doc Document, refs []string) {
	_, _ = fmt.Fprintf(g.stderr, "Warning: unresolved asset references in %s: %s%s\n",
		g.paths.relToProject(doc.InputPath), strings.Join(refs, ", "),
		hints.ForUnresolvedAssets(g.cfg.assetPrefixes))
	g.logger.Warn("unresolved asset references", "document", doc.RelPath, "refs", refs)
}

// baseURL is the project root as a directory URL, so relative references
// left in the document resolve the way they would from the repository root.
func (g *Generator) baseURL() string {
	return fileutil.PathToFileURL(g.paths.ProjectRoot) + "/"
}

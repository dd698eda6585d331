package datasheet

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-datasheet/internal/fileutil"
	"github.com/alnah/go-datasheet/internal/hints"
	"github.com/alnah/go-datasheet/internal/pipeline"
	"github.com/alnah/go-datasheet/internal/process"
)

// PDFRenderer renders a standalone HTML document to PDF bytes. Relative URLs
// in the document resolve against baseURL.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, htmlContent, baseURL string) ([]byte, error)
	Close() error
}

// pageRenderer abstracts PDF rendering from an HTML file to enable testing without a browser.
type pageRenderer interface {
	RenderFromFile(ctx context.Context, filePath string) ([]byte, error)
	Close() error
}

// Compile-time interface checks
var (
	_ PDFRenderer  = (*RodRenderer)(nil)
	_ pageRenderer = (*rodPageRenderer)(nil)
)

// A4 page in inches with the 1-inch margins of the Material theme.
const (
	paperWidthInches  = 8.27
	paperHeightInches = 11.69
	marginInches      = 1.0
)

// footerTemplate draws "Page N of M" at the bottom right of every page.
// Chrome fills the pageNumber and totalPages spans.
const footerTemplate = `<div style="font-size: 9pt; font-family: Roboto, Helvetica, Arial, sans-serif; color: #757575; width: 100%; text-align: right; padding: 0 1in;">` +
	`Page <span class="pageNumber"></span> of <span class="totalPages"></span></div>`

// DefaultRenderTimeout bounds page load for a single document.
const DefaultRenderTimeout = 30 * time.Second

// RodRenderer implements PDFRenderer with headless Chrome via go-rod.
// The browser starts on first use and is reused until Close.
type RodRenderer struct {
	renderer pageRenderer
}

// NewRodRenderer creates a RodRenderer. A non-positive timeout selects
// DefaultRenderTimeout; a nil logger discards diagnostics.
func NewRodRenderer(timeout time.Duration, logger *slog.Logger) *RodRenderer {
	if timeout <= 0 {
		timeout = DefaultRenderTimeout
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &RodRenderer{renderer: &rodPageRenderer{timeout: timeout, logger: logger}}
}

// RenderPDF writes htmlContent, with a <base href> for baseURL, to a temporary
// file and prints it to PDF.
func (r *RodRenderer) RenderPDF(ctx context.Context, htmlContent, baseURL string) ([]byte, error) {
	doc := pipeline.InjectBaseHref(htmlContent, baseURL)

	tmpPath, cleanup, err := fileutil.WriteTempFile(doc, "html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	defer cleanup()

	return r.renderer.RenderFromFile(ctx, tmpPath)
}

// Close releases browser resources.
func (r *RodRenderer) Close() error {
	if r.renderer != nil {
		return r.renderer.Close()
	}
	return nil
}

// rodPageRenderer implements pageRenderer using go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodPageRenderer struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
	logger   *slog.Logger
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodPageRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	bin := os.Getenv("ROD_BROWSER_BIN")
	if bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	noSandbox := os.Getenv("ROD_NO_SANDBOX") == "1" || hints.InCI() || hints.IsInContainer() || bin != ""
	if noSandbox {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v%s", ErrBrowserConnect, err, hints.ForBrowserConnect())
	}
	r.logger.Debug("browser launched", "pid", l.PID(), "bin", bin, "no_sandbox", noSandbox)

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		r.kill(l)
		return fmt.Errorf("%w: %v%s", ErrBrowserConnect, err, hints.ForBrowserConnect())
	}

	r.browser = browser
	r.launcher = l
	return nil
}

// Close closes the browser and kills its process tree.
func (r *rodPageRenderer) Close() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.launcher != nil {
		r.kill(r.launcher)
		r.launcher = nil
	}
	return err
}

// kill terminates the launched browser and its children, then removes the
// temporary user data directory.
func (r *rodPageRenderer) kill(l *launcher.Launcher) {
	pid := l.PID()
	l.Kill()
	if err := process.KillTree(pid); err != nil {
		r.logger.Debug("killing browser process tree", "pid", pid, "error", err)
	}
	l.Cleanup()
	r.logger.Debug("browser closed", "pid", pid)
}

// RenderFromFile opens a local HTML file in headless Chrome and prints it to PDF.
// Returns explicit errors instead of panicking when browser operations fail.
func (r *rodPageRenderer) RenderFromFile(ctx context.Context, filePath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: fileutil.PathToFileURL(filePath)})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	started := time.Now()
	if err := page.Context(ctx).Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v%s", ErrPageLoad, err, hints.ForTimeout())
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.Context(ctx).PDF(buildPDFOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	r.logger.Debug("page printed", "file", filePath, "bytes", len(pdfBuf), "elapsed", time.Since(started))
	return pdfBuf, nil
}

// buildPDFOptions returns A4 print settings with 1-inch margins and the page footer.
// PreferCSSPageSize lets an @page size in a custom stylesheet win.
func buildPDFOptions() *proto.PagePrintToPDF {
	return &proto.PagePrintToPDF{
		PaperWidth:          floatPtr(paperWidthInches),
		PaperHeight:         floatPtr(paperHeightInches),
		MarginTop:           floatPtr(marginInches),
		MarginBottom:        floatPtr(marginInches),
		MarginLeft:          floatPtr(marginInches),
		MarginRight:         floatPtr(marginInches),
		PrintBackground:     true,
		PreferCSSPageSize:   true,
		DisplayHeaderFooter: true,
		HeaderTemplate:      "<span></span>",
		FooterTemplate:      footerTemplate,
	}
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}

package datasheet

import (
	"context"
	"fmt"
	"html"

	"github.com/alnah/go-datasheet/internal/pipeline"
)

// FontStylesheetURL loads the Roboto families used by the Material theme.
const FontStylesheetURL = "https://fonts.googleapis.com/css?family=Roboto|Roboto+Mono"

// defaultDocumentTitle is used when the fragment has no <h1>.
const defaultDocumentTitle = "Datasheet"

// documentTemplate wraps the body fragment in a complete HTML5 document.
// Head blocks are injected before </head>.
const documentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>%s</title>
</head>
<body>
%s
</body>
</html>`

// ComposedHTML is a standalone HTML document ready for rendering.
type ComposedHTML struct {
	HTML string
	// Unresolved lists relative src references matching no asset prefix.
	Unresolved []string
}

// ComposerConfig configures a Composer.
type ComposerConfig struct {
	Stylesheet    string   // theme CSS, embedded in a <style> block
	AssetsDir     string   // absolute directory the prefixes resolve to
	AssetPrefixes []string // relative src prefixes rewritten to AssetsDir
	FontURL       string   // external stylesheet link; empty disables it
}

// Composer turns a rendered Markdown fragment into a styled HTML document.
type Composer struct {
	cfg          ComposerConfig
	highlightCSS string
	cssInjector  pipeline.CSSInjector
}

// NewComposer creates a Composer. The chroma stylesheet for highlighted code
// is generated once here and appended after the theme CSS.
func NewComposer(cfg ComposerConfig) (*Composer, error) {
	highlightCSS, err := pipeline.HighlightCSS()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompose, err)
	}
	cfg.AssetPrefixes = append([]string(nil), cfg.AssetPrefixes...)
	return &Composer{
		cfg:          cfg,
		highlightCSS: highlightCSS,
		cssInjector:  &pipeline.CSSInjection{},
	}, nil
}

// Compose rewrites asset references in fragment and wraps it in the document
// template with the font link, theme stylesheet and highlight stylesheet.
func (c *Composer) Compose(ctx context.Context, fragment string) (ComposedHTML, error) {
	if err := ctx.Err(); err != nil {
		return ComposedHTML{}, err
	}

	rw, err := pipeline.RewriteAssetPaths(fragment, c.cfg.AssetPrefixes, c.cfg.AssetsDir)
	if err != nil {
		return ComposedHTML{}, fmt.Errorf("%w: rewriting asset paths: %v", ErrCompose, err)
	}

	title := pipeline.FirstHeadingText(rw.HTML)
	if title == "" {
		title = defaultDocumentTitle
	}

	doc := fmt.Sprintf(documentTemplate, html.EscapeString(title), rw.HTML)
	doc = pipeline.InjectStylesheetLink(doc, c.cfg.FontURL)
	doc = c.cssInjector.InjectCSS(ctx, doc, c.cfg.Stylesheet)
	doc = c.cssInjector.InjectCSS(ctx, doc, c.highlightCSS)

	return ComposedHTML{HTML: doc, Unresolved: rw.Unresolved}, nil
}

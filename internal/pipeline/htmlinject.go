package pipeline

import (
	"context"
	"html"
	"strings"

	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// CSSInjection injects CSS as a <style> block into HTML content.
type CSSInjection struct{}

// InjectCSS inserts a <style> block into HTML content.
// Tries </head> first, then <body>, then prepends to the HTML.
// CSS content is sanitized to prevent injection attacks.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" {
		return htmlContent
	}

	if ctx.Err() != nil {
		return htmlContent
	}

	return injectHead(htmlContent, "<style>"+sanitizeCSS(cssContent)+"</style>")
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// InjectStylesheetLink inserts a <link rel="stylesheet"> for href into the head.
// An empty href returns the HTML unchanged.
func InjectStylesheetLink(htmlContent, href string) string {
	if href == "" {
		return htmlContent
	}
	return injectHead(htmlContent, `<link rel="stylesheet" href="`+html.EscapeString(href)+`">`)
}

// InjectBaseHref inserts a <base href> as the first element of <head> so that
// every relative URL after it resolves against baseURL. Documents that
// already carry a <base> element are returned unchanged.
func InjectBaseHref(htmlContent, baseURL string) string {
	if baseURL == "" {
		return htmlContent
	}

	lowerHTML := strings.ToLower(htmlContent)
	if strings.Contains(lowerHTML, "<base ") || strings.Contains(lowerHTML, "<base>") {
		return htmlContent
	}

	baseTag := `<base href="` + html.EscapeString(baseURL) + `">`

	for _, open := range []string{"<head>", "<head "} {
		if idx := strings.Index(lowerHTML, open); idx != -1 {
			insertPos := idx + strings.Index(htmlContent[idx:], ">") + 1
			return htmlContent[:insertPos] + baseTag + htmlContent[insertPos:]
		}
	}

	return baseTag + htmlContent
}

// injectHead inserts block before </head>, after <body>, or at the start.
func injectHead(htmlContent, block string) string {
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + block + htmlContent[idx:]
	}

	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		if closeIdx := strings.Index(htmlContent[idx:], ">"); closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + block + htmlContent[insertPos:]
		}
	}

	return block + htmlContent
}

// FirstHeadingText returns the whitespace-collapsed text of the first <h1>,
// or "" when the HTML has none or cannot be parsed.
func FirstHeadingText(htmlContent string) string {
	doc, _, err := parseHTML(htmlContent)
	if err != nil {
		return ""
	}

	h1 := findFirst(doc, atom.H1)
	if h1 == nil {
		return ""
	}

	var sb strings.Builder
	collectText(h1, &sb)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func findFirst(n *nethtml.Node, a atom.Atom) *nethtml.Node {
	if n.Type == nethtml.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, a); found != nil {
			return found
		}
	}
	return nil
}

func collectText(n *nethtml.Node, sb *strings.Builder) {
	if n.Type == nethtml.TextNode {
		sb.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}

// Compile-time interface check.
var _ CSSInjector = (*CSSInjection)(nil)

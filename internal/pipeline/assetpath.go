package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-datasheet/internal/fileutil"
)

// DefaultAssetPrefixes are the relative src prefixes that point into the
// assets directory. Callers copy the slice before changing it.
var DefaultAssetPrefixes = []string{"assets/", "doc/assets/"}

// AssetRewrite is the result of RewriteAssetPaths.
type AssetRewrite struct {
	HTML string
	// Unresolved lists relative src values that matched no prefix, or that
	// would escape the assets directory. They are left untouched.
	Unresolved []string
}

// RewriteAssetPaths rewrites src attributes starting with one of prefixes to
// absolute file:// URLs under assetsDir. "assets/logo.png" and
// "doc/assets/logo.png" both become file://<assetsDir>/logo.png with the
// default prefixes. The longest matching prefix wins.
//
// Does NOT rewrite:
//   - URLs (http, https, file, data, protocol-relative) and absolute paths
//   - anchors and empty values
//   - paths escaping assetsDir after cleaning (reported as unresolved)
//   - href and srcset attributes
func RewriteAssetPaths(htmlContent string, prefixes []string, assetsDir string) (AssetRewrite, error) {
	absAssetsDir, err := filepath.Abs(assetsDir)
	if err != nil {
		return AssetRewrite{}, err
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return AssetRewrite{}, err
	}

	rw := &assetRewriter{prefixes: sortedByLength(prefixes), assetsDir: absAssetsDir}
	rw.walk(doc)

	out, err := renderHTML(doc, isFragment)
	if err != nil {
		return AssetRewrite{}, err
	}
	return AssetRewrite{HTML: out, Unresolved: rw.unresolved}, nil
}

type assetRewriter struct {
	prefixes   []string
	assetsDir  string
	unresolved []string
}

// walk traverses the DOM and rewrites src attributes in document order.
func (r *assetRewriter) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		for i, attr := range n.Attr {
			if attr.Key != "src" || !isRelativePath(attr.Val) {
				continue
			}
			if rewritten, ok := r.resolve(attr.Val); ok {
				n.Attr[i].Val = rewritten
			} else {
				r.unresolved = append(r.unresolved, attr.Val)
			}
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.walk(c)
	}
}

// resolve maps a relative src to a file:// URL under assetsDir. A query or
// fragment is not part of the file path and is carried over unchanged.
func (r *assetRewriter) resolve(src string) (string, bool) {
	for _, prefix := range r.prefixes {
		if !strings.HasPrefix(src, prefix) {
			continue
		}

		rest := strings.TrimPrefix(src, prefix)
		suffix := ""
		if i := strings.IndexAny(rest, "?#"); i >= 0 {
			rest, suffix = rest[:i], rest[i:]
		}
		if rest == "" {
			return "", false
		}
		if unescaped, err := url.PathUnescape(rest); err == nil {
			rest = unescaped
		}

		absPath := filepath.Join(r.assetsDir, filepath.FromSlash(rest))
		if !isPathUnderDir(absPath, r.assetsDir) {
			return "", false
		}
		return fileutil.PathToFileURL(absPath) + suffix, true
	}
	return "", false
}

// sortedByLength returns prefixes ordered longest first so "doc/assets/"
// is tried before a shorter overlapping prefix.
func sortedByLength(prefixes []string) []string {
	out := append([]string(nil), prefixes...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && len(out[j]) > len(out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// parseHTML parses HTML content, handling both full documents and fragments.
// Returns the parsed node, whether it was a fragment, and any error.
func parseHTML(content string) (*html.Node, bool, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))

	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	// Parse with body context to avoid wrapping.
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, true, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}

	return container, true, nil
}

// renderHTML renders the document back to string.
// For fragments, only renders the children (avoids adding <html><body> wrapper).
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if isFragment {
		for c := doc.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", err
			}
		}
		return buf.String(), nil
	}

	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// isRelativePath returns true if the path is a candidate for rewriting.
func isRelativePath(path string) bool {
	if path == "" || fileutil.IsURL(path) || strings.HasPrefix(path, "#") {
		return false
	}
	if strings.HasPrefix(path, "/") || filepath.IsAbs(path) {
		return false
	}
	return true
}

// isPathUnderDir checks if absPath is under dir (prevents path traversal).
func isPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)

	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}

	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}

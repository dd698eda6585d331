package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// byteOrderMark is stripped from the start of Markdown files saved by
// Windows editors; it would otherwise hide the leading "# " heading.
const byteOrderMark = "\uFEFF"

// crlfOrCR matches Windows and classic Mac line endings.
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// CommonMarkPreprocessor normalizes Markdown before title formatting and conversion.
type CommonMarkPreprocessor struct{}

// PreprocessMarkdown strips a leading byte order mark and converts \r\n and \r to \n.
func (p *CommonMarkPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = strings.TrimPrefix(content, byteOrderMark)
	return normalizeLineEndings(content)
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// Compile-time interface check.
var _ MarkdownPreprocessor = (*CommonMarkPreprocessor)(nil)

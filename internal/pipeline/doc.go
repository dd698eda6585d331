// Package pipeline implements the Markdown-to-HTML stages of datasheet generation.
//
// This package handles the document-structure stages:
//   - Markdown normalization (line endings, byte order mark)
//   - Markdown to HTML conversion via Goldmark, with tables, highlighted
//     fenced code and no intra-word emphasis
//   - Asset path rewriting from relative prefixes to absolute file:// URLs
//   - Head injection: stylesheet blocks, external stylesheet links, <base href>
//
// PDF generation is handled separately by the root datasheet package using
// headless Chrome (go-rod). This separation keeps the pipeline focused on
// document structure and content, while PDF rendering handles page layout,
// margins, and browser-based rendering concerns.
package pipeline

package pipeline

import (
	"bytes"
	"unicode"
	"unicode/utf8"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// emphasisTrigger is the trigger set of goldmark's built-in emphasis parser.
var emphasisTrigger = []byte{'*', '_'}

// newStrictEmphasisParser builds goldmark's default parser with the emphasis
// inline parser swapped for strictEmphasisParser.
func newStrictEmphasisParser() parser.Parser {
	defaults := parser.DefaultInlineParsers()
	inlines := make([]util.PrioritizedValue, 0, len(defaults))
	for _, v := range defaults {
		if ip, ok := v.Value.(parser.InlineParser); ok && bytes.Equal(ip.Trigger(), emphasisTrigger) {
			inlines = append(inlines, util.Prioritized(&strictEmphasisParser{}, v.Priority))
			continue
		}
		inlines = append(inlines, v)
	}

	return parser.NewParser(
		parser.WithBlockParsers(parser.DefaultBlockParsers()...),
		parser.WithInlineParsers(inlines...),
		parser.WithParagraphTransformers(parser.DefaultParagraphTransformers()...),
	)
}

// emphasisDelimiters pairs '*' with '*' and '_' with '_'.
type emphasisDelimiters struct{}

func (emphasisDelimiters) IsDelimiter(b byte) bool {
	return b == '*' || b == '_'
}

func (emphasisDelimiters) CanOpenCloser(opener, closer *parser.Delimiter) bool {
	return opener.Char == closer.Char
}

func (emphasisDelimiters) OnMatch(consumes int) ast.Node {
	return ast.NewEmphasis(consumes)
}

// strictEmphasisParser parses '*' and '_' runs like CommonMark, except that a
// run preceded by a word character cannot open emphasis and a run followed by
// one cannot close it. snake_case_names and 2*3*4 stay literal.
type strictEmphasisParser struct{}

func (p *strictEmphasisParser) Trigger() []byte {
	return emphasisTrigger
}

func (p *strictEmphasisParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	before := block.PrecendingCharacter()
	line, segment := block.PeekLine()
	node := parser.ScanDelimiter(line, before, 1, emphasisDelimiters{})
	if node == nil {
		return nil
	}

	after := ' '
	if node.OriginalLength < len(line) {
		after, _ = utf8.DecodeRune(line[node.OriginalLength:])
	}
	if isWordRune(before) {
		node.CanOpen = false
	}
	if isWordRune(after) {
		node.CanClose = false
	}

	node.Segment = segment.WithStop(segment.Start + node.OriginalLength)
	block.Advance(node.OriginalLength)
	pc.PushDelimiter(node)
	return node
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Compile-time interface checks.
var (
	_ parser.InlineParser       = (*strictEmphasisParser)(nil)
	_ parser.DelimiterProcessor = emphasisDelimiters{}
)

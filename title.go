package datasheet

import (
	"regexp"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TitleRule describes the datasheet heading rewritten by FormatTitle:
//
//	# <Heading>: <Prefix>_<identifier>
//
// becomes
//
//	# <Heading>: <Display> <Identifier Words>
type TitleRule struct {
	Heading string // e.g. "Datasheet"
	Prefix  string // e.g. "trencadis"
	Display string // e.g. "Trencadís"
}

// DefaultTitleRule is the Trencadís datasheet convention.
var DefaultTitleRule = TitleRule{
	Heading: "Datasheet",
	Prefix:  "trencadis",
	Display: "Trencadís",
}

// titlePatterns caches compiled patterns per rule.
var titlePatterns sync.Map // TitleRule -> *regexp.Regexp

// pattern returns the compiled heading pattern for the rule. Group 1 is the
// "# <Heading>: " lead and group 2 the snake_case token. The pattern is not
// anchored, so "## Datasheet: ..." and mid-line occurrences match too.
func (r TitleRule) pattern() *regexp.Regexp {
	if re, ok := titlePatterns.Load(r); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`(# ` + regexp.QuoteMeta(r.Heading) + `: )(` +
		regexp.QuoteMeta(r.Prefix) + `_[\p{L}\p{N}_]+)`)
	actual, _ := titlePatterns.LoadOrStore(r, re)
	return actual.(*regexp.Regexp)
}

// FormatTitle finds the first "# <Heading>: <prefix>_<words>" occurrence in
// text and rewrites it into its display form, e.g.
// "# Datasheet: trencadis_example_module" into
// "# Datasheet: Trencadís Example Module". Every other occurrence of the same
// heading and token is rewritten as well; a different token is left for the
// next call. Text without a match is returned unchanged.
func FormatTitle(text string, rule TitleRule) string {
	if rule.Prefix == "" {
		return text
	}

	m := rule.pattern().FindStringSubmatch(text)
	if m == nil {
		return text
	}

	return replaceWhole(text, m[0], m[1]+formatToken(m[2], rule))
}

// replaceWhole replaces each occurrence of old in s that is not followed by
// a word character, so "trencadis_a" never rewrites part of "trencadis_ab".
func replaceWhole(s, old, repl string) string {
	var b strings.Builder
	for {
		i := strings.Index(s, old)
		if i < 0 {
			b.WriteString(s)
			return b.String()
		}
		end := i + len(old)
		b.WriteString(s[:i])
		if r, _ := utf8.DecodeRuneInString(s[end:]); end < len(s) && isWordRune(r) {
			b.WriteString(old)
		} else {
			b.WriteString(repl)
		}
		s = s[end:]
	}
}

// formatToken turns "trencadis_i2c_master" into "Trencadís I2C Master".
func formatToken(token string, rule TitleRule) string {
	s := strings.ReplaceAll(token, rule.Prefix+"_", rule.Display+" ")
	s = strings.ReplaceAll(s, "_", " ")
	return titleCase(s)
}

// titleCase upper-cases the first letter of every run of cased letters and
// lower-cases the rest, so a letter after a digit starts a new word:
// "i2c" -> "I2C", "16550a" -> "16550A", "SPI" -> "Spi".
func titleCase(s string) string {
	caser := cases.Title(language.English)

	var b strings.Builder
	b.Grow(len(s))
	start := -1
	for i, r := range s {
		if isCased(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			b.WriteString(caser.String(s[start:i]))
			start = -1
		}
		b.WriteRune(r)
	}
	if start >= 0 {
		b.WriteString(caser.String(s[start:]))
	}
	return b.String()
}

func isCased(r rune) bool {
	return unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsTitle(r)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

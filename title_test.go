package datasheet

// Notes:
// - FormatTitle is pure: every test runs on in-memory strings only
// - Idempotence holds for documents with a single datasheet token; a second,
//   different token is rewritten by the next call, so that case opts out
// - The heading is matched anywhere in the text, including deeper heading
//   levels and mid-line occurrences

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestFormatTitle - Heading rewrite
// ---------------------------------------------------------------------------

func TestFormatTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		want     string
		multiple bool
	}{
		{
			name:  "literal datasheet heading",
			input: "# Datasheet: trencadis_example_module",
			want:  "# Datasheet: Trencadís Example Module",
		},
		{
			name:  "heading followed by body",
			input: "# Datasheet: trencadis_core\n\nSome text.\n",
			want:  "# Datasheet: Trencadís Core\n\nSome text.\n",
		},
		{
			name:  "heading after front matter lines",
			input: "Intro\n# Datasheet: trencadis_io_driver\n",
			want:  "Intro\n# Datasheet: Trencadís Io Driver\n",
		},
		{
			name:  "digits in token",
			input: "# Datasheet: trencadis_uart_2",
			want:  "# Datasheet: Trencadís Uart 2",
		},
		{
			name:  "trailing text after token is kept",
			input: "# Datasheet: trencadis_example_module (draft)",
			want:  "# Datasheet: Trencadís Example Module (draft)",
		},
		{
			name:     "only the first token is rewritten",
			input:    "# Datasheet: trencadis_a\n# Datasheet: trencadis_b\n",
			want:     "# Datasheet: Trencadís A\n# Datasheet: trencadis_b\n",
			multiple: true,
		},
		{
			name:  "repeated heading with the same token is rewritten everywhere",
			input: "# Datasheet: trencadis_core\n\nSee also\n# Datasheet: trencadis_core\n",
			want:  "# Datasheet: Trencadís Core\n\nSee also\n# Datasheet: Trencadís Core\n",
		},
		{
			name:     "longer token sharing the matched prefix is kept",
			input:    "# Datasheet: trencadis_a\n# Datasheet: trencadis_ab\n",
			want:     "# Datasheet: Trencadís A\n# Datasheet: trencadis_ab\n",
			multiple: true,
		},
		{
			name:  "second level heading",
			input: "## Datasheet: trencadis_nested",
			want:  "## Datasheet: Trencadís Nested",
		},
		{
			name:  "heading text in the middle of a line",
			input: "text # Datasheet: trencadis_inline",
			want:  "text # Datasheet: Trencadís Inline",
		},
		{
			name:  "upper case token is title cased",
			input: "# Datasheet: trencadis_SPI_BUS",
			want:  "# Datasheet: Trencadís Spi Bus",
		},
		{
			name:  "letter after digit starts a word",
			input: "# Datasheet: trencadis_i2c_master",
			want:  "# Datasheet: Trencadís I2C Master",
		},
		{
			name:  "digit inside a word",
			input: "# Datasheet: trencadis_axi4_lite",
			want:  "# Datasheet: Trencadís Axi4 Lite",
		},
		{
			name:  "trailing letter after digits",
			input: "# Datasheet: trencadis_uart_16550a",
			want:  "# Datasheet: Trencadís Uart 16550A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := FormatTitle(tt.input, DefaultTitleRule)
			if got != tt.want {
				t.Errorf("FormatTitle(%q) = %q, want %q", tt.input, got, tt.want)
			}

			if tt.multiple {
				return
			}
			if again := FormatTitle(got, DefaultTitleRule); again != got {
				t.Errorf("FormatTitle is not idempotent: %q then %q", got, again)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestFormatTitle_Identity - Text without the heading pattern
// ---------------------------------------------------------------------------

func TestFormatTitle_Identity(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"plain text",
		"# Datasheet: Trencadís Example Module",
		"# Datasheet: other_module",
		"#Datasheet: trencadis_nospace",
		"# Datasheet trencadis_missing_colon",
		"# Overview: trencadis_wrong_heading",
		"# Datasheet: trencadis",
		"```\ncode\n```",
	}

	for _, input := range inputs {
		if got := FormatTitle(input, DefaultTitleRule); got != input {
			t.Errorf("FormatTitle(%q) = %q, want unchanged", input, got)
		}
	}
}

// ---------------------------------------------------------------------------
// TestFormatTitle_CustomRule - Configurable heading, prefix and display name
// ---------------------------------------------------------------------------

func TestFormatTitle_CustomRule(t *testing.T) {
	t.Parallel()

	rule := TitleRule{Heading: "Module (v2)", Prefix: "acme.io", Display: "ACME"}

	got := FormatTitle("# Module (v2): acme.io_rate_limiter", rule)
	want := "# Module (v2): Acme Rate Limiter"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	// Metacharacters in the prefix are literal.
	if got := FormatTitle("# Module (v2): acmexio_rate", rule); got != "# Module (v2): acmexio_rate" {
		t.Errorf("prefix matched as a pattern: %q", got)
	}
}

func TestFormatTitle_EmptyPrefixIsIdentity(t *testing.T) {
	t.Parallel()

	input := "# Datasheet: _anything"
	if got := FormatTitle(input, TitleRule{Heading: "Datasheet"}); got != input {
		t.Errorf("got %q, want unchanged", got)
	}
}

// ---------------------------------------------------------------------------
// TestFormatTitle_DoesNotTouchBody - Only the token is rewritten
// ---------------------------------------------------------------------------

func TestFormatTitle_DoesNotTouchBody(t *testing.T) {
	t.Parallel()

	body := "\n\nUses trencadis_helper_fn internally.\n"
	got := FormatTitle("# Datasheet: trencadis_main"+body, DefaultTitleRule)

	if !strings.HasSuffix(got, body) {
		t.Errorf("body was modified: %q", got)
	}
}

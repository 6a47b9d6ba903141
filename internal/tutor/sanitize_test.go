package tutor

import "testing"

func TestPlainText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain arabic", "كِتَاب يعني book", "كِتَاب يعني book"},
		{"bold and italic", "**كتاب** means *book*", "كتاب means book"},
		{"header", "## Vocabulary\nكتاب", "Vocabulary\nكتاب"},
		{"bullets", "- كتاب\n* قلم", "• كتاب\n• قلم"},
		{"inline code", "say `marhaba`", "say marhaba"},
		{"code fence", "```\nمرحبا\n```", "مرحبا"},
		{"link", "[lesson](https://example.com)", "lesson (https://example.com)"},
		{"invisible characters", "مر\u200bحبا\ufeff", "مرحبا"},
		{"control characters", "a\x07b", "a b"},
		{"whitespace", "  one   two \r\n\n\n\nthree  ", "one two\n\nthree"},
		{"horizontal rule", "one\n---\ntwo", "one\n\ntwo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := PlainText(tt.input); got != tt.want {
				t.Errorf("PlainText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

package tutor

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	invisibleReplacer = strings.NewReplacer(
		"\u2060", "", "\u180E", "",
		"\u2028", "\n", "\u2029", "\n\n",
		"\u200B", "", "\uFEFF", "",
		"\u00AD", "", "\u202A", "",
		"\u202B", "", "\u202C", "",
		"\u202D", "", "\u202E", "",
	)

	controlCharsRegex     = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)
	multipleNewlinesRegex = regexp.MustCompile(`\n{3,}`)
	codeFenceRegex        = regexp.MustCompile("(?m)^```[a-zA-Z]*\\s*$")
	inlineCodeRegex       = regexp.MustCompile("`([^`]+)`")
	headersRegex          = regexp.MustCompile(`(?m)^#{1,6}\s+(.+)$`)
	boldRegex             = regexp.MustCompile(`\*\*(.+?)\*\*`)
	boldAltRegex          = regexp.MustCompile(`__(.+?)__`)
	italicRegex           = regexp.MustCompile(`\*([^*\s][^*\n]*)\*`)
	linksRegex            = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	bulletRegex           = regexp.MustCompile(`(?m)^(\s*)[\*\-\+]\s+`)
	horizontalRuleRegex   = regexp.MustCompile(`(?m)^\s*[\*\-_]{3,}\s*$`)
)

// PlainText turns a model answer into plain text: markdown markup is
// removed, invisible and control characters are dropped, and whitespace is
// normalised line by line. Arabic letters and diacritics are untouched.
func PlainText(input string) string {
	if input == "" {
		return ""
	}

	s := strings.ReplaceAll(input, "\r\n", "\n")
	s = invisibleReplacer.Replace(s)
	s = controlCharsRegex.ReplaceAllString(s, " ")

	s = codeFenceRegex.ReplaceAllString(s, "")
	s = inlineCodeRegex.ReplaceAllString(s, "$1")
	s = headersRegex.ReplaceAllString(s, "$1")
	s = boldRegex.ReplaceAllString(s, "$1")
	s = boldAltRegex.ReplaceAllString(s, "$1")
	s = italicRegex.ReplaceAllString(s, "$1")
	s = linksRegex.ReplaceAllString(s, "$1 ($2)")
	s = horizontalRuleRegex.ReplaceAllString(s, "")
	s = bulletRegex.ReplaceAllString(s, "$1• ")

	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = normalizeLineWhitespace(l)
	}
	s = strings.Join(lines, "\n")
	s = multipleNewlinesRegex.ReplaceAllString(s, "\n\n")

	return strings.TrimSpace(s)
}

func normalizeLineWhitespace(line string) string {
	var b strings.Builder
	space := false
	for _, r := range line {
		if unicode.IsSpace(r) {
			if !space {
				b.WriteRune(' ')
				space = true
			}
			continue
		}
		b.WriteRune(r)
		space = false
	}
	return strings.TrimSpace(b.String())
}

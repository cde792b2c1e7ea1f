package textutil

import (
	"regexp"
	"strings"
	"unicode"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)
var innerWhitespace = regexp.MustCompile(`\s\s+`)

// NormalizeLabel lowercases and strips all whitespace so that table
// labels like "CNR Number" and "cnr number :" compare equal.
func NormalizeLabel(label string) string {
	label = strings.ToLower(label)
	label = strings.Trim(label, " \n\t:")
	label = whitespaceRegex.ReplaceAllString(label, "")
	return label
}

func MatchLabel(label string, matchers []string) bool {
	label = NormalizeLabel(label)
	for _, m := range matchers {
		if strings.Contains(label, m) {
			return true
		}
	}
	return false
}

// CleanCell strips non-printable runes, trims and collapses inner
// whitespace. Table cells on the portal carry stray &nbsp; and
// newline padding that would otherwise leak into records.
func CleanCell(s string) string {
	var b strings.Builder
	for _, c := range s {
		// &nbsp; decodes to U+00A0; it still separates words and
		// must stay a space
		if c == '\u00a0' {
			b.WriteRune(' ')
			continue
		}
		if unicode.IsPrint(c) {
			b.WriteRune(c)
		}
	}
	out := strings.Trim(b.String(), " \t\n")
	return innerWhitespace.ReplaceAllString(out, " ")
}

package qa

import (
	"strings"
)

// NormalizeText prepares a string for matching: lowercase, every rune outside
// [a-z0-9] replaced with a space, runs of whitespace collapsed, result trimmed.
// Applied identically to queries, keywords, topics and question variations so
// comparisons stay symmetric.
func NormalizeText(value string) string {
	mapped := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return ' '
	}, strings.ToLower(value))

	return strings.Join(strings.Fields(mapped), " ")
}

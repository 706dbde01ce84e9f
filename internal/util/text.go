package util

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	sentencePunct = regexp.MustCompile(`([.!?])(\S)`)
	multiSpace    = regexp.MustCompile(`\s{2,}`)
)

// NormalizeText ensures a single space after sentence-ending punctuation and
// collapses runs of whitespace. Applied to the base prompt before translation
// so every language receives the same cleaned text.
func NormalizeText(text string) string {
	text = sentencePunct.ReplaceAllString(text, "$1 $2")
	return strings.TrimSpace(multiSpace.ReplaceAllString(text, " "))
}

// Truncate shortens s to at most maxLen bytes, appending an ellipsis marker.
// The cut never lands inside a multibyte rune, so the result stays valid
// UTF-8.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// CountLines returns the number of lines in a string.
func CountLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}

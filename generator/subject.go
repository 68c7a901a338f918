package generator

import (
	"strings"
	"unicode"
)

const subjectWords = 8

// subjectOf returns the first few words of text for quoting back in replies
func subjectOf(text string) string {
	words := strings.Fields(strings.TrimSpace(text))
	if len(words) > subjectWords {
		words = words[:subjectWords]
		return strings.TrimRightFunc(strings.Join(words, " "), isTrailingPunct) + "..."
	}
	return strings.TrimRightFunc(strings.Join(words, " "), isTrailingPunct)
}

func isTrailingPunct(r rune) bool {
	return unicode.IsPunct(r) && r != ')' && r != '"'
}


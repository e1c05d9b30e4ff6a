package discord

import (
	"regexp"
	"unicode/utf8"
)

var hashtagPattern = regexp.MustCompile(`#\w+`)

func extractHashtags(content string) []string {
	return hashtagPattern.FindAllString(content, -1)
}

// truncate shortens s to at most max characters, never splitting a rune.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-3]) + "..."
}

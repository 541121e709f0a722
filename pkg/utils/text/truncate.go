// ABOUTME: Text truncation helpers shared by the scorer and renderer

package text

import "unicode/utf8"

// Truncate cuts s to at most max runes without splitting a rune.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}

	runes := []rune(s)
	return string(runes[:max])
}

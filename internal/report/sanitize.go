package report

import (
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// DefaultPlaceholder replaces characters the console may not encode.
const DefaultPlaceholder = '?'

// Sanitize keeps printable ASCII, newlines and tabs; every other rune becomes placeholder.
func Sanitize(s string, placeholder rune) string {
	mapping := func(r rune) rune {
		if r == '\n' || r == '\t' || (r >= 0x20 && r <= 0x7e) {
			return r
		}
		return placeholder
	}
	out, _, err := transform.String(runes.Map(mapping), s)
	if err != nil {
		return strings.Map(mapping, s)
	}
	return out
}

// PlaceholderRune returns the first rune of s, or DefaultPlaceholder when s is empty or not ASCII.
func PlaceholderRune(s string) rune {
	for _, r := range s {
		if r >= 0x20 && r <= 0x7e {
			return r
		}
		break
	}
	return DefaultPlaceholder
}

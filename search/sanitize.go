package search

import "strings"

// Sanitize keeps ASCII letters, digits, ASCII whitespace (tab, newline, form
// feed, carriage return, space) and '&'. Everything else is removed, so the
// result never contains pattern metacharacters such as '\'.
func Sanitize(raw string) string {
	return strings.Map(func(r rune) rune {
		if allowed(r) {
			return r
		}
		return -1
	}, raw)
}

func allowed(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '&', r == ' ', r == '\t', r == '\n', r == '\f', r == '\r':
		return true
	}
	return false
}

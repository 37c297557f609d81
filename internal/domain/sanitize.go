package domain

import (
	"strings"
	"unicode"
)

// CleanText strips every rune outside the 7-bit ASCII range, maps newline
// characters to single spaces and trims the result. The engine decorates
// names with glyphs (body markers, retrograde signs) and pads table cells
// with newlines; the client schema is ASCII-only and single-line.
// Idempotent: cleaning a clean string returns it unchanged.
func CleanText(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\r':
			return ' '
		case r > unicode.MaxASCII:
			return -1
		default:
			return r
		}
	}, s)
	return strings.TrimSpace(cleaned)
}

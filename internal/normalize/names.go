package normalize

import (
	"strings"
	"unicode"
)

// NormalizeHeader trims surrounding whitespace, including a leading UTF-8
// BOM, from a column header.
func NormalizeHeader(h string) string {
	return strings.TrimFunc(h, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
}

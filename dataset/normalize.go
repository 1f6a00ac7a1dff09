package dataset

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold normalizes a header or categorical value for comparison: trimmed,
// lowercased, accents removed, runs of whitespace collapsed to one space.
// "Renda  per Cápita " and "renda per capita" fold to the same key.
func Fold(s string) string {
	folded, _, err := transform.String(accentStripper, s)
	if err != nil {
		// Transform only fails on malformed UTF-8; fall back to the input
		folded = s
	}
	folded = strings.ToLower(strings.TrimSpace(folded))
	return strings.Join(strings.Fields(folded), " ")
}

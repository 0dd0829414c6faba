package consolidate

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold upper-cases s and strips diacritics, so "Número" and "NUMERO" compare equal.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToUpper(out)
}

// containsFolded reports whether the folded label contains the folded keyword.
func containsFolded(foldedLabel, keyword string) bool {
	return strings.Contains(foldedLabel, Fold(keyword))
}

// Package fuzzy provides the string similarity primitive shared by the
// retrieval engine and the text correction pipeline.
package fuzzy

import (
	"strings"
	"unicode"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Ratio returns the Ratcliff/Obershelp similarity of a and b in [0,1].
// Strings are compared rune by rune: 2*M / (len(a)+len(b)) where M is the
// total size of the matching blocks. Two empty strings have ratio 1.
func Ratio(a, b string) float64 {
	return difflib.NewMatcher(split(a), split(b)).Ratio()
}

func split(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// Fold lowercases s and strips diacritics, so "Síntomas" and "sintomas"
// compare equal.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(folded)
}

package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// words that carry no title information and are dropped by NormalizeTitle
var noiseWords = map[string]bool{
	"subtitles": true,
	"titulky":   true,
}

// RemoveDiacritics strips combining marks, so "Pán prstenů" becomes
// "Pan prstenu".
func RemoveDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}

// NormalizeTitle folds a title or filename into a comparable form: lower
// case, no diacritics, words separated by single spaces, noise words removed.
// NormalizeTitle(NormalizeTitle(s)) == NormalizeTitle(s).
func NormalizeTitle(s string) string {
	s = RemoveDiacritics(strings.ToLower(s))
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	words := Filter(fields, func(w string) bool {
		return !noiseWords[w]
	})
	return strings.Join(words, " ")
}

package tagger

import (
	"slices"
	"strings"
	"unicode"

	"github.com/felipemarinho97/webshare-stremio/schema"
)

var (
	subtitleKeywords = []string{"TITULKY", "SUBS", "SUB", "TIT"}
	audioKeywords    = []string{"DUBBING", "DABING", "AUDIO", "DAB", "DUB"}
)

// tokenize splits s into upper-cased maximal runs of Unicode letters and
// digits. Everything else is a boundary.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for i := range fields {
		fields[i] = strings.ToUpper(fields[i])
	}
	return fields
}

// spellingSuffix returns the language whose spelling ends text, trying the
// longest spellings first.
func spellingSuffix(text string) (schema.Language, bool) {
	for _, s := range schema.SpellingList {
		if strings.HasSuffix(text, s) {
			return *schema.GetLanguageFromString(s), true
		}
	}
	return "", false
}

func spellingExact(text string) (schema.Language, bool) {
	l := schema.GetLanguageFromString(text)
	if l == nil {
		return "", false
	}
	return *l, true
}

// gluedTail reports whether what follows a glued keyword still ends the
// marker: nothing, a number or "HD" ("CZsub2", "ENaudioHD").
func gluedTail(s string) bool {
	return s == "" || s == "HD" || strings.TrimFunc(s, unicode.IsDigit) == ""
}

// concatenated looks for "<spelling><keyword>" glued inside a token ("CZsub",
// "SKDAB", "ceskydabing", "CZsub2") and for "<subtitle keyword><spelling>"
// ("subCZ").
func concatenated(text string) (schema.LanguageAtom, bool) {
	for _, group := range []struct {
		keywords  []string
		subtitles bool
	}{
		{subtitleKeywords, true},
		{audioKeywords, false},
	} {
		for _, k := range group.keywords {
			for start := 1; start+len(k) <= len(text); start++ {
				if text[start:start+len(k)] != k || !gluedTail(text[start+len(k):]) {
					continue
				}
				if lang, ok := spellingSuffix(text[:start]); ok {
					return schema.LanguageAtom{Code: lang, Subtitles: group.subtitles}, true
				}
			}
		}
	}

	for _, k := range subtitleKeywords {
		if !strings.HasPrefix(text, k) || len(text) == len(k) {
			continue
		}
		rest := strings.TrimRightFunc(strings.TrimPrefix(text, k), unicode.IsDigit)
		if lang, ok := spellingExact(rest); ok {
			return schema.LanguageAtom{Code: lang, Subtitles: true}, true
		}
	}

	return schema.LanguageAtom{}, false
}

// TagLanguage extracts Czech, English and Slovak audio or subtitle markers
// from a filename. It returns an empty tag when nothing is found.
//
// A language token next to a subtitle keyword ("CZ.titulky", "subs CZ") is
// tagged as subtitles, next to an audio keyword ("dabing SK") or alone
// ("movie.EN.avi") as audio. Tokens are bounded by anything that is not a
// letter or digit, so "englishman" never yields EN.
func TagLanguage(filename string) schema.LanguageTag {
	tokens := tokenize(filename)
	var atoms []schema.LanguageAtom

	for i, t := range tokens {
		if lang, ok := spellingExact(t); ok {
			atom := schema.LanguageAtom{Code: lang}
			if (i > 0 && slices.Contains(subtitleKeywords, tokens[i-1])) ||
				(i+1 < len(tokens) && slices.Contains(subtitleKeywords, tokens[i+1])) {
				atom.Subtitles = true
			}
			atoms = append(atoms, atom)
			continue
		}

		if atom, ok := concatenated(t); ok {
			atoms = append(atoms, atom)
		}
	}

	return schema.NewLanguageTag(atoms)
}

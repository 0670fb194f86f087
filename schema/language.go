package schema

import (
	"sort"
	"strings"
	"unicode/utf8"
)

type Language string

const (
	LanguageCzech   Language = "CZ"
	LanguageEnglish Language = "EN"
	LanguageSlovak  Language = "SK"
)

// Spellings seen in webshare filenames, upper-cased.
const (
	SpellingCzech      = "CZECH"
	SpellingCzech2     = "CZ"
	SpellingCzech3     = "CZE"
	SpellingCzech4     = "CS"
	SpellingCzech5     = "CES"
	SpellingCzech6     = "ČEŠTINA"
	SpellingCzech7     = "ČESKY"
	SpellingCzech8     = "CESTINA"
	SpellingCzech9     = "CESKY"
	SpellingEnglish    = "EN"
	SpellingEnglish2   = "ENG"
	SpellingSlovak     = "SLOVAK"
	SpellingSlovak2    = "SLOVENSKY"
	SpellingSlovak3    = "SK"
	SpellingSlovak4    = "SLO"
	SpellingSlovak5    = "SLK"
	SpellingSlovak6    = "SLOVENČINA"
	SpellingSlovak7    = "SLOVENCINA"
	subtitlesQualifier = "titulky"
)

var spellings = map[string]Language{
	SpellingCzech:    LanguageCzech,
	SpellingCzech2:   LanguageCzech,
	SpellingCzech3:   LanguageCzech,
	SpellingCzech4:   LanguageCzech,
	SpellingCzech5:   LanguageCzech,
	SpellingCzech6:   LanguageCzech,
	SpellingCzech7:   LanguageCzech,
	SpellingCzech8:   LanguageCzech,
	SpellingCzech9:   LanguageCzech,
	SpellingEnglish:  LanguageEnglish,
	SpellingEnglish2: LanguageEnglish,
	SpellingSlovak:   LanguageSlovak,
	SpellingSlovak2:  LanguageSlovak,
	SpellingSlovak3:  LanguageSlovak,
	SpellingSlovak4:  LanguageSlovak,
	SpellingSlovak5:  LanguageSlovak,
	SpellingSlovak6:  LanguageSlovak,
	SpellingSlovak7:  LanguageSlovak,
}

// SpellingList holds every known spelling, longest first, so that scans
// never let "CZ" shadow "CZE" or "CZECH".
var SpellingList = func() []string {
	list := make([]string, 0, len(spellings))
	for s := range spellings {
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(list[i]), utf8.RuneCountInString(list[j])
		if li != lj {
			return li > lj
		}
		return list[i] < list[j]
	})
	return list
}()

// GetLanguageFromString maps a spelling (any case) to its language code.
func GetLanguageFromString(s string) *Language {
	if l, ok := spellings[strings.ToUpper(s)]; ok {
		return &l
	}
	return nil
}

// LanguageAtom is a single entry of a LanguageTag, e.g. "CZ" or "CZ titulky".
type LanguageAtom struct {
	Code      Language
	Subtitles bool
}

func (a LanguageAtom) String() string {
	if a.Subtitles {
		return string(a.Code) + " " + subtitlesQualifier
	}
	return string(a.Code)
}

// LanguageTag is a sorted, deduplicated set of atoms. A nil or empty tag
// means no language was found.
type LanguageTag []LanguageAtom

func (t LanguageTag) String() string {
	parts := make([]string, 0, len(t))
	for _, a := range t {
		parts = append(parts, a.String())
	}
	return strings.Join(parts, "|")
}

func (t LanguageTag) IsEmpty() bool {
	return len(t) == 0
}

// NewLanguageTag builds a tag from found atoms. A subtitles atom suppresses
// the plain atom of the same language.
func NewLanguageTag(atoms []LanguageAtom) LanguageTag {
	subtitled := make(map[Language]bool)
	for _, a := range atoms {
		if a.Subtitles {
			subtitled[a.Code] = true
		}
	}

	seen := make(map[LanguageAtom]bool)
	var tag LanguageTag
	for _, a := range atoms {
		if !a.Subtitles && subtitled[a.Code] {
			continue
		}
		if seen[a] {
			continue
		}
		seen[a] = true
		tag = append(tag, a)
	}

	sort.Slice(tag, func(i, j int) bool {
		return tag[i].String() < tag[j].String()
	})
	return tag
}

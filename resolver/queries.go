package resolver

import (
	"fmt"

	"github.com/felipemarinho97/webshare-stremio/schema"
)

// Query kinds, used as the query_kind metric label.
const (
	KindPrimary  = "primary"
	KindSlovak   = "sk"
	KindEnglish  = "en"
	KindOriginal = "original"
)

type query struct {
	text string
	kind string
}

func buildQueries(info schema.ShowInfo) []query {
	slots := []query{
		{info.Name, KindPrimary},
		{info.NameSk, KindSlovak},
		{info.NameEn, KindEnglish},
		{info.OriginalName, KindOriginal},
	}

	var names []query
	seen := make(map[string]bool)
	for _, s := range slots {
		if s.text == "" || seen[s.text] {
			continue
		}
		seen[s.text] = true
		names = append(names, s)
	}

	if !info.IsSeries() {
		return names
	}

	se, err := info.SeasonEpisode()
	if err != nil {
		return nil
	}
	queries := make([]query, 0, 2*len(names))
	for _, n := range names {
		queries = append(queries,
			query{fmt.Sprintf("%s S%02dE%02d", n.text, se.Season, se.Episode), n.kind},
			query{fmt.Sprintf("%s %02dx%02d", n.text, se.Season, se.Episode), n.kind},
		)
	}
	return queries
}

// BuildQueries returns the search strings for info, primary title first.
// Movies are searched by their distinct names; each series name yields a
// "S01E02" and a "01x02" query. An invalid season or episode yields none.
func BuildQueries(info schema.ShowInfo) []string {
	queries := buildQueries(info)
	texts := make([]string, 0, len(queries))
	for _, q := range queries {
		texts = append(texts, q.text)
	}
	return texts
}

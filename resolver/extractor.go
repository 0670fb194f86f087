package resolver

import (
	"github.com/felipemarinho97/webshare-stremio/release"
	"github.com/felipemarinho97/webshare-stremio/schema"
	"github.com/felipemarinho97/webshare-stremio/tagger"
)

// MergeResults concatenates result lists and removes duplicate idents. The
// position of an ident is where it was first seen; its value is the last one
// seen.
func MergeResults(lists ...[]schema.RawSearchResult) []schema.RawSearchResult {
	index := make(map[string]int)
	var merged []schema.RawSearchResult
	for _, list := range lists {
		for _, r := range list {
			if i, ok := index[r.Ident]; ok {
				merged[i] = r
				continue
			}
			index[r.Ident] = len(merged)
			merged = append(merged, r)
		}
	}
	return merged
}

// ExtractCandidates parses every filename into language, episode and
// release fields.
func ExtractCandidates(results []schema.RawSearchResult) []schema.Candidate {
	candidates := make([]schema.Candidate, 0, len(results))
	for _, r := range results {
		candidates = append(candidates, schema.Candidate{
			RawSearchResult: r,
			Language:        tagger.TagLanguage(r.Name),
			Episode:         tagger.TagEpisode(r.Name),
			Release:         release.Parse(r.Name),
		})
	}
	return candidates
}

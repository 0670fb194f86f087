package resolver

import (
	"cmp"
	"slices"

	"github.com/felipemarinho97/webshare-stremio/schema"
)

// compareCandidates orders better candidates first. Strong matches are
// ordered by title match, votes and size; weak ones also by name match
// after the title. A strong and a weak candidate compare by title match
// only, which puts the strong one first since its title match is above
// StrongMatchThreshold.
func compareCandidates(a, b schema.Candidate) int {
	switch {
	case a.StrongMatch && b.StrongMatch:
		return cmp.Or(
			cmp.Compare(b.TitleMatch, a.TitleMatch),
			cmp.Compare(b.PositiveVotes, a.PositiveVotes),
			cmp.Compare(b.Size, a.Size),
		)
	case !a.StrongMatch && !b.StrongMatch:
		return cmp.Or(
			cmp.Compare(b.TitleMatch, a.TitleMatch),
			cmp.Compare(b.NameMatch, a.NameMatch),
			cmp.Compare(b.PositiveVotes, a.PositiveVotes),
			cmp.Compare(b.Size, a.Size),
		)
	default:
		return cmp.Compare(b.TitleMatch, a.TitleMatch)
	}
}

// Rank sorts candidates in place, best first, keeping the input order of
// equal ones, and truncates to limit (DefaultMaxResults when limit <= 0).
func Rank(candidates []schema.Candidate, limit int) []schema.Candidate {
	if limit <= 0 {
		limit = DefaultMaxResults
	}
	slices.SortStableFunc(candidates, compareCandidates)
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

package resolver

import (
	"context"
	"time"

	"github.com/felipemarinho97/webshare-stremio/logging"
	"github.com/felipemarinho97/webshare-stremio/monitoring"
	"github.com/felipemarinho97/webshare-stremio/schema"
	"github.com/sourcegraph/conc/iter"
)

// Searcher runs one full-text query against the file hosting.
type Searcher interface {
	Search(ctx context.Context, query, token string) ([]schema.RawSearchResult, error)
}

type Resolver struct {
	searcher   Searcher
	metrics    *monitoring.Metrics
	publicURL  string
	maxResults int
}

// NewResolver builds a Resolver. metrics may be nil.
func NewResolver(searcher Searcher, metrics *monitoring.Metrics, publicURL string, maxResults int) *Resolver {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return &Resolver{
		searcher:   searcher,
		metrics:    metrics,
		publicURL:  publicURL,
		maxResults: maxResults,
	}
}

// search runs every query concurrently. A failed query counts as empty.
// Result lists keep query order.
func (r *Resolver) search(ctx context.Context, queries []query, token string) [][]schema.RawSearchResult {
	mapper := iter.Mapper[query, []schema.RawSearchResult]{MaxGoroutines: len(queries)}
	return mapper.Map(queries, func(q *query) []schema.RawSearchResult {
		logging.DebugWithContext(ctx).Str("query", q.text).Str("kind", q.kind).Msg("Searching")

		results, err := r.searcher.Search(ctx, q.text, token)
		if err != nil {
			logging.WarnWithContext(ctx).Err(err).Str("query", q.text).Msg("Search failed")
			if r.metrics != nil {
				r.metrics.SearchErrors.WithLabelValues(q.kind).Inc()
			}
			return nil
		}

		if r.metrics != nil {
			r.metrics.SearchResults.WithLabelValues(q.kind).Add(float64(len(results)))
		}
		return results
	})
}

// ResolveStreams searches every query derived from info and returns the
// ranked candidates. It never fails: upstream errors only shrink the
// result.
func (r *Resolver) ResolveStreams(ctx context.Context, info schema.ShowInfo, token string) []schema.Candidate {
	start := time.Now()

	queries := buildQueries(info)
	if len(queries) == 0 {
		logging.WarnWithContext(ctx).Str("name", info.Name).Str("type", string(info.Type)).Msg("Nothing to search for")
		return nil
	}

	merged := MergeResults(r.search(ctx, queries, token)...)
	candidates := ScoreAndFilter(ExtractCandidates(merged), info, Options{
		PublicURL:  r.publicURL,
		Token:      token,
		MaxResults: r.maxResults,
	})

	elapsed := time.Since(start)
	if r.metrics != nil {
		r.metrics.ResolveRequests.WithLabelValues(string(info.Type)).Inc()
		r.metrics.ResolveDuration.WithLabelValues(string(info.Type)).Observe(elapsed.Seconds())
		r.metrics.CandidatesReturned.WithLabelValues(string(info.Type)).Observe(float64(len(candidates)))
	}
	logging.WithContext(ctx).
		Str("name", info.Name).
		Int("queries", len(queries)).
		Int("results", len(merged)).
		Int("candidates", len(candidates)).
		Dur("duration", elapsed).
		Msg("Resolved streams")

	return candidates
}

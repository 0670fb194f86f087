package resolver

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/felipemarinho97/webshare-stremio/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	mu      sync.Mutex
	results map[string][]schema.RawSearchResult
	errs    map[string]error
	queries []string
	tokens  []string
}

func (f *fakeSearcher) Search(_ context.Context, query, token string) ([]schema.RawSearchResult, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.tokens = append(f.tokens, token)
	f.mu.Unlock()

	if err := f.errs[query]; err != nil {
		return nil, err
	}
	return f.results[query], nil
}

func idents(candidates []schema.Candidate) []string {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.Ident)
	}
	return out
}

var miracleMovie = schema.ShowInfo{
	Name:         "Miracle man",
	OriginalName: "Miracle man",
	Type:         schema.MediaTypeMovie,
	Year:         "2024",
}

var miracleSeries = schema.ShowInfo{
	Name:    "Miracle man",
	Type:    schema.MediaTypeSeries,
	Season:  "1",
	Episode: "3",
}

func score(info schema.ShowInfo, results ...schema.RawSearchResult) []schema.Candidate {
	return ScoreAndFilter(ExtractCandidates(results), info, Options{
		PublicURL:  "http://localhost:7006/",
		Token:      "token",
		MaxResults: DefaultMaxResults,
	})
}

func TestBuildQueries(t *testing.T) {
	tests := []struct {
		name string
		info schema.ShowInfo
		want []string
	}{
		{
			name: "movie names are deduplicated",
			info: schema.ShowInfo{Name: "Pelíšky", NameSk: "Pelíšky", NameEn: "Cosy Dens", OriginalName: "Pelíšky", Type: schema.MediaTypeMovie},
			want: []string{"Pelíšky", "Cosy Dens"},
		},
		{
			name: "series adds both episode forms per name",
			info: schema.ShowInfo{Name: "Přátelé", OriginalName: "Friends", Type: schema.MediaTypeSeries, Season: "1", Episode: "3"},
			want: []string{"Přátelé S01E03", "Přátelé 01x03", "Friends S01E03", "Friends 01x03"},
		},
		{
			name: "three digit episode",
			info: schema.ShowInfo{Name: "One Piece", Type: schema.MediaTypeSeries, Season: "21", Episode: "1000"},
			want: []string{"One Piece S21E1000", "One Piece 21x1000"},
		},
		{
			name: "invalid episode yields nothing",
			info: schema.ShowInfo{Name: "Friends", Type: schema.MediaTypeSeries, Season: "1", Episode: "x"},
			want: []string{},
		},
		{
			name: "no names",
			info: schema.ShowInfo{Type: schema.MediaTypeMovie},
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildQueries(tt.info))
		})
	}
}

func TestMergeResults(t *testing.T) {
	merged := MergeResults(
		[]schema.RawSearchResult{{Ident: "a", Name: "first"}, {Ident: "b", Name: "b"}},
		nil,
		[]schema.RawSearchResult{{Ident: "c", Name: "c"}, {Ident: "a", Name: "second"}},
	)
	assert.Equal(t, []schema.RawSearchResult{
		{Ident: "a", Name: "second"},
		{Ident: "b", Name: "b"},
		{Ident: "c", Name: "c"},
	}, merged)
}

func TestExtractCandidates(t *testing.T) {
	candidates := ExtractCandidates([]schema.RawSearchResult{
		{Ident: "1", Name: "Miracle.Man.S02E05.720p.CZ.titulky.mkv"},
	})
	require.Len(t, candidates, 1)
	c := candidates[0]
	assert.Equal(t, "CZ titulky", c.Language.String())
	assert.Equal(t, &schema.EpisodeTag{Season: 2, Episode: 5}, c.Episode)
	assert.Equal(t, schema.Release{Title: "Miracle Man", Resolution: "720p"}, c.Release)
}

func TestScoreAndFilterMovieRanksByTitleSimilarity(t *testing.T) {
	got := score(miracleMovie,
		schema.RawSearchResult{Ident: "1", Name: "Morcle man 2024.avi"},
		schema.RawSearchResult{Ident: "2", Name: "Moracle man 2024.avi"},
		schema.RawSearchResult{Ident: "3", Name: "Miracle man 2024.avi"},
	)
	assert.Equal(t, []string{"3", "2", "1"}, idents(got))
	for _, c := range got {
		assert.True(t, c.StrongMatch, c.Name)
	}
}

func TestScoreAndFilterMovieRanksByVotes(t *testing.T) {
	got := score(miracleMovie,
		schema.RawSearchResult{Ident: "1", Name: "Miracle man 2024.avi", PositiveVotes: 4},
		schema.RawSearchResult{Ident: "2", Name: "Miracle man 2024.avi", PositiveVotes: 0},
		schema.RawSearchResult{Ident: "3", Name: "Miracle man 2024.avi", PositiveVotes: 1},
	)
	assert.Equal(t, []string{"1", "3", "2"}, idents(got))
}

func TestScoreAndFilterMovieRanksBySize(t *testing.T) {
	got := score(miracleMovie,
		schema.RawSearchResult{Ident: "1", Name: "Miracle man 2024.avi", Size: 600000},
		schema.RawSearchResult{Ident: "2", Name: "Miracle man 2024.avi", Size: 1200000},
		schema.RawSearchResult{Ident: "3", Name: "Miracle man 2024.avi", Size: 100000},
	)
	assert.Equal(t, []string{"2", "1", "3"}, idents(got))
}

func TestScoreAndFilterSeriesRanksStrongBeforeWeak(t *testing.T) {
	got := score(miracleSeries,
		schema.RawSearchResult{Ident: "1", Name: "720p S01 E03 Morcle man.avi"},
		schema.RawSearchResult{Ident: "2", Name: "720p S01 E03 Moracle man.avi"},
		schema.RawSearchResult{Ident: "3", Name: "720p S01 E03 Miracle man.avi"},
		schema.RawSearchResult{Ident: "4", Name: "Miracle man 720p S01 E03.avi", PositiveVotes: 1},
		schema.RawSearchResult{Ident: "5", Name: "Miracle man 720p VOD-gakqlqlqpapapa S01 E03.avi", PositiveVotes: 4},
		schema.RawSearchResult{Ident: "6", Name: "Miracle man 720p VOD-qqlkl S01 E03.avi", PositiveVotes: 2},
	)
	require.Equal(t, []string{"5", "6", "4", "3", "2", "1"}, idents(got))

	for _, c := range got[:3] {
		assert.True(t, c.StrongMatch, c.Name)
	}
	for _, c := range got[3:] {
		assert.False(t, c.StrongMatch, c.Name)
		assert.True(t, c.WeakMatch, c.Name)
		assert.Zero(t, c.TitleMatch, c.Name)
	}
	assert.InDelta(t, 0.6, got[3].NameMatch, 1e-9)
	assert.InDelta(t, 0.5, got[4].NameMatch, 1e-9)
	assert.InDelta(t, 0.4, got[5].NameMatch, 1e-9)
}

func TestScoreAndFilterAdmissibility(t *testing.T) {
	tests := []struct {
		name   string
		info   schema.ShowInfo
		result schema.RawSearchResult
		keep   bool
	}{
		{
			name:   "protected file",
			info:   miracleMovie,
			result: schema.RawSearchResult{Ident: "x", Name: "Miracle man 2024.avi", Protected: true},
		},
		{
			name:   "episode in movie search",
			info:   miracleMovie,
			result: schema.RawSearchResult{Ident: "x", Name: "Miracle man S01E01.avi"},
		},
		{
			name:   "multi-part movie",
			info:   miracleMovie,
			result: schema.RawSearchResult{Ident: "x", Name: "Miracle man Part 1.avi"},
			keep:   true,
		},
		{
			name:   "year mismatch",
			info:   miracleMovie,
			result: schema.RawSearchResult{Ident: "x", Name: "Miracle man 2023.avi"},
		},
		{
			name:   "no year in filename",
			info:   miracleMovie,
			result: schema.RawSearchResult{Ident: "x", Name: "Miracle man CZ.avi"},
			keep:   true,
		},
		{
			name:   "year in primary name disables year check",
			info:   schema.ShowInfo{Name: "Wonder Woman 1984", Type: schema.MediaTypeMovie, Year: "2020"},
			result: schema.RawSearchResult{Ident: "x", Name: "Wonder Woman 1984 2019.avi"},
			keep:   true,
		},
		{
			name:   "unrelated title",
			info:   miracleMovie,
			result: schema.RawSearchResult{Ident: "x", Name: "Completely Different Film 2024.avi"},
		},
		{
			name:   "series matching episode",
			info:   miracleSeries,
			result: schema.RawSearchResult{Ident: "x", Name: "Miracle.man.1x03.mkv"},
			keep:   true,
		},
		{
			name:   "series other episode",
			info:   miracleSeries,
			result: schema.RawSearchResult{Ident: "x", Name: "Miracle man S01E04.avi"},
		},
		{
			name:   "series without episode",
			info:   miracleSeries,
			result: schema.RawSearchResult{Ident: "x", Name: "Miracle man.avi"},
		},
		{
			name:   "series with invalid canonical episode",
			info:   schema.ShowInfo{Name: "Miracle man", Type: schema.MediaTypeSeries, Season: "1", Episode: ""},
			result: schema.RawSearchResult{Ident: "x", Name: "Miracle man S01E03.avi"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := score(tt.info, tt.result)
			if tt.keep {
				assert.Len(t, got, 1)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestScoreAndFilterWeakThresholdIsStrict(t *testing.T) {
	// against "abcdefghij": 2*2/(9+6) rounds to 0.3, 2*3/(9+6) is 0.4
	info := schema.ShowInfo{Name: "abcdefghij", Type: schema.MediaTypeMovie}
	got := score(info,
		schema.RawSearchResult{Ident: "at-threshold", Name: "abcxyzw.avi"},
		schema.RawSearchResult{Ident: "above-threshold", Name: "abcdxyz.avi"},
	)

	require.Len(t, got, 1)
	assert.Equal(t, "above-threshold", got[0].Ident)
	assert.InDelta(t, 0.4, got[0].NameMatch, 1e-9)
	assert.False(t, got[0].StrongMatch)
}

func TestScoreAndFilterDecoration(t *testing.T) {
	got := ScoreAndFilter(ExtractCandidates([]schema.RawSearchResult{{
		Ident:         "abc",
		Name:          "Miracle.Man.2024.1080p.WEB-DL.CZ.titulky.mkv",
		Size:          1200000,
		PositiveVotes: 4,
		NegativeVotes: 1,
	}}), miracleMovie, Options{PublicURL: "http://localhost:7006/", Token: "t k"})
	require.Len(t, got, 1)

	c := got[0]
	assert.Equal(t, "Miracle.Man.2024.1080p.WEB-DL.CZ.titulky.mkv\n🌐 CZ titulky\n👍 4 👎 1\n💾 1.2 MB", c.Description)
	assert.Equal(t, "Webshare ✅ 1080p", c.DisplayName)
	assert.Equal(t, "http://localhost:7006/getUrl/abc?token=t+k", c.URL)
	assert.Equal(t, "WebshareStremio|CZ titulky|1080p|WEB-DL", c.BingeGroup)
	assert.Equal(t, "miracle man 2024", c.NormalizedTitle)
	assert.Equal(t, 1.0, c.TitleMatch)

	stream := c.Stream()
	assert.Nil(t, stream.SeasonEpisode)
	assert.Equal(t, uint64(1200000), stream.BehaviorHints.VideoSize)
}

func TestScoreAndFilterSeriesStreamCarriesEpisode(t *testing.T) {
	got := score(miracleSeries, schema.RawSearchResult{Ident: "1", Name: "Miracle man S01E03 720p.mkv"})
	require.Len(t, got, 1)
	assert.Equal(t, "Webshare ✅ 720p", got[0].DisplayName)
	assert.Equal(t, &schema.EpisodeTag{Season: 1, Episode: 3}, got[0].Stream().SeasonEpisode)
}

func TestRankPutsStrongBeforeWeak(t *testing.T) {
	var candidates []schema.Candidate
	for i := range 20 {
		c := schema.Candidate{RawSearchResult: schema.RawSearchResult{Ident: fmt.Sprint(i), PositiveVotes: 20 - i}}
		if i%3 == 0 {
			c.StrongMatch = true
			c.TitleMatch = 0.51 + float64(i)/100
		} else {
			c.WeakMatch = true
			c.TitleMatch = float64(i) / 40
			c.NameMatch = 0.9
		}
		candidates = append(candidates, c)
	}

	ranked := Rank(candidates, 0)
	require.Len(t, ranked, 20)
	seenWeak := false
	for _, c := range ranked {
		if !c.StrongMatch {
			seenWeak = true
			continue
		}
		assert.False(t, seenWeak, "strong candidate %s ranked after a weak one", c.Ident)
	}
}

func TestRankTruncates(t *testing.T) {
	candidates := make([]schema.Candidate, 150)
	for i := range candidates {
		candidates[i] = schema.Candidate{RawSearchResult: schema.RawSearchResult{Ident: fmt.Sprint(i)}, StrongMatch: true, TitleMatch: 1}
	}
	ranked := Rank(candidates, 0)
	require.Len(t, ranked, DefaultMaxResults)
	assert.Equal(t, "0", ranked[0].Ident, "equal candidates keep their order")
	assert.Len(t, Rank(ranked, 10), 10)
}

func TestResolveStreams(t *testing.T) {
	searcher := &fakeSearcher{
		results: map[string][]schema.RawSearchResult{
			"Zázračný muž": {
				{Ident: "a", Name: "Zazracny muz 2024 CZ.avi", PositiveVotes: 1},
				{Ident: "b", Name: "Miracle man 2024.avi"},
			},
			"Miracle man": {
				{Ident: "b", Name: "Miracle man 2024.avi", PositiveVotes: 3},
				{Ident: "c", Name: "Something else entirely 1999.avi"},
			},
		},
	}
	info := schema.ShowInfo{Name: "Zázračný muž", OriginalName: "Miracle man", Type: schema.MediaTypeMovie, Year: "2024"}

	got := NewResolver(searcher, nil, "http://localhost:7006/", 0).ResolveStreams(context.Background(), info, "secret")

	assert.Equal(t, []string{"b", "a"}, idents(got))
	assert.Equal(t, 3, got[0].PositiveVotes, "later duplicate wins")
	assert.ElementsMatch(t, []string{"Zázračný muž", "Miracle man"}, searcher.queries)
	assert.Equal(t, []string{"secret", "secret"}, searcher.tokens)
}

func TestResolveStreamsIsolatesFailedQueries(t *testing.T) {
	searcher := &fakeSearcher{
		results: map[string][]schema.RawSearchResult{
			"Miracle man S01E03": {{Ident: "1", Name: "Miracle man S01E03.mkv"}},
		},
		errs: map[string]error{
			"Miracle man 01x03": errors.New("upstream down"),
		},
	}

	got := NewResolver(searcher, nil, "http://localhost:7006/", 0).ResolveStreams(context.Background(), miracleSeries, "token")
	assert.Equal(t, []string{"1"}, idents(got))
}

func TestResolveStreamsWithoutQueries(t *testing.T) {
	searcher := &fakeSearcher{}
	got := NewResolver(searcher, nil, "", 0).ResolveStreams(context.Background(), schema.ShowInfo{Type: schema.MediaTypeMovie}, "token")
	assert.Empty(t, got)
	assert.Empty(t, searcher.queries)
}

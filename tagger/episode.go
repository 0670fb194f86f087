package tagger

import (
	"regexp"
	"strconv"

	"github.com/felipemarinho97/webshare-stremio/schema"
)

// nan is a single Unicode character that is neither a letter nor a digit.
const nan = `[^\p{L}\p{N}]`

var (
	// S01E01, S1.E1, Season 1 Episode 1, 1x01, 1 × 01
	seasonEpisodeRegex = regexp.MustCompile(
		`(?i)(?:^|` + nan + `)(?:(?:s|season\s*)(\d{1,2})` + nan + `*(?:e|ep|episode\s*)(\d{1,3})` +
			`|(\d{1,2})` + nan + `*(?:x|×)` + nan + `*(\d{1,3}))(?:` + nan + `|$)`,
	)

	// E01, Ep 01, Episode01, #01, Part 1, Pt.1
	episodeOnlyRegex = regexp.MustCompile(
		`(?i)(?:^|` + nan + `)(?:e|ep|episode|#|part|pt)` + nan + `*(\d{1,3})(?:` + nan + `|$)`,
	)
)

// TagEpisode extracts a season/episode pair from a filename. Episode-only
// and part-based names are assumed to belong to season 1. It returns nil
// when the filename carries no episode marker.
func TagEpisode(filename string) *schema.EpisodeTag {
	if m := seasonEpisodeRegex.FindStringSubmatch(filename); m != nil {
		switch {
		case m[1] != "" && m[2] != "":
			return newEpisodeTag(m[1], m[2])
		case m[3] != "" && m[4] != "":
			return newEpisodeTag(m[3], m[4])
		}
	}

	if m := episodeOnlyRegex.FindStringSubmatch(filename); m != nil {
		return newEpisodeTag("1", m[1])
	}

	return nil
}

func newEpisodeTag(season, episode string) *schema.EpisodeTag {
	s, err := strconv.Atoi(season)
	if err != nil {
		return nil
	}
	e, err := strconv.Atoi(episode)
	if err != nil {
		return nil
	}
	return &schema.EpisodeTag{Season: s, Episode: e}
}

package resolver

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/felipemarinho97/webshare-stremio/release"
	"github.com/felipemarinho97/webshare-stremio/schema"
	"github.com/felipemarinho97/webshare-stremio/utils"
)

const (
	StrongMatchThreshold = 0.5
	WeakMatchThreshold   = 0.3
	DefaultMaxResults    = 100

	displayLabel    = "Webshare"
	bingeGroupLabel = "WebshareStremio"
)

// multi-part movies ("Part 1", "part.2") may carry an episode marker
var partRegex = regexp.MustCompile(`(?i)(?:^|[^\p{L}])part(?:[^\p{L}]|$)`)

type Options struct {
	PublicURL  string
	Token      string
	MaxResults int
}

// targets builds the normalized strings candidates are compared against:
// every name of info plus the "localized original" and "primary original"
// combinations. suffix is appended to each of them.
func targets(info schema.ShowInfo, suffix string) []string {
	names := info.Names()
	if len(names) == 0 {
		return nil
	}

	primary := names[0]
	original := info.OriginalName
	if original == "" {
		original = primary
	}
	forms := append([]string{}, names...)
	if len(names) > 1 && names[1] != original {
		forms = append(forms, names[1]+"/"+original)
	}
	if primary != original {
		forms = append(forms, primary+"/"+original)
	}

	var out []string
	seen := make(map[string]bool)
	for _, f := range forms {
		t := utils.NormalizeTitle(f)
		if t == "" {
			continue
		}
		t += suffix
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

func yearSuffix(year int) string {
	if year == 0 {
		return ""
	}
	return " " + strconv.Itoa(year)
}

func roundScore(x float64) float64 {
	return math.Round(x*10) / 10
}

// admissible reports whether c may be offered for info, given the canonical
// episode of a series (nil for movies or an unparseable one).
func admissible(c schema.Candidate, info schema.ShowInfo, episode *schema.EpisodeTag) bool {
	if c.Protected {
		return false
	}
	if info.IsSeries() {
		return episode != nil && c.Episode != nil && *c.Episode == *episode
	}
	if c.Episode != nil && !partRegex.MatchString(c.Name) {
		return false
	}
	return true
}

func decorate(c *schema.Candidate, opts Options) {
	var desc strings.Builder
	desc.WriteString(c.Name)
	if !c.Language.IsEmpty() {
		desc.WriteString("\n🌐 " + c.Language.String())
	}
	fmt.Fprintf(&desc, "\n👍 %d 👎 %d", c.PositiveVotes, c.NegativeVotes)
	desc.WriteString("\n💾 " + utils.HumanSize(c.Size))
	c.Description = desc.String()

	name := displayLabel
	if c.StrongMatch {
		name += " ✅"
	}
	c.DisplayName = strings.TrimSpace(name + " " + c.Release.Resolution)

	c.URL = opts.PublicURL + "getUrl/" + url.PathEscape(c.Ident) + "?token=" + url.QueryEscape(opts.Token)
	c.BingeGroup = strings.Join([]string{
		bingeGroupLabel, c.Language.String(), c.Release.Resolution, c.Release.Source,
	}, "|")
}

// ScoreAndFilter scores candidates against info, drops the inadmissible
// ones and returns the rest ranked, at most opts.MaxResults of them.
//
// For movies whose primary name carries no year, a candidate with a parsed
// year is compared year-qualified and dropped when the years differ.
func ScoreAndFilter(candidates []schema.Candidate, info schema.ShowInfo, opts Options) []schema.Candidate {
	var episode *schema.EpisodeTag
	if info.IsSeries() {
		if se, err := info.SeasonEpisode(); err == nil {
			episode = &se
		}
	}

	year := info.YearNumber()
	reconcile := info.IsMovie() && year != 0
	if names := info.Names(); reconcile && len(names) > 0 {
		reconcile = release.Parse(names[0]).Year == 0
	}

	plain := targets(info, "")
	qualified := targets(info, yearSuffix(year))

	var kept []schema.Candidate
	for _, c := range candidates {
		if !admissible(c, info, episode) {
			continue
		}

		c.Series = info.IsSeries()
		c.NormalizedTitle = utils.NormalizeTitle(c.Release.Title)
		c.NormalizedName = utils.NormalizeTitle(release.TrimExtension(c.Name))

		compareTo := plain
		if reconcile && c.Release.Year != 0 {
			if c.Release.Year != year {
				continue
			}
			compareTo = qualified
			if c.NormalizedTitle != "" {
				c.NormalizedTitle += yearSuffix(c.Release.Year)
			}
		}

		c.TitleMatch = utils.BestMatch(c.NormalizedTitle, compareTo)
		c.NameMatch = roundScore(utils.BestMatch(c.NormalizedName, compareTo))
		c.StrongMatch = c.TitleMatch > StrongMatchThreshold
		c.WeakMatch = c.NameMatch > WeakMatchThreshold
		if !c.StrongMatch && !c.WeakMatch {
			continue
		}

		decorate(&c, opts)
		kept = append(kept, c)
	}

	return Rank(kept, opts.MaxResults)
}

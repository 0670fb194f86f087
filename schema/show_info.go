package schema

import (
	"fmt"
	"strconv"
	"strings"
)

type MediaType string

const (
	MediaTypeMovie  MediaType = "movie"
	MediaTypeSeries MediaType = "series"
)

// ShowInfo is the canonical metadata of the title being resolved. It is
// owned by the caller (usually a TMDB or Cinemeta lookup).
type ShowInfo struct {
	Name         string    `json:"name"`
	NameSk       string    `json:"nameSk,omitempty"`
	NameEn       string    `json:"nameEn,omitempty"`
	OriginalName string    `json:"originalName,omitempty"`
	Type         MediaType `json:"type"`
	Year         string    `json:"year,omitempty"`
	Season       string    `json:"series,omitempty"`
	Episode      string    `json:"episode,omitempty"`
}

func (s ShowInfo) IsSeries() bool {
	return s.Type == MediaTypeSeries
}

func (s ShowInfo) IsMovie() bool {
	return s.Type == MediaTypeMovie
}

// Names returns the distinct non-empty names in priority order: primary,
// Slovak, English, original.
func (s ShowInfo) Names() []string {
	var names []string
	seen := make(map[string]bool)
	for _, n := range []string{s.Name, s.NameSk, s.NameEn, s.OriginalName} {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		names = append(names, n)
	}
	return names
}

// SeasonEpisode parses Season and Episode into positive integers.
func (s ShowInfo) SeasonEpisode() (EpisodeTag, error) {
	season, err := strconv.Atoi(strings.TrimSpace(s.Season))
	if err != nil || season <= 0 {
		return EpisodeTag{}, fmt.Errorf("invalid season %q", s.Season)
	}
	episode, err := strconv.Atoi(strings.TrimSpace(s.Episode))
	if err != nil || episode <= 0 {
		return EpisodeTag{}, fmt.Errorf("invalid episode %q", s.Episode)
	}
	return EpisodeTag{Season: season, Episode: episode}, nil
}

// YearNumber returns the release year, or 0 when unknown.
func (s ShowInfo) YearNumber() int {
	y := strings.TrimSpace(s.Year)
	if len(y) < 4 {
		return 0
	}
	year, err := strconv.Atoi(y[:4])
	if err != nil {
		return 0
	}
	return year
}

// EpisodeTag is a season/episode pair parsed from a filename.
type EpisodeTag struct {
	Season  int `json:"season"`
	Episode int `json:"episode"`
}

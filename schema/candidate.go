package schema

// RawSearchResult is one <file> entry of a webshare search response.
type RawSearchResult struct {
	Ident         string `json:"ident"`
	Name          string `json:"name"`
	Size          uint64 `json:"size"`
	PositiveVotes int    `json:"positive_votes"`
	NegativeVotes int    `json:"negative_votes"`
	Protected     bool   `json:"protected"`
}

// Release holds the fields a release-name parser can recover from a
// filename. Zero values mean the field was not found.
type Release struct {
	Title      string `json:"title"`
	Resolution string `json:"resolution,omitempty"`
	Source     string `json:"source,omitempty"`
	Year       int    `json:"year,omitempty"`
}

type Candidate struct {
	RawSearchResult

	Language LanguageTag `json:"-"`
	Episode  *EpisodeTag `json:"-"`
	Release  Release     `json:"-"`
	Series   bool        `json:"-"`

	NormalizedTitle string  `json:"-"`
	NormalizedName  string  `json:"-"`
	TitleMatch      float64 `json:"-"`
	NameMatch       float64 `json:"-"`
	StrongMatch     bool    `json:"-"`
	WeakMatch       bool    `json:"-"`

	Description string `json:"-"`
	DisplayName string `json:"-"`
	URL         string `json:"-"`
	BingeGroup  string `json:"-"`
}

type BehaviorHints struct {
	BingeGroup string `json:"bingeGroup"`
	VideoSize  uint64 `json:"videoSize"`
	Filename   string `json:"filename"`
}

// Stream is the serialized form of a ranked candidate.
type Stream struct {
	Ident         string        `json:"ident"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	URL           string        `json:"url"`
	SeasonEpisode *EpisodeTag   `json:"seasonEpisode,omitempty"`
	PositiveVotes int           `json:"posVotes"`
	BehaviorHints BehaviorHints `json:"behaviorHints"`
}

func (c Candidate) Stream() Stream {
	var se *EpisodeTag
	if c.Series {
		se = c.Episode
	}
	return Stream{
		Ident:         c.Ident,
		Name:          c.DisplayName,
		Description:   c.Description,
		URL:           c.URL,
		SeasonEpisode: se,
		PositiveVotes: c.PositiveVotes,
		BehaviorHints: BehaviorHints{
			BingeGroup: c.BingeGroup,
			VideoSize:  c.Size,
			Filename:   c.Name,
		},
	}
}

func StreamsFromCandidates(candidates []Candidate) []Stream {
	streams := make([]Stream, 0, len(candidates))
	for _, c := range candidates {
		streams = append(streams, c.Stream())
	}
	return streams
}

package release

import (
	"path"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/felipemarinho97/webshare-stremio/schema"
	ptn "github.com/razsteinmetz/go-ptn"
)

var containers = map[string]bool{
	".mkv": true, ".avi": true, ".mp4": true, ".m4v": true, ".mov": true,
	".wmv": true, ".mpg": true, ".mpeg": true, ".ts": true, ".m2ts": true,
	".webm": true, ".flv": true, ".vob": true, ".divx": true, ".3gp": true,
}

var sources = map[string]string{
	"bluray": "BluRay",
	"bdrip":  "BDRip",
	"brrip":  "BRRip",
	"remux":  "Remux",
	"webdl":  "WEB-DL",
	"webrip": "WEBRip",
	"hdtv":   "HDTV",
	"pdtv":   "PDTV",
	"dvdrip": "DVDRip",
	"dvdscr": "DVDScr",
	"hdrip":  "HDRip",
	"tvrip":  "TVRip",
	"vhsrip": "VHSRip",
	"cam":    "CAM",
	"hdcam":  "HDCAM",
	"vod":    "VOD",
}

var codecs = map[string]bool{
	"x264": true, "x265": true, "h264": true, "h265": true, "hevc": true,
	"avc": true, "xvid": true, "divx": true, "av1": true, "vp9": true,
}

var (
	yearRegex       = regexp.MustCompile(`^(?:19|20)\d{2}$`)
	resolutionRegex = regexp.MustCompile(`^\d{3,4}[pi]$`)
	episodeRegex    = regexp.MustCompile(`^(?:s\d{1,2}(?:e\d{1,3})?|\d{1,2}x\d{1,3}|e\d{1,3})$`)
)

type token struct {
	text  string // lower-cased
	start int
}

func tokenize(s string) []token {
	var tokens []token
	start := -1
	for i, r := range s {
		alnum := unicode.IsLetter(r) || unicode.IsDigit(r)
		switch {
		case alnum && start < 0:
			start = i
		case !alnum && start >= 0:
			tokens = append(tokens, token{text: strings.ToLower(s[start:i]), start: start})
			start = -1
		}
	}
	if start >= 0 {
		tokens = append(tokens, token{text: strings.ToLower(s[start:]), start: start})
	}
	return tokens
}

// Parse extracts the title, year, resolution and source of a release name
// such as "Miracle.Man.2024.1080p.WEB-DL.x264.mkv". The title is whatever
// precedes the first recognised marker; it is empty when the name starts
// with a resolution or an episode, while a leading source or codec word
// ("Cam", "Remux") is part of the title. Markers the scan does not know are
// taken from go-ptn. Missing fields are left at their zero value.
func Parse(name string) schema.Release {
	name = TrimExtension(name)
	tokens := tokenize(name)

	r, titleEnd := scan(tokens, len(name))
	if len(tokens) > 1 {
		titleEnd = fill(&r, name, tokens[1].start, titleEnd)
	}
	r.Title = cleanTitle(name[:titleEnd])
	return r
}

func scan(tokens []token, titleEnd int) (schema.Release, int) {
	var r schema.Release
	mark := func(t token) {
		if t.start < titleEnd {
			titleEnd = t.start
		}
	}

	for i, t := range tokens {
		var next string
		if i+1 < len(tokens) {
			next = tokens[i+1].text
		}

		switch {
		case i > 0 && yearRegex.MatchString(t.text):
			if r.Year == 0 {
				r.Year, _ = strconv.Atoi(t.text)
			}
			mark(t)
		case resolutionRegex.MatchString(t.text):
			if r.Resolution == "" {
				r.Resolution = t.text
			}
			mark(t)
		case t.text == "4k" || t.text == "uhd":
			if r.Resolution == "" {
				r.Resolution = "2160p"
			}
			mark(t)
		case episodeRegex.MatchString(t.text):
			mark(t)
		case i == 0:
			// title word
		case t.text == "web" && (next == "dl" || next == "rip"):
			if r.Source == "" {
				r.Source = sources["web"+next]
			}
			mark(t)
		case t.text == "blu" && next == "ray":
			if r.Source == "" {
				r.Source = sources["bluray"]
			}
			mark(t)
		case sources[t.text] != "":
			if r.Source == "" {
				r.Source = sources[t.text]
			}
			mark(t)
		case codecs[t.text]:
			mark(t)
		}
	}
	return r, titleEnd
}

// fill completes r with the year, resolution and quality go-ptn finds in
// name. A value is only taken when it first occurs at or after minStart, the
// start of the second token, so the first word always stays in the title. The
// returned title end moves before every value taken.
func fill(r *schema.Release, name string, minStart, titleEnd int) int {
	info, err := ptn.Parse(name)
	if err != nil {
		return titleEnd
	}

	lower := strings.ToLower(name)
	at := func(value string) (int, bool) {
		if value == "" {
			return 0, false
		}
		i := strings.Index(lower, strings.ToLower(value))
		return i, i >= minStart
	}
	take := func(i int) {
		if i < titleEnd {
			titleEnd = i
		}
	}

	if r.Year == 0 && info.Year != 0 {
		if i, ok := at(strconv.Itoa(info.Year)); ok {
			r.Year = info.Year
			take(i)
		}
	}
	if r.Resolution == "" {
		if i, ok := at(info.Resolution); ok {
			r.Resolution = strings.ToLower(info.Resolution)
			take(i)
		}
	}
	if r.Source == "" {
		if i, ok := at(info.Quality); ok {
			r.Source = normalizeSource(info.Quality)
			take(i)
		}
	}
	return titleEnd
}

// normalizeSource maps a quality spelling such as "web-dl" or "Blu-Ray" to
// its canonical form. Unknown spellings are kept as they are.
func normalizeSource(q string) string {
	key := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, q)
	if s, ok := sources[key]; ok {
		return s
	}
	return strings.TrimSpace(q)
}

// TrimExtension removes a known video container extension from name.
func TrimExtension(name string) string {
	if ext := path.Ext(name); containers[strings.ToLower(ext)] {
		return strings.TrimSuffix(name, ext)
	}
	return name
}

func cleanTitle(s string) string {
	s = strings.NewReplacer(".", " ", "_", " ").Replace(s)
	s = strings.TrimRightFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(strings.Fields(s), " ")
}

package webshare

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/felipemarinho97/webshare-stremio/logging"
	"github.com/felipemarinho97/webshare-stremio/requester"
	"github.com/felipemarinho97/webshare-stremio/schema"
)

const (
	DefaultBaseURL          = "https://webshare.cz/api/"
	DefaultSearchLimit      = 100
	DefaultFileLinkAttempts = 3

	statusOK   = "OK"
	tokenField = "wst"
)

// ErrUpstream wraps every failure of the webshare API: transport errors,
// non-200 responses, malformed XML and responses whose status is not OK.
var ErrUpstream = errors.New("webshare upstream error")

type Config struct {
	BaseURL          string
	SearchLimit      int
	FileLinkAttempts uint
	RetryDelay       time.Duration
}

type Client struct {
	r   *requester.Requester
	cfg Config
}

func NewClient(r *requester.Requester, cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = DefaultSearchLimit
	}
	if cfg.FileLinkAttempts == 0 {
		cfg.FileLinkAttempts = DefaultFileLinkAttempts
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 500 * time.Millisecond
	}
	return &Client{r: r, cfg: cfg}
}

type response struct {
	XMLName xml.Name `xml:"response"`
	Status  string   `xml:"status"`
	Code    string   `xml:"code"`
	Message string   `xml:"message"`
	Files   []file   `xml:"file"`
	Link    string   `xml:"link"`
}

type file struct {
	Ident         string `xml:"ident"`
	Name          string `xml:"name"`
	Size          string `xml:"size"`
	PositiveVotes string `xml:"positive_votes"`
	NegativeVotes string `xml:"negative_votes"`
	Password      string `xml:"password"`
}

func (f file) toResult() schema.RawSearchResult {
	return schema.RawSearchResult{
		Ident:         strings.TrimSpace(f.Ident),
		Name:          strings.TrimSpace(f.Name),
		Size:          parseUint(f.Size),
		PositiveVotes: int(parseUint(f.PositiveVotes)),
		NegativeVotes: int(parseUint(f.NegativeVotes)),
		Protected:     strings.TrimSpace(f.Password) == "1",
	}
}

func parseUint(s string) uint64 {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func decode(body []byte) (*response, error) {
	var resp response
	if err := xml.NewDecoder(bytes.NewReader(body)).Decode(&resp); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %w", ErrUpstream, err)
	}
	return &resp, nil
}

func (r *response) err(op string) error {
	if r.Status == statusOK {
		return nil
	}
	return fmt.Errorf("%w: %s: status %s %s %s", ErrUpstream, op, r.Status, r.Code, r.Message)
}

func hasStatusOK(body []byte) bool {
	resp, err := decode(body)
	return err == nil && resp.Status == statusOK
}

// Search runs a full-text video search. The token is sent with the request
// but is not part of the cache key, so results are shared between users.
// Without a token the cache is bypassed and webshare decides.
func (c *Client) Search(ctx context.Context, query, token string) ([]schema.RawSearchResult, error) {
	form := url.Values{
		"what":     {query},
		"category": {"video"},
		"limit":    {strconv.Itoa(c.cfg.SearchLimit)},
		tokenField: {token},
	}

	var body []byte
	var err error
	if token == "" {
		body, err = c.r.PostForm(ctx, c.cfg.BaseURL+"search/", form)
	} else {
		body, err = c.r.CachedPostForm(ctx, c.cfg.BaseURL+"search/", form, hasStatusOK, tokenField)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: search %q: %w", ErrUpstream, query, err)
	}

	resp, err := decode(body)
	if err != nil {
		return nil, err
	}
	if err := resp.err("search " + strconv.Quote(query)); err != nil {
		return nil, err
	}

	results := make([]schema.RawSearchResult, 0, len(resp.Files))
	for _, f := range resp.Files {
		if strings.TrimSpace(f.Ident) == "" {
			continue
		}
		results = append(results, f.toResult())
	}
	return results, nil
}

// FileLink resolves a file ident into a direct, time-limited stream URL.
// Transport failures are retried; a non-OK status is final.
func (c *Client) FileLink(ctx context.Context, ident, token string) (string, error) {
	form := url.Values{
		"ident":         {ident},
		"download_type": {"video_stream"},
		"force_https":   {"1"},
		tokenField:      {token},
	}

	var link string
	err := retry.Do(
		func() error {
			body, err := c.r.PostForm(ctx, c.cfg.BaseURL+"file_link/", form)
			if err != nil {
				return fmt.Errorf("%w: file link %s: %w", ErrUpstream, ident, err)
			}
			resp, err := decode(body)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			if err := resp.err("file link " + ident); err != nil {
				return retry.Unrecoverable(err)
			}
			if resp.Link == "" {
				return retry.Unrecoverable(fmt.Errorf("%w: file link %s: empty link", ErrUpstream, ident))
			}
			link = strings.TrimSpace(resp.Link)
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.cfg.FileLinkAttempts),
		retry.Delay(c.cfg.RetryDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logging.Warn().Err(err).Str("ident", ident).Uint("attempt", n+1).Msg("Retrying file link")
		}),
	)
	if err != nil {
		return "", err
	}
	return link, nil
}

package requester

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/felipemarinho97/webshare-stremio/consts"
	"github.com/felipemarinho97/webshare-stremio/logging"
	"github.com/felipemarinho97/webshare-stremio/monitoring"
)

const (
	cacheKey   = "shortLivedCache"
	cacheLabel = "short_lived"
)

// Cache is the subset of cache.Redis used for short-lived responses.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithExpiration(ctx context.Context, key string, value []byte, expiration time.Duration) error
	Del(ctx context.Context, key string) error
}

// StatusError is returned for non-200 upstream responses.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

type Requester struct {
	c                         Cache
	metrics                   *monitoring.Metrics
	httpClient                *http.Client
	shortLivedCacheExpiration time.Duration
}

// NewRequester builds a Requester. Both c and metrics may be nil, in which
// case responses are never cached and nothing is counted.
func NewRequester(c Cache, metrics *monitoring.Metrics) *Requester {
	httpClient := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			DisableCompression:  false,
			MaxIdleConns:        100,              // Increase connection pool
			MaxIdleConnsPerHost: 10,               // More connections per host
			IdleConnTimeout:     90 * time.Second, // Keep connections alive longer
			DisableKeepAlives:   false,            // Enable keep-alive
			ForceAttemptHTTP2:   true,             // Use HTTP/2 when possible
		},
	}

	return &Requester{c: c, metrics: metrics, httpClient: httpClient, shortLivedCacheExpiration: 30 * time.Minute}
}

func (i *Requester) SetShortLivedCacheExpiration(expiration time.Duration) {
	i.shortLivedCacheExpiration = expiration
}

func (i *Requester) SetHTTPClient(client *http.Client) {
	i.httpClient = client
}

func setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", consts.UserAgent())
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	req.Header.Set("Accept", "text/xml; charset=UTF-8")
}

// PostForm posts form to endpoint and returns the response body.
func (i *Requester) PostForm(ctx context.Context, endpoint string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request for url %s: %w", endpoint, err)
	}
	setHeaders(req)

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to do request for url %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: endpoint, StatusCode: resp.StatusCode}
	}

	// Pre-allocate buffer based on Content-Length if available
	var buf bytes.Buffer
	if resp.ContentLength > 0 {
		buf.Grow(int(resp.ContentLength))
	} else {
		buf.Grow(32 * 1024) // Default 32KB pre-allocation
	}
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return buf.Bytes(), nil
}

// CachedPostForm is PostForm behind the short-lived cache. The cache key is
// built from endpoint and form without the private fields, so credentials
// never reach the cache. Only bodies accepted by valid are stored.
func (i *Requester) CachedPostForm(ctx context.Context, endpoint string, form url.Values, valid func([]byte) bool, private ...string) ([]byte, error) {
	if i.c == nil {
		return i.PostForm(ctx, endpoint, form)
	}

	key := CacheKey(endpoint, form, private...)
	if body, err := i.c.Get(ctx, key); err == nil && len(body) > 0 {
		logging.Debug().Str("url", endpoint).Msg("Returning from short-lived cache")
		i.countCache(true)
		return body, nil
	}
	i.countCache(false)

	body, err := i.PostForm(ctx, endpoint, form)
	if err != nil {
		return nil, err
	}

	if len(body) > 0 && (valid == nil || valid(body)) {
		if err := i.c.SetWithExpiration(ctx, key, body, i.shortLivedCacheExpiration); err != nil {
			logging.Error().Err(err).Str("url", endpoint).Msg("Failed to save response to cache")
		} else {
			logging.Debug().Str("url", endpoint).Msg("Saved to cache")
		}
	}
	return body, nil
}

// ExpireDocument drops a cached response.
func (i *Requester) ExpireDocument(ctx context.Context, endpoint string, form url.Values, private ...string) error {
	if i.c == nil {
		return nil
	}
	return i.c.Del(ctx, CacheKey(endpoint, form, private...))
}

// CacheKey returns the short-lived cache key of a form post.
func CacheKey(endpoint string, form url.Values, private ...string) string {
	public := url.Values{}
	for k, v := range form {
		if slices.Contains(private, k) {
			continue
		}
		public[k] = v
	}
	// Encode sorts by key
	return fmt.Sprintf("%s:%s?%s", cacheKey, endpoint, public.Encode())
}

func (i *Requester) countCache(hit bool) {
	if i.metrics == nil {
		return
	}
	if hit {
		i.metrics.CacheHits.WithLabelValues(cacheLabel).Inc()
	} else {
		i.metrics.CacheMisses.WithLabelValues(cacheLabel).Inc()
	}
}

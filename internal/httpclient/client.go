package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// fallbackUserAgent is used when no user agent is configured.
const fallbackUserAgent = "checkoutscan/1.0"

// maxBodyBytes limits how much of a response body is read. Pages and scripts
// larger than this are truncated rather than rejected.
const maxBodyBytes = 5 * 1024 * 1024 // 5MB

// identityHeaders is the fixed browser-like identity presented to targets.
// Many storefronts serve different markup to obvious bots.
var identityHeaders = map[string]string{
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.9",
}

// Client wraps http.Client for fetching page and script text.
// Redirects are followed automatically and responses are never cached.
type Client struct {
	httpClient *http.Client
	userAgent  string

	// Per-host token buckets so a single scan cannot hammer one origin.
	rateLimit  int
	limiters   map[string]*rate.Limiter
	limitersMu sync.Mutex
}

// FetchResult holds the outcome of a successful text fetch.
type FetchResult struct {
	Body       string
	FinalURL   string // URL after redirects
	StatusCode int
	Header     http.Header
}

// NewClient creates a new HTTP client. timeout bounds each individual request.
// rateLimit is the per-host requests-per-second budget; zero disables limiting.
func NewClient(timeout time.Duration, userAgent string, rateLimit int) *Client {
	if userAgent == "" {
		userAgent = fallbackUserAgent
	}
	return &Client{
		httpClient: &http.Client{
			Transport: NewTransport(),
			Timeout:   timeout,
		},
		userAgent: userAgent,
		rateLimit: rateLimit,
		limiters:  make(map[string]*rate.Limiter),
	}
}

// FetchText performs a GET request and returns the response body as text.
// The fixed identity headers are always sent; overrides are merged on top but
// an empty override value cannot silently disable an identity header.
// A non-2xx status or a network failure is returned as a *FetchError.
func (c *Client) FetchText(ctx context.Context, rawURL string, overrides map[string]string) (*FetchResult, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}

	// Respect the per-host rate budget before touching the network.
	if lim := c.hostLimiter(parsed.Host); lim != nil {
		if err := lim.Wait(ctx); err != nil {
			return nil, &FetchError{URL: rawURL, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}

	// Fixed identity first, then caller overrides.
	req.Header.Set("User-Agent", c.userAgent)
	for k, v := range identityHeaders {
		req.Header.Set(k, v)
	}
	for k, v := range overrides {
		if v == "" {
			continue
		}
		req.Header.Set(k, v)
	}

	// Always bypass intermediary caches.
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{URL: rawURL, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}

	finalURL := rawURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &FetchResult{
		Body:       string(body),
		FinalURL:   finalURL,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
	}, nil
}

// hostLimiter returns the token bucket for a host, creating it on first use.
func (c *Client) hostLimiter(host string) *rate.Limiter {
	if c.rateLimit <= 0 || host == "" {
		return nil
	}

	c.limitersMu.Lock()
	defer c.limitersMu.Unlock()

	lim, ok := c.limiters[host]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(c.rateLimit), c.rateLimit)
		c.limiters[host] = lim
	}
	return lim
}

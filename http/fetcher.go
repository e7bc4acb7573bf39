// Package http provides the network collaborators around the extraction
// pipeline: a Fetcher that retrieves recipe pages with browser-like
// headers and bounded retries, and a Server exposing the pipeline over a
// small JSON API.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/saucier"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 25 * time.Second

// defaultHeaders mimic a desktop browser. Many recipe sites serve reduced
// or blocked pages to obvious non-browser clients.
var defaultHeaders = map[string]string{
	"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/123.0.0.0 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.9",
	"Cache-Control":   "no-cache",
	"Pragma":          "no-cache",
	"Connection":      "keep-alive",
}

// Ensure Fetcher implements saucier.Fetcher at compile time.
var _ saucier.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves recipe page HTML. A plain request is tried first, with
// bounded retries on anti-bot status codes; when a ScraperAPI key is
// configured, the proxy is tried as a last resort.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	maxAttempts int
	headers     map[string]string
	limiter     *domainLimiter

	proxyKey     string
	proxyCountry string
	proxyURL     string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (25s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxAttempts sets how many times transient failures are retried.
// The count includes the initial attempt; minimum 1.
func WithMaxAttempts(n int) Option {
	return func(f *Fetcher) {
		if n >= 1 {
			f.maxAttempts = n
		}
	}
}

// WithProxy enables the ScraperAPI fallback with the given API key and
// country code. An empty country defaults to "au".
func WithProxy(key, country string) Option {
	return func(f *Fetcher) {
		f.proxyKey = key
		if country != "" {
			f.proxyCountry = country
		}
	}
}

// WithRateLimit caps direct fetches per second per domain.
func WithRateLimit(rps float64) Option {
	return func(f *Fetcher) {
		f.limiter = newDomainLimiter(rps)
	}
}

// WithClient sets a custom HTTP client. Used by tests.
func WithClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// NewFetcher creates a new Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:      DefaultFetchTimeout,
		maxAttempts:  2,
		headers:      defaultHeaders,
		proxyCountry: "au",
		proxyURL:     "https://api.scraperapi.com",
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.client == nil {
		f.client = &http.Client{Timeout: f.timeout}
	}
	return f
}

// Fetch retrieves the page at url, following redirects, and returns the
// body together with the post-redirect URL. Anti-bot responses (403, 429,
// 503) are retried and then handed to the proxy when one is configured;
// other error statuses fail immediately with EUNAVAILABLE.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, string, error) {
	var lastErr error

	for attempt := 0; attempt < f.maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", "", ctx.Err()
			case <-time.After(time.Duration(attempt) * 200 * time.Millisecond):
			}
		}

		html, finalURL, err := f.fetchDirect(ctx, rawURL)
		if err == nil {
			return html, finalURL, nil
		}
		lastErr = err
		if !isTransient(err) {
			break
		}
	}

	if f.proxyKey != "" {
		html, err := f.fetchViaProxy(ctx, rawURL)
		if err == nil {
			// The proxy fetches on our behalf; redirects resolve on its
			// side, so the requested URL stands in for the final one.
			return html, rawURL, nil
		}
		lastErr = err
	}

	return "", "", saucier.Errorf(saucier.EUNAVAILABLE, "fetch failed for %s: %v", rawURL, lastErr)
}

// Close releases resources. A no-op for the plain HTTP client.
func (f *Fetcher) Close() error {
	return nil
}

func (f *Fetcher) fetchDirect(ctx context.Context, rawURL string) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", "", saucier.Errorf(saucier.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, req.URL.Hostname()); err != nil {
			return "", "", err
		}
	}
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", "", &transientError{err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", &transientError{err}
	}

	if resp.StatusCode >= 400 {
		err := fmt.Errorf("HTTP %d for %s", resp.StatusCode, rawURL)
		if isAntiBotStatus(resp.StatusCode) {
			return "", "", &transientError{err}
		}
		return "", "", err
	}
	if len(body) == 0 {
		return "", "", fmt.Errorf("empty body for %s", rawURL)
	}

	// resp.Request.URL reflects the URL after redirects
	return string(body), resp.Request.URL.String(), nil
}

func (f *Fetcher) fetchViaProxy(ctx context.Context, rawURL string) (string, error) {
	params := url.Values{}
	params.Set("api_key", f.proxyKey)
	params.Set("url", rawURL)
	params.Set("keep_headers", "true")
	params.Set("country_code", f.proxyCountry)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.proxyURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("proxy request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("proxy response: %w", err)
	}
	if resp.StatusCode >= 400 || len(body) == 0 {
		return "", fmt.Errorf("proxy HTTP %d for %s", resp.StatusCode, rawURL)
	}
	return string(body), nil
}

// isAntiBotStatus reports statuses that anti-bot layers return for clients
// they distrust; these are worth retrying and proxying.
func isAntiBotStatus(code int) bool {
	return code == http.StatusForbidden ||
		code == http.StatusTooManyRequests ||
		code == http.StatusServiceUnavailable
}

// transientError wraps failures that a retry or the proxy might resolve.
type transientError struct {
	err error
}

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

func isTransient(err error) bool {
	var t *transientError
	return errors.As(err, &t)
}

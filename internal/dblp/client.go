// Package dblp provides a rate-limited client for the DBLP publication
// search API, the canonical bibliographic lookup used to validate
// citation author lists.
package dblp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/matsen/refcheck/internal/reference"
)

const (
	// BaseURL is the DBLP publication search endpoint.
	BaseURL = "https://dblp.org/search/publ/api"

	// DefaultDelay is the minimum spacing between requests. DBLP is a
	// free community service; stay well under its courtesy limits.
	DefaultDelay = 3 * time.Second

	// DefaultLimit is the number of candidate records requested per
	// title query.
	DefaultLimit = 10

	// DefaultTimeout is the HTTP request timeout.
	DefaultTimeout = 30 * time.Second
)

// Client is a rate-limited HTTP client for the DBLP search API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	limit      int
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithDelay sets the minimum spacing between requests. The limiter is
// shared by all callers of this client, so the spacing holds regardless
// of how many workers issue lookups.
func WithDelay(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.limiter = rate.NewLimiter(rate.Every(d), 1)
		}
	}
}

// WithLimit sets the number of candidates requested per query.
func WithLimit(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.limit = n
		}
	}
}

// NewClient creates a new DBLP search client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Every(DefaultDelay), 1),
		baseURL:    BaseURL,
		limit:      DefaultLimit,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Search queries DBLP for publications matching the given title and
// returns candidate records in API order. An empty result is not an
// error; transient failures are reported as errors satisfying
// IsTransient.
func (c *Client) Search(ctx context.Context, title string) ([]reference.CanonicalEntry, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	q := url.Values{}
	q.Set("q", title)
	q.Set("format", "json")
	q.Set("h", fmt.Sprintf("%d", c.limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "refcheck-cli")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
	}
	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("%w: status %d", ErrServerError, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Query: title}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrNetworkError, err)
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	entries := make([]reference.CanonicalEntry, 0, len(parsed.Result.Hits.Hit))
	for _, hit := range parsed.Result.Hits.Hit {
		entries = append(entries, toEntry(hit.Info))
	}
	return entries, nil
}

// toEntry maps a DBLP hit to the domain record.
func toEntry(info hitInfo) reference.CanonicalEntry {
	authors := make([]string, 0, len(info.Authors.Author))
	for _, a := range info.Authors.Author {
		authors = append(authors, cleanAuthor(a.Text))
	}

	return reference.CanonicalEntry{
		Key:     info.Key,
		Title:   strings.TrimSuffix(strings.TrimSpace(info.Title), "."),
		Authors: authors,
		Venue:   string(info.Venue),
		Year:    info.Year,
		DOI:     info.DOI,
		URL:     info.URL,
	}
}

// disambiguationSuffix matches DBLP's trailing homonym markers ("Wei
// Wang 0001").
var disambiguationSuffix = regexp.MustCompile(` \d{4}$`)

// cleanAuthor strips DBLP's numeric disambiguation suffix from an
// author name.
func cleanAuthor(s string) string {
	return disambiguationSuffix.ReplaceAllString(strings.TrimSpace(s), "")
}

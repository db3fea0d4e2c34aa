// Package qiyoujiage provides an HTTP client for the m.qiyoujiage.com mobile price pages.
package qiyoujiage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/andygrunwald/fuelprice/internal/api"
	"github.com/andygrunwald/fuelprice/internal/models"
	"github.com/andygrunwald/fuelprice/internal/useragent"
)

const (
	// ProviderName is the identifier for this provider.
	ProviderName = "qiyoujiage"
	// DefaultBaseURL is the mobile site root.
	DefaultBaseURL = "http://m.qiyoujiage.com"
	// DefaultTimeout bounds the single request made per invocation.
	DefaultTimeout = 8 * time.Second
	// maxBodySize caps how much of a page is read.
	maxBodySize = 4 << 20
)

// PageURL builds the detail page URL for a region, e.g.
// http://m.qiyoujiage.com/sichuan/chengdu.shtml.
func PageURL(baseURL string, region models.RegionID) string {
	return fmt.Sprintf("%s/%s.shtml", strings.TrimRight(baseURL, "/"), region)
}

// Headers returns the fixed header set the site expects from a mobile browser.
func Headers(baseURL string) http.Header {
	h := make(http.Header)
	h.Set("Referer", strings.TrimRight(baseURL, "/")+"/")
	h.Set("User-Agent", useragent.Mobile)
	return h
}

// Client implements api.Fetcher on top of net/http.
type Client struct {
	client *http.Client
	logger zerolog.Logger
}

// New creates a new Client. A non-positive timeout falls back to DefaultTimeout.
func New(logger zerolog.Logger, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger.With().Str("provider", ProviderName).Logger(),
	}
}

// Get fetches url with the given headers.
func (c *Client) Get(ctx context.Context, url string, header http.Header) (*api.Response, error) {
	c.logger.Debug().
		Str("url", url).
		Msg("fetching price page")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	c.logger.Debug().
		Str("url", url).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Msg("fetched price page")

	return &api.Response{
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}, nil
}

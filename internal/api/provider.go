// Package api provides the fetch capability the notification pipeline depends on.
package api

import (
	"context"
	"net/http"
)

// Response is the raw outcome of a completed HTTP exchange.
type Response struct {
	// StatusCode is the HTTP status code returned by the site.
	StatusCode int
	// Body is the undecoded response body.
	Body string
}

// Fetcher defines the HTTP-fetch capability.
type Fetcher interface {
	// Get issues a single GET request. A returned error means the site could
	// not be reached (DNS, connection, timeout); any HTTP status is reported
	// through the Response instead.
	Get(ctx context.Context, url string, header http.Header) (*Response, error)
}

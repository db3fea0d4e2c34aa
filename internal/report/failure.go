// Package report classifies invocation failures and formats the payload handed to the host.
package report

import (
	"errors"
	"fmt"

	"github.com/andygrunwald/fuelprice/internal/models"
)

// Kind classifies why an invocation produced no price data.
type Kind string

const (
	// KindTransport means the site could not be reached (DNS, connection, timeout).
	KindTransport Kind = "transport_error"
	// KindHTTPStatus means the site answered with a non-200 status.
	KindHTTPStatus Kind = "http_status_error"
	// KindNotFoundPage means the site answered 200 with an empty or "404 Not Found" page.
	KindNotFoundPage Kind = "not_found_page"
	// KindConfigurationHint means no prices were found and the region is province-only.
	KindConfigurationHint Kind = "configuration_hint"
	// KindStructureChanged means no prices were found on a city-level page.
	KindStructureChanged Kind = "structure_changed"
	// KindInternal means parsing or formatting failed unexpectedly.
	KindInternal Kind = "internal_exception"
)

// Failure is a terminal invocation error.
type Failure struct {
	Kind       Kind
	Region     models.RegionID
	URL        string
	StatusCode int
	Err        error
}

// Error implements error.
func (f *Failure) Error() string {
	msg := fmt.Sprintf("%s for region %q", f.Kind, f.Region)
	if f.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", f.StatusCode)
	}
	if f.Err != nil {
		msg += ": " + f.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (f *Failure) Unwrap() error {
	return f.Err
}

// EmptyResult classifies a page without qualifying prices. A region without
// a "/" points at a province listing page, which never carries a price table.
func EmptyResult(region models.RegionID, url string) *Failure {
	kind := KindStructureChanged
	if !region.IsCityLevel() {
		kind = KindConfigurationHint
	}
	return &Failure{Kind: kind, Region: region, URL: url}
}

// KindOf returns the failure kind carried by err, or "" if err is not a Failure.
func KindOf(err error) Kind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return ""
}

// Package models provides shared data types for the fuel price notifier.
package models

import (
	"strings"
	"time"
)

// RegionID identifies the page to query, either "<province>/<city>" or a bare "<province>".
type RegionID string

// IsCityLevel reports whether the region points at a city detail page.
// Province-only regions resolve to a listing page without a price table.
func (r RegionID) IsCityLevel() bool {
	return strings.Contains(string(r), "/")
}

// String implements fmt.Stringer.
func (r RegionID) String() string {
	return string(r)
}

// PriceEntry is a single fuel grade and its price in 元/升.
type PriceEntry struct {
	// Label is the fuel grade as printed on the site (e.g. "92号汽油").
	Label string `json:"label"`
	// Value is the decimal price text (e.g. "7.85").
	Value string `json:"value"`
}

// Trend is the direction of the next announced price adjustment.
type Trend string

const (
	// TrendFlat is used when neither an up nor a down marker is present.
	TrendFlat Trend = "flat"
	// TrendUp indicates an announced price increase.
	TrendUp Trend = "up"
	// TrendDown indicates an announced price decrease.
	TrendDown Trend = "down"
	// TrendHeld indicates the adjustment was explicitly held back ("搁浅").
	TrendHeld Trend = "held"
)

// Glyph returns the display marker for the trend.
func (t Trend) Glyph() string {
	switch t {
	case TrendUp:
		return "📈 上涨"
	case TrendDown:
		return "📉 下跌"
	case TrendHeld:
		return "⏸ 搁浅"
	default:
		return "平稳"
	}
}

// AdjustmentNotice is the site's announcement of the next price change.
type AdjustmentNotice struct {
	Date   string `json:"date"`
	Trend  Trend  `json:"trend"`
	Amount string `json:"amount"`
}

// ResultPayload is the flat display record handed to the completion sink.
type ResultPayload struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Icon      string `json:"icon,omitempty"`
	IconColor string `json:"icon-color,omitempty"`
}

// RunStatus holds the outcome of the most recent invocation.
type RunStatus struct {
	Region        string         `json:"region"`
	Outcome       string         `json:"outcome"`
	FinishedAt    *time.Time     `json:"finished_at"`
	DurationMs    int64          `json:"duration_ms"`
	LastPayload   *ResultPayload `json:"last_payload,omitempty"`
	LastError     *string        `json:"last_error"`
	TotalRuns     int64          `json:"total_runs"`
	TotalFailures int64          `json:"total_failures"`
}

// StatusResponse is the response for the /status endpoint.
type StatusResponse struct {
	Status                string      `json:"status"`
	UptimeSeconds         int64       `json:"uptime_seconds"`
	SchedulerRunning      bool        `json:"scheduler_running"`
	NextNotifyAt          *time.Time  `json:"next_notify_at,omitempty"`
	LastScheduledNotifyAt *time.Time  `json:"last_scheduled_notify_at,omitempty"`
	Pipeline              RunStatus   `json:"pipeline"`
	Store                 StoreStatus `json:"store"`
}

// StoreStatus holds the state of the region settings store.
type StoreStatus struct {
	Backend   string `json:"backend"`
	Connected bool   `json:"connected"`
	Region    string `json:"region,omitempty"`
}

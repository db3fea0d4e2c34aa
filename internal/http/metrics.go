// Package http provides HTTP server functionality for the fuel price notifier.
package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the notifier.
type Metrics struct {
	// Fetch metrics
	FetchRequestsTotal   *prometheus.CounterVec
	FetchRequestDuration prometheus.Histogram

	// Invocation metrics
	RunsTotal        *prometheus.CounterVec
	LastRunTimestamp prometheus.Gauge
	CurrentPriceCNY  *prometheus.GaugeVec
}

// NewMetrics creates Prometheus metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		FetchRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fuelprice_fetch_requests_total",
				Help: "Total number of price page requests by HTTP status (or error)",
			},
			[]string{"status"},
		),
		FetchRequestDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "fuelprice_fetch_request_duration_seconds",
				Help:    "Price page request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		RunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fuelprice_runs_total",
				Help: "Total number of invocations by outcome",
			},
			[]string{"outcome"},
		),
		LastRunTimestamp: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "fuelprice_last_success_timestamp",
				Help: "Timestamp of the last invocation that delivered prices",
			},
		),
		CurrentPriceCNY: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fuelprice_current_price_cny_per_litre",
				Help: "Current fuel price in CNY per litre",
			},
			[]string{"region", "grade"},
		),
	}
}

// RecordFetch records a price page request.
func (m *Metrics) RecordFetch(status string, duration float64) {
	m.FetchRequestsTotal.WithLabelValues(status).Inc()
	m.FetchRequestDuration.Observe(duration)
}

// RecordOutcome records the outcome of an invocation.
func (m *Metrics) RecordOutcome(outcome string) {
	m.RunsTotal.WithLabelValues(outcome).Inc()
}

// RecordLastRun records the last successful invocation timestamp.
func (m *Metrics) RecordLastRun(timestamp float64) {
	m.LastRunTimestamp.Set(timestamp)
}

// RecordPrice records the current price of a grade.
func (m *Metrics) RecordPrice(region, grade string, price float64) {
	m.CurrentPriceCNY.WithLabelValues(region, grade).Set(price)
}

// Package pipeline runs one fuel price lookup from region resolution to payload delivery.
package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/andygrunwald/fuelprice/internal/api"
	"github.com/andygrunwald/fuelprice/internal/api/qiyoujiage"
	"github.com/andygrunwald/fuelprice/internal/extract"
	"github.com/andygrunwald/fuelprice/internal/models"
	"github.com/andygrunwald/fuelprice/internal/notify"
	"github.com/andygrunwald/fuelprice/internal/region"
	"github.com/andygrunwald/fuelprice/internal/report"
)

// notFoundMarker identifies the site's error page, which is served with status 200.
const notFoundMarker = "404 Not Found"

// OutcomeSuccess is the outcome label of an invocation that found prices.
const OutcomeSuccess = "success"

// Recorder receives Prometheus measurements. Implemented by http.Metrics.
type Recorder interface {
	RecordFetch(status string, duration float64)
	RecordOutcome(outcome string)
	RecordPrice(region, label string, price float64)
	RecordLastRun(timestamp float64)
}

// Metrics holds the state of recent invocations.
type Metrics struct {
	mu            sync.RWMutex
	TotalRuns     int64
	TotalFailures int64
	LastRunAt     *time.Time
	LastDuration  time.Duration
	LastRegion    string
	LastOutcome   string
	LastPayload   *models.ResultPayload
	LastError     *string
}

// GetSnapshot returns a thread-safe copy of the metrics.
func (m *Metrics) GetSnapshot() models.RunStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return models.RunStatus{
		Region:        m.LastRegion,
		Outcome:       m.LastOutcome,
		FinishedAt:    m.LastRunAt,
		DurationMs:    m.LastDuration.Milliseconds(),
		LastPayload:   m.LastPayload,
		LastError:     m.LastError,
		TotalRuns:     m.TotalRuns,
		TotalFailures: m.TotalFailures,
	}
}

// Outcome describes a finished invocation.
type Outcome struct {
	Region  models.RegionID
	URL     string
	Prices  []models.PriceEntry
	Notice  *models.AdjustmentNotice
	Payload models.ResultPayload
	// Failure is set when no price data could be delivered.
	Failure *report.Failure
}

// Pipeline wires the injected capabilities together.
type Pipeline struct {
	resolver  *region.Resolver
	fetcher   api.Fetcher
	extractor extract.Extractor
	sink      notify.Sink
	baseURL   string
	metrics   *Metrics
	prom      Recorder
	logger    zerolog.Logger
}

// New creates a new Pipeline.
func New(resolver *region.Resolver, fetcher api.Fetcher, extractor extract.Extractor, sink notify.Sink, baseURL string, logger zerolog.Logger) *Pipeline {
	if baseURL == "" {
		baseURL = qiyoujiage.DefaultBaseURL
	}
	return &Pipeline{
		resolver:  resolver,
		fetcher:   fetcher,
		extractor: extractor,
		sink:      sink,
		baseURL:   baseURL,
		metrics:   &Metrics{},
		logger:    logger.With().Str("component", "pipeline").Logger(),
	}
}

// SetPrometheusMetrics sets the Prometheus recorder.
func (p *Pipeline) SetPrometheusMetrics(rec Recorder) {
	p.prom = rec
}

// Metrics returns the invocation metrics.
func (p *Pipeline) Metrics() *Metrics {
	return p.metrics
}

// Run performs one invocation and hands exactly one payload to the sink.
// Lookup failures are reported through the payload; the returned error is
// only set when the sink itself could not deliver.
func (p *Pipeline) Run(ctx context.Context, arg string) (*Outcome, error) {
	start := time.Now()
	out := p.execute(ctx, arg)
	p.record(out, time.Since(start))

	if err := p.sink.Deliver(ctx, out.Payload); err != nil {
		p.logger.Error().
			Err(err).
			Str("region", out.Region.String()).
			Msg("failed to deliver payload")
		return out, fmt.Errorf("delivering payload: %w", err)
	}

	return out, nil
}

// execute never panics; unexpected failures become an internal exception payload.
func (p *Pipeline) execute(ctx context.Context, arg string) (out *Outcome) {
	out = &Outcome{}
	defer func() {
		if r := recover(); r != nil {
			p.fail(out, &report.Failure{
				Kind:   report.KindInternal,
				Region: out.Region,
				URL:    out.URL,
				Err:    fmt.Errorf("panic: %v", r),
			})
		}
	}()

	out.Region = p.resolver.Resolve(ctx, arg)
	out.URL = qiyoujiage.PageURL(p.baseURL, out.Region)

	p.logger.Info().
		Str("region", out.Region.String()).
		Str("url", out.URL).
		Msg("querying fuel prices")

	fetchStart := time.Now()
	resp, err := p.fetcher.Get(ctx, out.URL, qiyoujiage.Headers(p.baseURL))
	fetchDuration := time.Since(fetchStart)

	if err != nil {
		p.recordFetch("error", fetchDuration)
		p.fail(out, &report.Failure{Kind: report.KindTransport, Region: out.Region, URL: out.URL, Err: err})
		return out
	}
	p.recordFetch(strconv.Itoa(resp.StatusCode), fetchDuration)

	if resp.StatusCode != http.StatusOK {
		p.fail(out, &report.Failure{Kind: report.KindHTTPStatus, Region: out.Region, URL: out.URL, StatusCode: resp.StatusCode})
		return out
	}

	if strings.TrimSpace(resp.Body) == "" || strings.Contains(resp.Body, notFoundMarker) {
		p.fail(out, &report.Failure{Kind: report.KindNotFoundPage, Region: out.Region, URL: out.URL, StatusCode: resp.StatusCode})
		return out
	}

	out.Prices = p.extractor.Prices(resp.Body)
	out.Notice = p.extractor.Adjustment(resp.Body)

	if len(out.Prices) == 0 {
		p.fail(out, report.EmptyResult(out.Region, out.URL))
		return out
	}

	if out.Notice == nil {
		p.logger.Debug().Str("region", out.Region.String()).Msg("no adjustment notice on page")
	}

	out.Payload = report.Success(out.Prices, out.Notice)

	p.logger.Info().
		Str("region", out.Region.String()).
		Int("prices", len(out.Prices)).
		Bool("notice", out.Notice != nil).
		Dur("duration", fetchDuration).
		Msg("fetched fuel prices")

	return out
}

func (p *Pipeline) fail(out *Outcome, f *report.Failure) {
	out.Failure = f
	out.Payload = report.Error(f)

	event := p.logger.Warn()
	if f.Kind == report.KindInternal {
		event = p.logger.Error()
	}
	event.
		Err(f.Err).
		Str("kind", string(f.Kind)).
		Str("region", f.Region.String()).
		Str("url", f.URL).
		Int("status", f.StatusCode).
		Msg("fuel price lookup failed")
}

func (p *Pipeline) recordFetch(status string, d time.Duration) {
	if p.prom != nil {
		p.prom.RecordFetch(status, d.Seconds())
	}
}

func (p *Pipeline) record(out *Outcome, d time.Duration) {
	outcome := OutcomeSuccess
	if out.Failure != nil {
		outcome = string(out.Failure.Kind)
	}

	now := time.Now()
	payload := out.Payload

	p.metrics.mu.Lock()
	p.metrics.TotalRuns++
	p.metrics.LastRunAt = &now
	p.metrics.LastDuration = d
	p.metrics.LastRegion = out.Region.String()
	p.metrics.LastOutcome = outcome
	p.metrics.LastPayload = &payload
	if out.Failure != nil {
		p.metrics.TotalFailures++
		errStr := out.Failure.Error()
		p.metrics.LastError = &errStr
	} else {
		p.metrics.LastError = nil
	}
	p.metrics.mu.Unlock()

	if p.prom == nil {
		return
	}
	p.prom.RecordOutcome(outcome)
	if out.Failure != nil {
		return
	}
	p.prom.RecordLastRun(float64(now.Unix()))
	for _, price := range out.Prices {
		if v, err := strconv.ParseFloat(price.Value, 64); err == nil {
			p.prom.RecordPrice(out.Region.String(), price.Label, v)
		}
	}
}

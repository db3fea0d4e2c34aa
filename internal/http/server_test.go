package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andygrunwald/fuelprice/internal/api"
	"github.com/andygrunwald/fuelprice/internal/extract"
	"github.com/andygrunwald/fuelprice/internal/kv"
	"github.com/andygrunwald/fuelprice/internal/models"
	"github.com/andygrunwald/fuelprice/internal/notify"
	"github.com/andygrunwald/fuelprice/internal/pipeline"
	"github.com/andygrunwald/fuelprice/internal/region"
)

type staticFetcher struct {
	body string
}

func (f staticFetcher) Get(context.Context, string, http.Header) (*api.Response, error) {
	return &api.Response{StatusCode: http.StatusOK, Body: f.body}, nil
}

func newTestPipeline(store kv.Reader) *pipeline.Pipeline {
	resolver := region.NewResolver(store, region.DefaultKey, region.DefaultRegion, zerolog.Nop())
	fetcher := staticFetcher{body: `<dt>92号汽油</dt><dd>7.85</dd><dt>95号汽油</dt><dd>8.35</dd>`}
	return pipeline.New(resolver, fetcher, extract.NewPattern(), notify.NewJSONSink(io.Discard), "", zerolog.Nop())
}

func TestStatusHandler(t *testing.T) {
	store := kv.NewMemory(map[string]string{region.DefaultKey: "sichuan/chengdu"})
	p := newTestPipeline(store)
	_, err := p.Run(context.Background(), "")
	require.NoError(t, err)

	h := NewStatusHandler(p, nil, StoreInfo{Backend: "memory", Key: region.DefaultKey, Store: store})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp models.StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "healthy", resp.Status)
	assert.False(t, resp.SchedulerRunning)
	assert.Equal(t, "sichuan/chengdu", resp.Pipeline.Region)
	assert.Equal(t, pipeline.OutcomeSuccess, resp.Pipeline.Outcome)
	assert.Equal(t, int64(1), resp.Pipeline.TotalRuns)
	require.NotNil(t, resp.Pipeline.LastPayload)
	assert.Equal(t, "92号汽油：7.85 元/升\n95号汽油：8.35 元/升", resp.Pipeline.LastPayload.Content)
	assert.Equal(t, models.StoreStatus{Backend: "memory", Connected: true, Region: "sichuan/chengdu"}, resp.Store)
}

func TestStatusHandlerWithoutStore(t *testing.T) {
	h := NewStatusHandler(nil, nil, StoreInfo{Backend: "none"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	var resp models.StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Store.Connected)
	assert.Equal(t, int64(0), resp.Pipeline.TotalRuns)
}

func TestServerRoutes(t *testing.T) {
	p := newTestPipeline(nil)
	s := NewServer(":0", p, nil, StoreInfo{}, zerolog.Nop())
	p.SetPrometheusMetrics(s.Metrics())

	_, err := p.Run(context.Background(), "sichuan/chengdu")
	require.NoError(t, err)

	health := httptest.NewRecorder()
	s.Handler().ServeHTTP(health, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, health.Code)
	assert.Equal(t, "OK", health.Body.String())

	metrics := httptest.NewRecorder()
	s.Handler().ServeHTTP(metrics, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, metrics.Code)
	assert.Contains(t, metrics.Body.String(), "fuelprice_runs_total")
	assert.Contains(t, metrics.Body.String(), "fuelprice_current_price_cny_per_litre")
}

func TestMetricsRecord(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordFetch("200", 0.2)
	m.RecordFetch("error", 8)
	m.RecordOutcome("success")
	m.RecordPrice("sichuan/chengdu", "92号汽油", 7.85)
	m.RecordLastRun(1760000000)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchRequestsTotal.WithLabelValues("200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchRequestsTotal.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RunsTotal.WithLabelValues("success")))
	assert.Equal(t, 7.85, testutil.ToFloat64(m.CurrentPriceCNY.WithLabelValues("sichuan/chengdu", "92号汽油")))
	assert.Equal(t, 1760000000.0, testutil.ToFloat64(m.LastRunTimestamp))
}

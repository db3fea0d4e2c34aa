package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/andygrunwald/fuelprice/internal/models"
	"github.com/andygrunwald/fuelprice/internal/pipeline"
	"github.com/andygrunwald/fuelprice/internal/scheduler"
)

// storeTimeout bounds the store checks done per status request.
const storeTimeout = 2 * time.Second

// StatusHandler handles the /status endpoint.
type StatusHandler struct {
	pipeline  *pipeline.Pipeline
	scheduler *scheduler.Scheduler
	store     StoreInfo
	startTime time.Time
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(p *pipeline.Pipeline, sched *scheduler.Scheduler, store StoreInfo) *StatusHandler {
	return &StatusHandler{
		pipeline:  p,
		scheduler: sched,
		store:     store,
		startTime: time.Now(),
	}
}

// ServeHTTP implements the http.Handler interface.
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	response := models.StatusResponse{
		Status:        "healthy",
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
	}

	// Get scheduler status
	if h.scheduler != nil {
		response.SchedulerRunning = h.scheduler.IsRunning()
		response.LastScheduledNotifyAt = h.scheduler.LastNotifyAt()
		nextNotify := h.scheduler.NextNotifyAt()
		if !nextNotify.IsZero() {
			response.NextNotifyAt = &nextNotify
		}
	}

	if h.pipeline != nil {
		response.Pipeline = h.pipeline.Metrics().GetSnapshot()
	}

	response.Store = h.getStoreStatus(ctx)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
}

func (h *StatusHandler) getStoreStatus(ctx context.Context) models.StoreStatus {
	status := models.StoreStatus{
		Backend:   h.store.Backend,
		Connected: false,
	}

	if h.store.Store == nil {
		return status
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if err := h.store.Store.Ping(ctx); err != nil {
		return status
	}
	status.Connected = true

	if v, err := h.store.Store.Read(ctx, h.store.Key); err == nil {
		status.Region = v
	}

	return status
}

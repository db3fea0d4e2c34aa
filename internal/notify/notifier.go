// Package notify delivers result payloads to the host.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/andygrunwald/fuelprice/internal/models"
)

// Sink is the completion capability. The pipeline calls Deliver exactly once per invocation.
type Sink interface {
	Deliver(ctx context.Context, payload models.ResultPayload) error
}

// JSONSink writes one JSON object per payload, the format automation hosts consume.
type JSONSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewJSONSink creates a new JSONSink writing to w.
func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{w: w}
}

// Deliver implements Sink.
func (s *JSONSink) Deliver(_ context.Context, payload models.ResultPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	enc := json.NewEncoder(s.w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}
	return nil
}

// TextSink writes the title and content for humans.
type TextSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewTextSink creates a new TextSink writing to w.
func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: w}
}

// Deliver implements Sink.
func (s *TextSink) Deliver(_ context.Context, payload models.ResultPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := fmt.Fprintf(s.w, "%s\n%s\n", payload.Title, payload.Content); err != nil {
		return fmt.Errorf("writing payload: %w", err)
	}
	return nil
}

// Package kv provides the single-string settings store the region override lives in.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no value is stored under a key.
var ErrNotFound = errors.New("key not found")

// Reader is the read capability the notification pipeline depends on.
type Reader interface {
	// Read returns the value stored under key, or ErrNotFound.
	Read(ctx context.Context, key string) (string, error)
}

// Writer stores values. Only the region management command writes.
type Writer interface {
	Write(ctx context.Context, key, value string) error
}

// Store is a settings backend.
type Store interface {
	Reader
	Writer
	// Ping checks if the backend is reachable.
	Ping(ctx context.Context) error
	// Close releases the backend's resources.
	Close() error
}

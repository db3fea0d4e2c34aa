// Package region decides which region page an invocation queries.
package region

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/andygrunwald/fuelprice/internal/kv"
	"github.com/andygrunwald/fuelprice/internal/models"
)

const (
	// DefaultKey is the settings key holding the stored region.
	DefaultKey = "yj"
	// DefaultRegion is used when nothing else is configured.
	DefaultRegion models.RegionID = "shanxi-3/xian"
)

// Resolver picks the region: explicit argument, then stored value, then fallback.
type Resolver struct {
	store    kv.Reader
	key      string
	fallback models.RegionID
	logger   zerolog.Logger
}

// NewResolver creates a new Resolver. store may be nil.
func NewResolver(store kv.Reader, key string, fallback models.RegionID, logger zerolog.Logger) *Resolver {
	if key == "" {
		key = DefaultKey
	}
	if strings.TrimSpace(string(fallback)) == "" {
		fallback = DefaultRegion
	}
	return &Resolver{
		store:    store,
		key:      key,
		fallback: models.RegionID(strings.TrimSpace(string(fallback))),
		logger:   logger.With().Str("component", "region").Logger(),
	}
}

// Resolve never fails. Store errors are logged and treated as "no stored value".
func (r *Resolver) Resolve(ctx context.Context, arg string) models.RegionID {
	if v := strings.TrimSpace(arg); v != "" {
		r.logger.Debug().Str("region", v).Str("source", "argument").Msg("resolved region")
		return models.RegionID(v)
	}

	if v := r.stored(ctx); v != "" {
		r.logger.Debug().Str("region", v).Str("source", "store").Msg("resolved region")
		return models.RegionID(v)
	}

	r.logger.Debug().Str("region", r.fallback.String()).Str("source", "default").Msg("resolved region")
	return r.fallback
}

func (r *Resolver) stored(ctx context.Context) string {
	if r.store == nil {
		return ""
	}

	v, err := r.store.Read(ctx, r.key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			r.logger.Warn().Err(err).Str("key", r.key).Msg("failed to read stored region, ignoring")
		}
		return ""
	}
	return strings.TrimSpace(v)
}

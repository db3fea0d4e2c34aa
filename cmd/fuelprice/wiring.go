package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/andygrunwald/fuelprice/internal/api/qiyoujiage"
	"github.com/andygrunwald/fuelprice/internal/database"
	"github.com/andygrunwald/fuelprice/internal/extract"
	"github.com/andygrunwald/fuelprice/internal/kv"
	"github.com/andygrunwald/fuelprice/internal/models"
	"github.com/andygrunwald/fuelprice/internal/notify"
	"github.com/andygrunwald/fuelprice/internal/pipeline"
	"github.com/andygrunwald/fuelprice/internal/region"
)

// openStore connects to the configured region settings backend.
func openStore(logger zerolog.Logger) (kv.Store, error) {
	var (
		store kv.Store
		err   error
	)

	switch strings.ToLower(cfg.Store.Backend) {
	case "", "file":
		store, err = openFileStore()
	case "memory":
		store = kv.NewMemory(nil)
	case "redis":
		store, err = openRedisStore()
	case "postgres":
		store, err = openPostgresStore(logger)
	default:
		err = fmt.Errorf("unknown store backend: %s", cfg.Store.Backend)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}

func openFileStore() (kv.Store, error) {
	f, err := kv.NewFile(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("opening settings file: %w", err)
	}
	return f, nil
}

func openRedisStore() (kv.Store, error) {
	r, err := kv.NewRedis(kv.RedisConfig{
		Address:  cfg.Store.RedisAddress,
		Password: cfg.Store.RedisPassword,
		DB:       cfg.Store.RedisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return r, nil
}

func openPostgresStore(logger zerolog.Logger) (kv.Store, error) {
	if cfg.Store.PostgresDSN == "" {
		return nil, fmt.Errorf("--postgres-dsn is required for the postgres store")
	}
	db, err := database.New(cfg.Store.PostgresDSN, logger)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return db, nil
}

// newSink creates the completion sink selected by --output.
func newSink(w io.Writer, logger zerolog.Logger) (notify.Sink, error) {
	switch strings.ToLower(cfg.Output) {
	case "", "json":
		return notify.NewJSONSink(w), nil
	case "text":
		return notify.NewTextSink(w), nil
	case "webhook":
		if cfg.WebhookURL == "" {
			return nil, fmt.Errorf("--webhook-url is required for the webhook output")
		}
		return notify.NewWebhookSink(cfg.WebhookURL, logger), nil
	default:
		return nil, fmt.Errorf("unknown output: %s", cfg.Output)
	}
}

// newPipeline assembles the pipeline from the configured capabilities.
func newPipeline(store kv.Reader, sink notify.Sink, logger zerolog.Logger) (*pipeline.Pipeline, error) {
	ex, err := extract.New(cfg.Extractor)
	if err != nil {
		return nil, err
	}

	resolver := region.NewResolver(store, cfg.RegionKey, models.RegionID(cfg.DefaultRegion), logger)
	fetcher := qiyoujiage.New(logger, cfg.FetchTimeout)

	return pipeline.New(resolver, fetcher, ex, sink, cfg.BaseURL, logger), nil
}

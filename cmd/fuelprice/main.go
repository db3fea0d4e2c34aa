// Package main provides the entry point for the fuel price notifier CLI.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/andygrunwald/fuelprice/internal/config"
)

var (
	// Version is set at build time.
	Version = "dev"
	// Commit is set at build time.
	Commit = "none"
	// BuildDate is set at build time.
	BuildDate = "unknown"
)

var cfg *config.Config

func main() {
	if err := config.LoadEnvFiles(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg = config.DefaultConfig()
	cfg.LoadFromEnv()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fuelprice",
		Short: "Fuel Price Notifier - today's regional fuel prices and the next adjustment",
		Long: `Fuel Price Notifier looks up regional fuel prices on m.qiyoujiage.com and
formats them as a short notification for automation hosts.

Features:
  - 92/95/98 gasoline and 0号 diesel prices per city
  - Next price adjustment date, direction and amount
  - Stored default region (file, Redis or PostgreSQL)
  - JSON, text or webhook delivery
  - Daily scheduled notifications with Prometheus metrics`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (json, console)")
	rootCmd.PersistentFlags().StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "Fuel price site root")
	rootCmd.PersistentFlags().DurationVar(&cfg.FetchTimeout, "fetch-timeout", cfg.FetchTimeout, "Upper bound for the price page request")
	rootCmd.PersistentFlags().StringVar(&cfg.Extractor, "extractor", cfg.Extractor, "Extraction strategy (pattern, dom)")
	rootCmd.PersistentFlags().StringVar(&cfg.Output, "output", cfg.Output, "Payload output (json, text, webhook)")
	rootCmd.PersistentFlags().StringVar(&cfg.WebhookURL, "webhook-url", cfg.WebhookURL, "Endpoint for the webhook output")
	rootCmd.PersistentFlags().StringVar(&cfg.DefaultRegion, "default-region", cfg.DefaultRegion, "Region used when none is given or stored")
	rootCmd.PersistentFlags().StringVar(&cfg.RegionKey, "region-key", cfg.RegionKey, "Settings key of the stored region")
	rootCmd.PersistentFlags().StringVar(&cfg.Store.Backend, "store", cfg.Store.Backend, "Region store backend (file, memory, redis, postgres)")
	rootCmd.PersistentFlags().StringVar(&cfg.Store.Path, "store-path", cfg.Store.Path, "Settings file for the file store")
	rootCmd.PersistentFlags().StringVar(&cfg.Store.RedisAddress, "redis-address", cfg.Store.RedisAddress, "Redis address for the redis store")
	rootCmd.PersistentFlags().StringVar(&cfg.Store.PostgresDSN, "postgres-dsn", cfg.Store.PostgresDSN, "PostgreSQL connection string for the postgres store")

	// Add subcommands
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(regionCmd())
	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func setupLogger() zerolog.Logger {
	var logger zerolog.Logger

	// Set log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Logs go to stderr; stdout carries the payload.
	if cfg.LogFormat == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Logger()
	} else {
		logger = zerolog.New(os.Stderr).
			With().
			Timestamp().
			Logger()
	}

	return logger
}

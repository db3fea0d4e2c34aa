package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/andygrunwald/fuelprice/internal/http"
	"github.com/andygrunwald/fuelprice/internal/scheduler"
)

func runCmd() *cobra.Command {
	var regionFlag string
	var notifyOnStart bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the daily notification service",
		Long:  "Starts the notifier with an internal scheduler that delivers the fuel prices daily at the specified hour.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger()

			if cfg.NotifyHour < 0 || cfg.NotifyHour > 23 {
				return fmt.Errorf("--notify-hour must be between 0 and 23")
			}

			logger.Info().
				Str("version", Version).
				Str("commit", Commit).
				Str("buildDate", BuildDate).
				Str("httpAddr", cfg.HTTPAddr).
				Int("notifyHour", cfg.NotifyHour).
				Str("store", cfg.Store.Backend).
				Str("output", cfg.Output).
				Msg("starting fuel price notifier")

			// Connect to region store
			store, err := openStore(logger)
			if err != nil {
				return err
			}
			defer store.Close()

			sink, err := newSink(cmd.OutOrStdout(), logger)
			if err != nil {
				return err
			}

			p, err := newPipeline(store, sink, logger)
			if err != nil {
				return err
			}

			// Create scheduler
			runner := scheduler.RunnerFunc(func(ctx context.Context, region string) error {
				_, err := p.Run(ctx, region)
				return err
			})
			sched := scheduler.New(runner, regionFlag, cfg.NotifyHour, notifyOnStart, logger)

			// Create HTTP server
			httpServer := http.NewServer(cfg.HTTPAddr, p, sched, http.StoreInfo{
				Backend: cfg.Store.Backend,
				Key:     cfg.RegionKey,
				Store:   store,
			}, logger)

			// Wire Prometheus metrics to pipeline
			p.SetPrometheusMetrics(httpServer.Metrics())

			// Setup signal handling
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			// Start HTTP server in goroutine
			go func() {
				if err := httpServer.Start(); err != nil {
					logger.Error().Err(err).Msg("HTTP server error")
					cancel()
				}
			}()

			// Start scheduler in goroutine
			go func() {
				if err := sched.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error().Err(err).Msg("scheduler error")
					cancel()
				}
			}()

			// Wait for signal
			select {
			case sig := <-sigCh:
				logger.Info().Str("signal", sig.String()).Msg("received signal, shutting down")
			case <-ctx.Done():
			}
			cancel()

			// Graceful shutdown
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer shutdownCancel()

			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("HTTP server shutdown error")
			}

			logger.Info().Msg("shutdown complete")
			return nil
		},
	}

	cmd.Flags().IntVar(&cfg.NotifyHour, "notify-hour", cfg.NotifyHour, "Hour of day (0-23) to deliver the notification")
	cmd.Flags().BoolVar(&notifyOnStart, "notify-on-start", false, "Deliver one notification right after startup")
	cmd.Flags().StringVar(&regionFlag, "region", "", "Region for every run; empty uses the stored or default region")
	cmd.Flags().StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address for metrics and status")

	return cmd
}

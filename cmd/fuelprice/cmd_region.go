package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andygrunwald/fuelprice/internal/kv"
	"github.com/andygrunwald/fuelprice/internal/models"
)

func regionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "region",
		Short: "Show or change the stored region",
		Long:  "Reads or writes the region override used when check or run is called without a region.",
	}

	cmd.AddCommand(regionGetCmd())
	cmd.AddCommand(regionSetCmd())

	return cmd
}

func regionGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Print the stored region",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger()

			store, err := openStore(logger)
			if err != nil {
				return err
			}
			defer store.Close()

			v, err := store.Read(context.Background(), cfg.RegionKey)
			switch {
			case errors.Is(err, kv.ErrNotFound):
				fmt.Fprintf(cmd.OutOrStdout(), "%s (default)\n", cfg.DefaultRegion)
				return nil
			case err != nil:
				return fmt.Errorf("reading region: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
}

func regionSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <region>",
		Short: "Store the region used by default",
		Long: `Stores a region as province or province/city, for example "sichuan/chengdu".
A province without a city is accepted but only yields a hint to pick a city.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger()

			value := strings.TrimSpace(args[0])
			if value == "" {
				return fmt.Errorf("region must not be empty")
			}

			store, err := openStore(logger)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Write(context.Background(), cfg.RegionKey, value); err != nil {
				return fmt.Errorf("writing region: %w", err)
			}

			if !models.RegionID(value).IsCityLevel() {
				logger.Warn().Str("region", value).Msg("region has no city part, lookups will only return a hint")
			}
			logger.Info().
				Str("region", value).
				Str("key", cfg.RegionKey).
				Str("backend", cfg.Store.Backend).
				Msg("stored region")
			return nil
		},
	}
}

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func checkCmd() *cobra.Command {
	var regionFlag string

	cmd := &cobra.Command{
		Use:   "check [region]",
		Short: "Look up today's fuel prices once",
		Long: `Looks up today's fuel prices for a region and writes one notification payload.

The region is taken from the argument, then the --region flag, then the stored
region and finally the configured default. Lookup failures are reported in the
payload and do not change the exit code.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger()

			arg := regionFlag
			if len(args) > 0 {
				arg = args[0]
			}

			store, err := openStore(logger)
			if err != nil {
				// Without a store the lookup still works with the default region.
				logger.Warn().Err(err).Str("backend", cfg.Store.Backend).Msg("region store unavailable")
			} else {
				defer store.Close()
			}

			sink, err := newSink(cmd.OutOrStdout(), logger)
			if err != nil {
				return err
			}

			p, err := newPipeline(store, sink, logger)
			if err != nil {
				return err
			}

			out, err := p.Run(context.Background(), arg)
			if err != nil {
				return fmt.Errorf("running lookup: %w", err)
			}

			logger.Debug().
				Str("region", out.Region.String()).
				Bool("failed", out.Failure != nil).
				Msg("lookup completed")
			return nil
		},
	}

	cmd.Flags().StringVar(&regionFlag, "region", "", "Region as province or province/city (e.g. sichuan/chengdu)")

	return cmd
}

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fathomsync/fathomsync/internal/config"
	"github.com/fathomsync/fathomsync/internal/logging"
)

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Run a single sync pass and exit",
		Long: `Run one reconciliation pass: list meetings from Fathom, upload any
transcripts not yet synced to Google Drive, append their index rows to
the spreadsheet, and exit. Useful for cron jobs and manual catch-ups.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			logger := logging.New(cfg.LogLevel, cfg.LogFormat)
			ctx := context.Background()

			engine, err := buildEngine(ctx, cfg, logger, nil)
			if err != nil {
				return err
			}

			stats := engine.RunCycle(ctx)
			fmt.Printf("sync complete: %s\n", stats)
			return nil
		},
	}
}

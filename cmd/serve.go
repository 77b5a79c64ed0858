package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fathomsync/fathomsync/internal/config"
	"github.com/fathomsync/fathomsync/internal/instrumentation"
	"github.com/fathomsync/fathomsync/internal/logging"
	"github.com/fathomsync/fathomsync/internal/server"
	syncer "github.com/fathomsync/fathomsync/internal/sync"
)

func newServeCmd() *cobra.Command {
	var (
		interval    time.Duration
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the sync service continuously",
		Long: `Run the sync service as a long-lived process. A reconciliation pass
runs immediately on startup and then on a fixed interval. Prometheus
metrics and health probes are served on a dedicated port.

The service shuts down gracefully on SIGINT or SIGTERM; an in-flight
pass always runs to completion first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			if cmd.Flags().Changed("interval") {
				cfg.SyncInterval = interval
			}
			if cmd.Flags().Changed("metrics-addr") {
				cfg.MetricsAddr = metricsAddr
			}

			return runServe(cfg)
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 30*time.Minute, "Time between sync passes. Can also use SYNC_INTERVAL env var.")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", ":9090", "Metrics server address. Can also use METRICS_ADDR env var.")

	return cmd
}

func runServe(cfg *config.Config) error {
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	// Setup graceful shutdown
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize instrumentation provider
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			logger.Error("error during instrumentation shutdown", logging.Err(err))
		}
	}()

	// Start metrics server if enabled
	var metricsServer *server.MetricsServer
	if cfg.MetricsAddr != "" && provider.Enabled() {
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    cfg.MetricsAddr,
			InstrumentationProvider: provider,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}

		// Use ready channel to confirm the metrics server started
		metricsReady := make(chan struct{})
		metricsErr := make(chan error, 1)
		go func() {
			if err := metricsServer.StartWithReadySignal(metricsReady); err != nil && err != http.ErrServerClosed {
				metricsErr <- err
			}
			close(metricsErr)
		}()

		select {
		case <-metricsReady:
			logger.Info("metrics server started", "addr", metricsServer.Addr())
		case err := <-metricsErr:
			return fmt.Errorf("metrics server failed to start: %w", err)
		case <-time.After(5 * time.Second):
			return fmt.Errorf("metrics server startup timed out")
		}

		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
			defer cancel()
			if err := metricsServer.Shutdown(ctx); err != nil {
				logger.Error("error shutting down metrics server", logging.Err(err))
			}
		}()
	}

	engine, err := buildEngine(shutdownCtx, cfg, logger, provider.Metrics(),
		syncer.WithTracer(provider.Tracer("fathomsync/sync")))
	if err != nil {
		return err
	}

	logger.Info("starting sync service",
		"interval", cfg.SyncInterval.String(),
		"state_file", cfg.StateFile)

	runner := syncer.NewRunner(engine, cfg.SyncInterval, logger)
	runner.Run(shutdownCtx)

	logger.Info("sync service stopped")
	return nil
}

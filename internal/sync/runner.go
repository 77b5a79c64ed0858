package sync

import (
	"context"
	"log/slog"
	"time"

	"github.com/fathomsync/fathomsync/internal/logging"
)

// CycleRunner runs one reconciliation pass. Engine implements it.
type CycleRunner interface {
	RunCycle(ctx context.Context) Stats
}

// Runner triggers reconciliation cycles on a fixed interval: one immediate
// cycle at startup, then one per tick. All cycles run on the calling
// goroutine, so at most one cycle is ever in flight.
type Runner struct {
	engine   CycleRunner
	interval time.Duration
	logger   *slog.Logger
}

// NewRunner creates a Runner.
func NewRunner(engine CycleRunner, interval time.Duration, logger *slog.Logger) *Runner {
	return &Runner{
		engine:   engine,
		interval: interval,
		logger:   logging.WithService(logger, "scheduler"),
	}
}

// Run blocks, executing cycles until ctx is cancelled. The in-flight cycle is
// never interrupted: cancellation is only observed between cycles, and each
// cycle runs under a context detached from ctx's cancellation.
func (r *Runner) Run(ctx context.Context) {
	cycleCtx := context.WithoutCancel(ctx)

	r.logger.Info("running initial sync")
	stats := r.engine.RunCycle(cycleCtx)
	r.logger.Info("initial sync finished", slog.String("stats", stats.String()))

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("scheduler started", slog.Duration("interval", r.interval))

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("shutdown signal received, stopping scheduler")
			return
		case <-ticker.C:
			stats := r.engine.RunCycle(cycleCtx)
			r.logger.Info("sync finished", slog.String("stats", stats.String()))
		}
	}
}

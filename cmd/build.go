package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fathomsync/fathomsync/internal/config"
	"github.com/fathomsync/fathomsync/internal/drive"
	"github.com/fathomsync/fathomsync/internal/fathom"
	"github.com/fathomsync/fathomsync/internal/google"
	"github.com/fathomsync/fathomsync/internal/instrumentation"
	"github.com/fathomsync/fathomsync/internal/sheets"
	"github.com/fathomsync/fathomsync/internal/state"
	syncer "github.com/fathomsync/fathomsync/internal/sync"
)

// drivePublisher adapts the Drive client to the engine's Publisher
// interface.
type drivePublisher struct {
	client *drive.Client
}

func (p drivePublisher) Upload(ctx context.Context, filename, content string) (*syncer.Artifact, error) {
	info, err := p.client.UploadTranscript(ctx, filename, content)
	if err != nil {
		return nil, err
	}
	return &syncer.Artifact{ID: info.ID, Link: info.WebViewLink}, nil
}

// buildEngine wires the Fathom client, state store, and Google
// collaborators into a ready-to-run engine.
func buildEngine(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *instrumentation.Metrics, opts ...syncer.Option) (*syncer.Engine, error) {
	if !google.HasToken() {
		return nil, fmt.Errorf("no Google OAuth token found, run 'fathomsync auth' first")
	}

	store := state.New(cfg.StateFile, logger)
	store.Load()

	limiter := fathom.NewLimiter(cfg.MinRequestSpacing)
	upstream := fathom.NewClient(cfg.FathomAPIURL, cfg.FathomAPIKey, cfg.PageSize, limiter, logger,
		fathom.WithUserAgent("fathomsync/"+version),
		fathom.WithMetrics(metrics))

	opts = append(opts, syncer.WithMetrics(metrics))

	driveClient, err := drive.NewClient(ctx, cfg.DriveFolderID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive client: %w", err)
	}

	sheetsClient, err := sheets.NewClient(ctx, cfg.SheetID, cfg.SheetRange)
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets client: %w", err)
	}

	return syncer.New(upstream, store, drivePublisher{driveClient}, sheetsClient, logger, opts...), nil
}

package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"AIRadar/internal/config"
	"AIRadar/internal/digest"
	"AIRadar/internal/infrastructure/catalog"
	"AIRadar/internal/infrastructure/feed"
	"AIRadar/internal/infrastructure/report"
	"AIRadar/internal/infrastructure/storage"
	"AIRadar/internal/logging"
	"AIRadar/internal/ports"
	"AIRadar/internal/usecase"
)

// Application wires configs to the run pipeline.
type Application struct {
	cfg      config.Config
	pipeline *usecase.Pipeline
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	sources := catalog.New(cfg.Feeds, baseLogger.With("component", "catalog"))
	reader := feed.NewReader(nil)

	var store ports.LedgerStore
	if cfg.Ledger.DSN != "" {
		db, err := sql.Open("postgres", cfg.Ledger.DSN)
		if err != nil {
			return nil, fmt.Errorf("open ledger database: %w", err)
		}
		store = storage.NewPostgresStore(db)
	} else {
		store = storage.NewCSVStore(cfg.Ledger.Path)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Catalog: sources,
		Reader:  reader,
		Store:   store,
		Digests: report.NewWriter(cfg.Digest.Dir),
		Selector: digest.Selector{
			WindowDays: cfg.Digest.WindowDays,
			MaxItems:   cfg.Digest.MaxItems,
		},
		SkipInitial: cfg.Digest.SkipInitial,
		Logger:      baseLogger.With("component", "pipeline"),
	})

	return &Application{cfg: cfg, pipeline: pipeline}, nil
}

// Run performs a single radar pass dated by the current day.
func (a *Application) Run(ctx context.Context) error {
	if a.pipeline == nil {
		return nil
	}

	_, err := a.pipeline.Run(ctx, time.Now().UTC())
	return err
}

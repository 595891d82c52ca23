package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"AIRadar/internal/digest"
	"AIRadar/internal/domain"
	"AIRadar/internal/ledger"
	"AIRadar/internal/ports"
	"AIRadar/internal/record"
)

// PipelineDeps wires all driven adapters into the run pipeline.
type PipelineDeps struct {
	Catalog     ports.SourceCatalog
	Reader      ports.FeedReader
	Store       ports.LedgerStore
	Digests     ports.DigestWriter
	Selector    digest.Selector
	SkipInitial bool
	Logger      *slog.Logger
}

// Pipeline implements one radar run: scan all sources, merge into the
// ledger, persist, and report what changed.
type Pipeline struct {
	catalog     ports.SourceCatalog
	reader      ports.FeedReader
	store       ports.LedgerStore
	digests     ports.DigestWriter
	selector    digest.Selector
	skipInitial bool
	logger      *slog.Logger
}

// RunResult summarizes one completed run.
type RunResult struct {
	Added      int
	Promoted   int
	DigestPath string
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		catalog:     deps.Catalog,
		reader:      deps.Reader,
		store:       deps.Store,
		digests:     deps.Digests,
		selector:    deps.Selector,
		skipInitial: deps.SkipInitial,
		logger:      logger,
	}
}

// Run processes every configured source once. A failing source logs a
// warning and contributes zero records; it never aborts the run. The
// ledger is rewritten sorted on every run, digest or not.
func (p *Pipeline) Run(ctx context.Context, day time.Time) (RunResult, error) {
	var result RunResult

	sources, err := p.catalog.Sources(ctx)
	if err != nil {
		return result, fmt.Errorf("load sources: %w", err)
	}

	persisted, err := p.store.Load(ctx)
	if err != nil {
		return result, fmt.Errorf("load ledger: %w", err)
	}
	firstRun := len(persisted) == 0
	led := ledger.Load(persisted)

	// Per-URL digest pool: a record added then promoted in the same run
	// appears once, with its final stored content, counted as added.
	poolRecords := make(map[string]domain.Record)
	poolOutcome := make(map[string]ledger.Outcome)
	var poolOrder []string

	for _, src := range sources {
		entries, err := p.reader.Fetch(ctx, src.URL)
		if err != nil {
			p.logger.Warn("source failed", "source", src.Name, "error", err)
			continue
		}
		p.logger.Debug("source fetched", "source", src.Name, "entries", len(entries))

		for _, entry := range entries {
			rec, ok := record.FromEntry(entry, src, day)
			if !ok {
				continue
			}

			stored, outcome := led.Merge(rec, day)
			url := stored.SourceURL

			switch outcome {
			case ledger.OutcomeAdded, ledger.OutcomePromoted:
				if _, seen := poolOutcome[url]; !seen {
					poolOutcome[url] = outcome
					poolOrder = append(poolOrder, url)
				}
				poolRecords[url] = stored
			case ledger.OutcomeUpdated:
				if _, seen := poolOutcome[url]; seen {
					poolRecords[url] = stored
				}
			}
		}
	}

	for _, url := range poolOrder {
		switch poolOutcome[url] {
		case ledger.OutcomeAdded:
			result.Added++
		case ledger.OutcomePromoted:
			result.Promoted++
		}
	}

	if err := p.store.Save(ctx, led.Records()); err != nil {
		return result, fmt.Errorf("save ledger: %w", err)
	}

	if p.skipInitial && firstRun {
		p.logger.Info("first run, digest suppressed", "added", result.Added, "promoted", result.Promoted)
		return result, nil
	}

	pool := make([]domain.Record, 0, len(poolOrder))
	for _, url := range poolOrder {
		pool = append(pool, poolRecords[url])
	}

	selected := p.selector.Select(pool, day)
	if len(selected) == 0 {
		p.logger.Info("no digest", "added", result.Added, "promoted", result.Promoted)
		return result, nil
	}

	path, err := p.digests.Write(ctx, day, digest.Render(selected, day))
	if err != nil {
		return result, fmt.Errorf("write digest: %w", err)
	}
	result.DigestPath = path

	p.logger.Info("run complete",
		"added", result.Added,
		"promoted", result.Promoted,
		"digest", path)
	return result, nil
}

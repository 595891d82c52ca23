package ports

import (
	"context"
	"time"

	"AIRadar/internal/domain"
)

// SourceCatalog enumerates the feed sources for a run.
type SourceCatalog interface {
	Sources(ctx context.Context) ([]domain.Source, error)
}

// FeedReader fetches raw entries for one feed URL. A failure covers the
// whole source and is isolated by the caller.
type FeedReader interface {
	Fetch(ctx context.Context, url string) ([]domain.Entry, error)
}

// LedgerStore loads and rewrites the persisted record ledger. An absent
// ledger loads as empty, not as an error.
type LedgerStore interface {
	Load(ctx context.Context) ([]domain.Record, error)
	Save(ctx context.Context, records []domain.Record) error
}

// DigestWriter persists one rendered digest per invocation day and
// returns the artifact path.
type DigestWriter interface {
	Write(ctx context.Context, day time.Time, content string) (string, error)
}

package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"AIRadar/internal/domain"
	"AIRadar/internal/ports"
)

const recordsTable = "radar_records"

// PostgresStore persists the ledger in Postgres, upserting on the
// source URL. It serves installs whose ledger outgrows a single file;
// the merge policy stays in the engine either way.
type PostgresStore struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.LedgerStore = (*PostgresStore)(nil)

// NewPostgresStore wires a sql.DB implementation.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Load reads every record in persisted order.
func (s *PostgresStore) Load(ctx context.Context) ([]domain.Record, error) {
	if s.db == nil {
		return nil, nil
	}

	query, args, err := s.builder.
		Select(columns...).
		From(recordsTable).
		OrderBy("status_date DESC", "last_seen DESC", "company ASC", "product ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		var r domain.Record
		err := rows.Scan(
			&r.ID, &r.Company, &r.Product, &r.Category, &r.Status,
			&r.StatusDate, &r.FirstSeen, &r.LastSeen, &r.ChangeType,
			&r.Version, &r.Summary, &r.SourceTitle, &r.SourceURL,
			&r.SourceType, &r.SourcePriority, &r.Confidence, &r.Tags,
			&r.Regions, &r.Notes,
		)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return records, nil
}

// Save upserts every record keyed by source_url.
func (s *PostgresStore) Save(ctx context.Context, records []domain.Record) error {
	if s.db == nil {
		return nil
	}

	for _, rec := range records {
		query, args, err := s.builder.
			Insert(recordsTable).
			Columns(columns...).
			Values(
				rec.ID, rec.Company, rec.Product, string(rec.Category), string(rec.Status),
				rec.StatusDate, rec.FirstSeen, rec.LastSeen, string(rec.ChangeType),
				rec.Version, rec.Summary, rec.SourceTitle, rec.SourceURL, rec.SourceType,
				rec.SourcePriority, rec.Confidence, rec.Tags, rec.Regions, rec.Notes,
			).
			Suffix(`ON CONFLICT (source_url) DO UPDATE SET
				id = EXCLUDED.id,
				company = EXCLUDED.company,
				product = EXCLUDED.product,
				category = EXCLUDED.category,
				status = EXCLUDED.status,
				status_date = EXCLUDED.status_date,
				last_seen = EXCLUDED.last_seen,
				change_type = EXCLUDED.change_type,
				version = EXCLUDED.version,
				summary = EXCLUDED.summary,
				source_title = EXCLUDED.source_title,
				tags = EXCLUDED.tags,
				notes = EXCLUDED.notes`).
			ToSql()
		if err != nil {
			return fmt.Errorf("build upsert: %w", err)
		}

		if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert record %s: %w", rec.SourceURL, err)
		}
	}

	return nil
}

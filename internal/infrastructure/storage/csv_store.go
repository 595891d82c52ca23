// Package storage persists the record ledger: a tabular CSV file by
// default, Postgres behind the same port for larger installs.
package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"AIRadar/internal/domain"
	"AIRadar/internal/ports"
)

// columns fixes the ledger's tabular layout. Loading tolerates files
// with a subset of columns; saving always writes the full set.
var columns = []string{
	"id", "company", "product", "category", "status", "status_date",
	"first_seen", "last_seen", "change_type", "version", "summary",
	"source_title", "source_url", "source_type", "source_priority",
	"confidence", "tags", "regions", "notes",
}

// CSVStore keeps the ledger in a single CSV file, fully rewritten on
// every save.
type CSVStore struct {
	path string
}

var _ ports.LedgerStore = (*CSVStore)(nil)

// NewCSVStore points the store at the ledger file path.
func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// Load reads the whole ledger. An absent file is an empty ledger.
func (s *CSVStore) Load(ctx context.Context) ([]domain.Record, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open ledger %s: %w", s.path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read ledger %s: %w", s.path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		index[name] = i
	}

	records := make([]domain.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, fromRow(index, row))
	}
	return records, nil
}

// Save rewrites the ledger file with the given records in order.
func (s *CSVStore) Save(ctx context.Context, records []domain.Record) error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create ledger %s: %w", s.path, err)
	}

	writer := csv.NewWriter(f)
	if err := writer.Write(columns); err != nil {
		_ = f.Close()
		return fmt.Errorf("write ledger header: %w", err)
	}
	for _, rec := range records {
		if err := writer.Write(toRow(rec)); err != nil {
			_ = f.Close()
			return fmt.Errorf("write ledger row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flush ledger: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close ledger: %w", err)
	}
	return nil
}

func toRow(r domain.Record) []string {
	return []string{
		r.ID, r.Company, r.Product, string(r.Category), string(r.Status),
		r.StatusDate, r.FirstSeen, r.LastSeen, string(r.ChangeType),
		r.Version, r.Summary, r.SourceTitle, r.SourceURL, r.SourceType,
		r.SourcePriority, r.Confidence, r.Tags, r.Regions, r.Notes,
	}
}

func fromRow(index map[string]int, row []string) domain.Record {
	field := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	return domain.Record{
		ID:             field("id"),
		Company:        field("company"),
		Product:        field("product"),
		Category:       domain.Category(field("category")),
		Status:         domain.Status(field("status")),
		StatusDate:     field("status_date"),
		FirstSeen:      field("first_seen"),
		LastSeen:       field("last_seen"),
		ChangeType:     domain.ChangeType(field("change_type")),
		Version:        field("version"),
		Summary:        field("summary"),
		SourceTitle:    field("source_title"),
		SourceURL:      field("source_url"),
		SourceType:     field("source_type"),
		SourcePriority: field("source_priority"),
		Confidence:     field("confidence"),
		Tags:           field("tags"),
		Regions:        field("regions"),
		Notes:          field("notes"),
	}
}

package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"AIRadar/internal/digest"
	"AIRadar/internal/domain"
)

var day = time.Date(2026, time.March, 5, 8, 0, 0, 0, time.UTC)

type fakeCatalog struct {
	sources []domain.Source
}

func (f *fakeCatalog) Sources(ctx context.Context) ([]domain.Source, error) {
	return f.sources, nil
}

type fakeReader struct {
	entries map[string][]domain.Entry
	errs    map[string]error
}

func (f *fakeReader) Fetch(ctx context.Context, url string) ([]domain.Entry, error) {
	if err := f.errs[url]; err != nil {
		return nil, err
	}
	return f.entries[url], nil
}

type memStore struct {
	records []domain.Record
	saved   []domain.Record
	saves   int
}

func (m *memStore) Load(ctx context.Context) ([]domain.Record, error) {
	return m.records, nil
}

func (m *memStore) Save(ctx context.Context, records []domain.Record) error {
	m.saved = records
	m.saves++
	return nil
}

type memWriter struct {
	content string
	writes  int
}

func (m *memWriter) Write(ctx context.Context, d time.Time, content string) (string, error) {
	m.content = content
	m.writes++
	return "digests/daily_" + d.Format("2006-01-02") + ".md", nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newPipeline(cat *fakeCatalog, reader *fakeReader, store *memStore, writer *memWriter, skipInitial bool) *Pipeline {
	return NewPipeline(PipelineDeps{
		Catalog:     cat,
		Reader:      reader,
		Store:       store,
		Digests:     writer,
		Selector:    digest.Selector{},
		SkipInitial: skipInitial,
		Logger:      discard(),
	})
}

func entry(title, link string) domain.Entry {
	return domain.Entry{Title: title, Link: link, Summary: title + " body"}
}

func TestRunAddsAndReports(t *testing.T) {
	t.Parallel()

	cat := &fakeCatalog{sources: []domain.Source{{Name: "OpenAI:News", URL: "https://feed.test/a", Vertical: "ai"}}}
	reader := &fakeReader{entries: map[string][]domain.Entry{
		"https://feed.test/a": {
			entry("Foo now available", "https://x.test/foo"),
			entry("Bar announcement", "https://x.test/bar"),
			{Title: "", Link: "https://x.test/skipped"},
		},
	}}
	store := &memStore{}
	writer := &memWriter{}

	result, err := newPipeline(cat, reader, store, writer, false).Run(context.Background(), day)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if result.Added != 2 || result.Promoted != 0 {
		t.Fatalf("counts = %d added / %d promoted", result.Added, result.Promoted)
	}
	if result.DigestPath == "" {
		t.Fatal("expected a digest path")
	}
	if store.saves != 1 || len(store.saved) != 2 {
		t.Fatalf("ledger save: %d saves, %d records", store.saves, len(store.saved))
	}
	if writer.writes != 1 {
		t.Fatalf("digest writes = %d", writer.writes)
	}
	if !strings.Contains(writer.content, "Foo") || !strings.Contains(writer.content, "Bar") {
		t.Fatalf("digest missing items:\n%s", writer.content)
	}
}

func TestRunIsolatesSourceFailures(t *testing.T) {
	t.Parallel()

	cat := &fakeCatalog{sources: []domain.Source{
		{Name: "Broken:Feed", URL: "https://feed.test/broken", Vertical: "ai"},
		{Name: "OpenAI:News", URL: "https://feed.test/ok", Vertical: "ai"},
	}}
	reader := &fakeReader{
		errs: map[string]error{"https://feed.test/broken": errors.New("connection refused")},
		entries: map[string][]domain.Entry{
			"https://feed.test/ok": {entry("Foo now available", "https://x.test/foo")},
		},
	}
	store := &memStore{}
	writer := &memWriter{}

	result, err := newPipeline(cat, reader, store, writer, false).Run(context.Background(), day)
	if err != nil {
		t.Fatalf("a failing source must not fail the run: %v", err)
	}
	if result.Added != 1 {
		t.Fatalf("added = %d, want 1 from the healthy source", result.Added)
	}
}

func TestRunExcludesUpdatedFromDigest(t *testing.T) {
	t.Parallel()

	existing := domain.Record{
		ID:         "x",
		Company:    "OpenAI",
		Product:    "Foo",
		Status:     domain.StatusShipped,
		StatusDate: "2026-03-01",
		FirstSeen:  "2026-03-01",
		LastSeen:   "2026-03-01",
		SourceURL:  "https://x.test/foo",
	}

	cat := &fakeCatalog{sources: []domain.Source{{Name: "OpenAI:News", URL: "https://feed.test/a", Vertical: "ai"}}}
	reader := &fakeReader{entries: map[string][]domain.Entry{
		// Same URL, weaker status: outcome is updated, not digest-worthy.
		"https://feed.test/a": {entry("Foo announcement", "https://x.test/foo")},
	}}
	store := &memStore{records: []domain.Record{existing}}
	writer := &memWriter{}

	result, err := newPipeline(cat, reader, store, writer, false).Run(context.Background(), day)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if result.Added != 0 || result.Promoted != 0 {
		t.Fatalf("counts = %d/%d, want 0/0", result.Added, result.Promoted)
	}
	if writer.writes != 0 {
		t.Fatal("updated outcomes must not produce a digest")
	}
	if result.DigestPath != "" {
		t.Fatalf("unexpected digest path %q", result.DigestPath)
	}
	if store.saves != 1 {
		t.Fatal("ledger must still be rewritten")
	}
	if store.saved[0].LastSeen != "2026-03-05" {
		t.Fatalf("last_seen = %s, want refreshed", store.saved[0].LastSeen)
	}
}

func TestRunPromotionAppearsOnceInDigest(t *testing.T) {
	t.Parallel()

	existing := domain.Record{
		ID:         "x",
		Company:    "OpenAI",
		Product:    "Foo",
		Status:     domain.StatusAnnounced,
		StatusDate: "2026-03-01",
		FirstSeen:  "2026-03-01",
		LastSeen:   "2026-03-01",
		SourceURL:  "https://x.test/foo",
	}

	cat := &fakeCatalog{sources: []domain.Source{{Name: "OpenAI:News", URL: "https://feed.test/a", Vertical: "ai"}}}
	reader := &fakeReader{entries: map[string][]domain.Entry{
		"https://feed.test/a": {
			entry("Foo now available", "https://x.test/foo"),
			entry("Foo now available", "https://x.test/foo"),
		},
	}}
	store := &memStore{records: []domain.Record{existing}}
	writer := &memWriter{}

	result, err := newPipeline(cat, reader, store, writer, false).Run(context.Background(), day)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if result.Promoted != 1 || result.Added != 0 {
		t.Fatalf("counts = %d added / %d promoted, want 0/1", result.Added, result.Promoted)
	}
	if got := strings.Count(writer.content, "## OpenAI: Foo"); got != 1 {
		t.Fatalf("promoted record rendered %d times:\n%s", got, writer.content)
	}
}

func TestRunSkipInitialSuppressesFirstDigest(t *testing.T) {
	t.Parallel()

	cat := &fakeCatalog{sources: []domain.Source{{Name: "OpenAI:News", URL: "https://feed.test/a", Vertical: "ai"}}}
	reader := &fakeReader{entries: map[string][]domain.Entry{
		"https://feed.test/a": {entry("Foo now available", "https://x.test/foo")},
	}}
	store := &memStore{}
	writer := &memWriter{}

	result, err := newPipeline(cat, reader, store, writer, true).Run(context.Background(), day)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if result.Added != 1 {
		t.Fatalf("added = %d, persistence must not be suppressed", result.Added)
	}
	if store.saves != 1 || len(store.saved) != 1 {
		t.Fatal("ledger must be persisted on a suppressed first run")
	}
	if writer.writes != 0 {
		t.Fatal("first-run digest must be suppressed")
	}

	// The second run starts from a non-empty ledger, so digests resume.
	store.records = store.saved
	reader.entries["https://feed.test/a"] = []domain.Entry{entry("Bar now available", "https://x.test/bar")}
	result, err = newPipeline(cat, reader, store, writer, true).Run(context.Background(), day.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("second Run error: %v", err)
	}
	if result.Added != 1 || writer.writes != 1 {
		t.Fatalf("second run: added=%d writes=%d", result.Added, writer.writes)
	}
}

func TestRunIdempotentRefeed(t *testing.T) {
	t.Parallel()

	cat := &fakeCatalog{sources: []domain.Source{{Name: "OpenAI:News", URL: "https://feed.test/a", Vertical: "ai"}}}
	reader := &fakeReader{entries: map[string][]domain.Entry{
		"https://feed.test/a": {entry("Foo now available", "https://x.test/foo")},
	}}
	store := &memStore{}
	writer := &memWriter{}

	if _, err := newPipeline(cat, reader, store, writer, false).Run(context.Background(), day); err != nil {
		t.Fatalf("first Run error: %v", err)
	}
	first := store.saved[0]

	store.records = store.saved
	result, err := newPipeline(cat, reader, store, writer, false).Run(context.Background(), day)
	if err != nil {
		t.Fatalf("second Run error: %v", err)
	}
	if result.Added != 0 || result.Promoted != 0 {
		t.Fatalf("re-feed counts = %d/%d, want 0/0", result.Added, result.Promoted)
	}
	if store.saved[0] != first {
		t.Fatalf("re-feed changed stored content:\n%+v\n%+v", first, store.saved[0])
	}
}

package normalize

import (
	"strings"
	"testing"
	"time"

	"AIRadar/internal/domain"
)

func TestID(t *testing.T) {
	t.Parallel()

	got := ID("OpenAI", "Introducing GPT: The Sequel!", "2026-03-05")
	want := "openai-introducing-gpt-the-sequel-2026-03-05"
	if got != want {
		t.Fatalf("ID = %q, want %q", got, want)
	}

	if got != ID("OpenAI", "Introducing GPT: The Sequel!", "2026-03-05") {
		t.Fatal("identity not stable for identical inputs")
	}

	long := ID("Company", strings.Repeat("very long title ", 20), "2026-03-05")
	if len(long) != 64 {
		t.Fatalf("expected 64-char slug, got %d", len(long))
	}

	// Underscores survive the slug alphabet.
	if got := ID("x", "a_b", "d"); got != "x-a_b-d" {
		t.Fatalf("ID with underscore = %q", got)
	}
}

func TestEntryDate(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC)
	published := time.Date(2025, time.November, 8, 9, 30, 0, 0, time.UTC)
	updated := time.Date(2025, time.December, 1, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		entry domain.Entry
		want  string
	}{
		{"published wins", domain.Entry{Published: &published, Updated: &updated}, "2025-11-08"},
		{"updated fallback", domain.Entry{Updated: &updated}, "2025-12-01"},
		{"today fallback", domain.Entry{}, "2026-03-05"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := EntryDate(tt.entry, now); got != tt.want {
				t.Fatalf("EntryDate = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSummaryCleaning(t *testing.T) {
	t.Parallel()

	got := Summary("<p>Foo is   <b>great</b> &amp; fast.</p>", "title")
	if got != "Foo is great & fast." {
		t.Fatalf("Summary = %q", got)
	}

	if got := Summary("   <p> </p> ", "Fallback Title"); got != "Fallback Title" {
		t.Fatalf("expected title fallback, got %q", got)
	}
}

func TestSummaryTruncation(t *testing.T) {
	t.Parallel()

	// Period at offset 420: the cut ends exactly at that period.
	withBreak := strings.Repeat("a", 420) + "." + strings.Repeat("b", 179)
	got := Summary(withBreak, "title")
	if len(got) != 421 {
		t.Fatalf("expected 421 chars, got %d", len(got))
	}
	if !strings.HasSuffix(got, ".") {
		t.Fatalf("expected cut at sentence boundary, got suffix %q", got[len(got)-5:])
	}

	// No sentence break before the bound: hard cut at 500.
	noBreak := strings.Repeat("a", 600)
	if got := Summary(noBreak, "title"); len(got) != 500 {
		t.Fatalf("expected hard cut at 500, got %d", len(got))
	}

	// A terminator before the minimum threshold is too early to use.
	earlyBreak := strings.Repeat("a", 100) + "." + strings.Repeat("b", 499)
	if got := Summary(earlyBreak, "title"); len(got) != 500 {
		t.Fatalf("expected hard cut at 500, got %d", len(got))
	}

	// Under the bound nothing is trimmed off.
	short := strings.Repeat("a", 499)
	if got := Summary(short, "title"); got != short {
		t.Fatalf("short summary modified: %d chars", len(got))
	}
}

func TestCompany(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		label string
		link  string
		want  string
	}{
		{"label prefix", "OpenAI:News", "https://example.org/x", "OpenAI"},
		{"host table", "somefeed", "https://blogs.nvidia.com/post/1", "NVIDIA"},
		{"host table multiword", "somefeed", "https://huggingface.co/blog/x", "Hugging Face"},
		{"raw host fallback", "somefeed", "https://blog.unknown.dev/post", "blog.unknown.dev"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Company(tt.label, tt.link); got != tt.want {
				t.Fatalf("Company(%q, %q) = %q, want %q", tt.label, tt.link, got, tt.want)
			}
		})
	}
}

func TestProduct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"colon", "GPT-Next: our best model", "GPT"},
		{"hyphen", "Quest 4 - hands on", "Quest 4"},
		{"en dash", "Isaac Lab – robot training", "Isaac Lab"},
		{"spaced em dash", "Vision Pro — what changed", "Vision Pro"},
		{"no separator", "Introducing Foo", "Introducing Foo"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Product(tt.title); got != tt.want {
				t.Fatalf("Product(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}

	long := Product(strings.Repeat("x", 120))
	if len([]rune(long)) != 80 {
		t.Fatalf("expected 80-rune bound, got %d", len([]rune(long)))
	}
}

// Package feed reads RSS and Atom sources into raw entries.
package feed

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"AIRadar/internal/domain"
	"AIRadar/internal/ports"
)

// Reader fetches and parses one syndication feed per call.
type Reader struct {
	parser *gofeed.Parser
}

var _ ports.FeedReader = (*Reader)(nil)

// NewReader wires an HTTP client; a nil client gets a 20s timeout.
func NewReader(client *http.Client) *Reader {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	parser := gofeed.NewParser()
	parser.Client = client
	parser.UserAgent = "AIRadar/1.0"
	return &Reader{parser: parser}
}

// Fetch returns the feed's entries. Any retrieval or parse failure
// covers the whole source; callers isolate it without aborting the run.
func (r *Reader) Fetch(ctx context.Context, url string) ([]domain.Entry, error) {
	parsed, err := r.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", url, err)
	}

	entries := make([]domain.Entry, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		summary := item.Description
		if summary == "" {
			summary = item.Content
		}
		entries = append(entries, domain.Entry{
			Title:     item.Title,
			Link:      item.Link,
			Summary:   summary,
			Published: item.PublishedParsed,
			Updated:   item.UpdatedParsed,
		})
	}
	return entries, nil
}

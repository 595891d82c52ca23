// Package digest selects and renders the records worth reporting from
// one run: additions and promotions, windowed and capped.
package digest

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"AIRadar/internal/domain"
)

const dateLayout = "2006-01-02"

// Selector filters and orders the digest pool. Zero values mean
// unbounded: no time window, no item cap.
type Selector struct {
	WindowDays int
	MaxItems   int
}

// Select returns the records to report, newest first. Records whose
// status date falls outside the window are dropped; an empty result
// means no digest should be emitted.
func (s Selector) Select(pool []domain.Record, now time.Time) []domain.Record {
	selected := make([]domain.Record, 0, len(pool))
	if s.WindowDays > 0 {
		cutoff := now.AddDate(0, 0, -s.WindowDays).Format(dateLayout)
		for _, rec := range pool {
			if rec.StatusDate >= cutoff {
				selected = append(selected, rec)
			}
		}
	} else {
		selected = append(selected, pool...)
	}

	sort.SliceStable(selected, func(a, b int) bool {
		if selected[a].StatusDate != selected[b].StatusDate {
			return selected[a].StatusDate > selected[b].StatusDate
		}
		return selected[a].LastSeen > selected[b].LastSeen
	})

	if s.MaxItems > 0 && len(selected) > s.MaxItems {
		selected = selected[:s.MaxItems]
	}
	return selected
}

// Render produces the daily markdown report for the selected records.
func Render(records []domain.Record, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# AI Radar — %s\n\n", now.Format(dateLayout))
	for _, rec := range records {
		fmt.Fprintf(&b, "## %s: %s — **%s**\n", rec.Company, rec.Product, rec.Status)
		fmt.Fprintf(&b, "- %s\n", body(rec))
		fmt.Fprintf(&b, "- Category: %s  |  Change: %s  |  Tags: %s\n", rec.Category, rec.ChangeType, rec.Tags)
		fmt.Fprintf(&b, "- Source: %s — %s\n\n", rec.SourceTitle, rec.SourceURL)
	}
	return b.String()
}

func body(rec domain.Record) string {
	for _, candidate := range []string{rec.Summary, rec.Notes, rec.SourceTitle} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

// Package record composes classified, normalized feed entries into
// canonical ledger records.
package record

import (
	"strings"
	"time"

	"AIRadar/internal/classify"
	"AIRadar/internal/domain"
	"AIRadar/internal/normalize"
)

const dateLayout = "2006-01-02"

// FromEntry builds the canonical record for one feed entry. Entries
// missing a title or link are not records; they return ok=false and are
// skipped silently upstream.
func FromEntry(entry domain.Entry, source domain.Source, now time.Time) (domain.Record, bool) {
	title := strings.TrimSpace(entry.Title)
	link := strings.TrimSpace(entry.Link)
	if title == "" || link == "" {
		return domain.Record{}, false
	}

	blob := title + "\n" + strings.TrimSpace(entry.Summary)
	status := classify.Status(blob)
	today := now.Format(dateLayout)
	statusDate := normalize.EntryDate(entry, now)
	company := normalize.Company(source.Name, link)

	return domain.Record{
		ID:             normalize.ID(company, title, statusDate),
		Company:        company,
		Product:        normalize.Product(title),
		Category:       classify.Category(blob),
		Status:         status,
		StatusDate:     statusDate,
		FirstSeen:      today,
		LastSeen:       today,
		ChangeType:     changeType(status),
		Summary:        normalize.Summary(entry.Summary, title),
		SourceTitle:    title,
		SourceURL:      link,
		SourceType:     "RSS/Blog",
		SourcePriority: "official",
		Confidence:     "0.6",
		Tags:           source.Vertical,
		Regions:        "global",
	}, true
}

func changeType(status domain.Status) domain.ChangeType {
	switch status {
	case domain.StatusAnnounced, domain.StatusPreview:
		return domain.ChangeNew
	case domain.StatusShipped:
		return domain.ChangeLaunch
	default:
		return domain.ChangeUpdate
	}
}

// Package ledger implements the state-merge engine over the record
// ledger: one record per source URL, statuses only ever promoted.
package ledger

import (
	"sort"
	"time"

	"AIRadar/internal/domain"
)

const dateLayout = "2006-01-02"

// Outcome classifies the effect of merging one incoming record.
type Outcome string

const (
	OutcomeAdded    Outcome = "added"
	OutcomeUpdated  Outcome = "updated"
	OutcomePromoted Outcome = "promoted"
)

// Ledger holds the full record set in memory between load and save.
// The source URL is the dedup key; at most one record exists per URL.
type Ledger struct {
	records []domain.Record
	byURL   map[string]int
}

// Load builds an in-memory ledger over persisted records. Later records
// win when the input violates the one-per-URL invariant.
func Load(records []domain.Record) *Ledger {
	l := &Ledger{byURL: make(map[string]int, len(records))}
	for _, rec := range records {
		if i, ok := l.byURL[rec.SourceURL]; ok {
			l.records[i] = rec
			continue
		}
		l.byURL[rec.SourceURL] = len(l.records)
		l.records = append(l.records, rec)
	}
	return l
}

// Len reports the number of tracked records.
func (l *Ledger) Len() int {
	return len(l.records)
}

// Merge folds one incoming record into the ledger and returns the
// stored record after the merge together with the outcome.
//
// Absent URLs insert verbatim. Present URLs refresh last_seen; an
// incoming status that outranks the stored one promotes the record,
// dating the promotion by observation time rather than the entry's own
// date. Equal-or-lower ranks leave status fields untouched but take a
// non-empty incoming summary, so re-feeds stay idempotent by content.
func (l *Ledger) Merge(incoming domain.Record, now time.Time) (domain.Record, Outcome) {
	today := now.Format(dateLayout)

	i, ok := l.byURL[incoming.SourceURL]
	if !ok {
		l.byURL[incoming.SourceURL] = len(l.records)
		l.records = append(l.records, incoming)
		return incoming, OutcomeAdded
	}

	stored := &l.records[i]
	stored.LastSeen = today

	if incoming.Status.Rank() <= stored.Status.Rank() {
		if incoming.Summary != "" {
			stored.Summary = incoming.Summary
		}
		return *stored, OutcomeUpdated
	}

	stored.Status = incoming.Status
	stored.StatusDate = today
	stored.ChangeType = incoming.ChangeType
	if incoming.Version != "" {
		stored.Version = incoming.Version
	}
	stored.Tags = incoming.Tags
	stored.Summary = incoming.Summary
	return *stored, OutcomePromoted
}

// Records returns the ledger in persisted order: status_date desc,
// last_seen desc, company asc, product asc, so external reads see the
// newest items first.
func (l *Ledger) Records() []domain.Record {
	out := make([]domain.Record, len(l.records))
	copy(out, l.records)
	sort.SliceStable(out, func(a, b int) bool {
		ra, rb := out[a], out[b]
		if ra.StatusDate != rb.StatusDate {
			return ra.StatusDate > rb.StatusDate
		}
		if ra.LastSeen != rb.LastSeen {
			return ra.LastSeen > rb.LastSeen
		}
		if ra.Company != rb.Company {
			return ra.Company < rb.Company
		}
		return ra.Product < rb.Product
	})
	return out
}

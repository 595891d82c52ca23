// Package normalize derives stable identities and cleaned, bounded text
// from raw feed entry fields.
package normalize

import (
	"html"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"AIRadar/internal/domain"
)

const (
	maxIDLen      = 64
	maxProductLen = 80
	summaryLimit  = 500
	// summaryMinCut keeps sentence-boundary truncation from cutting the
	// summary absurdly early; terminators before this offset are ignored.
	summaryMinCut = 200
)

const dateLayout = "2006-01-02"

var (
	slugExpr       = regexp.MustCompile(`[^a-z0-9_]+`)
	whitespaceExpr = regexp.MustCompile(`\s+`)
)

// companyByHost resolves a link's network host to a display name. Hosts
// absent from the table fall back to the raw host string.
var companyByHost = []struct {
	host    string
	company string
}{
	{"openai.com", "OpenAI"},
	{"blog.google", "Google"},
	{"research.google", "Google"},
	{"ai.meta.com", "Meta"},
	{"developers.meta.com", "Meta"},
	{"microsoft.com", "Microsoft"},
	{"blogs.nvidia.com", "NVIDIA"},
	{"nvidianews.nvidia.com", "NVIDIA"},
	{"aws.amazon.com", "AWS"},
	{"machinelearning.apple.com", "Apple"},
	{"huggingface.co", "Hugging Face"},
}

// ID builds the informational identity slug from company, title and the
// status date. Stable for identical inputs; not the dedup key.
func ID(company, title, date string) string {
	base := strings.ToLower(company + "|" + title + "|" + date)
	slug := slugExpr.ReplaceAllString(base, "-")
	if len(slug) > maxIDLen {
		slug = slug[:maxIDLen]
	}
	return slug
}

// EntryDate picks the entry's published timestamp, falling back to the
// updated timestamp, falling back to the given day.
func EntryDate(entry domain.Entry, now time.Time) string {
	if entry.Published != nil {
		return entry.Published.Format(dateLayout)
	}
	if entry.Updated != nil {
		return entry.Updated.Format(dateLayout)
	}
	return now.Format(dateLayout)
}

// Summary strips markup and entities from raw feed text, collapses
// whitespace and bounds the result, preferring a sentence boundary for
// the cut. An empty result falls back to the title.
func Summary(raw, title string) string {
	text := whitespaceExpr.ReplaceAllString(stripMarkup(raw), " ")
	text = strings.TrimSpace(text)
	if text == "" {
		text = strings.TrimSpace(title)
	}
	return truncateSummary(text)
}

func stripMarkup(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return html.UnescapeString(s)
	}
	return doc.Text()
}

func truncateSummary(s string) string {
	runes := []rune(s)
	if len(runes) <= summaryLimit {
		return s
	}
	cut := runes[:summaryLimit]
	for i := len(cut) - 1; i >= summaryMinCut; i-- {
		switch cut[i] {
		case '.', '!', '?':
			return string(cut[:i+1])
		}
	}
	return string(cut)
}

// Company resolves the organization for an entry: the feed label's
// prefix before a colon when present, else the link host via the fixed
// table, else the host itself.
func Company(feedLabel, link string) string {
	if idx := strings.Index(feedLabel, ":"); idx >= 0 {
		return feedLabel[:idx]
	}
	parsed, err := url.Parse(link)
	if err != nil {
		return link
	}
	host := parsed.Hostname()
	for _, m := range companyByHost {
		if m.host == host {
			return m.company
		}
	}
	return host
}

// Product guesses a short name from the title text before its first
// separator, bounded in length.
func Product(title string) string {
	idx := -1
	for _, sep := range []string{":", "–", "-", " — "} {
		if j := strings.Index(title, sep); j >= 0 && (idx < 0 || j < idx) {
			idx = j
		}
	}
	if idx >= 0 {
		title = title[:idx]
	}
	title = strings.TrimSpace(title)
	if runes := []rune(title); len(runes) > maxProductLen {
		title = strings.TrimSpace(string(runes[:maxProductLen]))
	}
	return title
}

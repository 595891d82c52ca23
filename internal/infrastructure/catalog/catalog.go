// Package catalog enumerates feed sources from an OPML outline, from
// explicit configuration, or from the built-in default table.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gilliek/go-opml/opml"

	"AIRadar/internal/config"
	"AIRadar/internal/domain"
	"AIRadar/internal/ports"
)

// Catalog resolves the source list for a run.
type Catalog struct {
	cfg    config.FeedsConfig
	logger *slog.Logger
}

var _ ports.SourceCatalog = (*Catalog)(nil)

// New builds a catalog over the feeds configuration.
func New(cfg config.FeedsConfig, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{cfg: cfg, logger: logger}
}

// Sources returns the feeds to scan. An unreadable or empty outline is
// a warning, not a failure: the catalog falls through to explicit
// config sources and finally to the built-in defaults.
func (c *Catalog) Sources(ctx context.Context) ([]domain.Source, error) {
	if c.cfg.OPMLPath != "" {
		sources, err := fromOutline(c.cfg.OPMLPath)
		if err != nil {
			c.logger.Warn("cannot read source outline", "path", c.cfg.OPMLPath, "error", err)
		} else if len(sources) > 0 {
			return sources, nil
		}
	}

	if len(c.cfg.Sources) > 0 {
		sources := make([]domain.Source, 0, len(c.cfg.Sources))
		for _, src := range c.cfg.Sources {
			vertical := src.Vertical
			if vertical == "" {
				vertical = "ai"
			}
			sources = append(sources, domain.Source{Name: src.Name, URL: src.URL, Vertical: vertical})
		}
		return sources, nil
	}

	return defaultSources(), nil
}

func fromOutline(path string) ([]domain.Source, error) {
	doc, err := opml.NewOPMLFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("parse outline: %w", err)
	}

	var sources []domain.Source
	collect(doc.Body.Outlines, nil, &sources)
	return sources, nil
}

func collect(outlines []opml.Outline, ancestors []string, out *[]domain.Source) {
	for _, outline := range outlines {
		label := outline.Text
		if label == "" {
			label = outline.Title
		}

		path := make([]string, 0, len(ancestors)+1)
		path = append(path, ancestors...)
		path = append(path, label)

		if outline.XMLURL != "" {
			*out = append(*out, domain.Source{
				Name:     label,
				URL:      outline.XMLURL,
				Vertical: verticalFor(path),
			})
		}
		collect(outline.Outlines, path, out)
	}
}

// verticalFor infers the coarse domain tag from the outline label and
// its ancestors: robot→robotics, research/arxiv→research, ar&vr→xr,
// anything else→ai.
func verticalFor(labels []string) string {
	joined := strings.ToLower(strings.Join(labels, "/"))
	compact := strings.ReplaceAll(joined, " ", "")
	switch {
	case strings.Contains(joined, "robot"):
		return "robotics"
	case strings.Contains(joined, "research"), strings.Contains(joined, "arxiv"):
		return "research"
	case strings.Contains(compact, "ar&vr"):
		return "xr"
	default:
		return "ai"
	}
}

func defaultSources() []domain.Source {
	pairs := []struct {
		name string
		url  string
	}{
		{"OpenAI:News", "https://openai.com/news/rss.xml"},
		{"Google:AI", "https://blog.google/technology/ai/rss/"},
		{"Google:DeepMind", "https://blog.google/technology/google-deepmind/rss/"},
		{"Google:Research", "https://research.google/blog/rss/"},
		{"Microsoft:AI", "https://www.microsoft.com/en-us/ai/blog/feed/"},
		{"NVIDIA:Blog", "https://blogs.nvidia.com/feed/"},
		{"NVIDIA:Newsroom", "https://nvidianews.nvidia.com/rss"},
		{"AWS:ML", "https://aws.amazon.com/blogs/machine-learning/feed/"},
		{"Apple:MLResearch", "https://machinelearning.apple.com/feed.xml"},
		{"HuggingFace:Blog", "https://huggingface.co/blog/feed.xml"},
	}

	sources := make([]domain.Source, 0, len(pairs))
	for _, p := range pairs {
		sources = append(sources, domain.Source{Name: p.name, URL: p.url, Vertical: "ai"})
	}
	return sources
}

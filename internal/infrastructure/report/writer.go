// Package report writes the rendered daily digest artifact.
package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"AIRadar/internal/ports"
)

// Writer stores one digest file per calendar day under a directory.
type Writer struct {
	dir string
}

var _ ports.DigestWriter = (*Writer)(nil)

// NewWriter points the writer at the digest output directory.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Write persists the digest for the given day and returns its path.
func (w *Writer) Write(ctx context.Context, day time.Time, content string) (string, error) {
	if w.dir == "" {
		return "", fmt.Errorf("digest writer misconfigured: no directory")
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create digest dir %s: %w", w.dir, err)
	}

	path := filepath.Join(w.dir, fmt.Sprintf("daily_%s.md", day.Format("2006-01-02")))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write digest %s: %w", path, err)
	}
	return path, nil
}

// Package exporter writes a run result as JSON, an xlsx workbook and a Markdown document.
package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"applyhome/internal/models"
	"applyhome/internal/timezone"
	"applyhome/pkg/metadata"
)

// Targets are the output file paths of one run.
type Targets struct {
	JSON     string
	XLSX     string
	Markdown string
}

// Options holds the run-wide export settings.
type Options struct {
	GeneratedAt  time.Time
	ExcerptChars int
}

// Export writes JSON, xlsx and Markdown in that order. The first failure stops
// the remaining exports.
func Export(res models.RunResult, targets Targets, opts Options) (metadata.Metadata, error) {
	for _, p := range []string{targets.JSON, targets.XLSX, targets.Markdown} {
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return metadata.Metadata{}, fmt.Errorf("create output folder: %w", err)
		}
	}

	today := timezone.Today(opts.GeneratedAt)

	if err := WriteJSON(targets.JSON, res.Listings); err != nil {
		return metadata.Metadata{}, err
	}

	if err := WriteXLSX(targets.XLSX, res.Listings, today); err != nil {
		return metadata.Metadata{}, err
	}

	return WriteMarkdown(targets.Markdown, res, MarkdownOptions{
		GeneratedAt:  opts.GeneratedAt,
		Today:        today,
		ExcerptChars: opts.ExcerptChars,
	})
}

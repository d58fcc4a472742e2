package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ADEdimeji-James/weather-data-pipeline/internal/domain"
)

// Writer writes the hottest-cities ranking as a plain-text file.
// It implements pipeline.ReportWriter.
type Writer struct {
	path   string
	topN   int
	logger *slog.Logger
}

// NewWriter creates a Writer for a top-N ranking written to path.
func NewWriter(path string, topN int, logger *slog.Logger) *Writer {
	return &Writer{path: path, topN: topN, logger: logger}
}

// Path returns the output file path.
func (w *Writer) Path() string { return w.path }

// WriteReport renders the ranking and writes it to the configured path.
func (w *Writer) WriteReport(_ context.Context, ranked []domain.CitySummary) error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return fmt.Errorf("%w: create output dir: %w", domain.ErrFileAccess, err)
	}

	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", domain.ErrFileAccess, w.path, err)
	}
	if err := Render(f, ranked, w.topN); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: write %s: %w", domain.ErrFileAccess, w.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", domain.ErrFileAccess, w.path, err)
	}

	w.logger.Info("temperature report written", "path", w.path, "cities", len(ranked))
	return nil
}

// Render writes the ranking, one "City: 12.34°C" line per city in the
// given order.
func Render(w io.Writer, ranked []domain.CitySummary, topN int) error {
	if _, err := fmt.Fprintf(w, "Top %d Cities with Highest Average Temperature (°C):\n\n", topN); err != nil {
		return err
	}
	if len(ranked) == 0 {
		_, err := fmt.Fprintln(w, "No cities with temperature data.")
		return err
	}
	for _, c := range ranked {
		if _, err := fmt.Fprintf(w, "%s: %.2f°C\n", c.City, c.AverageCelsius); err != nil {
			return err
		}
	}
	return nil
}

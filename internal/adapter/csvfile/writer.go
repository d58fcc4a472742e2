package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ADEdimeji-James/weather-data-pipeline/internal/domain"
)

// Writer persists a cleaned Table as CSV.
// It implements pipeline.TableWriter.
type Writer struct {
	path   string
	logger *slog.Logger
}

// NewWriter creates a Writer targeting path. Intermediate directories are
// created on write.
func NewWriter(path string, logger *slog.Logger) *Writer {
	return &Writer{path: path, logger: logger}
}

// Path returns the output file path.
func (w *Writer) Path() string { return w.path }

// WriteTable creates (or truncates) the output file and writes the table.
func (w *Writer) WriteTable(_ context.Context, t *domain.Table) error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return fmt.Errorf("%w: create output dir: %w", domain.ErrFileAccess, err)
	}

	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", domain.ErrFileAccess, w.path, err)
	}

	if err := Encode(f, t); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", domain.ErrFileAccess, w.path, err)
	}

	w.logger.Info("cleaned csv written", "path", w.path, "rows", len(t.Rows))
	return nil
}

// Encode writes the table as CSV in header order. Missing values are
// written as empty cells.
func Encode(w io.Writer, t *domain.Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("%w: write header: %w", domain.ErrFileAccess, err)
	}

	record := make([]string, len(t.Header))
	for i := range t.Rows {
		for j, name := range t.Header {
			record[j] = cell(&t.Rows[i], name)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("%w: write row %d: %w", domain.ErrFileAccess, i+1, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: flush: %w", domain.ErrFileAccess, err)
	}
	return nil
}

func cell(o *domain.Observation, name string) string {
	if v, ok := o.Extra[name]; ok {
		return v
	}
	switch domain.CanonicalColumn(name) {
	case domain.ColCity:
		return o.City
	case domain.ColDate:
		return o.Date
	case domain.ColWeatherCondition:
		return o.WeatherCondition
	case domain.ColTemperatureCelsius:
		return formatFloat(o.TemperatureCelsius)
	case domain.ColHumidity:
		return formatFloat(o.Humidity)
	case domain.ColWindSpeed:
		return formatFloat(o.WindSpeed)
	case domain.ColTemperatureFahrenheit:
		return formatFloat(o.TemperatureFahrenheit)
	default:
		return ""
	}
}

func formatFloat(v float64) string {
	if domain.IsMissing(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

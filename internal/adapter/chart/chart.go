package chart

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/ADEdimeji-James/weather-data-pipeline/internal/domain"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const (
	chartWidth  = 10 * vg.Inch
	chartHeight = 6 * vg.Inch
	barWidth    = 14
)

var skyBlue = color.RGBA{R: 135, G: 206, B: 235, A: 255}

// Renderer draws per-city average temperatures as a horizontal bar chart.
// It implements pipeline.ChartRenderer.
type Renderer struct {
	path   string
	logger *slog.Logger
}

// NewRenderer creates a Renderer saving to path. The image format follows
// the file extension (png, jpg, svg, pdf, ...).
func NewRenderer(path string, logger *slog.Logger) *Renderer {
	return &Renderer{path: path, logger: logger}
}

// Path returns the output file path.
func (r *Renderer) Path() string { return r.path }

// RenderChart draws one bar per city and saves the image. An empty input
// draws nothing.
func (r *Renderer) RenderChart(_ context.Context, averages []domain.CitySummary) error {
	if len(averages) == 0 {
		r.logger.Warn("no city averages to chart, skipping", "path", r.path)
		return nil
	}

	p, err := Build(averages)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("%w: create output dir: %w", domain.ErrRender, err)
	}
	if err := p.Save(chartWidth, chartHeight, r.path); err != nil {
		return fmt.Errorf("%w: save %s: %w", domain.ErrRender, r.path, err)
	}

	r.logger.Info("chart saved", "path", r.path, "cities", len(averages))
	return nil
}

// Build lays out the chart with the warmest city on top.
func Build(averages []domain.CitySummary) (*plot.Plot, error) {
	ordered := ascending(averages)

	values := make(plotter.Values, len(ordered))
	names := make([]string, len(ordered))
	for i, c := range ordered {
		values[i] = c.AverageCelsius
		names[i] = c.City
	}

	p := plot.New()
	p.Title.Text = "Average Temperature per City (Celsius)"
	p.X.Label.Text = "Temperature (Celsius)"
	p.Y.Label.Text = "City"

	bars, err := plotter.NewBarChart(values, vg.Points(barWidth))
	if err != nil {
		return nil, fmt.Errorf("%w: bar chart: %w", domain.ErrRender, err)
	}
	bars.Horizontal = true
	bars.Color = skyBlue
	bars.LineStyle.Width = 0

	p.Add(bars)
	p.NominalY(names...)
	return p, nil
}

// ascending sorts a copy coolest first; bar charts draw index 0 at the
// bottom.
func ascending(averages []domain.CitySummary) []domain.CitySummary {
	out := make([]domain.CitySummary, len(averages))
	copy(out, averages)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AverageCelsius < out[j].AverageCelsius
	})
	return out
}

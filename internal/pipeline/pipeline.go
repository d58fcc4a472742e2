package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ADEdimeji-James/weather-data-pipeline/internal/domain"
	"github.com/ADEdimeji-James/weather-data-pipeline/internal/observability"
)

// Extractor loads the raw observations table.
type Extractor interface {
	Extract(ctx context.Context) (*domain.Table, error)
}

// TableWriter persists the cleaned table.
type TableWriter interface {
	WriteTable(ctx context.Context, t *domain.Table) error
}

// ReportWriter persists the ranked cities.
type ReportWriter interface {
	WriteReport(ctx context.Context, ranked []domain.CitySummary) error
}

// ChartRenderer draws the average temperature of every city.
type ChartRenderer interface {
	RenderChart(ctx context.Context, averages []domain.CitySummary) error
}

// Options are the cleaning and ranking policies of a run.
type Options struct {
	TopN           int
	DatePolicy     domain.DatePolicy
	ImputeFallback domain.ImputeFallback
}

// Result summarizes a completed run.
type Result struct {
	RowsLoaded  int
	RowsWritten int
	Clean       domain.CleanStats
	Transform   domain.TransformStats
	Averages    []domain.CitySummary // every city, first-appearance order
	Ranking     []domain.CitySummary // top N, hottest first
}

// Pipeline runs load → clean → transform → write → report → chart once.
type Pipeline struct {
	extractor Extractor
	writer    TableWriter
	reporter  ReportWriter
	chart     ChartRenderer
	opts      Options
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates a Pipeline with the given stages and observability.
func New(e Extractor, w TableWriter, r ReportWriter, c ChartRenderer, opts Options, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		extractor: e,
		writer:    w,
		reporter:  r,
		chart:     c,
		opts:      opts,
		logger:    logger,
		metrics:   metrics,
	}
}

// Run executes every stage in order and stops at the first error. The
// context is only checked between stages.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := clock.Now()
	p.logger.Info("pipeline started",
		"top_n", p.opts.TopN,
		"date_policy", p.opts.DatePolicy,
		"impute_fallback", p.opts.ImputeFallback,
	)

	res, err := p.run(ctx)
	if err != nil {
		p.metrics.PipelineFailures.Inc()
		return nil, err
	}

	p.metrics.LastSuccessTime.Set(float64(clock.Now().Unix()))
	p.logger.Info("pipeline finished",
		"rows_loaded", res.RowsLoaded,
		"rows_written", res.RowsWritten,
		"cities", len(res.Averages),
		"duration", clock.Since(start),
	)
	return res, nil
}

func (p *Pipeline) run(ctx context.Context) (*Result, error) {
	res := &Result{}
	var table *domain.Table

	err := p.stage(ctx, "load", func() error {
		t, err := p.extractor.Extract(ctx)
		if err != nil {
			return err
		}
		table = t
		res.RowsLoaded = len(t.Rows)
		p.metrics.RowsLoaded.Add(float64(res.RowsLoaded))
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = p.stage(ctx, "clean", func() error {
		res.Clean = domain.Clean(table, domain.CleanOptions{Fallback: p.opts.ImputeFallback})
		p.recordClean(res.Clean)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = p.stage(ctx, "transform", func() error {
		stats, err := domain.Transform(table, p.opts.DatePolicy)
		res.Transform = stats
		if stats.DroppedBadDate > 0 {
			p.metrics.RowsDropped.WithLabelValues(observability.DropBadDate).Add(float64(stats.DroppedBadDate))
			p.logger.Warn("rows with unparseable dates dropped", "rows", stats.DroppedBadDate)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	err = p.stage(ctx, "write", func() error {
		if err := p.writer.WriteTable(ctx, table); err != nil {
			return err
		}
		res.RowsWritten = len(table.Rows)
		p.metrics.RowsWritten.Add(float64(res.RowsWritten))
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = p.stage(ctx, "report", func() error {
		res.Averages = domain.CityAverages(table.Rows)
		res.Ranking = domain.TopCities(res.Averages, p.opts.TopN)
		p.metrics.CitiesRanked.Set(float64(len(res.Averages)))
		return p.reporter.WriteReport(ctx, res.Ranking)
	})
	if err != nil {
		return nil, err
	}

	err = p.stage(ctx, "chart", func() error {
		return p.chart.RenderChart(ctx, res.Averages)
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// stage times fn and wraps its error with the stage name.
func (p *Pipeline) stage(ctx context.Context, name string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	start := clock.Now()
	err := fn()
	elapsed := clock.Since(start)
	p.metrics.StageDuration.WithLabelValues(name).Observe(elapsed.Seconds())

	if err != nil {
		p.logger.Error("stage failed", "stage", name, "error", err)
		return fmt.Errorf("%s: %w", name, err)
	}
	p.logger.Debug("stage complete", "stage", name, "duration", elapsed)
	return nil
}

func (p *Pipeline) recordClean(stats domain.CleanStats) {
	p.metrics.RowsDropped.WithLabelValues(observability.DropIncomplete).Add(float64(stats.DroppedIncomplete))
	p.metrics.RowsDropped.WithLabelValues(observability.DropSentinel).Add(float64(stats.DroppedSentinel))
	for col, n := range stats.Imputed {
		p.metrics.ValuesImputed.WithLabelValues(col).Add(float64(n))
	}
	for col, n := range stats.Unresolved {
		p.metrics.ValuesUnresolved.WithLabelValues(col).Add(float64(n))
		if n > 0 {
			p.logger.Warn("missing values left unresolved", "column", col, "count", n)
		}
	}
	p.logger.Info("observations cleaned",
		"rows_in", stats.RowsIn,
		"rows_out", stats.RowsOut,
		"dropped_incomplete", stats.DroppedIncomplete,
		"dropped_sentinel", stats.DroppedSentinel,
	)
}

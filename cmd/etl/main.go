package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ADEdimeji-James/weather-data-pipeline/internal/adapter/chart"
	"github.com/ADEdimeji-James/weather-data-pipeline/internal/adapter/csvfile"
	"github.com/ADEdimeji-James/weather-data-pipeline/internal/adapter/report"
	"github.com/ADEdimeji-James/weather-data-pipeline/internal/config"
	"github.com/ADEdimeji-James/weather-data-pipeline/internal/observability"
	"github.com/ADEdimeji-James/weather-data-pipeline/internal/pipeline"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)

	reader := csvfile.NewReader(cfg.InputPath, logger)
	writer := csvfile.NewWriter(cfg.CleanedCSVPath(), logger)
	reporter := report.NewWriter(cfg.ReportPath(), cfg.ReportTopN, logger)
	renderer := chart.NewRenderer(cfg.ChartPath(), logger)

	p := pipeline.New(reader, writer, reporter, renderer, pipeline.Options{
		TopN:           cfg.ReportTopN,
		DatePolicy:     cfg.DatePolicy,
		ImputeFallback: cfg.ImputeFallback,
	}, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_, runErr := p.Run(ctx)

	// Metrics are flushed for failed runs too so the failure counter is visible.
	if cfg.MetricsTextfile != "" {
		if err := observability.WriteTextfile(cfg.MetricsTextfile, registry); err != nil {
			logger.Error("metrics textfile write error", "path", cfg.MetricsTextfile, "error", err)
		}
	}

	if runErr != nil {
		logger.Error("pipeline error", "error", runErr)
		stop()
		os.Exit(1)
	}

	logger.Info("outputs written",
		"cleaned_csv", writer.Path(),
		"report", reporter.Path(),
		"chart", renderer.Path(),
	)
}

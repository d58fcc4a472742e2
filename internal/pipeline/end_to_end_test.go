package pipeline_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/ADEdimeji-James/weather-data-pipeline/internal/adapter/chart"
	"github.com/ADEdimeji-James/weather-data-pipeline/internal/adapter/csvfile"
	"github.com/ADEdimeji-James/weather-data-pipeline/internal/adapter/report"
	"github.com/ADEdimeji-James/weather-data-pipeline/internal/domain"
	"github.com/ADEdimeji-James/weather-data-pipeline/internal/observability"
	"github.com/ADEdimeji-James/weather-data-pipeline/internal/pipeline"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wantReport = "Top 5 Cities with Highest Average Temperature (°C):\n\n" +
	"Lagos: 31.00°C\n" +
	"Cairo: 28.00°C\n" +
	"Sydney: 25.00°C\n" +
	"Nairobi: 24.00°C\n" +
	"Tokyo: 16.00°C\n"

type outputs struct {
	csv, report, chart string
}

func runOnce(t *testing.T, input, dir string) (*pipeline.Result, outputs) {
	t.Helper()
	out := outputs{
		csv:    filepath.Join(dir, "transformed_weather_data.csv"),
		report: filepath.Join(dir, "top_5_hottest_cities.txt"),
		chart:  filepath.Join(dir, "avg_temperature_per_city.png"),
	}
	logger := slog.Default()
	p := pipeline.New(
		csvfile.NewReader(input, logger),
		csvfile.NewWriter(out.csv, logger),
		report.NewWriter(out.report, 5, logger),
		chart.NewRenderer(out.chart, logger),
		defaultOptions,
		logger,
		observability.NewMetricsForTesting(),
	)
	res, err := p.Run(context.Background())
	require.NoError(t, err)
	return res, out
}

func TestEndToEnd_MessyInput(t *testing.T) {
	res, out := runOnce(t, filepath.Join("testdata", "weather_data.csv"), t.TempDir())

	assert.Equal(t, 17, res.RowsLoaded)
	assert.Equal(t, 12, res.RowsWritten)
	assert.Equal(t, 3, res.Clean.DroppedIncomplete)
	assert.Equal(t, 2, res.Clean.DroppedSentinel)

	got, err := os.ReadFile(out.report)
	require.NoError(t, err)
	if diff := cmp.Diff(wantReport, string(got)); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}

	chartInfo, err := os.Stat(out.chart)
	require.NoError(t, err)
	assert.Positive(t, chartInfo.Size())

	cleaned, err := csvfile.Load(out.csv)
	require.NoError(t, err)
	require.Len(t, cleaned.Rows, 12)
	assert.True(t, cleaned.HasColumn(domain.ColTemperatureFahrenheit))

	for _, r := range cleaned.Rows {
		assert.NotEmpty(t, r.WeatherCondition, "city %s", r.City)
		assert.False(t, domain.IsSentinelCondition(r.WeatherCondition), "city %s", r.City)
		_, err := domain.ParseDate(r.Date)
		require.NoError(t, err)
		assert.Len(t, r.Date, len(domain.NormalizedDateLayout), "date %q", r.Date)
		assert.False(t, domain.IsMissing(r.TemperatureCelsius), "city %s", r.City)
		assert.InDelta(t, r.TemperatureCelsius*9/5+32, r.TemperatureFahrenheit, 1e-9)
	}

	lagos := cleaned.Rows[1]
	assert.Equal(t, "Lagos", lagos.City)
	assert.Equal(t, "2024-03-15", lagos.Date)
	assert.Equal(t, "Sunny", lagos.WeatherCondition)
	assert.InDelta(t, 31.0, lagos.TemperatureCelsius, 1e-9)
	assert.InDelta(t, 87.8, lagos.TemperatureFahrenheit, 1e-9)
	assert.InDelta(t, 11.0, lagos.WindSpeed, 1e-9)
}

func TestEndToEnd_Idempotent(t *testing.T) {
	input := filepath.Join("testdata", "weather_data.csv")
	_, first := runOnce(t, input, t.TempDir())
	_, second := runOnce(t, input, t.TempDir())

	for _, pair := range [][2]string{{first.csv, second.csv}, {first.report, second.report}} {
		a, err := os.ReadFile(pair[0])
		require.NoError(t, err)
		b, err := os.ReadFile(pair[1])
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b), filepath.Base(pair[0]))
	}
}

func TestEndToEnd_MissingInput(t *testing.T) {
	dir := t.TempDir()
	logger := slog.Default()
	p := pipeline.New(
		csvfile.NewReader(filepath.Join(dir, "nope.csv"), logger),
		csvfile.NewWriter(filepath.Join(dir, "out.csv"), logger),
		report.NewWriter(filepath.Join(dir, "report.txt"), 5, logger),
		chart.NewRenderer(filepath.Join(dir, "chart.png"), logger),
		defaultOptions,
		logger,
		observability.NewMetricsForTesting(),
	)

	_, err := p.Run(context.Background())
	require.ErrorIs(t, err, domain.ErrFileAccess)

	_, statErr := os.Stat(filepath.Join(dir, "out.csv"))
	assert.True(t, os.IsNotExist(statErr), "no output is written")
}

package chart

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/ADEdimeji-James/weather-data-pipeline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAverages = []domain.CitySummary{
	{City: "Lagos", AverageCelsius: 31},
	{City: "Oslo", AverageCelsius: -2},
	{City: "Cairo", AverageCelsius: 28},
}

func TestRenderChart_WritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outputs", "avg.png")
	r := NewRenderer(path, slog.Default())

	require.NoError(t, r.RenderChart(context.Background(), testAverages))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 8)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), data[:8])
}

func TestRenderChart_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "avg.png")
	r := NewRenderer(path, slog.Default())

	require.NoError(t, r.RenderChart(context.Background(), nil))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestRenderChart_UnsupportedFormat(t *testing.T) {
	r := NewRenderer(filepath.Join(t.TempDir(), "avg.unknown"), slog.Default())

	err := r.RenderChart(context.Background(), testAverages)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRender)
}

func TestRenderChart_UnwritablePath(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	r := NewRenderer(filepath.Join(blocker, "avg.png"), slog.Default())
	err := r.RenderChart(context.Background(), testAverages)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRender)
}

func TestAscending(t *testing.T) {
	got := ascending(testAverages)

	var names []string
	for _, c := range got {
		names = append(names, c.City)
	}
	assert.Equal(t, []string{"Oslo", "Cairo", "Lagos"}, names)
	assert.Equal(t, "Lagos", testAverages[0].City, "input untouched")
}

func TestBuild_RejectsNaN(t *testing.T) {
	_, err := Build([]domain.CitySummary{{City: "Quito", AverageCelsius: domain.Missing()}})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRender)
}

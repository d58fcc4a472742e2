package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"

	"github.com/ADEdimeji-James/weather-data-pipeline/internal/domain"
)

// Config holds all job settings, populated from environment variables.
// The defaults reproduce the fixed file layout: the input beside the binary
// and every output under ./outputs.
type Config struct {
	InputPath      string
	OutputDir      string
	CleanedCSVName string
	ReportName     string
	ChartName      string
	ReportTopN     int

	DatePolicy     domain.DatePolicy
	ImputeFallback domain.ImputeFallback

	LogLevel        string
	LogFormat       string
	MetricsTextfile string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	topN, err := strconv.Atoi(sharedcfg.EnvOrDefault("REPORT_TOP_N", "5"))
	if err != nil || topN <= 0 {
		return nil, errors.New("invalid REPORT_TOP_N: must be a positive integer")
	}

	cfg := &Config{
		InputPath:      sharedcfg.EnvOrDefault("INPUT_PATH", "weather_data.csv"),
		OutputDir:      sharedcfg.EnvOrDefault("OUTPUT_DIR", "outputs"),
		CleanedCSVName: sharedcfg.EnvOrDefault("CLEANED_CSV_NAME", "transformed_weather_data.csv"),
		ReportName:     sharedcfg.EnvOrDefault("REPORT_NAME", "top_5_hottest_cities.txt"),
		ChartName:      sharedcfg.EnvOrDefault("CHART_NAME", "avg_temperature_per_city.png"),
		ReportTopN:     topN,

		DatePolicy:     domain.DatePolicy(sharedcfg.EnvOrDefault("DATE_POLICY", string(domain.DatePolicyFail))),
		ImputeFallback: domain.ImputeFallback(sharedcfg.EnvOrDefault("IMPUTE_FALLBACK", string(domain.FallbackGlobal))),

		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "text"),
		MetricsTextfile: sharedcfg.EnvOrDefault("METRICS_TEXTFILE", ""),
	}

	switch cfg.DatePolicy {
	case domain.DatePolicyFail, domain.DatePolicyDrop:
	default:
		return nil, fmt.Errorf("invalid DATE_POLICY %q: want fail or drop", cfg.DatePolicy)
	}
	switch cfg.ImputeFallback {
	case domain.FallbackGlobal, domain.FallbackNone:
	default:
		return nil, fmt.Errorf("invalid IMPUTE_FALLBACK %q: want global or none", cfg.ImputeFallback)
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: want text or json", cfg.LogFormat)
	}
	if cfg.InputPath == "" {
		return nil, errors.New("INPUT_PATH is required")
	}

	return cfg, nil
}

// CleanedCSVPath is where the cleaned table is written.
func (c *Config) CleanedCSVPath() string { return filepath.Join(c.OutputDir, c.CleanedCSVName) }

// ReportPath is where the top-N report is written.
func (c *Config) ReportPath() string { return filepath.Join(c.OutputDir, c.ReportName) }

// ChartPath is where the bar chart image is saved.
func (c *Config) ChartPath() string { return filepath.Join(c.OutputDir, c.ChartName) }

package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Drop reasons used as the "reason" label of RowsDropped.
const (
	DropIncomplete = "incomplete"
	DropSentinel   = "sentinel"
	DropBadDate    = "bad_date"
)

// Metrics holds the Prometheus counters, histograms, and gauges for one
// pipeline run.
type Metrics struct {
	RowsLoaded  prometheus.Counter
	RowsWritten prometheus.Counter
	RowsDropped *prometheus.CounterVec // labels: reason={incomplete,sentinel,bad_date}

	// Imputation metrics.
	ValuesImputed    *prometheus.CounterVec // labels: column
	ValuesUnresolved *prometheus.CounterVec // labels: column

	CitiesRanked     prometheus.Gauge
	StageDuration    *prometheus.HistogramVec // labels: stage
	LastSuccessTime  prometheus.Gauge
	PipelineFailures prometheus.Counter
}

// NewMetrics creates the pipeline metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RowsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_etl",
			Name:      "rows_loaded_total",
			Help:      "Rows read from the input CSV.",
		}),
		RowsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_etl",
			Name:      "rows_written_total",
			Help:      "Rows written to the cleaned CSV.",
		}),
		RowsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_etl",
			Name:      "rows_dropped_total",
			Help:      "Rows removed during cleaning and transformation, by reason.",
		}, []string{"reason"}),
		ValuesImputed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_etl",
			Name:      "values_imputed_total",
			Help:      "Missing numeric values filled with a city or global mean, by column.",
		}, []string{"column"}),
		ValuesUnresolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_etl",
			Name:      "values_unresolved_total",
			Help:      "Missing numeric values left empty because no mean was available, by column.",
		}, []string{"column"}),
		CitiesRanked: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_etl",
			Name:      "cities",
			Help:      "Distinct cities with a valid average temperature.",
		}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weather_etl",
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"stage"}),
		LastSuccessTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_etl",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last run that produced every output.",
		}),
		PipelineFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_etl",
			Name:      "pipeline_failures_total",
			Help:      "Runs aborted by a stage error.",
		}),
	}

	reg.MustRegister(
		m.RowsLoaded,
		m.RowsWritten,
		m.RowsDropped,
		m.ValuesImputed,
		m.ValuesUnresolved,
		m.CitiesRanked,
		m.StageDuration,
		m.LastSuccessTime,
		m.PipelineFailures,
	)

	return m
}

// NewMetricsForTesting creates Metrics on a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}

// WriteTextfile writes every metric gathered by g to path in the text
// exposition format, for node-exporter's textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}

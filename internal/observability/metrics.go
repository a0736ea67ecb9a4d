package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for sample generation.
type Metrics struct {
	SetsGenerated    *prometheus.CounterVec // labels: mode={seeded,random}
	DaysGenerated    prometheus.Counter
	GenerateErrors   prometheus.Counter
	GenerateDuration prometheus.Histogram
	RefreshRuns      *prometheus.CounterVec // labels: outcome={success,error}
	StoredSets       prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.SetsGenerated,
		m.DaysGenerated,
		m.GenerateErrors,
		m.GenerateDuration,
		m.RefreshRuns,
		m.StoredSets,
	)
	return m
}

// NewMetricsForTesting creates Metrics that are not registered anywhere, so
// tests can build as many as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		SetsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_placeholder",
			Name:      "sets_generated_total",
			Help:      "Sample sets generated, by source mode.",
		}, []string{"mode"}),
		DaysGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_placeholder",
			Name:      "days_generated_total",
			Help:      "Total placeholder days synthesized.",
		}),
		GenerateErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_placeholder",
			Name:      "generate_errors_total",
			Help:      "Generation requests rejected as invalid input.",
		}),
		GenerateDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather_placeholder",
			Name:      "generate_duration_seconds",
			Help:      "Time spent synthesizing one sample set.",
			Buckets:   []float64{0.00001, 0.0001, 0.001, 0.01, 0.1},
		}),
		RefreshRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_placeholder",
			Name:      "refresh_runs_total",
			Help:      "Scheduled refreshes of today's sample set, by outcome.",
		}, []string{"outcome"}),
		StoredSets: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_placeholder",
			Name:      "stored_sets",
			Help:      "Sample sets currently retained in memory.",
		}),
	}
}

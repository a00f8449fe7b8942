package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "precip_summary"

// Metrics holds the Prometheus counters, histograms, and gauges for the summary pipeline.
type Metrics struct {
	Fetches         prometheus.Counter
	FetchErrors     prometheus.Counter
	RecordsParsed   prometheus.Counter
	RecordsRetained prometheus.Gauge
	RunDuration     prometheus.Histogram
	PipelineRunning prometheus.Gauge

	// Presentation metrics.
	Exports    *prometheus.CounterVec // labels: format={csv,xlsx}
	ChartCache *prometheus.CounterVec // labels: result={hit,miss}
}

func newMetrics() *Metrics {
	return &Metrics{
		Fetches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetches_total",
			Help:      "Total source fetch attempts.",
		}),
		FetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_errors_total",
			Help:      "Total source fetch failures.",
		}),
		RecordsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_parsed_total",
			Help:      "Total three-field records parsed from fetched payloads.",
		}),
		RecordsRetained: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records_retained",
			Help:      "Records inside the year range in the current report.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete fetch-analyze-publish run.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_running",
			Help:      "1 when the refresh loop is active, 0 when shut down.",
		}),
		Exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Summary exports served by format.",
		}, []string{"format"}),
		ChartCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chart_cache_total",
			Help:      "Chart cache lookups by result.",
		}, []string{"result"}),
	}
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.Fetches,
		m.FetchErrors,
		m.RecordsParsed,
		m.RecordsRetained,
		m.RunDuration,
		m.PipelineRunning,
		m.Exports,
		m.ChartCache,
	)
	return m
}

// NewMetricsForTesting creates Metrics that are not registered anywhere, so
// tests can build as many as they need without "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

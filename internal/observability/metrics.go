package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "table_facts"

// Metrics holds the Prometheus counters, histograms, and gauges for table analysis.
type Metrics struct {
	RowsRead    *prometheus.CounterVec // labels: dataset={weather,country}
	RowsDropped *prometheus.CounterVec // labels: dataset
	Analyses    *prometheus.CounterVec // labels: outcome={success,error}

	AnalysisDuration prometheus.Histogram

	ReportsPublished prometheus.Counter
	PublishErrors    prometheus.Counter
	SchedulerRunning prometheus.Gauge
}

func newMetrics(withHelp bool) *Metrics {
	help := func(s string) string {
		if withHelp {
			return s
		}
		return ""
	}
	return &Metrics{
		RowsRead: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_read_total",
			Help:      help("Rows read from input tables."),
		}, []string{"dataset"}),
		RowsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_dropped_total",
			Help:      help("Rows skipped because they could not be parsed."),
		}, []string{"dataset"}),
		Analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      help("Completed analyses by outcome."),
		}, []string{"outcome"}),
		AnalysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      help("Duration of a load-parse-aggregate cycle over both tables."),
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		ReportsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_published_total",
			Help:      help("Reports written to the sink topic."),
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_errors_total",
			Help:      help("Failed attempts to publish a report."),
		}),
		SchedulerRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "scheduler_running",
			Help:      help("1 when the refresh scheduler is active, 0 when shut down."),
		}),
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics(true)
	prometheus.MustRegister(
		m.RowsRead,
		m.RowsDropped,
		m.Analyses,
		m.AnalysisDuration,
		m.ReportsPublished,
		m.PublishErrors,
		m.SchedulerRunning,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics(false)
}

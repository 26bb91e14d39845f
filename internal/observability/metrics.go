package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for report generation.
type Metrics struct {
	ReportsGenerated   prometheus.Counter
	IncidentsProcessed prometheus.Counter
	TimeParseFailures  prometheus.Counter
	ReportDuration     prometheus.Histogram

	// Upstream crime-data provider.
	UpstreamRequests *prometheus.CounterVec // labels: outcome={success,error}
	UpstreamDuration prometheus.Histogram
	UpstreamCache    *prometheus.CounterVec // labels: result={hit,miss}

	// Report publishing.
	ReportsPublished prometheus.Counter
	PublishErrors    prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ReportsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "crime_report",
			Name:      "reports_generated_total",
			Help:      "Total crime reports generated.",
		}),
		IncidentsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "crime_report",
			Name:      "incidents_processed_total",
			Help:      "Total incident records aggregated into reports.",
		}),
		TimeParseFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "crime_report",
			Name:      "time_parse_failures_total",
			Help:      "Incident records with a missing or unparsable timestamp.",
		}),
		ReportDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "crime_report",
			Name:      "report_duration_seconds",
			Help:      "Duration of a complete fetch and aggregate cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crime_report",
			Name:      "upstream_requests_total",
			Help:      "Crime-data API requests by outcome.",
		}, []string{"outcome"}),
		UpstreamDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "crime_report",
			Name:      "upstream_duration_seconds",
			Help:      "Crime-data API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		UpstreamCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crime_report",
			Name:      "upstream_cache_total",
			Help:      "Upstream response cache lookups by result.",
		}, []string{"result"}),
		ReportsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "crime_report",
			Name:      "reports_published_total",
			Help:      "Total reports written to the report topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "crime_report",
			Name:      "publish_errors_total",
			Help:      "Total failures writing reports to the report topic.",
		}),
	}

	prometheus.MustRegister(
		m.ReportsGenerated,
		m.IncidentsProcessed,
		m.TimeParseFailures,
		m.ReportDuration,
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.UpstreamCache,
		m.ReportsPublished,
		m.PublishErrors,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ReportsGenerated:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "crime_report", Name: "reports_generated_total"}),
		IncidentsProcessed: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "crime_report", Name: "incidents_processed_total"}),
		TimeParseFailures:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "crime_report", Name: "time_parse_failures_total"}),
		ReportDuration:     prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "crime_report", Name: "report_duration_seconds"}),
		UpstreamRequests:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "crime_report", Name: "upstream_requests_total"}, []string{"outcome"}),
		UpstreamDuration:   prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "crime_report", Name: "upstream_duration_seconds"}),
		UpstreamCache:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "crime_report", Name: "upstream_cache_total"}, []string{"result"}),
		ReportsPublished:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "crime_report", Name: "reports_published_total"}),
		PublishErrors:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "crime_report", Name: "publish_errors_total"}),
	}
}

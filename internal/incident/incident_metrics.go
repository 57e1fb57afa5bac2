package incident

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds Prometheus metrics for the intake pipeline.
type Metrics struct {
	ReportsTotal       *prometheus.CounterVec
	ExtractionsTotal   *prometheus.CounterVec
	ExtractionDuration prometheus.Histogram
	PublishedTotal     prometheus.Counter
}

// NewMetrics registers and returns intake metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ReportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "beacon_reports_total",
			Help: "Total incident report submissions by result.",
		}, []string{"result"}),
		ExtractionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "beacon_extractions_total",
			Help: "Total location extraction attempts by outcome.",
		}, []string{"outcome"}),
		ExtractionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "beacon_extraction_duration_seconds",
			Help:    "Duration of location extraction calls in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10), // 0.1s .. ~51s
		}),
		PublishedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "beacon_incidents_published_total",
			Help: "Total finalized incidents published to the feed.",
		}),
	}

	reg.MustRegister(
		m.ReportsTotal,
		m.ExtractionsTotal,
		m.ExtractionDuration,
		m.PublishedTotal,
	)

	return m
}

// The increment helpers are nil-safe so the service can run without a
// registry in tests.

func (m *Metrics) IncReport(result string) {
	if m == nil {
		return
	}
	m.ReportsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveExtraction(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.ExtractionsTotal.WithLabelValues(outcome).Inc()
	m.ExtractionDuration.Observe(seconds)
}

func (m *Metrics) IncPublished() {
	if m == nil {
		return
	}
	m.PublishedTotal.Inc()
}

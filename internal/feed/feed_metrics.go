package feed

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds Prometheus metrics for the fanout bus.
type Metrics struct {
	Subscribers prometheus.Gauge
	Dropped     prometheus.Counter
}

// NewMetrics registers and returns feed metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Subscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "beacon_feed_subscribers",
			Help: "Current number of live feed subscribers.",
		}),
		Dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "beacon_feed_dropped_total",
			Help: "Total records dropped from slow subscriber buffers.",
		}),
	}

	reg.MustRegister(m.Subscribers, m.Dropped)
	return m
}

// Nil-safe helpers so the bus can run without a registry in tests.

func (m *Metrics) SetSubscribers(n int) {
	if m == nil {
		return
	}
	m.Subscribers.Set(float64(n))
}

func (m *Metrics) IncDropped() {
	if m == nil {
		return
	}
	m.Dropped.Inc()
}

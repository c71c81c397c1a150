package realtime

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the hub's Prometheus instruments. A nil *Metrics disables them.
type Metrics struct {
	subscribers prometheus.Gauge
	published   *prometheus.CounterVec
	resyncs     prometheus.Counter
	relayed     *prometheus.CounterVec
}

// NewMetrics registers the hub metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		subscribers: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "lostfound",
			Subsystem: "realtime",
			Name:      "subscribers",
			Help:      "Active change subscriptions.",
		}),
		published: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lostfound",
			Subsystem: "realtime",
			Name:      "published_total",
			Help:      "Changes published, by table.",
		}, []string{"table"}),
		resyncs: f.NewCounter(prometheus.CounterOpts{
			Namespace: "lostfound",
			Subsystem: "realtime",
			Name:      "resyncs_total",
			Help:      "Subscriber queues collapsed into a resync because they were full.",
		}),
		relayed: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lostfound",
			Subsystem: "realtime",
			Name:      "relayed_total",
			Help:      "Changes moved through the cross-instance relay, by direction.",
		}, []string{"direction"}),
	}
}

func (m *Metrics) subscribed(delta float64) {
	if m != nil {
		m.subscribers.Add(delta)
	}
}

func (m *Metrics) publishedChange(table string) {
	if m != nil {
		m.published.WithLabelValues(table).Inc()
	}
}

func (m *Metrics) resynced() {
	if m != nil {
		m.resyncs.Inc()
	}
}

func (m *Metrics) relayedChange(direction string) {
	if m != nil {
		m.relayed.WithLabelValues(direction).Inc()
	}
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the server's Prometheus collectors. Construct one per process
// (or per test) with an isolated registry.
type Metrics struct {
	ActiveSessions  prometheus.Gauge
	Connections     prometheus.Gauge
	EventsTotal     *prometheus.CounterVec
	BroadcastsTotal prometheus.Counter
	DeparturesTotal prometheus.Counter
}

// New registers all collectors on reg and returns them.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "liveshare",
			Name:      "active_sessions",
			Help:      "Number of live collaboration sessions.",
		}),
		Connections: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "liveshare",
			Name:      "connections",
			Help:      "Number of registered WebSocket connections.",
		}),
		EventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "liveshare",
			Name:      "events_total",
			Help:      "Inbound events dispatched, by type.",
		}, []string{"type"}),
		BroadcastsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "liveshare",
			Name:      "broadcasts_total",
			Help:      "Broadcast fan-outs performed.",
		}),
		DeparturesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "liveshare",
			Name:      "departures_total",
			Help:      "Departure-path executions.",
		}),
	}
}

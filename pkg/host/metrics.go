package host

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts listener activity.
type Metrics struct {
	Received    prometheus.Counter
	Failed      *prometheus.CounterVec
	Active      prometheus.Gauge
	LastReceive prometheus.Gauge
}

// NewMetrics creates the listener metrics and registers them with reg when non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Received: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "previewkit",
			Subsystem: "listener",
			Name:      "requests_received_total",
			Help:      "Preview requests decoded and stored.",
		}),
		Failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "previewkit",
			Subsystem: "listener",
			Name:      "requests_failed_total",
			Help:      "Connections that did not yield a stored preview request, by stage.",
		}, []string{"stage"}),
		Active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "previewkit",
			Subsystem: "listener",
			Name:      "connections_active",
			Help:      "Connections currently being handled.",
		}),
		LastReceive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "previewkit",
			Subsystem: "listener",
			Name:      "last_received_timestamp_seconds",
			Help:      "Unix time of the last stored preview request.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Received, m.Failed, m.Active, m.LastReceive)
	}
	return m
}

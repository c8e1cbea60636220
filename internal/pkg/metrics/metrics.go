// Package metrics defines the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Webhook results.
const (
	ResultAccepted  = "accepted"
	ResultDuplicate = "duplicate"
	ResultRejected  = "rejected"
	ResultFailed    = "failed"
)

var (
	WebhookRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payhook_webhook_requests_total",
		Help: "Webhook deliveries by result.",
	}, []string{"result"})

	GateToggles = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payhook_gate_toggles_total",
		Help: "Number of webhook gate toggles.",
	})

	GateEnabled = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "payhook_gate_enabled",
		Help: "1 when the webhook accepts payments, 0 when it rejects them.",
	})

	Subscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "payhook_subscribers",
		Help: "Connected realtime subscribers.",
	})

	HistorySize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "payhook_history_size",
		Help: "Payments currently held in memory.",
	})

	RelayEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payhook_relay_events_total",
		Help: "Events handed to relay sinks by sink and result.",
	}, []string{"sink", "result"})

	RelayDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payhook_relay_dropped_total",
		Help: "Events dropped because the relay queue was full.",
	})
)

// SetGate records the current gate state.
func SetGate(enabled bool) {
	if enabled {
		GateEnabled.Set(1)
		return
	}
	GateEnabled.Set(0)
}

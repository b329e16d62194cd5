// Package metrics centralizes the Prometheus instrumentation for the wallet
// core.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RefreshTriggered counts refresh fires by kind (manual, idle, burst).
	RefreshTriggered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wallet_refresh_triggered_total",
		Help: "Number of refresh fires, by trigger kind",
	}, []string{"kind"})

	// RefreshDropped counts manual refreshes dropped by the cool-down.
	RefreshDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wallet_refresh_dropped_total",
		Help: "Number of manual refreshes dropped by throttling",
	})

	// PaymentsSubmitted counts successful payment submissions by kind.
	PaymentsSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wallet_payments_submitted_total",
		Help: "Number of payments submitted, by payment kind",
	}, []string{"kind"})

	// FetchErrors counts background fetch failures by resource.
	FetchErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wallet_fetch_errors_total",
		Help: "Number of background fetch failures, by resource",
	}, []string{"resource"})

	// FetchInFlight tracks resources with a fetch currently running.
	FetchInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "wallet_fetch_in_flight",
		Help: "Whether a fetch is in flight, by resource",
	}, []string{"resource"})
)

// Package metrics provides Prometheus metrics for the principal-sponsor proxy.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for remote calls.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics contains the sponsor proxy collectors.
type Metrics struct {
	// Remote store calls
	RemoteRequestsTotal          *prometheus.CounterVec   // Calls by operation and outcome
	RemoteRequestDurationSeconds *prometheus.HistogramVec // Call latency by operation

	// Read availability
	FallbackServedTotal *prometheus.CounterVec // Fallback responses by reason (error category)
	BreakerOpen         prometheus.Gauge       // 1 while the read breaker is open

	// Rejected writes
	ValidationFailuresTotal *prometheus.CounterVec // 400s by operation
}

// New creates the collectors and registers them with reg. Passing nil uses the
// default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		RemoteRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "weddingapi_sponsor_remote_requests_total",
			Help: "Total calls to the principal sponsor remote store by operation and outcome",
		}, []string{"operation", "outcome"}),

		RemoteRequestDurationSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "weddingapi_sponsor_remote_request_duration_seconds",
			Help:    "Duration of calls to the principal sponsor remote store",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}, []string{"operation"}),

		FallbackServedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "weddingapi_sponsor_fallback_served_total",
			Help: "Total list responses served from the bundled fallback dataset by reason",
		}, []string{"reason"}),

		BreakerOpen: factory.NewGauge(prometheus.GaugeOpts{
			Name: "weddingapi_sponsor_breaker_open",
			Help: "1 while the principal sponsor read circuit breaker is open, else 0",
		}),

		ValidationFailuresTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "weddingapi_sponsor_validation_failures_total",
			Help: "Total sponsor write requests rejected before reaching the remote store",
		}, []string{"operation"}),
	}
}

// ObserveRemoteCall records one remote call.
func (m *Metrics) ObserveRemoteCall(operation string, err error, durationSeconds float64) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	m.RemoteRequestsTotal.WithLabelValues(operation, outcome).Inc()
	m.RemoteRequestDurationSeconds.WithLabelValues(operation).Observe(durationSeconds)
}

// IncrementFallbackServed records a list served from the fallback dataset.
func (m *Metrics) IncrementFallbackServed(reason string) {
	m.FallbackServedTotal.WithLabelValues(reason).Inc()
}

// SetBreakerOpen updates the breaker gauge.
func (m *Metrics) SetBreakerOpen(open bool) {
	if open {
		m.BreakerOpen.Set(1)
		return
	}
	m.BreakerOpen.Set(0)
}

// IncrementValidationFailure records a rejected write.
func (m *Metrics) IncrementValidationFailure(operation string) {
	m.ValidationFailuresTotal.WithLabelValues(operation).Inc()
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	AssistantUpstreamTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_upstream_requests_total",
			Help: "Assistant completion calls by outcome.",
		},
		[]string{"outcome"},
	)
)

// Assistant outcomes.
const (
	OutcomeOK            = "ok"
	OutcomeRateLimited   = "rate_limited"
	OutcomePayment       = "payment_required"
	OutcomeError         = "error"
	OutcomeNotConfigured = "not_configured"
)

func ObserveAssistant(outcome string) {
	AssistantUpstreamTotal.WithLabelValues(outcome).Inc()
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts API requests by method, endpoint, and HTTP status.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "godad_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// RequestErrorsTotal counts classified request failures by kind.
	RequestErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "godad_request_errors_total",
			Help: "Total number of failed API requests",
		},
		[]string{"kind"},
	)

	// RequestLatency tracks request latency per method and endpoint.
	RequestLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "godad_request_latency_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// SessionRefreshTotal counts session refresh attempts by outcome.
	SessionRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "godad_session_refresh_total",
			Help: "Total number of session refresh attempts",
		},
		[]string{"outcome"},
	)

	// RefreshWaiters tracks callers queued behind an in-flight refresh.
	RefreshWaiters = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "godad_refresh_waiters",
			Help: "Callers currently waiting on an in-flight session refresh",
		},
	)
)

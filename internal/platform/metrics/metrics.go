package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pet_walks"

var (
	// Llamadas al backend remoto, por método, endpoint (template) y resultado.
	BackendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "backend_requests_total", Help: "Requests issued to the remote backend"},
		[]string{"method", "endpoint", "outcome"},
	)
	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Remote backend latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	ValidationFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "validation_failures_total", Help: "Requests rejected locally before any backend call"},
		[]string{"domain"},
	)
	CapacityRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "capacity_rejections_total", Help: "Walker actions rejected by the local capacity guard"},
		[]string{"action"},
	)

	PollTicksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "poll_ticks_total", Help: "Polling iterations executed by view sessions"},
		[]string{"kind"},
	)
	OpenSessions = promauto.NewGaugeVec(
		prometheus.GaugeOpts{Namespace: namespace, Name: "open_sessions", Help: "View sessions currently open"},
		[]string{"kind"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "route", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

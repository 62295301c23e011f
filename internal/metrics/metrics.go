// Package metrics defines the Prometheus collectors for the clip feed
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled HTTP requests.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "systok_http_requests_total",
		Help: "Total number of HTTP requests handled, by method, route and status.",
	}, []string{"method", "route", "status"})

	// HTTPRequestDuration observes request latency per route.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "systok_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds, by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// ClipsCreatedTotal counts clips created through the API.
	ClipsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "systok_clips_created_total",
		Help: "Total number of clips created.",
	})

	// CounterMutationsTotal counts applied like/bookmark deltas.
	CounterMutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "systok_clip_counter_mutations_total",
		Help: "Total number of applied counter mutations, by counter.",
	}, []string{"counter"})
)

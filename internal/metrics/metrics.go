package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fromtodk_upstream_requests_total",
			Help: "Requests sent to Wikidata endpoints by outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fromtodk_upstream_request_duration_seconds",
			Help:    "Latency of Wikidata requests including retries",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fromtodk_http_requests_total",
			Help: "HTTP requests served by path and status",
		},
		[]string{"path", "status"},
	)

	DistanceLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fromtodk_distance_lookups_total",
			Help: "Distance lookups by result (found, absent, error)",
		},
		[]string{"result"},
	)
)

const (
	OutcomeOK    = "ok"
	OutcomeError = "error"

	ResultFound  = "found"
	ResultAbsent = "absent"
	ResultError  = "error"
)

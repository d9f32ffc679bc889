package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rfp_console_api_requests_total",
			Help: "Total number of calls made to the RFP service",
		},
		[]string{"operation", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rfp_console_api_request_duration_seconds",
			Help:    "Duration of calls to the RFP service in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rfp_console_sessions_active",
			Help: "Number of console sessions held by the in-memory store",
		},
	)
)

package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// httpRequests counts served requests.
	// Labels: route (gin full path, "unmatched" for 404s), method, status
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "morsezoo",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route, method and status",
	}, []string{"route", "method", "status"})

	// httpDuration measures request latency.
	// Labels: route, method
	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "morsezoo",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})
)

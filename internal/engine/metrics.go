package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// queryResults measures result sizes.
	// Labels: handler (query, summary)
	queryResults = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "morsezoo",
		Subsystem: "engine",
		Name:      "query_results",
		Help:      "Number of graphs or records returned per query",
		Buckets:   []float64{0, 1, 10, 100, 1000, 10000, 100000},
	}, []string{"handler"})

	// queryFailures counts store failures.
	// Labels: handler (query, summary)
	queryFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "morsezoo",
		Subsystem: "engine",
		Name:      "store_failures_total",
		Help:      "Record store open or query failures",
	}, []string{"handler"})

	// droppedChains counts inequality chains dropped during normalization.
	droppedChains = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "morsezoo",
		Subsystem: "engine",
		Name:      "dropped_chains_total",
		Help:      "Inequality chains dropped for unsupported term counts or empty terms",
	})

	// extractionDuration measures extraction tool runs.
	// Labels: kind, status (success, error)
	extractionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "morsezoo",
		Subsystem: "engine",
		Name:      "extraction_duration_seconds",
		Help:      "Extraction tool run time in seconds",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
	}, []string{"kind", "status"})
)

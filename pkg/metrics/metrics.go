package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Define global variables for metrics.
// We use 'promauto' which automatically registers metrics without complex initialization.

var (
	// 1. Selections Total (Counter)
	// Counts query evaluations, labeled by element kind (vertex or edge).
	SelectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grafodb_selections_total",
			Help: "Total number of selection queries evaluated",
		},
		[]string{"kind"}, // Labels
	)

	// 2. Fast Path Total (Counter)
	// Counts predicates answered through an incidence shortcut instead of
	// a per-element scan, labeled by shortcut type.
	FastPathTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grafodb_fast_path_total",
			Help: "Total number of predicates resolved via incidence shortcuts",
		},
		[]string{"path"},
	)

	// 3. Find Fast Path Total (Counter)
	// Tracks name lookups answered by the attribute reverse index.
	FindFastPathTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "grafodb_find_fast_path_total",
			Help: "Total number of finds resolved via the name index",
		},
	)
)

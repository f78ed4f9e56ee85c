package datacache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataset_cache_hits_total",
			Help: "Number of dataset reads served from memory",
		},
		[]string{"dataset"},
	)

	cacheMissesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataset_cache_misses_total",
			Help: "Number of dataset reads that required a fetch",
		},
		[]string{"dataset"},
	)

	cacheStaleTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataset_cache_stale_total",
			Help: "Number of dataset reads answered with a stale snapshot",
		},
		[]string{"dataset"},
	)

	fetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dataset_fetch_duration_seconds",
			Help:    "Source fetch duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"dataset", "status"},
	)
)

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Config document metrics
	ConfigFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homegrid_config_fetches_total",
			Help: "Total number of config document fetches from the document store",
		},
		[]string{"result"},
	)

	ConfigSaves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homegrid_config_saves_total",
			Help: "Total number of config patch saves to the document store",
		},
		[]string{"result"},
	)

	// Relocation metrics
	Relocations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homegrid_item_relocations_total",
			Help: "Total number of item relocation attempts",
		},
		[]string{"result"},
	)

	RelocationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "homegrid_item_relocation_duration_seconds",
			Help:    "Time taken for an item relocation including remote round trips",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms to ~10s
		},
	)

	// Prefetch metrics
	PrefetchBatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homegrid_prefetch_batches_total",
			Help: "Total number of batched asset resolver calls",
		},
		[]string{"kind", "result"}, // kind: icons, widget_data
	)

	PrefetchCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homegrid_prefetch_cache_hits_total",
			Help: "Total number of prefetch cache hits",
		},
		[]string{"kind"},
	)

	// HTTP metrics
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homegrid_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "homegrid_http_request_duration_seconds",
			Help:    "Time taken to serve HTTP requests",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path"},
	)
)

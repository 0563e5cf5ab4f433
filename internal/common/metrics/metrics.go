// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UtterancesRouted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_utterances_routed_total",
			Help: "Total number of utterances routed, by classified intent",
		},
		[]string{"intent"},
	)

	ProductQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "product_store_queries_total",
			Help: "Total number of product store queries, by query type and status",
		},
		[]string{"query_type", "status"},
	)

	ProductQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "product_store_query_duration_seconds",
			Help: "Duration of product store queries in seconds",
		},
		[]string{"query_type"},
	)

	GeofilterRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geofilter_requests_total",
			Help: "Total number of store filter requests, by status",
		},
		[]string{"status"},
	)

	GeofilterStoresReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "geofilter_stores_returned",
			Help:    "Number of stores passing the filter per request",
			Buckets: []float64{0, 1, 2, 3, 4, 5},
		},
	)

	LocationFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "location_fallbacks_total",
			Help: "Total number of requests served with the fallback coordinate",
		},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chat_sessions_active",
			Help: "Number of live conversation sessions",
		},
	)
)

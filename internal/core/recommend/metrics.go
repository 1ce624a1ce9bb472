package recommend

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cocktail_recommend_requests_total",
			Help: "Total number of recommendation queries by policy and outcome",
		},
		[]string{"policy", "outcome"},
	)

	recommendResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cocktail_recommend_results",
			Help:    "Number of recipes returned per recommendation query",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
		[]string{"policy"},
	)

	recommendCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cocktail_recommend_cache_hits_total",
			Help: "Total number of recommendation cache hits",
		},
	)
	recommendCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cocktail_recommend_cache_misses_total",
			Help: "Total number of recommendation cache misses",
		},
	)
	recommendCacheErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cocktail_recommend_cache_errors_total",
			Help: "Total number of recommendation cache backend errors",
		},
	)
)

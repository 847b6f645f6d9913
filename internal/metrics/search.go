package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search and catalog Prometheus metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "searchd",
			Name:      "searches_total",
			Help:      "Total number of search requests by outcome",
		},
		[]string{"outcome"}, // "ok" / "invalid" / "unavailable"
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "searchd",
			Name:      "search_duration_seconds",
			Help:      "In-process ranking duration in seconds",
			Buckets:   []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		},
	)

	SearchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "searchd",
			Name:      "search_results",
			Help:      "Number of results returned per search",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
	)

	CatalogProducts = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "searchd",
			Name:      "catalog_products",
			Help:      "Number of products in the current catalog snapshot",
		},
	)

	CatalogRefreshTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "searchd",
			Name:      "catalog_refresh_total",
			Help:      "Catalog snapshot refresh attempts",
		},
		[]string{"result"}, // "ok" / "error" / "stale"
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchResults)
	prometheus.MustRegister(CatalogProducts)
	prometheus.MustRegister(CatalogRefreshTotal)
	searchMetricsRegistered = true
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests served by the storefront surfaces.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// RequestDuration measures HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method", "route"},
	)

	// CatalogQueries counts catalog queries by sort key.
	CatalogQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_catalog_queries_total",
			Help: "Total number of catalog queries",
		},
		[]string{"sort_key"},
	)

	// CatalogBooks is the size of the loaded catalog.
	CatalogBooks = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_catalog_books",
			Help: "Number of books in the loaded catalog",
		},
	)

	// CartMutations counts successful cart writes by operation.
	CartMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cart_mutations_total",
			Help: "Total number of persisted cart mutations",
		},
		[]string{"op"},
	)

	// CartReadFailures counts cart reads that fell back to an empty cart.
	CartReadFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cart_read_failures_total",
			Help: "Cart reads that degraded to an empty cart",
		},
		[]string{"reason"},
	)

	// CartItems is the item count after the last cart write.
	CartItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_cart_items",
			Help: "Total cart item count after the last write",
		},
	)
)

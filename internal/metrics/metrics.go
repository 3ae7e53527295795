// Package metrics holds the Prometheus collectors of the API.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	// HTTPRequestsTotal counts requests by method, route and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cookbook_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cookbook_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cookbook_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"limiter"},
	)
)

// Business metrics
var (
	// PaginationOverrunsTotal counts requests for a page past the last one
	PaginationOverrunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cookbook_pagination_overruns_total",
			Help: "Requests for a page beyond the last available page",
		},
		[]string{"resource"},
	)

	// StorageFailuresTotal counts storage errors surfaced to callers
	StorageFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cookbook_storage_failures_total",
			Help: "Storage errors surfaced as retrieval failures",
		},
		[]string{"operation"},
	)

	RecipesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cookbook_recipes_created_total",
			Help: "Recipes created",
		},
	)

	ReviewsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cookbook_reviews_created_total",
			Help: "Reviews created",
		},
	)

	// EnrichmentDuration measures the per-page aggregate fan-out
	EnrichmentDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cookbook_enrichment_duration_seconds",
			Help:    "Time spent attaching stars, categories and ingredients to a page of recipes",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// RecordHTTPRequest records one finished request.
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

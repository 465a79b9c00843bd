package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wholesale_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wholesale_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	ResourceOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wholesale_resource_operations_total",
			Help: "Total number of CRUD operations by resource",
		},
		[]string{"resource", "operation"},
	)
)

// RecordOperation increments the CRUD counter for one resource.
func RecordOperation(resource, operation string) {
	ResourceOperationsTotal.WithLabelValues(resource, operation).Inc()
}

// Package metrics declares the Prometheus collectors exposed on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "progress_tracker"

var (
	// HTTPRequestDuration is labelled by the matched route template, not the raw path.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"method", "route", "status"},
	)

	// CascadeDeletesTotal counts cascade deletes by root entity and outcome
	// (committed or rolled_back).
	CascadeDeletesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cascade_deletes_total",
			Help:      "Cascade deletes by root entity and result.",
		},
		[]string{"entity", "result"},
	)
)

// RecordCascade counts one cascade delete of entity.
func RecordCascade(entity string, err error) {
	result := "committed"
	if err != nil {
		result = "rolled_back"
	}
	CascadeDeletesTotal.WithLabelValues(entity, result).Inc()
}

// GinMiddleware observes the duration of every request.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

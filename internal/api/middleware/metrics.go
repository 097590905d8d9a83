package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/imamik/fxstack/internal/metrics"
)

// Metrics creates a middleware that collects Prometheus metrics for HTTP requests.
//
// This middleware:
// - Tracks request count by method, route and status code
// - Measures request duration in seconds
// - Tracks in-flight requests
//
// Unmatched routes are recorded under a single "unmatched" path label so
// that scanners cannot blow up label cardinality.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		m.HTTPRequestsInFlight.Inc()
		defer m.HTTPRequestsInFlight.Dec()

		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

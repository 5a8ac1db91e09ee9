package middleware

import (
	"time"

	"hospital-records/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records HTTP metrics for every request, labelled by route template
// so path parameters do not explode label cardinality.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.HTTPActiveConnections.Inc()
		defer m.HTTPActiveConnections.Dec()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		m.RecordHTTPRequest(c.Request.Method, endpoint, c.Writer.Status(), time.Since(start))
	}
}

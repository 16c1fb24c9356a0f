package middleware

import (
	"strconv"
	"time"

	"github.com/Conceptual-Machines/innopilot-api/internal/metrics"
	"github.com/gin-gonic/gin"
)

// Prometheus records request counts and latency per route
func Prometheus() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}
		method := c.Request.Method

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		metrics.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

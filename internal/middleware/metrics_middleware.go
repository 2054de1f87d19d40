package middleware

import (
	"strconv"
	"time"

	"hr-portal/internal/metrics"

	"github.com/gin-gonic/gin"
)

func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		metrics.RequestDurationHistogram.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())
		metrics.RequestsTotal.WithLabelValues(method, path, status).Inc()
	}
}

package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"eventkompass/services/metrics"
)

// Metrics returns middleware that captures request metrics using the provided service.
func Metrics(m *metrics.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}

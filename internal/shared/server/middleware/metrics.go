package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"healthrisk-backend/internal/shared/metrics"
)

// Metrics records request latency per matched route.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		metrics.ObserveHTTPRequest(c.Request.Method, c.FullPath(), strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}

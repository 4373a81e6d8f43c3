package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"healthrisk-backend/internal/shared/telemetry"
)

// Context keys handlers may set to enrich the request log line.
const (
	AssessmentIDKey = "assessmentId"
	RiskLevelKey    = "riskLevel"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		userID, _ := c.Get(userIDKey)
		assessmentID, _ := c.Get(AssessmentIDKey)
		riskLevel, _ := c.Get(RiskLevelKey)

		telemetry.Info("request.complete", map[string]any{
			"request_id":    RequestIDFromContext(c),
			"method":        c.Request.Method,
			"path":          c.Request.URL.Path,
			"route":         c.FullPath(),
			"status":        c.Writer.Status(),
			"duration_ms":   float64(latency.Microseconds()) / 1000.0,
			"user_id":       userID,
			"assessment_id": assessmentID,
			"risk_level":    riskLevel,
			"client_ip":     c.ClientIP(),
			"user_agent":    c.Request.UserAgent(),
		})
	}
}

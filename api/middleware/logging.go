// ABOUTME: Request logging middleware for API endpoints
// ABOUTME: Logs request details, response status, and timing information

package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"daysgrimm-api/core/interfaces"
)

const requestIDHeader = "X-Request-ID"

// RequestLogging logs every request with a generated request ID, status, and
// timing. Slow requests and server errors get their own log levels.
func RequestLogging(logger interfaces.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		c.Writer.Header().Set(requestIDHeader, requestID)

		start := time.Now()
		c.Next()
		duration := time.Since(start)

		fields := map[string]interface{}{
			"request_id":  requestID,
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": duration.Milliseconds(),
			"remote_ip":   c.ClientIP(),
		}

		switch {
		case c.Writer.Status() >= 500:
			logger.Error("Request failed with server error", fields)
		case duration > 5*time.Second:
			logger.Warn("Slow request", fields)
		default:
			logger.Info("Request completed", fields)
		}
	}
}

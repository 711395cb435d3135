package middleware

import (
	"time"

	"github.com/NomadCrew/feedback-portal/logger"
	"github.com/gin-gonic/gin"
)

// RequestLogger writes one structured line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []interface{}{
			"request_id", c.GetString(RequestIDKey),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
		}

		log := logger.GetLogger()
		switch c.Request.URL.Path {
		case "/health", "/health/readiness", "/metrics":
			log.Debugw("Request handled", fields...)
		default:
			log.Infow("Request handled", fields...)
		}
	}
}

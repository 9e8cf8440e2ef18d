package middleware

import (
	"time"

	coreport "github.com/amirhossein-jamali/smm-panel/internal/domain/port/core"
	"github.com/gin-gonic/gin"
)

// quietPaths are polled by infrastructure and logged at debug level only
var quietPaths = map[string]bool{
	"/healthz": true,
	"/metrics": true,
}

// Logger middleware logs incoming requests and their responses
func Logger(logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		statusCode := c.Writer.Status()
		fields := map[string]any{
			"method":     c.Request.Method,
			"path":       path,
			"route":      c.FullPath(),
			"status":     statusCode,
			"latency_ms": time.Since(start).Milliseconds(),
			"ip":         c.ClientIP(),
			"request_id": c.GetHeader("X-Request-ID"),
		}
		if identity, ok := SessionFrom(c); ok {
			fields["uid"] = identity.UID
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.Errors()
		}

		switch {
		case quietPaths[path]:
			logger.Debug("Request processed", fields)
		case statusCode >= 500:
			logger.Error("Request failed", fields)
		case statusCode >= 400:
			logger.Warn("Request rejected", fields)
		default:
			logger.Info("Request processed", fields)
		}
	}
}

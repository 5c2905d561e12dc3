package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"hiring-signals/internal/shared/metrics"
	"hiring-signals/internal/shared/telemetry"
)

// Logging emits a structured log line and records metrics per request.
func Logging(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		metrics.ObserveHTTP(service, c.FullPath(), c.Request.Method, status, latency)

		fields := map[string]any{
			"service":     service,
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      status,
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		if jobID, ok := c.Get("jobId"); ok {
			fields["job_id"] = jobID
		}
		if resumes, ok := c.Get("resumeCount"); ok {
			fields["resume_count"] = resumes
		}
		telemetry.Info("request.complete", fields)
	}
}

package respond

import (
	"github.com/gin-gonic/gin"

	"hiring-signals/internal/shared/telemetry"
)

// ErrorResponse is the body used for failures that carry an error string.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// StatusResponse is the body used for status-style failures.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Error sends an {error, details} response and logs it.
func Error(c *gin.Context, status int, message string, details string) {
	logError(c, status, message, details)
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:   message,
		Details: details,
	})
}

// StatusError sends a {status:"error", message} response and logs it.
func StatusError(c *gin.Context, status int, message string) {
	logError(c, status, message, "")
	c.AbortWithStatusJSON(status, StatusResponse{
		Status:  "error",
		Message: message,
	})
}

func logError(c *gin.Context, status int, message, details string) {
	fields := map[string]any{
		"status":     status,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if details != "" {
		fields["details"] = details
	}
	if status >= 500 {
		telemetry.Error("http.error", fields)
		return
	}
	telemetry.Info("http.error", fields)
}

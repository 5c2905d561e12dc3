package feedback

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hiring-signals/internal/jobs"
	"hiring-signals/internal/shared/server/respond"
	"hiring-signals/internal/shared/telemetry"
)

const maxBodyBytes = 1 << 20

// JobResolver resolves a free-text job name.
type JobResolver interface {
	Resolve(ctx context.Context, name string) jobs.Lookup
}

// Analyzer runs the feedback pipeline for a job.
type Analyzer interface {
	Analyze(ctx context.Context, jobID string, action Action) (Result, error)
}

// Handler serves the interview analysis endpoint.
type Handler struct {
	Jobs     JobResolver
	Analyzer Analyzer
}

// NewHandler constructs a Handler.
func NewHandler(resolver JobResolver, analyzer Analyzer) *Handler {
	return &Handler{Jobs: resolver, Analyzer: analyzer}
}

// RegisterRoutes attaches the analysis route.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/analyze-interview", h.analyzeInterview)
}

type analyzeInterviewRequest struct {
	JobName string `json:"job_name"`
}

func (h *Handler) analyzeInterview(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	var req analyzeInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.StatusError(c, http.StatusBadRequest, "No data received")
		return
	}
	jobName := strings.TrimSpace(req.JobName)
	if jobName == "" {
		respond.StatusError(c, http.StatusBadRequest, "Job name is required")
		return
	}

	lookup := h.Jobs.Resolve(c.Request.Context(), jobName)
	switch lookup.Outcome {
	case jobs.Found:
	case jobs.UpstreamError:
		telemetry.Warn("feedback.job_lookup.upstream_error", map[string]any{
			"job_name":   jobName,
			"request_id": c.GetString("requestId"),
			"error":      lookup.Err,
		})
		respond.StatusError(c, http.StatusNotFound, "No job found with name: "+jobName)
		return
	default:
		respond.StatusError(c, http.StatusNotFound, "No job found with name: "+jobName)
		return
	}

	jobID := lookup.Job.ID.String()
	c.Set("jobId", jobID)

	result, err := h.Analyzer.Analyze(c.Request.Context(), jobID, ActionDownload)
	if err != nil {
		status, message := statusFor(err)
		if status == http.StatusInternalServerError {
			respond.Error(c, status, err.Error(), "")
			return
		}
		telemetry.Warn("feedback.analyze.failed", map[string]any{
			"job_id": jobID,
			"status": status,
			"error":  err,
		})
		respond.StatusError(c, status, message)
		return
	}

	respond.OK(c, result)
}

// statusFor maps pipeline errors onto HTTP status codes and client messages.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrFileNotFound):
		return http.StatusNotFound, "Could not find interview feedback file"
	case errors.Is(err, ErrAmbiguousFile):
		return http.StatusConflict, "Multiple interview feedback files found for this job"
	case errors.Is(err, ErrNoValidRows):
		return http.StatusUnprocessableEntity, "No valid feedback rows found in the CSV"
	case errors.Is(err, ErrPersist):
		return http.StatusBadGateway, "Failed to save processed results"
	case errors.Is(err, ErrDownload), errors.Is(err, ErrMalformedCSV), errors.Is(err, ErrFileLookup):
		return http.StatusBadGateway, "Failed to process feedback file"
	case errors.Is(err, ErrInvalidAction):
		return http.StatusBadRequest, "Invalid action"
	default:
		return http.StatusInternalServerError, ""
	}
}

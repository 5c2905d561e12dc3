package feedback

import (
	"context"
	"fmt"
	"strings"

	"hiring-signals/internal/shared/telemetry"
)

// Action selects what Analyze does once the feedback file is located.
type Action string

const (
	ActionView     Action = "view"
	ActionDownload Action = "download"
)

// ParseAction normalizes an action name.
func ParseAction(raw string) (Action, error) {
	switch a := Action(strings.ToLower(strings.TrimSpace(raw))); a {
	case ActionView, ActionDownload:
		return a, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidAction, raw)
	}
}

const (
	statusSuccess = "success"

	msgViewed    = "Interview feedback file located"
	msgProcessed = "File processed and saved successfully"
)

// Result is the outcome of Analyze.
type Result struct {
	Status           string                `json:"status"`
	Message          string                `json:"message,omitempty"`
	FileDetails      *FileRecord           `json:"file_details,omitempty"`
	ProcessedRecords []PersistedAssessment `json:"processed_records,omitempty"`
}

// Service orchestrates locating, processing and persisting a job's feedback.
type Service struct {
	processor *Processor
	store     Store
}

// NewService constructs a Service.
func NewService(processor *Processor, store Store) *Service {
	return &Service{processor: processor, store: store}
}

// Analyze locates the feedback file for jobID. With ActionDownload it also
// processes the file and persists the assessments.
func (s *Service) Analyze(ctx context.Context, jobID string, action Action) (Result, error) {
	if action != ActionView && action != ActionDownload {
		return Result{}, fmt.Errorf("%w: %s", ErrInvalidAction, action)
	}

	rec, err := s.processor.FileRecord(ctx, jobID)
	if err != nil {
		return Result{}, err
	}
	telemetry.Info("feedback.file.located", map[string]any{
		"job_id":    jobID,
		"file_name": rec.FileName,
		"action":    string(action),
	})

	if action == ActionView {
		return Result{Status: statusSuccess, Message: msgViewed, FileDetails: &rec}, nil
	}

	assessments, err := s.processor.Process(ctx, rec)
	if err != nil {
		return Result{}, err
	}

	saved, err := s.store.SaveAssessments(ctx, jobID, rec, assessments)
	if err != nil {
		return Result{}, err
	}
	telemetry.Info("feedback.saved", map[string]any{
		"job_id":  jobID,
		"records": len(saved),
	})

	return Result{
		Status:           statusSuccess,
		Message:          msgProcessed,
		FileDetails:      &rec,
		ProcessedRecords: saved,
	}, nil
}

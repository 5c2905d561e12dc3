package feedback

import "context"

const processedTable = "processed_interview_feedback"

// Store persists processed assessments in one all-or-nothing write.
type Store interface {
	SaveAssessments(ctx context.Context, jobID string, rec FileRecord, items []Assessment) ([]PersistedAssessment, error)
}

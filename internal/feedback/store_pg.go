package feedback

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"hiring-signals/internal/shared/metrics"
)

const pgInsertColumns = 17

// PGStore writes assessments directly to Postgres in one transaction.
type PGStore struct {
	DB    *sql.DB
	Now   func() time.Time
	NewID func() string
}

// SaveAssessments inserts all rows with a single multi-row INSERT.
func (s *PGStore) SaveAssessments(ctx context.Context, jobID string, rec FileRecord, items []Assessment) (saved []PersistedAssessment, err error) {
	defer func() { metrics.ObserveStoreWrite("postgres", err) }()

	rows := stamp(jobID, rec, items, nowOrDefault(s.Now))
	newID := s.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	var b strings.Builder
	b.WriteString(`
INSERT INTO processed_interview_feedback (
    id,
    job_id,
    file_url,
    candidate_name,
    interviewer,
    original_feedback,
    summary,
    traits,
    top_trait,
    top_trait_score,
    confidence_score,
    communication_score,
    technical_ability_score,
    average_score,
    recommendation,
    created_at,
    updated_at
) VALUES `)
	args := make([]any, 0, len(rows)*pgInsertColumns)
	for i := range rows {
		rows[i].ID = newID()
		traits, err := json.Marshal(rows[i].Traits)
		if err != nil {
			return nil, fmt.Errorf("%w: encode traits: %v", ErrPersist, err)
		}
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(")
		for j := 1; j <= pgInsertColumns; j++ {
			if j > 1 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "$%d", i*pgInsertColumns+j)
		}
		b.WriteString(")")

		r := rows[i]
		args = append(args,
			r.ID,
			r.JobID,
			r.FileURL,
			r.CandidateName,
			nullString(r.Interviewer),
			r.OriginalFeedback,
			r.Summary,
			traits,
			nullString(r.TopTrait),
			r.TopTraitScore,
			r.ConfidenceScore,
			r.CommunicationScore,
			r.TechnicalAbilityScore,
			r.AverageScore,
			string(r.Recommendation),
			r.CreatedAt,
			r.UpdatedAt,
		)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: begin: %v", ErrPersist, err)
	}
	if _, err := tx.ExecContext(ctx, b.String(), args...); err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("%w: insert: %v", ErrPersist, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: commit: %v", ErrPersist, err)
	}
	return rows, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

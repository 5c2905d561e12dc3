package feedback

import (
	"context"
	"fmt"
	"time"

	"hiring-signals/internal/shared/metrics"
)

// RowInserter is the subset of the Supabase client used by RESTStore.
type RowInserter interface {
	Insert(ctx context.Context, table string, rows any, out any) error
}

// RESTStore writes assessments through the hosted PostgREST API.
type RESTStore struct {
	Client RowInserter
	Now    func() time.Time
}

// SaveAssessments posts every row in a single request and returns the stored representation.
func (s *RESTStore) SaveAssessments(ctx context.Context, jobID string, rec FileRecord, items []Assessment) (saved []PersistedAssessment, err error) {
	defer func() { metrics.ObserveStoreWrite("rest", err) }()

	rows := stamp(jobID, rec, items, nowOrDefault(s.Now))
	var out []PersistedAssessment
	if err := s.Client.Insert(ctx, processedTable, rows, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersist, err)
	}
	if len(out) == 0 {
		out = rows
	}
	return out, nil
}

func nowOrDefault(now func() time.Time) time.Time {
	if now == nil {
		return time.Now()
	}
	return now()
}

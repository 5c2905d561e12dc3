package feedback

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps assessments in process memory. Used for tests and dry runs.
type MemoryStore struct {
	mu      sync.Mutex
	records []PersistedAssessment
	Now     func() time.Time
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// SaveAssessments appends all rows.
func (s *MemoryStore) SaveAssessments(_ context.Context, jobID string, rec FileRecord, items []Assessment) ([]PersistedAssessment, error) {
	rows := stamp(jobID, rec, items, nowOrDefault(s.Now))
	for i := range rows {
		rows[i].ID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rows...)
	return rows, nil
}

// Records returns a copy of everything saved so far.
func (s *MemoryStore) Records() []PersistedAssessment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]PersistedAssessment, len(s.records))
	copy(out, s.records)
	return out
}

package feedback

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

func sampleAssessments() []Assessment {
	return []Assessment{
		{
			CandidateName:    "Ada",
			Interviewer:      "Grace",
			OriginalFeedback: "great",
			Summary:          "GREAT",
			TraitScores:      map[string]float64{TraitConfidence: 0.9, TraitCommunication: 0.9, TraitTechnicalAbility: 0.9},
			TopTrait:         TraitConfidence,
			TopTraitScore:    0.9,
			AverageScore:     0.9,
			Recommendation:   RecommendHire,
		},
		{
			CandidateName:    "Bob",
			OriginalFeedback: "weak",
			Summary:          "WEAK",
			TraitScores:      map[string]float64{TraitConfidence: 0.1, TraitCommunication: 0.2, TraitTechnicalAbility: 0.3},
			TopTrait:         TraitTechnicalAbility,
			TopTraitScore:    0.3,
			AverageScore:     0.2,
			Recommendation:   RecommendReject,
		},
	}
}

type fakeInserter struct {
	table string
	sent  []PersistedAssessment
	err   error
}

func (f *fakeInserter) Insert(_ context.Context, table string, rows any, out any) error {
	f.table = table
	if f.err != nil {
		return f.err
	}
	f.sent = rows.([]PersistedAssessment)
	raw, err := json.Marshal(f.sent)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func TestRESTStoreSendsSingleBulkWrite(t *testing.T) {
	ins := &fakeInserter{}
	s := &RESTStore{Client: ins, Now: func() time.Time { return fixedNow }}

	saved, err := s.SaveAssessments(context.Background(), "1", testRecord, sampleAssessments())
	require.NoError(t, err)

	assert.Equal(t, "processed_interview_feedback", ins.table)
	require.Len(t, ins.sent, 2)
	require.Len(t, saved, 2)
	assert.Equal(t, "Ada", saved[0].CandidateName)
	assert.Equal(t, "1", saved[1].JobID)
	assert.True(t, saved[1].CreatedAt.Equal(fixedNow))
}

func TestRESTStoreWrapsFailure(t *testing.T) {
	s := &RESTStore{Client: &fakeInserter{err: errors.New("http status 409")}}

	_, err := s.SaveAssessments(context.Background(), "1", testRecord, sampleAssessments())
	assert.True(t, errors.Is(err, ErrPersist), "got %v", err)
}

func TestPGStoreInsertsAllRowsInOneTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ids := []string{"id-1", "id-2"}
	next := 0
	s := &PGStore{
		DB:  db,
		Now: func() time.Time { return fixedNow },
		NewID: func() string {
			id := ids[next]
			next++
			return id
		},
	}

	args := make([]driver.Value, 0, 2*pgInsertColumns)
	for _, id := range ids {
		args = append(args, id)
		for i := 1; i < pgInsertColumns; i++ {
			args = append(args, sqlmock.AnyArg())
		}
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO processed_interview_feedback .* VALUES \(\$1, .*\$17\), \(\$18, .*\$34\)`).
		WithArgs(args...).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	saved, err := s.SaveAssessments(context.Background(), "1", testRecord, sampleAssessments())
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, "id-1", saved[0].ID)
	assert.Equal(t, "id-2", saved[1].ID)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGStoreRollsBackOnInsertError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO processed_interview_feedback").WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	_, err = (&PGStore{DB: db}).SaveAssessments(context.Background(), "1", testRecord, sampleAssessments())
	assert.True(t, errors.Is(err, ErrPersist), "got %v", err)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestMemoryStoreAppends(t *testing.T) {
	s := NewMemoryStore()
	saved, err := s.SaveAssessments(context.Background(), "1", testRecord, sampleAssessments())
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.NotEmpty(t, saved[0].ID)
	assert.Len(t, s.Records(), 2)
}

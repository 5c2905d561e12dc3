package feedback

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{}

func (failingStore) SaveAssessments(context.Context, string, FileRecord, []Assessment) ([]PersistedAssessment, error) {
	return nil, ErrPersist
}

func TestAnalyzeViewDoesNotProcess(t *testing.T) {
	models := &fakeModels{}
	store := NewMemoryStore()
	svc := NewService(newTestProcessor(&fakeFiles{records: []FileRecord{testRecord}}, threeRowCSV, models), store)

	res, err := svc.Analyze(context.Background(), "1", ActionView)
	require.NoError(t, err)
	assert.Equal(t, "success", res.Status)
	require.NotNil(t, res.FileDetails)
	assert.Equal(t, testRecord.FileURL, res.FileDetails.FileURL)
	assert.Zero(t, models.calls)
	assert.Empty(t, store.Records())
}

func TestAnalyzeDownloadProcessesAndPersists(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(newTestProcessor(&fakeFiles{records: []FileRecord{testRecord}}, threeRowCSV, &fakeModels{}), store)

	res, err := svc.Analyze(context.Background(), "1", ActionDownload)
	require.NoError(t, err)
	assert.Equal(t, "File processed and saved successfully", res.Message)
	require.Len(t, res.ProcessedRecords, 2)
	assert.Len(t, store.Records(), 2)
	assert.Equal(t, "1", res.ProcessedRecords[0].JobID)
}

func TestAnalyzeErrors(t *testing.T) {
	tests := []struct {
		name    string
		files   *fakeFiles
		store   Store
		action  Action
		wantErr error
	}{
		{name: "invalid action", files: &fakeFiles{records: []FileRecord{testRecord}}, store: NewMemoryStore(), action: "delete", wantErr: ErrInvalidAction},
		{name: "file not found", files: &fakeFiles{}, store: NewMemoryStore(), action: ActionDownload, wantErr: ErrFileNotFound},
		{name: "persist failure", files: &fakeFiles{records: []FileRecord{testRecord}}, store: failingStore{}, action: ActionDownload, wantErr: ErrPersist},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(newTestProcessor(tt.files, threeRowCSV, &fakeModels{}), tt.store)
			_, err := svc.Analyze(context.Background(), "1", tt.action)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestParseAction(t *testing.T) {
	a, err := ParseAction(" Download ")
	require.NoError(t, err)
	assert.Equal(t, ActionDownload, a)

	_, err = ParseAction("purge")
	assert.True(t, errors.Is(err, ErrInvalidAction))
}

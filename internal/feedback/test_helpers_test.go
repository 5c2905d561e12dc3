package feedback

import (
	"context"
	"errors"
	"strings"
	"sync"

	"hiring-signals/internal/inference"
)

type fakeFiles struct {
	records []FileRecord
	err     error
	gotJob  string
}

func (f *fakeFiles) FilesForJob(_ context.Context, jobID string) ([]FileRecord, error) {
	f.gotJob = jobID
	return f.records, f.err
}

type fakeFetcher struct {
	data []byte
	err  error
}

func (f fakeFetcher) Fetch(context.Context, string) ([]byte, error) {
	return f.data, f.err
}

// fakeModels summarizes by upper-casing and scores traits from a fixed table.
// Feedback containing "explode" fails both calls.
type fakeModels struct {
	mu     sync.Mutex
	calls  int
	scores []float64
}

func (m *fakeModels) Summarize(_ context.Context, text string, _ inference.SummaryOptions) (string, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if strings.Contains(text, "explode") {
		return "", errors.New("model unavailable")
	}
	return strings.ToUpper(text), nil
}

func (m *fakeModels) Classify(_ context.Context, _ string, labels []string) (inference.Classification, error) {
	scores := m.scores
	if scores == nil {
		scores = []float64{0.9, 0.8, 0.7}
	}
	return inference.Classification{Labels: labels, Scores: scores}, nil
}

func newTestProcessor(files FileCatalog, data string, models *fakeModels) *Processor {
	return NewProcessor(files, fakeFetcher{data: []byte(data)}, models, models)
}

var testRecord = FileRecord{
	ID:         "f-1",
	JobID:      "1",
	FileURL:    "https://storage.example.com/feedback.csv",
	FileName:   "feedback.csv",
	UploadedBy: "recruiter@example.com",
}

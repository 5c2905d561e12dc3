package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"hiring-signals/internal/jobs"
)

type stubResolver struct {
	lookup jobs.Lookup
	got    string
}

func (s *stubResolver) Resolve(_ context.Context, name string) jobs.Lookup {
	s.got = name
	return s.lookup
}

type stubAnalyzer struct {
	result Result
	err    error
	jobID  string
	action Action
}

func (s *stubAnalyzer) Analyze(_ context.Context, jobID string, action Action) (Result, error) {
	s.jobID = jobID
	s.action = action
	return s.result, s.err
}

func newTestRouter(resolver JobResolver, analyzer Analyzer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(resolver, analyzer).RegisterRoutes(r)
	return r
}

func postAnalyze(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/analyze-interview", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestAnalyzeInterviewSuccess(t *testing.T) {
	resolver := &stubResolver{lookup: jobs.Lookup{Outcome: jobs.Found, Job: jobs.Job{ID: "1", Title: "Frontend Developer"}}}
	analyzer := &stubAnalyzer{result: Result{Status: "success", Message: "File processed and saved successfully"}}
	r := newTestRouter(resolver, analyzer)

	rec := postAnalyze(r, `{"job_name":"  frontend developer "}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if resolver.got != "frontend developer" {
		t.Fatalf("expected trimmed job name, got %q", resolver.got)
	}
	if analyzer.jobID != "1" || analyzer.action != ActionDownload {
		t.Fatalf("unexpected analyze call %q %q", analyzer.jobID, analyzer.action)
	}
	if body := decodeBody(t, rec); body["status"] != "success" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestAnalyzeInterviewValidation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{name: "empty body", body: "", message: "No data received"},
		{name: "empty object", body: "{}", message: "Job name is required"},
		{name: "invalid json", body: "{not json", message: "No data received"},
		{name: "missing job name", body: `{"other":"x"}`, message: "Job name is required"},
		{name: "blank job name", body: `{"job_name":"   "}`, message: "Job name is required"},
		{name: "non-string job name", body: `{"job_name":42}`, message: "No data received"},
		{name: "json array", body: `["Frontend Developer"]`, message: "No data received"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&stubResolver{}, &stubAnalyzer{})
			rec := postAnalyze(r, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			body := decodeBody(t, rec)
			if body["status"] != "error" || body["message"] != tt.message {
				t.Fatalf("unexpected body %v", body)
			}
		})
	}
}

func TestAnalyzeInterviewJobNotFound(t *testing.T) {
	for _, lookup := range []jobs.Lookup{
		{Outcome: jobs.NotFound},
		{Outcome: jobs.UpstreamError, Err: errors.New("http status 500")},
	} {
		r := newTestRouter(&stubResolver{lookup: lookup}, &stubAnalyzer{})
		rec := postAnalyze(r, `{"job_name":"Chef"}`)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", lookup.Outcome, rec.Code)
		}
		if body := decodeBody(t, rec); body["message"] != "No job found with name: Chef" {
			t.Fatalf("unexpected body %v", body)
		}
	}
}

func TestAnalyzeInterviewMapsPipelineErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "file not found", err: ErrFileNotFound, status: http.StatusNotFound},
		{name: "ambiguous", err: ErrAmbiguousFile, status: http.StatusConflict},
		{name: "download", err: ErrDownload, status: http.StatusBadGateway},
		{name: "malformed", err: ErrMalformedCSV, status: http.StatusBadGateway},
		{name: "no rows", err: ErrNoValidRows, status: http.StatusUnprocessableEntity},
		{name: "persist", err: ErrPersist, status: http.StatusBadGateway},
		{name: "unexpected", err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			resolver := &stubResolver{lookup: jobs.Lookup{Outcome: jobs.Found, Job: jobs.Job{ID: "1"}}}
			r := newTestRouter(resolver, &stubAnalyzer{err: tt.err})
			rec := postAnalyze(r, `{"job_name":"dev"}`)
			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rec.Code)
			}
			body := decodeBody(t, rec)
			if tt.status == http.StatusInternalServerError {
				if body["error"] != "boom" {
					t.Fatalf("unexpected body %v", body)
				}
				return
			}
			if body["status"] != "error" || body["message"] == "" {
				t.Fatalf("unexpected body %v", body)
			}
		})
	}
}

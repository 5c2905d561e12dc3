package feedback

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"hiring-signals/internal/jobs"
	"hiring-signals/internal/supabase"
)

const filesTable = "interview_feedback_files"

// FileCatalog lists the feedback file records attached to a job.
type FileCatalog interface {
	FilesForJob(ctx context.Context, jobID string) ([]FileRecord, error)
}

// RESTFileCatalog reads file records through the hosted PostgREST API.
type RESTFileCatalog struct {
	Client jobs.RowSelector
}

// FilesForJob returns every record whose job_id equals jobID.
func (c *RESTFileCatalog) FilesForJob(ctx context.Context, jobID string) ([]FileRecord, error) {
	query := url.Values{
		"select": {"*"},
		"job_id": {supabase.Eq(jobID)},
	}
	var records []FileRecord
	if err := c.Client.Select(ctx, filesTable, query, &records); err != nil {
		return nil, fmt.Errorf("files for job %s: %w", jobID, err)
	}
	return records, nil
}

// PGFileCatalog reads file records directly from Postgres.
type PGFileCatalog struct {
	DB *sql.DB
}

// FilesForJob returns every record whose job_id equals jobID.
func (c *PGFileCatalog) FilesForJob(ctx context.Context, jobID string) ([]FileRecord, error) {
	const query = `
SELECT id, job_id, file_url, file_name, uploaded_by
FROM interview_feedback_files
WHERE job_id = $1
ORDER BY created_at, id`

	rows, err := c.DB.QueryContext(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("files for job %s: %w", jobID, err)
	}
	defer rows.Close()

	var records []FileRecord
	for rows.Next() {
		var (
			id, job, fileURL, fileName string
			uploadedBy                 sql.NullString
		)
		if err := rows.Scan(&id, &job, &fileURL, &fileName, &uploadedBy); err != nil {
			return nil, fmt.Errorf("files for job %s: scan: %w", jobID, err)
		}
		records = append(records, FileRecord{
			ID:         jobs.ID(id),
			JobID:      jobs.ID(job),
			FileURL:    fileURL,
			FileName:   fileName,
			UploadedBy: uploadedBy.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("files for job %s: %w", jobID, err)
	}
	return records, nil
}

// Fetcher downloads the raw bytes behind a file URL.
type Fetcher interface {
	Fetch(ctx context.Context, fileURL string) ([]byte, error)
}

const defaultMaxCSVBytes = 32 << 20

// HTTPFetcher downloads files over plain HTTP(S).
type HTTPFetcher struct {
	client   *http.Client
	maxBytes int64
}

// NewHTTPFetcher constructs an HTTPFetcher. timeout <= 0 uses 60s.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPFetcher{
		client:   &http.Client{Timeout: timeout},
		maxBytes: defaultMaxCSVBytes,
	}
}

// Fetch returns the response body. Any status other than 200 is ErrDownload.
func (f *HTTPFetcher) Fetch(ctx context.Context, fileURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownload, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownload, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: http status %d", ErrDownload, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrDownload, err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", ErrDownload, f.maxBytes)
	}
	return body, nil
}

package jobs

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
)

const table = "jobs"

// Catalog lists jobs in the order the backing store returns them.
type Catalog interface {
	ListJobs(ctx context.Context) ([]Job, error)
}

// RowSelector is the subset of the Supabase client used by RESTCatalog.
type RowSelector interface {
	Select(ctx context.Context, table string, query url.Values, out any) error
}

// RESTCatalog reads jobs through the hosted PostgREST API.
type RESTCatalog struct {
	Client RowSelector
}

// ListJobs returns every job.
func (c *RESTCatalog) ListJobs(ctx context.Context) ([]Job, error) {
	var jobs []Job
	if err := c.Client.Select(ctx, table, url.Values{"select": {"*"}}, &jobs); err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

// PGCatalog reads jobs directly from Postgres.
type PGCatalog struct {
	DB *sql.DB
}

// ListJobs returns every job ordered by creation time.
func (c *PGCatalog) ListJobs(ctx context.Context) ([]Job, error) {
	const query = `
SELECT id, title
FROM jobs
ORDER BY created_at, id`

	rows, err := c.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var (
			id    string
			title sql.NullString
		)
		if err := rows.Scan(&id, &title); err != nil {
			return nil, fmt.Errorf("list jobs: scan: %w", err)
		}
		jobs = append(jobs, Job{ID: ID(id), Title: title.String})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

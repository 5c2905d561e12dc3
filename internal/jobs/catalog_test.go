package jobs

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

type fakeSelector struct {
	table string
	query url.Values
	body  string
}

func (f *fakeSelector) Select(_ context.Context, table string, query url.Values, out any) error {
	f.table = table
	f.query = query
	return json.Unmarshal([]byte(f.body), out)
}

func TestRESTCatalogDecodesNumericAndStringIDs(t *testing.T) {
	sel := &fakeSelector{body: `[{"id":1,"title":"Frontend Developer"},{"id":"abc","title":"QA"}]`}
	c := &RESTCatalog{Client: sel}

	jobs, err := c.ListJobs(context.Background())
	if err != nil {
		t.Fatalf("ListJobs: %v", err)
	}
	if sel.table != "jobs" || sel.query.Get("select") != "*" {
		t.Fatalf("unexpected request %s %v", sel.table, sel.query)
	}
	if len(jobs) != 2 || jobs[0].ID != "1" || jobs[1].ID != "abc" {
		t.Fatalf("unexpected jobs: %+v", jobs)
	}
}

func TestPGCatalogListJobs(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT id, title").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).
			AddRow("1", "Frontend Developer").
			AddRow("2", nil))

	jobs, err := (&PGCatalog{DB: db}).ListJobs(context.Background())
	if err != nil {
		t.Fatalf("ListJobs: %v", err)
	}
	if len(jobs) != 2 || jobs[0].Title != "Frontend Developer" || jobs[1].Title != "" {
		t.Fatalf("unexpected jobs: %+v", jobs)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

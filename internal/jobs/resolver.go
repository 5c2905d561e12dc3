package jobs

import (
	"context"
	"strings"

	"hiring-signals/internal/shared/telemetry"
)

// Outcome classifies a lookup result.
type Outcome int

const (
	NotFound Outcome = iota
	Found
	UpstreamError
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case UpstreamError:
		return "upstream_error"
	default:
		return "not_found"
	}
}

// Lookup is the result of resolving a job name.
type Lookup struct {
	Outcome Outcome
	Job     Job
	Rule    string
	Err     error
}

// Predicate reports whether a job title satisfies a matching rule.
// Both arguments are lower-cased before the call.
type Predicate struct {
	Name  string
	Match func(query, title string) bool
}

// ExactTitle matches when the title equals the query.
var ExactTitle = Predicate{
	Name: "exact_title",
	Match: func(query, title string) bool {
		return query == title
	},
}

// TermInTitle matches when any whitespace-separated query term occurs in the title.
var TermInTitle = Predicate{
	Name: "term_in_title",
	Match: func(query, title string) bool {
		for _, term := range strings.Fields(query) {
			if strings.Contains(title, term) {
				return true
			}
		}
		return false
	},
}

// FrontendDeveloper matches any title naming a frontend developer role.
var FrontendDeveloper = Predicate{
	Name: "frontend_developer",
	Match: func(_, title string) bool {
		return strings.Contains(title, "frontend") && strings.Contains(title, "developer")
	},
}

// DefaultPredicates returns the matching rules in priority order.
func DefaultPredicates() []Predicate {
	return []Predicate{ExactTitle, TermInTitle, FrontendDeveloper}
}

// Resolver maps free-text job names to catalog jobs.
type Resolver struct {
	catalog    Catalog
	predicates []Predicate
}

// NewResolver builds a Resolver. A nil predicate list uses DefaultPredicates.
func NewResolver(catalog Catalog, predicates []Predicate) *Resolver {
	if predicates == nil {
		predicates = DefaultPredicates()
	}
	return &Resolver{catalog: catalog, predicates: predicates}
}

// Resolve returns the first job satisfying the highest-priority rule that matches any job.
func (r *Resolver) Resolve(ctx context.Context, name string) Lookup {
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" {
		return Lookup{Outcome: NotFound}
	}

	jobs, err := r.catalog.ListJobs(ctx)
	if err != nil {
		telemetry.Error("jobs.resolve.upstream_error", map[string]any{
			"job_name": name,
			"error":    err,
		})
		return Lookup{Outcome: UpstreamError, Err: err}
	}

	titles := make([]string, len(jobs))
	for i, job := range jobs {
		titles[i] = strings.ToLower(strings.TrimSpace(job.Title))
	}

	for _, p := range r.predicates {
		for i, job := range jobs {
			if p.Match(query, titles[i]) {
				telemetry.Info("jobs.resolve.matched", map[string]any{
					"job_name": name,
					"job_id":   job.ID.String(),
					"title":    job.Title,
					"rule":     p.Name,
				})
				return Lookup{Outcome: Found, Job: job, Rule: p.Name}
			}
		}
	}

	telemetry.Info("jobs.resolve.not_found", map[string]any{
		"job_name":  name,
		"job_count": len(jobs),
	})
	return Lookup{Outcome: NotFound}
}

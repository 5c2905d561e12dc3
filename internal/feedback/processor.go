package feedback

import (
	"context"
	"fmt"

	"hiring-signals/internal/inference"
	"hiring-signals/internal/shared/metrics"
	"hiring-signals/internal/shared/telemetry"
)

// Processor turns a job's feedback CSV into assessments.
type Processor struct {
	files      FileCatalog
	fetcher    Fetcher
	summarizer inference.Summarizer
	classifier inference.Classifier
	summary    inference.SummaryOptions
}

// NewProcessor wires a Processor. The model clients are shared across requests.
func NewProcessor(files FileCatalog, fetcher Fetcher, summarizer inference.Summarizer, classifier inference.Classifier) *Processor {
	return &Processor{
		files:      files,
		fetcher:    fetcher,
		summarizer: summarizer,
		classifier: classifier,
		summary:    inference.DefaultSummaryOptions(),
	}
}

// FileRecord returns the single feedback file attached to jobID.
func (p *Processor) FileRecord(ctx context.Context, jobID string) (FileRecord, error) {
	records, err := p.files.FilesForJob(ctx, jobID)
	if err != nil {
		return FileRecord{}, fmt.Errorf("%w: %v", ErrFileLookup, err)
	}
	switch len(records) {
	case 0:
		return FileRecord{}, ErrFileNotFound
	case 1:
		return records[0], nil
	default:
		return FileRecord{}, fmt.Errorf("%w: job %s has %d files", ErrAmbiguousFile, jobID, len(records))
	}
}

// Process downloads and parses the CSV behind rec and assesses every row.
func (p *Processor) Process(ctx context.Context, rec FileRecord) ([]Assessment, error) {
	data, err := p.fetcher.Fetch(ctx, rec.FileURL)
	if err != nil {
		return nil, err
	}
	rows, err := ParseCSV(data)
	if err != nil {
		return nil, err
	}
	telemetry.Info("feedback.csv.parsed", map[string]any{
		"file_name": rec.FileName,
		"job_id":    rec.JobID.String(),
		"rows":      len(rows),
	})
	return p.Assess(ctx, rows)
}

const feedbackLogRunes = 100

// Assess runs the models over rows in order. Rows with blank feedback are skipped.
// A model failure on one row is logged and that row is skipped.
func (p *Processor) Assess(ctx context.Context, rows []Row) ([]Assessment, error) {
	var out []Assessment
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if row.Feedback == "" {
			metrics.FeedbackRowsSkippedTotal.WithLabelValues("blank_feedback").Inc()
			telemetry.Debug("feedback.row.skipped", map[string]any{
				"line":   row.Line,
				"reason": "blank_feedback",
			})
			continue
		}

		a, err := p.assessRow(ctx, row)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			metrics.FeedbackRowsSkippedTotal.WithLabelValues("model_error").Inc()
			telemetry.Warn("feedback.row.failed", map[string]any{
				"line":           row.Line,
				"candidate_name": row.CandidateName,
				"feedback":       telemetry.TruncateForLog(row.Feedback, feedbackLogRunes),
				"error":          err,
			})
			continue
		}
		metrics.AssessmentsTotal.WithLabelValues(string(a.Recommendation)).Inc()
		out = append(out, a)
	}
	if len(out) == 0 {
		return nil, ErrNoValidRows
	}
	return out, nil
}

func (p *Processor) assessRow(ctx context.Context, row Row) (Assessment, error) {
	summary, err := p.summarizer.Summarize(ctx, row.Feedback, p.summary)
	if err != nil {
		return Assessment{}, fmt.Errorf("summarize line %d: %w", row.Line, err)
	}

	traits := Traits()
	cls, err := p.classifier.Classify(ctx, row.Feedback, traits)
	if err != nil {
		return Assessment{}, fmt.Errorf("classify line %d: %w", row.Line, err)
	}
	scores := cls.ScoreMap(traits)
	top, topScore := cls.Top()
	avg := AverageScore(scores)

	return Assessment{
		CandidateName:    row.CandidateName,
		Interviewer:      row.Interviewer,
		OriginalFeedback: row.Feedback,
		Summary:          summary,
		TraitScores:      scores,
		TopTrait:         top,
		TopTraitScore:    topScore,
		AverageScore:     avg,
		Recommendation:   Recommend(avg),
	}, nil
}

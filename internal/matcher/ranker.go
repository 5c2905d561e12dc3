package matcher

import (
	"context"
	"sort"
	"strings"

	"hiring-signals/internal/extract"
	"hiring-signals/internal/inference"
	"hiring-signals/internal/shared/metrics"
	"hiring-signals/internal/shared/telemetry"
)

const DefaultTopN = 5

// Resume is one uploaded resume file.
type Resume struct {
	Filename string
	Data     []byte
}

// Score is a resume's similarity to the job description.
type Score struct {
	Filename     string  `json:"filename"`
	MatchPercent float64 `json:"match_percent"`
}

// TextExtractor pulls plain text out of an uploaded file.
type TextExtractor func(ctx context.Context, data []byte, fileName string) (string, error)

// Ranker scores resumes against a job description.
type Ranker struct {
	embedder inference.Embedder
	extract  TextExtractor
}

// NewRanker constructs a Ranker using the default file extractors.
func NewRanker(embedder inference.Embedder) *Ranker {
	return &Ranker{embedder: embedder, extract: extract.FromBytes}
}

// Rank returns the topN resumes by descending match percentage. Ties keep upload order.
// Every resume is extracted before any embedding call so one unreadable file fails
// the batch without model work.
func (r *Ranker) Rank(ctx context.Context, jobDescription string, resumes []Resume, topN int) ([]Score, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, ErrEmptyJobDescription
	}
	if len(resumes) == 0 {
		return nil, ErrNoResumes
	}
	if topN <= 0 {
		return nil, ErrInvalidTopN
	}

	texts := make([]string, len(resumes))
	for i, res := range resumes {
		text, err := r.extract(ctx, res.Data, res.Filename)
		if err != nil {
			return nil, &ExtractionError{Filename: res.Filename, Err: err}
		}
		if strings.TrimSpace(text) == "" {
			return nil, &EmptyTextError{Filename: res.Filename}
		}
		texts[i] = text
	}

	jdVec, err := r.embedder.Embed(ctx, jobDescription)
	if err != nil {
		return nil, &EmbeddingError{Subject: "job description", Err: err}
	}

	scores := make([]Score, 0, len(resumes))
	for i, res := range resumes {
		vec, err := r.embedder.Embed(ctx, texts[i])
		if err != nil {
			return nil, &EmbeddingError{Subject: res.Filename, Err: err}
		}
		pct := MatchPercent(CosineSimilarity(jdVec, vec))
		metrics.MatchPercentHistogram.Observe(pct)
		scores = append(scores, Score{Filename: res.Filename, MatchPercent: pct})
	}
	metrics.ResumesRankedTotal.Add(float64(len(scores)))

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].MatchPercent > scores[j].MatchPercent
	})
	if len(scores) > topN {
		scores = scores[:topN]
	}

	telemetry.Info("matcher.ranked", map[string]any{
		"resumes":  len(resumes),
		"returned": len(scores),
		"jd_chars": len(jobDescription),
	})
	return scores, nil
}

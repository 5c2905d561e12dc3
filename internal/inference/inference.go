// Package inference declares the pretrained-model capabilities used by both services.
package inference

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when a model answers without usable output.
var ErrEmptyResponse = errors.New("model returned an empty response")

// SummaryOptions controls abstractive summarization length and decoding.
type SummaryOptions struct {
	MaxLength int
	MinLength int
	DoSample  bool
}

// DefaultSummaryOptions returns the settings used for interview feedback.
func DefaultSummaryOptions() SummaryOptions {
	return SummaryOptions{MaxLength: 100, MinLength: 30, DoSample: false}
}

// Summarizer produces a short abstractive summary of text.
type Summarizer interface {
	Summarize(ctx context.Context, text string, opts SummaryOptions) (string, error)
}

// Classifier scores text against candidate labels without task-specific training.
type Classifier interface {
	Classify(ctx context.Context, text string, labels []string) (Classification, error)
}

// Embedder maps text to a dense vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Classification pairs labels with confidences in [0,1], ordered as the model returned them.
type Classification struct {
	Labels []string
	Scores []float64
}

// ScoreMap returns the score for every requested label. Labels the model did not
// return score 0.
func (c Classification) ScoreMap(labels []string) map[string]float64 {
	byLabel := make(map[string]float64, len(c.Labels))
	for i, l := range c.Labels {
		if i < len(c.Scores) {
			byLabel[l] = c.Scores[i]
		}
	}
	out := make(map[string]float64, len(labels))
	for _, l := range labels {
		out[l] = byLabel[l]
	}
	return out
}

// Top returns the highest-scoring label. The first label wins ties.
func (c Classification) Top() (string, float64) {
	best, bestScore := "", -1.0
	for i, l := range c.Labels {
		if i >= len(c.Scores) {
			break
		}
		if c.Scores[i] > bestScore {
			best, bestScore = l, c.Scores[i]
		}
	}
	if best == "" {
		return "", 0
	}
	return best, bestScore
}

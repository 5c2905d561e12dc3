// Package gemini embeds text with the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"hiring-signals/internal/inference"
	"hiring-signals/internal/shared/metrics"
)

const (
	defaultModel = "text-embedding-004"
	provider     = "gemini"
	// Embedding input is capped at roughly 10k tokens.
	maxInputChars = 40000
)

type embedFunc func(ctx context.Context, model string, contents []*genai.Content) (*genai.EmbedContentResponse, error)

// Embedder implements inference.Embedder using Gemini embedding models.
type Embedder struct {
	model string
	embed embedFunc
}

// NewEmbedder creates an Embedder configured for the Gemini API backend.
func NewEmbedder(ctx context.Context, apiKey, model string) (*Embedder, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	return &Embedder{
		model: model,
		embed: func(ctx context.Context, model string, contents []*genai.Content) (*genai.EmbedContentResponse, error) {
			return client.Models.EmbedContent(ctx, model, contents, nil)
		},
	}, nil
}

// Embed returns the embedding of text.
func (e *Embedder) Embed(ctx context.Context, text string) (vec []float32, err error) {
	start := time.Now()
	defer func() { metrics.ObserveModelCall(provider, "embedding", start, err) }()

	if len(text) > maxInputChars {
		text = strings.ToValidUTF8(text[:maxInputChars], "")
	}

	result, err := e.embed(ctx, e.model, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("gemini embed: %w", err)
	}
	if result == nil || len(result.Embeddings) == 0 || len(result.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("gemini embed: %w", inference.ErrEmptyResponse)
	}
	return result.Embeddings[0].Values, nil
}

var _ inference.Embedder = (*Embedder)(nil)

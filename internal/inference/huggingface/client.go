// Package huggingface calls hosted models through the Hugging Face Inference API.
package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"hiring-signals/internal/inference"
	"hiring-signals/internal/shared/metrics"
)

const (
	DefaultBaseURL = "https://api-inference.huggingface.co"
	provider       = "huggingface"
)

// Client runs one hosted model. Construct one Client per model.
type Client struct {
	baseURL    string
	token      string
	model      string
	httpClient *http.Client
}

// NewClient constructs a Client for model. An empty baseURL uses DefaultBaseURL.
func NewClient(baseURL, token, model string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("huggingface: model is required")
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		token:      strings.TrimSpace(token),
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type requestOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type summarizeParameters struct {
	MaxLength int  `json:"max_length"`
	MinLength int  `json:"min_length"`
	DoSample  bool `json:"do_sample"`
}

type summarizeRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters summarizeParameters `json:"parameters"`
	Options    requestOptions      `json:"options"`
}

type summaryItem struct {
	SummaryText string `json:"summary_text"`
}

// Summarize runs a summarization model.
func (c *Client) Summarize(ctx context.Context, text string, opts inference.SummaryOptions) (summary string, err error) {
	start := time.Now()
	defer func() { metrics.ObserveModelCall(provider, "summarization", start, err) }()

	body := summarizeRequest{
		Inputs: text,
		Parameters: summarizeParameters{
			MaxLength: opts.MaxLength,
			MinLength: opts.MinLength,
			DoSample:  opts.DoSample,
		},
		Options: requestOptions{WaitForModel: true},
	}
	raw, err := c.post(ctx, body)
	if err != nil {
		return "", err
	}

	var items []summaryItem
	if err := json.Unmarshal(raw, &items); err != nil {
		var single summaryItem
		if err2 := json.Unmarshal(raw, &single); err2 != nil {
			return "", fmt.Errorf("huggingface summarize parse: %w", err)
		}
		items = []summaryItem{single}
	}
	if len(items) == 0 || strings.TrimSpace(items[0].SummaryText) == "" {
		return "", fmt.Errorf("huggingface summarize: %w", inference.ErrEmptyResponse)
	}
	return strings.TrimSpace(items[0].SummaryText), nil
}

type classifyParameters struct {
	CandidateLabels []string `json:"candidate_labels"`
}

type classifyRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters classifyParameters `json:"parameters"`
	Options    requestOptions     `json:"options"`
}

type classifyResponse struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classify runs a zero-shot classification model against labels.
func (c *Client) Classify(ctx context.Context, text string, labels []string) (out inference.Classification, err error) {
	start := time.Now()
	defer func() { metrics.ObserveModelCall(provider, "zero-shot-classification", start, err) }()

	body := classifyRequest{
		Inputs:     text,
		Parameters: classifyParameters{CandidateLabels: labels},
		Options:    requestOptions{WaitForModel: true},
	}
	raw, err := c.post(ctx, body)
	if err != nil {
		return inference.Classification{}, err
	}

	var parsed classifyResponse
	if err := json.Unmarshal(raw, &parsed); err == nil && len(parsed.Labels) > 0 {
		return inference.Classification{Labels: parsed.Labels, Scores: parsed.Scores}, nil
	}

	// Newer router deployments answer with a flat list of {label, score}.
	var pairs []labelScore
	if err := json.Unmarshal(raw, &pairs); err != nil {
		return inference.Classification{}, fmt.Errorf("huggingface classify parse: %w", err)
	}
	if len(pairs) == 0 {
		return inference.Classification{}, fmt.Errorf("huggingface classify: %w", inference.ErrEmptyResponse)
	}
	for _, p := range pairs {
		out.Labels = append(out.Labels, p.Label)
		out.Scores = append(out.Scores, p.Score)
	}
	return out, nil
}

type embedRequest struct {
	Inputs  string         `json:"inputs"`
	Options requestOptions `json:"options"`
}

// Embed runs a feature-extraction model. Token-level outputs are mean pooled.
func (c *Client) Embed(ctx context.Context, text string) (vec []float32, err error) {
	start := time.Now()
	defer func() { metrics.ObserveModelCall(provider, "feature-extraction", start, err) }()

	raw, err := c.post(ctx, embedRequest{Inputs: text, Options: requestOptions{WaitForModel: true}})
	if err != nil {
		return nil, err
	}

	var flat []float32
	if err := json.Unmarshal(raw, &flat); err == nil {
		if len(flat) == 0 {
			return nil, fmt.Errorf("huggingface embed: %w", inference.ErrEmptyResponse)
		}
		return flat, nil
	}
	var nested [][]float32
	if err := json.Unmarshal(raw, &nested); err != nil {
		return nil, fmt.Errorf("huggingface embed parse: %w", err)
	}
	return meanPool(nested)
}

func meanPool(rows [][]float32) ([]float32, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("huggingface embed: %w", inference.ErrEmptyResponse)
	}
	if len(rows) == 1 {
		return rows[0], nil
	}
	dim := len(rows[0])
	sum := make([]float64, dim)
	for _, r := range rows {
		if len(r) != dim {
			return nil, fmt.Errorf("huggingface embed: ragged token vectors (%d vs %d)", len(r), dim)
		}
		for i, v := range r {
			sum[i] += float64(v)
		}
	}
	out := make([]float32, dim)
	for i := range sum {
		out[i] = float32(sum[i] / float64(len(rows)))
	}
	return out, nil
}

type apiError struct {
	Error string `json:"error"`
}

func (c *Client) post(ctx context.Context, body any) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/models/"+c.model, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return nil, fmt.Errorf("huggingface %s timeout: %w", c.model, err)
		}
		return nil, fmt.Errorf("huggingface %s: %w", c.model, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("huggingface %s: read body: %w", c.model, err)
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("huggingface %s: http status %d: %s", c.model, resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("huggingface %s: http status %d", c.model, resp.StatusCode)
	}
	return raw, nil
}

var (
	_ inference.Summarizer = (*Client)(nil)
	_ inference.Classifier = (*Client)(nil)
	_ inference.Embedder   = (*Client)(nil)
)

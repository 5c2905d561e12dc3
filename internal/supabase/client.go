// Package supabase is a minimal PostgREST client for a hosted Supabase project.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrMissingCredentials is returned by NewClient when the URL or key is empty.
var ErrMissingCredentials = errors.New("supabase URL and key must be set")

// StatusError reports a non-success PostgREST response.
type StatusError struct {
	Op         string
	Table      string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("supabase %s %s: http status %d: %s", e.Op, e.Table, e.StatusCode, e.Body)
}

// Client talks to the PostgREST endpoint of a Supabase project.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient constructs a Client. timeout <= 0 uses 30s.
func NewClient(baseURL, apiKey string, timeout time.Duration) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" || strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingCredentials
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Select runs GET /rest/v1/<table> with the given query and decodes the JSON array into out.
// A missing "select" parameter defaults to "*".
func (c *Client) Select(ctx context.Context, table string, query url.Values, out any) error {
	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	if q.Get("select") == "" {
		q.Set("select", "*")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.tableURL(table)+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("supabase select %s: %w", table, err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("supabase select %s: %w", table, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Op: "select", Table: table, StatusCode: resp.StatusCode, Body: readSnippet(resp.Body)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("supabase select %s: decode: %w", table, err)
	}
	return nil
}

// Insert POSTs rows to /rest/v1/<table> in one request and decodes the created
// representation into out. Only 201 Created counts as success.
func (c *Client) Insert(ctx context.Context, table string, rows any, out any) error {
	payload, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("supabase insert %s: encode: %w", table, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tableURL(table), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("supabase insert %s: %w", table, err)
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("supabase insert %s: %w", table, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return &StatusError{Op: "insert", Table: table, StatusCode: resp.StatusCode, Body: readSnippet(resp.Body)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("supabase insert %s: decode: %w", table, err)
	}
	return nil
}

// Probe selects a single row from table to verify connectivity and credentials.
func (c *Client) Probe(ctx context.Context, table string) error {
	var rows []json.RawMessage
	return c.Select(ctx, table, url.Values{"limit": {"1"}}, &rows)
}

func (c *Client) tableURL(table string) string {
	return c.baseURL + "/rest/v1/" + url.PathEscape(table)
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
}

func readSnippet(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 512))
	return strings.TrimSpace(string(b))
}

// Eq formats a PostgREST equality filter value.
func Eq(v string) string {
	return "eq." + v
}

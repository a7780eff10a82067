// Package ats provides the HTTP client for the applicant-tracking backend.
// The importer treats the backend as an external collaborator: it fetches
// the job list from it and hands committed candidate batches to it; the
// backend's own validation and storage are out of scope here.
package ats

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hirestack/ats-import/internal/importer"
)

// Client is a thin JSON client over the backend REST API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a Client for the given API root. A zero timeout
// disables the per-request deadline.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

// ListJobs fetches the job list the commit flow resolves titles and
// assignees against.
func (c *Client) ListJobs(ctx context.Context) ([]importer.Job, error) {
	body, err := c.do(ctx, http.MethodGet, "/jobs", nil)
	if err != nil {
		return nil, err
	}

	var jobs []importer.Job
	if err := json.Unmarshal(body, &jobs); err != nil {
		return nil, fmt.Errorf("decode jobs: %w", err)
	}
	return jobs, nil
}

// bulkCreateResponse is the backend's reply to a bulk-create call.
type bulkCreateResponse struct {
	Created int `json:"created"`
}

// BulkCreateCandidates hands a committed batch to the backend and returns
// the number of candidates it created.
func (c *Client) BulkCreateCandidates(ctx context.Context, records []importer.ImportRecord) (int, error) {
	payload, err := json.Marshal(map[string]any{"candidates": records})
	if err != nil {
		return 0, fmt.Errorf("encode batch: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, "/candidates/bulk", payload)
	if err != nil {
		return 0, err
	}

	var resp bulkCreateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("decode bulk create response: %w", err)
	}
	return resp.Created, nil
}

// do executes one JSON request and returns the response body.
// Non-2xx statuses are errors; the body is included truncated for context.
func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, truncate(data, 200))
	}
	return data, nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}

package shortform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// API defines the processing operations the orchestrator depends on.
// This interface is implemented by *Client and can be faked in tests.
type API interface {
	StartProcessing(ctx context.Context, rawURL string, opts ProcessOptions) (*ProcessResult, error)
	FetchJob(ctx context.Context, jobID string) (*Job, error)
	FindJobByURL(ctx context.Context, normalizedURL string) (*Job, error)
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// ErrNotFound is returned when the API reports HTTP 404 for a lookup.
var ErrNotFound = errors.New("not found")

// Client talks to the short-form processing HTTP API.
type Client struct {
	baseURL   *url.URL
	token     string
	http      *http.Client
	userAgent string
}

const (
	defaultUserAgent = "clipnote/0.1"
	requestTimeout   = 15 * time.Second
)

// NewClient builds a Client for the given base URL. The bearer token is
// required: the API rejects anonymous calls, so a missing credential is a
// construction-time precondition failure rather than a silent runtime 401.
func NewClient(baseURL, token string) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("api token is required (set CLIPNOTE_API_TOKEN or api_token in config)")
	}
	return &Client{
		baseURL: base,
		token:   token,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// StartProcessing submits a URL for extraction and returns the job handle
// to poll. The returned jobId is the sole key for all later status calls.
func (c *Client) StartProcessing(ctx context.Context, rawURL string, opts ProcessOptions) (*ProcessResult, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	body := struct {
		URL     string `json:"url"`
		Options struct {
			IncludeTranscript bool `json:"includeTranscript"`
		} `json:"options"`
	}{URL: rawURL}
	body.Options.IncludeTranscript = opts.IncludeTranscript

	var payload struct {
		Success bool `json:"success"`
		ProcessResult
		Error *APIError `json:"error,omitempty"`
	}
	rel := &url.URL{Path: "/short-form/process"}
	if err := c.doURL(ctx, http.MethodPost, rel, body, &payload); err != nil {
		return nil, err
	}
	if !payload.Success {
		if payload.Error != nil {
			return nil, payload.Error
		}
		return nil, fmt.Errorf("process request rejected without error detail")
	}
	if payload.JobID == "" {
		return nil, fmt.Errorf("process response missing jobId")
	}
	result := payload.ProcessResult
	return &result, nil
}

// FetchJob retrieves the current state of a known job.
func (c *Client) FetchJob(ctx context.Context, jobID string) (*Job, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(jobID) == "" {
		return nil, fmt.Errorf("job id required")
	}
	values := url.Values{}
	values.Set("jobId", jobID)
	job, err := c.fetchStatus(ctx, values)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("job %s: %w", jobID, err)
		}
		return nil, err
	}
	return job, nil
}

// FindJobByURL looks up an existing job by its normalized URL. A 404 is a
// normal outcome meaning no job exists and resolves to (nil, nil); only
// genuine failures produce an error.
func (c *Client) FindJobByURL(ctx context.Context, normalizedURL string) (*Job, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(normalizedURL) == "" {
		return nil, fmt.Errorf("normalized url required")
	}
	values := url.Values{}
	values.Set("normalizedUrl", normalizedURL)
	job, err := c.fetchStatus(ctx, values)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

func (c *Client) fetchStatus(ctx context.Context, values url.Values) (*Job, error) {
	var payload struct {
		Success bool `json:"success"`
		Job
	}
	rel := &url.URL{Path: "/short-form/status", RawQuery: values.Encode()}
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	if !payload.Success {
		// A failed envelope shares the "error" key with a failed job, so
		// the decoded Job.Error carries the detail either way.
		if payload.Job.Error != nil {
			return nil, payload.Job.Error
		}
		return nil, fmt.Errorf("status request rejected without error detail")
	}
	job := payload.Job
	return &job, nil
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode >= 400 {
		if apiErr := decodeAPIError(resp); apiErr != nil {
			return apiErr
		}
		return fmt.Errorf("api %s returned status %d", rel.Path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeAPIError attempts to read a structured error envelope from a
// non-2xx response. Returns nil when the body is not in envelope form.
func decodeAPIError(resp *http.Response) *APIError {
	var envelope struct {
		Success bool      `json:"success"`
		Error   *APIError `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil
	}
	if envelope.Error == nil || envelope.Error.Message == "" {
		return nil
	}
	return envelope.Error
}

func parseBaseURL(base string) (*url.URL, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		return nil, fmt.Errorf("api base url is required")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base url %q: %w", base, err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

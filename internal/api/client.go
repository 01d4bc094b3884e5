// Package api is the HTTP client for the portfolio backend's REST/JSON API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/Veraticus/folio/internal/common"
)

// DefaultPollTTL is how long ticker and broker-status responses are reused.
const DefaultPollTTL = 30 * time.Second

// Options configures a Client.
type Options struct {
	HTTPClient *http.Client
	BaseURL    string
	Timeout    time.Duration
	PollTTL    time.Duration
	RateLimit  float64
	Retries    int
}

// Client talks to the backend. Writes are never retried; idempotent reads are.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	polls   *cache.Cache
	baseURL string
	retry   common.RetryOptions
}

// New creates a client for the backend at opts.BaseURL.
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("%w: base URL", common.ErrMissingConfig)
	}
	if opts.HTTPClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		opts.HTTPClient = &http.Client{Timeout: timeout}
	}
	if opts.PollTTL <= 0 {
		opts.PollTTL = DefaultPollTTL
	}

	limit := rate.Inf
	burst := 1
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
		burst = max(1, int(opts.RateLimit))
	}

	return &Client{
		http:    opts.HTTPClient,
		limiter: rate.NewLimiter(limit, burst),
		polls:   cache.New(opts.PollTTL, 2*opts.PollTTL),
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		retry: common.RetryOptions{
			MaxAttempts:  max(1, opts.Retries),
			InitialDelay: 200 * time.Millisecond,
			MaxDelay:     5 * time.Second,
		},
	}, nil
}

// APIError is a non-2xx response. Detail is the backend's human-readable
// message and is meant to be shown to the user verbatim.
type APIError struct {
	Method     string
	Path       string
	Detail     string
	StatusCode int
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("%s %s failed with status %d", e.Method, e.Path, e.StatusCode)
}

// DetailOf returns the backend-provided detail of err, or fallback when err
// carries none.
func DetailOf(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

// get performs an idempotent read with retry on transient failures.
func (c *Client) get(ctx context.Context, path string, out any) error {
	return common.WithRetry(ctx, func() error {
		return c.do(ctx, http.MethodGet, path, nil, out)
	}, c.retry)
}

// send performs a write. Cached poll responses are dropped since the write may change them.
func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	c.polls.Flush()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	return c.do(ctx, method, path, reader, out)
}

// upload posts a single file as multipart form data under the "file" field.
func (c *Client) upload(ctx context.Context, path, fileName string, content io.Reader, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return fmt.Errorf("failed to read %s: %w", fileName, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finish multipart body: %w", err)
	}

	return c.doRequest(ctx, http.MethodPost, path, &buf, writer.FormDataContentType(), out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	return c.doRequest(ctx, method, path, body, "application/json", out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}

	slog.Debug("Backend request", "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return &common.RetryableError{
			Err:       fmt.Errorf("%w: %s %s: %v", common.ErrBackendUnreachable, method, path, err),
			Retryable: ctx.Err() == nil,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := decodeError(resp, method, path)
		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("%w: %w", common.ErrRateLimit, apiErr)
		case resp.StatusCode >= 500:
			return &common.RetryableError{Err: apiErr, Retryable: true}
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

// decodeError extracts the "detail" field of an error body. Non-string
// details (validation error lists) are returned as compact JSON; a body that
// is not JSON at all is used as-is.
func decodeError(resp *http.Response, method, path string) *APIError {
	apiErr := &APIError{Method: method, Path: path, StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(bytes.TrimSpace(raw)) == 0 {
		return apiErr
	}

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(raw, &payload) != nil || len(payload.Detail) == 0 {
		apiErr.Detail = strings.TrimSpace(string(raw))
		return apiErr
	}

	var text string
	if json.Unmarshal(payload.Detail, &text) == nil {
		apiErr.Detail = text
		return apiErr
	}
	apiErr.Detail = string(payload.Detail)
	return apiErr
}

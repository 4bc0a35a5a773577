package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client issues JSON requests against the companion backend. It never
// retries; a zero timeout waits indefinitely.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	log        *zap.Logger
}

// NewClient creates a new API client
func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Options describes a single request. Headers are merged over the JSON content type.
type Options struct {
	Method  string
	Headers map[string]string
	Body    any
}

// Error is returned for any non-2xx response
type Error struct {
	StatusCode int
	// Message is the server's "message" field, when the body carried one
	Message string
	Body    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error: %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error: %d", e.StatusCode)
}

// Request sends the request and decodes the JSON response into out (which may be nil).
// Transport failures are returned wrapped.
func (c *Client) Request(ctx context.Context, endpoint string, opts Options, out any) error {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var reqBody io.Reader
	if opts.Body != nil {
		jsonBody, err := json.Marshal(opts.Body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.log.Warn("api request failed", zap.String("endpoint", endpoint), zap.Error(err))
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{StatusCode: resp.StatusCode, Body: string(respBody)}
		var payload struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(respBody, &payload) == nil {
			apiErr.Message = payload.Message
		}
		c.log.Warn("api request rejected",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode))
		return apiErr
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

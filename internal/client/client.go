// ABOUTME: HTTP client for the AtlanticPhoto API
// ABOUTME: Wraps API calls with typed network/API errors for CLI and TUI usage

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout bounds every request when no timeout is configured
const DefaultTimeout = 30 * time.Second

// RequestIDHeader carries a per-request correlation ID
const RequestIDHeader = "X-Request-ID"

// Client is the API client for the AtlanticPhoto backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithTimeout overrides the HTTP client timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// New creates a new API client with the given base URL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HealthResponse represents the /api/healthchecker endpoint response
type HealthResponse struct {
	Message string `json:"message"`
}

// Health calls GET /api/healthchecker
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	const op = "health"

	req, err := c.newRequest(ctx, http.MethodGet, "/api/healthchecker", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, op, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, c.handleErrorResponse(op, resp)
	}

	var health HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, fmt.Errorf("invalid response from backend: %w", err)
	}

	return &health, nil
}

// newRequest builds a request against the base URL and stamps a request ID
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(RequestIDHeader, uuid.NewString())
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// do sends the request and converts transport failures into NetworkError
func (c *Client) do(ctx context.Context, op string, req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.handleRequestError(ctx, op, err)
	}
	return resp, nil
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, op string, err error) error {
	netErr := &NetworkError{Op: op, URL: c.baseURL, Err: err}
	switch ctx.Err() {
	case context.Canceled:
		netErr.Reason = "request canceled"
	case context.DeadlineExceeded:
		netErr.Reason = "request timed out"
	default:
		netErr.Reason = fmt.Sprintf("cannot connect to backend at %s", c.baseURL)
	}
	return netErr
}

// handleErrorResponse parses API error responses
func (c *Client) handleErrorResponse(op string, resp *http.Response) error {
	apiErr := &APIError{Op: op, StatusCode: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err == nil {
		apiErr.Detail = parseDetail(data)
	}
	if apiErr.Detail == "" {
		apiErr.Detail = fmt.Sprintf("backend returned status %d", resp.StatusCode)
	}
	return apiErr
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

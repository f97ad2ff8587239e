// ABOUTME: Error types returned by the API client
// ABOUTME: Separates transport failures from structured backend rejections

package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// NetworkError means the request never produced an HTTP response
type NetworkError struct {
	Op     string
	URL    string
	Reason string
	Err    error
}

func (e *NetworkError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "network error"
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, reason)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, reason, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// APIError means the backend answered with a non-2xx status
type APIError struct {
	Op         string
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: backend error (%d): %s", e.Op, e.StatusCode, e.Detail)
}

// IsNetworkError reports whether err wraps a NetworkError
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// AsAPIError returns the wrapped APIError, if any
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// errorBody is the FastAPI error envelope. Detail is either a string
// or a list of validation errors.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type validationItem struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// parseDetail extracts a human message from an error body
func parseDetail(data []byte) string {
	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil || len(body.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(body.Detail, &s); err == nil {
		return s
	}

	var items []validationItem
	if err := json.Unmarshal(body.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}

	return strings.TrimSpace(string(body.Detail))
}

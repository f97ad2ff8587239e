// ABOUTME: Authentication endpoints of the AtlanticPhoto API
// ABOUTME: Signup (JSON), login (form-encoded), logout and token refresh (bearer)

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// SignupRequest is the JSON body for POST /api/auth/signup
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenPair is returned by login and refresh
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// Complete reports whether both tokens are present
func (t *TokenPair) Complete() bool {
	return t != nil && t.AccessToken != "" && t.RefreshToken != ""
}

// Signup calls POST /api/auth/signup. Any 2xx body is accepted.
func (c *Client) Signup(ctx context.Context, input *SignupRequest) error {
	const op = "signup"

	body, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("failed to marshal input: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/auth/signup", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(ctx, op, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return c.handleErrorResponse(op, resp)
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

// Login calls POST /api/auth/login with form-encoded fields.
// A 2xx body that is not a token pair yields an empty TokenPair, not an error.
func (c *Client) Login(ctx context.Context, form url.Values) (*TokenPair, error) {
	const op = "login"

	req, err := c.newRequest(ctx, http.MethodPost, "/api/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.do(ctx, op, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, c.handleErrorResponse(op, resp)
	}

	var tokens TokenPair
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return &TokenPair{}, nil
	}
	return &tokens, nil
}

// Logout calls POST /api/auth/logout bearing the access token
func (c *Client) Logout(ctx context.Context, accessToken string) error {
	const op = "logout"

	req, err := c.newRequest(ctx, http.MethodPost, "/api/auth/logout", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.do(ctx, op, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return c.handleErrorResponse(op, resp)
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

// Refresh calls GET /api/auth/refresh_token bearing the refresh token
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	const op = "refresh"

	req, err := c.newRequest(ctx, http.MethodGet, "/api/auth/refresh_token", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+refreshToken)

	resp, err := c.do(ctx, op, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, c.handleErrorResponse(op, resp)
	}

	var tokens TokenPair
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return nil, fmt.Errorf("invalid response from backend: %w", err)
	}
	return &tokens, nil
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"finboard/internal/aggregation"
	"finboard/internal/handlers"
)

// apiClient talks to the finboard API on behalf of the CLI.
type apiClient struct {
	base  string
	token string
	http  *http.Client
}

func newAPIClient(base, token string) *apiClient {
	return &apiClient{
		base:  strings.TrimRight(base, "/"),
		token: token,
		http:  &http.Client{Timeout: 30 * time.Second},
	}
}

// requestError is a non-2xx answer from the API.
type requestError struct {
	Status  int
	Code    string
	Message string
}

func (e *requestError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

func (c *apiClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	target := c.base + "/api/v1" + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach %s: %w", c.base, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reqErr := &requestError{Status: resp.StatusCode}
		var payload handlers.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&payload) == nil {
			reqErr.Code = payload.Error.Code
			reqErr.Message = payload.Error.Message
		}
		return reqErr
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *apiClient) Login(ctx context.Context, email, password string) (*handlers.AuthResponse, error) {
	var resp handlers.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", nil,
		handlers.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *apiClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}

// Summary fetches the dashboard figures. Empty bounds leave the server
// default, the current month.
func (c *apiClient) Summary(ctx context.Context, from, to string) (*aggregation.Summary, error) {
	query := url.Values{}
	if from != "" {
		query.Set("from", from)
	}
	if to != "" {
		query.Set("to", to)
	}
	var summary aggregation.Summary
	if err := c.do(ctx, http.MethodGet, "/dashboard/summary", query, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *apiClient) Returns(ctx context.Context) ([]aggregation.NetReturn, error) {
	var resp struct {
		Returns []aggregation.NetReturn `json:"returns"`
	}
	if err := c.do(ctx, http.MethodGet, "/dashboard/returns", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Returns, nil
}

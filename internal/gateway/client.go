// Package gateway is the HTTP client for the finance REST backend.
package gateway

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

	govalidator "github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	apperrors "finboard/internal/errors"
	"finboard/internal/logger"
	"finboard/internal/session"
	"finboard/internal/validator"
)

const (
	DefaultTimeout   = 15 * time.Second
	DefaultRateLimit = 10 // requests per second

	maxErrorBody = 4 << 10
)

// UnauthorizedHook runs when the backend rejects a session's token.
type UnauthorizedHook func(ctx context.Context)

// Client talks to the backend on behalf of the session found in each call's
// context.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	limiter        *rate.Limiter
	logger         *zap.SugaredLogger
	validate       *govalidator.Validate
	onUnauthorized UnauthorizedHook
}

// Option configures the client
type Option func(*Client)

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) Option {
	return func(c *Client) {
		if requestsPerSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
		}
	}
}

// WithLogger sets the logger
func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithUnauthorizedHook sets the session teardown run on a 401.
func WithUnauthorizedHook(hook UnauthorizedHook) Option {
	return func(c *Client) {
		c.onUnauthorized = hook
	}
}

// NewClient creates a backend client rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter:  rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:   logger.Get(),
		validate: validator.New(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// OnUnauthorized sets the teardown hook after construction, for callers that
// are built on top of the client.
func (c *Client) OnUnauthorized(hook UnauthorizedHook) {
	c.onUnauthorized = hook
}

// APIError is a non-2xx answer from the backend.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("backend error: %s (status: %d, endpoint: %s)", msg, e.StatusCode, e.Endpoint)
}

// Unauthorized reports whether the backend rejected the credentials.
func (e *APIError) Unauthorized() bool { return e.StatusCode == http.StatusUnauthorized }

// ErrMalformedResponse marks a 2xx answer that failed boundary checks.
var ErrMalformedResponse = errors.New("malformed backend response")

type request struct {
	method string
	path   string
	body   any
	out    any
	auth   bool
}

// create issues an authenticated POST.
func (c *Client) create(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, request{method: http.MethodPost, path: path, body: body, out: out, auth: true})
}

// read issues an authenticated GET.
func (c *Client) read(ctx context.Context, path string, out any) error {
	return c.do(ctx, request{method: http.MethodGet, path: path, out: out, auth: true})
}

// update issues an authenticated PUT.
func (c *Client) update(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, request{method: http.MethodPut, path: path, body: body, out: out, auth: true})
}

// remove issues an authenticated DELETE.
func (c *Client) remove(ctx context.Context, path string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: path, auth: true})
}

// public issues an unauthenticated POST.
func (c *Client) public(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, request{method: http.MethodPost, path: path, body: body, out: out})
}

func (c *Client) do(ctx context.Context, r request) error {
	var token string
	if r.auth {
		s, ok := session.FromContext(ctx)
		if !ok || !s.Authenticated() {
			return apperrors.ErrUnauthorized
		}
		token = s.Token
	}

	var payload io.Reader
	if r.body != nil {
		if err := c.validate.Struct(r.body); err != nil {
			return apperrors.Wrap(apperrors.WithMessage(apperrors.ErrInvalidInput, validator.Describe(err)), err)
		}
		data, err := json.Marshal(r.body)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("encode request: %w", err))
		}
		payload = bytes.NewReader(data)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return apperrors.Wrap(apperrors.ErrBackendUnavailable, fmt.Errorf("rate limit wait: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, payload)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warnw("backend request failed", "method", r.method, "path", r.path, "error", err)
		return apperrors.Wrap(apperrors.ErrBackendUnavailable, fmt.Errorf("%s %s: %w", r.method, r.path, err))
	}
	defer resp.Body.Close()

	c.logger.Debugw("backend request",
		"method", r.method,
		"path", r.path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.Body),
			Endpoint:   r.path,
		}
		if apiErr.Unauthorized() && r.auth && c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
		return apiErr
	}

	if r.out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(r.out); err != nil {
		return apperrors.Wrap(apperrors.ErrBackendUnavailable, fmt.Errorf("%w: decode %s: %v", ErrMalformedResponse, r.path, err))
	}
	return nil
}

// errorMessage extracts the backend's message or error field, if any.
func errorMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}

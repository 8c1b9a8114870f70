// Package apiclient talks to the visit-tracker HTTP API. It provides the
// remote visit.Store and the token-backed authenticator used by visitctl.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/BruksfildServices01/visit-tracker/internal/httperr"
	"github.com/BruksfildServices01/visit-tracker/internal/logging"
)

const requestTimeout = 15 * time.Second

// APIError is a non-2xx response. It unwraps to the business error named
// by Code, so errors.Is matches the server-side sentinels.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api: %d %s", e.Status, e.Code)
}

func (e *APIError) Unwrap() error {
	if e.Code == "" {
		return nil
	}
	return httperr.ErrBusiness(e.Code)
}

// Client is the shared HTTP plumbing. Requests marked authed carry the
// stored token; a 401 on one of them ends the local session.
type Client struct {
	baseURL string
	http    *http.Client
	stream  *http.Client
	tokens  TokenStore
	logger  logging.Logger

	mu             sync.Mutex
	onUnauthorized func()
}

func New(baseURL string, tokens TokenStore, logger logging.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: requestTimeout},
		stream:  &http.Client{},
		tokens:  tokens,
		logger:  logger,
	}
}

func (c *Client) setUnauthorizedHook(fn func()) {
	c.mu.Lock()
	c.onUnauthorized = fn
	c.mu.Unlock()
}

func (c *Client) unauthorized() {
	c.mu.Lock()
	fn := c.onUnauthorized
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, in any, authed bool) (*http.Request, error) {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if authed {
		s, err := c.tokens.Load()
		if err != nil {
			return nil, err
		}
		if s == nil {
			return nil, &APIError{Status: http.StatusUnauthorized, Code: "unauthorized", Message: "Sign in required."}
		}
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}
	return req, nil
}

// do sends one JSON request and decodes a 2xx body into out when non-nil.
func (c *Client) do(ctx context.Context, method, path string, in, out any, authed bool) error {
	req, err := c.newRequest(ctx, method, path, in, authed)
	if err != nil {
		return err
	}

	c.logger.Debug(ctx, "api request", "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return c.fail(resp, authed)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// fail turns an error response into an APIError.
func (c *Client) fail(resp *http.Response, authed bool) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var body httperr.HTTPError
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if json.Unmarshal(raw, &body) == nil {
		apiErr.Code = body.Code
		apiErr.Message = body.Message
	}
	if apiErr.Code == "" {
		apiErr.Code = strings.ReplaceAll(strings.ToLower(http.StatusText(resp.StatusCode)), " ", "_")
	}

	if authed && resp.StatusCode == http.StatusUnauthorized {
		c.unauthorized()
	}
	return apiErr
}

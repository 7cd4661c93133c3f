// Package backend is the shared HTTP client for the LuxGrid API. It owns the
// cross-cutting request policy: bearer-token attachment, per-endpoint
// notification decisions, and hard session teardown on 401. Domain stores
// build on it and never talk to net/http directly.
package backend

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

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/luxgrid/luxgrid-admin/internal/logging"
	"github.com/luxgrid/luxgrid-admin/internal/notify"
	"github.com/luxgrid/luxgrid-admin/internal/policy"
	"github.com/luxgrid/luxgrid-admin/internal/session"
	"github.com/luxgrid/luxgrid-admin/internal/wire"
)

// ErrUnauthorized is returned after a 401 response has triggered session
// teardown. Callers must not retry with the same session.
var ErrUnauthorized = errors.New("session invalidated")

// genericErrorMessage is the last-resort notification text when a failed
// response carries no usable message.
const genericErrorMessage = "Something went wrong. Please try again."

const maxResponseBytes = 8 << 20

// authExemptPaths are endpoints that by definition precede authentication;
// no bearer token is ever attached to them, even when a session exists.
var authExemptPaths = map[string]struct{}{
	"/login":                {},
	"/auth/login":           {},
	"/users/login":          {},
	"/signup":               {},
	"/auth/signup":          {},
	"/confirm":              {},
	"/auth/confirm":         {},
	"/forgot-password":      {},
	"/auth/forgot-password": {},
}

// Config configures a Client.
type Config struct {
	BaseURL     string
	StagePrefix string
	Timeout     time.Duration
	RatePerSec  float64
	RateBurst   int
}

// Client is the authenticated HTTP client. One instance is shared by every
// store; independent instances are fine in tests.
type Client struct {
	http     *http.Client
	baseURL  string
	stage    string
	sessions session.Provider
	notifier notify.Notifier
	policy   *policy.Table
	limiter  *rate.Limiter
	// onUnauthorized is the 401 teardown hook: the CLI analog of a hard
	// redirect to the login entry point.
	onUnauthorized func()
}

// New creates a Client. sessions supplies bearer tokens, notifier receives
// outcome notifications per the policy table, and onUnauthorized runs exactly
// once per 401 response, after the cached session is cleared.
func New(cfg Config, sessions session.Provider, table *policy.Table, notifier notify.Notifier, onUnauthorized func()) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	if table == nil {
		table = policy.Default()
	}
	if notifier == nil {
		notifier = notify.Discard{}
	}
	if onUnauthorized == nil {
		onUnauthorized = func() {}
	}

	var limiter *rate.Limiter
	if cfg.RatePerSec > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSec), burst)
	}

	return &Client{
		http:           &http.Client{Timeout: timeout},
		baseURL:        strings.TrimSuffix(cfg.BaseURL, "/"),
		stage:          cfg.StagePrefix,
		sessions:       sessions,
		notifier:       notifier,
		policy:         table,
		limiter:        limiter,
		onUnauthorized: onUnauthorized,
	}
}

// GetJSON issues a GET and decodes the envelope into out.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, "", out)
}

// PostJSON issues a POST with a JSON body and decodes the envelope into out.
func (c *Client) PostJSON(ctx context.Context, path string, body any, out any) error {
	reader, err := jsonBody(body)
	if err != nil {
		return err
	}
	return c.Do(ctx, http.MethodPost, path, reader, "application/json", out)
}

// PatchJSON issues a PATCH with a JSON body and decodes the envelope into out.
func (c *Client) PatchJSON(ctx context.Context, path string, body any, out any) error {
	reader, err := jsonBody(body)
	if err != nil {
		return err
	}
	return c.Do(ctx, http.MethodPatch, path, reader, "application/json", out)
}

// PutJSON issues a PUT with a JSON body and decodes the envelope into out.
func (c *Client) PutJSON(ctx context.Context, path string, body any, out any) error {
	reader, err := jsonBody(body)
	if err != nil {
		return err
	}
	return c.Do(ctx, http.MethodPut, path, reader, "application/json", out)
}

// Delete issues a DELETE and decodes the envelope into out.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, "", out)
}

// Do executes one request through the full interceptor chain: rate limit,
// request ID, token attachment, then response policy. out may be nil when the
// caller does not care about the payload.
func (c *Client) Do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	logger := logging.NewLogger(ctx)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if contentType == "" && body != nil {
		contentType = "application/json"
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	c.attachToken(ctx, req, path)

	logger.LogDebugf("backend_request", "%s %s", method, path)
	resp, err := c.http.Do(req)
	if err != nil {
		if decision := c.policy.Resolve(path, method); decision.ShowError {
			c.notifier.Notify(genericErrorMessage, notify.Error)
		}
		logger.LogError("backend_request", err)
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	return c.processResponse(logger, method, path, resp.StatusCode, raw, out)
}

// processResponse is the response/error interceptor.
func (c *Client) processResponse(logger *logging.Logger, method, path string, status int, raw []byte, out any) error {
	if status == http.StatusUnauthorized {
		// Hard session invalidation: bypasses the notification policy.
		logger.LogWarnf("backend_request", "401 on %s %s, tearing down session", method, path)
		c.sessions.ClearCache()
		c.onUnauthorized()
		return ErrUnauthorized
	}

	if status >= 400 {
		if decision := c.policy.Resolve(path, method); decision.ShowError {
			c.notifier.Notify(errorMessage(raw), notify.Error)
		}
		logger.LogErrorf("backend_request", "%s %s returned status %d", method, path, status)
		return fmt.Errorf("request failed with status %d", status)
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	if decision := c.policy.Resolve(path, method); decision.ShowSuccess {
		var meta wire.Meta
		if err := json.Unmarshal(raw, &meta); err == nil && meta.Message != "" {
			c.notifier.Notify(meta.Message, notify.Success)
		}
	}
	return nil
}

// attachToken adds the bearer token unless the target path precedes
// authentication. A failed session fetch never fails the request; the server
// is the authority on rejecting unauthenticated calls.
func (c *Client) attachToken(ctx context.Context, req *http.Request, path string) {
	if c.isAuthExempt(path) {
		return
	}

	sess, err := c.sessions.Session(ctx)
	if err != nil {
		return
	}
	if token := sess.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (c *Client) isAuthExempt(path string) bool {
	cleaned := policy.Clean(path)
	if c.stage != "" && strings.HasPrefix(cleaned, c.stage) {
		// Strip the stage only on a segment boundary so a prefix like /dev
		// leaves /development/... alone.
		rest := cleaned[len(c.stage):]
		if rest == "" || strings.HasPrefix(rest, "/") {
			cleaned = rest
		}
	}
	_, exempt := authExemptPaths[cleaned]
	return exempt
}

// errorMessage extracts the user-facing reason from a failed response body:
// structured error field first, envelope message second, generic text last.
func errorMessage(raw []byte) string {
	var body wire.ErrorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return genericErrorMessage
}

func jsonBody(body any) (io.Reader, error) {
	if body == nil {
		return nil, nil
	}
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}
	return bytes.NewReader(encoded), nil
}

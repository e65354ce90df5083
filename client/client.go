// Package client implements the authenticated API client for the GasGuard
// backend. It owns the token lifecycle: every request carries the stored
// access token, a 401 triggers at most one transparent refresh-and-retry,
// and the credential pair lives in an injected durable store.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/gasguard/gasguard-go/credentials"
)

// DefaultTimeout bounds every request. Only a 401 triggers the refresh flow;
// a timed-out request fails without touching stored credentials.
const DefaultTimeout = 30 * time.Second

// Client mediates all network calls to the backend, keeping callers ignorant
// of the token lifecycle. Construct one per process with New and share it;
// all methods are safe for concurrent use.
type Client struct {
	baseURL string
	store   credentials.Store
	httpc   *http.Client
	logger  zerolog.Logger
	nowTime func() time.Time // injectable for testing

	// refreshLock serializes concurrent refresh attempts: requests that
	// observe a 401 while a refresh is in flight wait here and reuse its
	// result instead of calling /auth/refresh themselves.
	refreshLock sync.Mutex
}

// Option modifies a Client during construction.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (primarily for testing
// and custom transports).
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		c.httpc = httpc
	}
}

// WithTimeout overrides DefaultTimeout on the underlying HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpc.Timeout = d
	}
}

// WithLogger attaches a zerolog logger. Requests are traced at debug level.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithNowTime sets the now time function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) Option {
	return func(c *Client) {
		c.nowTime = nowFunc
	}
}

// New initializes a Client against baseURL with the given credential store.
func New(baseURL string, store credentials.Store, options ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("[client.New] baseURL is required")
	}
	if store == nil {
		return nil, errors.New("[client.New] credentials store is required")
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		store:   store,
		httpc:   &http.Client{Timeout: DefaultTimeout},
		logger:  zerolog.Nop(),
		nowTime: time.Now,
	}

	for _, opt := range options {
		opt(c)
	}

	return c, nil
}

// Authenticated reports whether a credential pair is stored and the access
// token's expiry claim, when readable, has not passed. The server's 401
// remains authoritative; this is a cheap local pre-check for callers that
// want to route to a login screen without a round trip.
func (c *Client) Authenticated() bool {
	creds, err := c.store.Get()
	if err != nil || creds.AccessToken == "" {
		return false
	}
	return !credentials.Expired(creds.AccessToken, c.nowTime())
}

// SessionExpiry returns the stored access token's expiry claim, if one is
// stored and readable.
func (c *Client) SessionExpiry() (time.Time, bool) {
	creds, err := c.store.Get()
	if err != nil {
		return time.Time{}, false
	}
	return credentials.ExpiresAt(creds.AccessToken)
}

// do runs one named operation: attach the stored access token when the
// operation requires auth, send, and on a 401 perform exactly one
// refresh-and-retry cycle before giving up. out receives the decoded
// envelope data on success.
func (c *Client) do(ctx context.Context, method, path string, body any, authed bool, out any) error {
	var token string
	if authed {
		creds, err := c.store.Get()
		if err != nil || creds.AccessToken == "" {
			return wrapKind(ErrNotAuthenticated, "no stored access token")
		}
		token = creds.AccessToken
	}

	env, status, err := c.send(ctx, method, path, body, token)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized && authed {
		newToken, refreshErr := c.refreshAccessToken(ctx, token)
		if refreshErr != nil {
			return refreshErr
		}

		env, status, err = c.send(ctx, method, path, body, newToken)
		if err != nil {
			return err
		}
		if status == http.StatusUnauthorized {
			// The retried request was rejected as well: the session is
			// gone and a second refresh would loop forever.
			if clearErr := c.store.Clear(); clearErr != nil {
				c.logger.Err(clearErr).Msg("Failed to clear credentials after exhausted retry")
			}
			return wrapKind(ErrSessionExpired, "access token rejected after refresh")
		}
	}

	return c.conclude(env, status, out)
}

// send performs a single HTTP exchange and decodes the response envelope.
// It returns a categorized error only for transport-level failures; HTTP
// error statuses are returned to the caller for classification.
func (c *Client) send(ctx context.Context, method, path string, body any, token string) (Envelope, int, error) {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return Envelope{}, 0, wrapKind(ErrUnknown, "encode request body: "+err.Error())
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return Envelope{}, 0, wrapKind(ErrUnknown, "build request: "+err.Error())
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.logger.Debug().Str("request_id", requestID).Str("method", method).Str("path", path).Err(err).Msg("request failed")
		return Envelope{}, 0, wrapKind(ErrNetworkUnavailable, err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Envelope{}, 0, wrapKind(ErrNetworkUnavailable, "read response: "+err.Error())
	}

	c.logger.Debug().Str("request_id", requestID).Str("method", method).Str("path", path).Int("status", resp.StatusCode).Msg("request completed")

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return Envelope{}, resp.StatusCode, wrapKind(ErrUnknown, "malformed response body")
		}
		// Error statuses may carry non-envelope bodies (proxies, gateways);
		// classification falls back to the status code alone.
	}
	return env, resp.StatusCode, nil
}

// refreshAccessToken exchanges the stored refresh token for a new access
// token. staleToken is the access token the caller just saw rejected: if the
// store already holds a different one, another request won the refresh race
// and its result is reused without hitting the refresh endpoint again.
// Any refresh failure clears the stored credential pair so the client never
// retries against known-invalid credentials.
func (c *Client) refreshAccessToken(ctx context.Context, staleToken string) (string, error) {
	c.refreshLock.Lock()
	defer c.refreshLock.Unlock()

	creds, err := c.store.Get()
	if err != nil {
		return "", wrapKind(ErrSessionExpired, "no stored credentials")
	}
	if creds.AccessToken != "" && creds.AccessToken != staleToken {
		return creds.AccessToken, nil
	}
	if creds.RefreshToken == "" {
		c.clearCredentials()
		return "", wrapKind(ErrSessionExpired, "no refresh token available")
	}

	env, status, err := c.send(ctx, http.MethodPost, refreshPath, map[string]string{"refreshToken": creds.RefreshToken}, "")
	if err != nil {
		c.clearCredentials()
		return "", wrapKind(ErrSessionExpired, "token refresh failed: "+err.Error())
	}
	if status == http.StatusUnauthorized || !env.OK() {
		c.clearCredentials()
		detail := env.Message
		if detail == "" {
			detail = "refresh token rejected"
		}
		return "", wrapKind(ErrSessionExpired, detail)
	}

	var result refreshResult
	if err := env.DecodeData(&result); err != nil || result.AccessToken == "" {
		c.clearCredentials()
		return "", wrapKind(ErrSessionExpired, "refresh response carried no access token")
	}

	creds.AccessToken = result.AccessToken
	if err := c.store.Set(creds); err != nil {
		return "", wrapKind(ErrUnknown, "persist refreshed token: "+err.Error())
	}

	c.logger.Debug().Msg("access token refreshed")
	return result.AccessToken, nil
}

func (c *Client) clearCredentials() {
	if err := c.store.Clear(); err != nil {
		c.logger.Err(err).Msg("Failed to clear stored credentials")
	}
}

// conclude classifies the final response of an operation and decodes its
// payload on success.
func (c *Client) conclude(env Envelope, status int, out any) error {
	switch {
	case status == http.StatusUnauthorized:
		// Only reachable for operations sent without a stored token
		// (login with bad credentials); authenticated 401s go through
		// the refresh flow in do.
		return wrapKind(ErrAuthenticationFailed, env.Message)
	case status == http.StatusNotFound:
		return wrapKind(ErrNotFound, env.Message)
	case status >= 500:
		detail := env.Message
		if detail == "" {
			detail = "server error"
		}
		return wrapKind(ErrServerRejected, detail)
	}

	if !env.OK() {
		return wrapKind(ErrServerRejected, env.Message)
	}

	if out != nil {
		if err := env.DecodeData(out); err != nil {
			return wrapKind(ErrUnknown, err.Error())
		}
	}
	return nil
}

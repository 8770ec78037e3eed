// ABOUTME: HTTP client for the CampusBot backend API
// ABOUTME: Owns the durable session credential and attaches it to every request

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"
)

// ErrNotAuthenticated is returned when the backend reports no valid
// session. Callers treat this as an expected outcome, not a failure.
var ErrNotAuthenticated = errors.New("not authenticated")

// Identity is the backend's view of the signed-in user.
type Identity struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Picture   string    `json:"picture"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// Credential is the durable session token adopted at handoff time.
// It is write-once: only CreateSession sets it and only Logout clears it.
type Credential struct {
	token string
}

// Client is the API client for the CampusBot backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	credential *Credential
}

// New creates a new API client with the given base URL. The cookie jar
// persists the server-set session cookie across requests for the
// lifetime of the process.
func New(baseURL string) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Jar:     jar,
		},
	}
}

// NewWithTimeout creates a client with an explicit request timeout.
func NewWithTimeout(baseURL string, timeout time.Duration) *Client {
	c := New(baseURL)
	c.httpClient.Timeout = timeout
	return c
}

// Authenticated reports whether a session credential has been adopted.
func (c *Client) Authenticated() bool {
	return c.credential != nil
}

// ErrorResponse represents an API error body
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// sessionResponse is the handoff endpoint's success body
type sessionResponse struct {
	User         Identity `json:"user"`
	SessionToken string   `json:"session_token"`
}

// CreateSession exchanges a one-time handoff token for a durable
// session via POST /api/auth/session. The token travels in the
// X-Session-ID header, never in the query or body. On success the
// returned session credential is adopted for all later requests.
// The exchange is never retried: the token is single-use.
func (c *Client) CreateSession(ctx context.Context, handoffToken string) (*Identity, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/auth/session", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Session-ID", handoffToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.handleErrorResponse(resp)
	}

	var session sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("invalid response from backend: %w", err)
	}

	c.credential = &Credential{token: session.SessionToken}
	return &session.User, nil
}

// CurrentUser probes the durable session via GET /api/auth/user.
// A 401 maps to ErrNotAuthenticated.
func (c *Client) CurrentUser(ctx context.Context) (*Identity, error) {
	var identity Identity
	if err := c.getJSON(ctx, "/api/auth/user", &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

// Logout invalidates the server-side session and clears the local
// credential. The local clear happens even when the backend call
// fails, so the caller is never stranded holding a dead credential.
func (c *Client) Logout(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/auth/logout", nil)
	if err != nil {
		return err
	}

	resp, reqErr := c.httpClient.Do(req)
	c.credential = nil
	if jar, jarErr := cookiejar.New(nil); jarErr == nil {
		c.httpClient.Jar = jar
	}
	if reqErr != nil {
		return c.handleRequestError(ctx, reqErr)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.handleErrorResponse(resp)
	}
	return nil
}

// newRequest builds a request with the session credential attached.
// Every outgoing call goes through here so the credential contract is
// visible at one place instead of implied by transport defaults.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.credential != nil {
		req.Header.Set("Authorization", "Bearer "+c.credential.token)
	}
	return req, nil
}

// getJSON issues a GET and decodes the response body into out
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return c.doJSON(ctx, req, out)
}

// postJSON issues a POST with a JSON body and decodes the response into out
func (c *Client) postJSON(ctx context.Context, path string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal input: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	return c.doJSON(ctx, req, out)
}

// putJSON issues a PUT with a JSON body and decodes the response into out
func (c *Client) putJSON(ctx context.Context, path string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal input: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPut, path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	return c.doJSON(ctx, req, out)
}

// delete issues a DELETE and discards any response body
func (c *Client) delete(ctx context.Context, path string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	return c.doJSON(ctx, req, nil)
}

// doJSON executes the request and decodes a JSON response into out when
// out is non-nil
func (c *Client) doJSON(ctx context.Context, req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.handleErrorResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// handleErrorResponse parses API error responses
func (c *Client) handleErrorResponse(resp *http.Response) error {
	if resp.StatusCode == http.StatusUnauthorized {
		return ErrNotAuthenticated
	}
	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Detail == "" {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
	return fmt.Errorf("backend error: %s", errResp.Detail)
}

// Package auth provides an HTTP client for the authentication service.
//
// The auth service lives at a separate base URL from the content API. It
// issues opaque session tokens on sign-in and validates previously issued
// tokens via a Bearer header. Every call is a single best-effort attempt:
// no retries, no caching, failures are reported upward unchanged.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"placard/internal/api"
)

// AuthAPI defines the interface for registration and session operations.
// This interface is implemented by *Client and can be used for testing.
type AuthAPI interface {
	Register(ctx context.Context, email, password string) (*Account, error)
	Login(ctx context.Context, email, password string) (string, error)
	CheckToken(ctx context.Context, token string) (*Account, error)
}

// Ensure Client implements AuthAPI at compile time.
var _ AuthAPI = (*Client)(nil)

// Account is the user record the auth service reports for a credential.
type Account struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// accountEnvelope mirrors the {data:{...}} wrapper on signup and token-check
// responses.
type accountEnvelope struct {
	Data Account `json:"data"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Client talks to the authentication HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultUserAgent = "placard/0.1"
	requestTimeout   = 10 * time.Second
)

// NewClient builds a Client for the given auth service base URL.
func NewClient(rawURL string) (*Client, error) {
	base, err := api.ParseBaseURL(rawURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// Register creates a new account. The session state does not change on
// success; the caller still has to sign in.
func (c *Client) Register(ctx context.Context, email, password string) (*Account, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload accountEnvelope
	body := credentials{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/signup", body, "", &payload); err != nil {
		return nil, err
	}
	return &payload.Data, nil
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	var payload tokenResponse
	body := credentials{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/signin", body, "", &payload); err != nil {
		return "", err
	}
	if strings.TrimSpace(payload.Token) == "" {
		return "", fmt.Errorf("signin response carried no token")
	}
	return payload.Token, nil
}

// CheckToken validates a previously issued token and reports the account it
// belongs to.
func (c *Client) CheckToken(ctx context.Context, token string) (*Account, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("token is empty")
	}
	var payload accountEnvelope
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, token, &payload); err != nil {
		return nil, err
	}
	return &payload.Data, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, bearer string, dest any) error {
	reqURL := c.baseURL.JoinPath(path)

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &api.StatusError{Path: path, Code: resp.StatusCode}
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

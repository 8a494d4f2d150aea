package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ContentAPI defines the interface for card and profile operations.
// This interface is implemented by *Client and can be used for testing.
type ContentAPI interface {
	ListCards(ctx context.Context) ([]Card, error)
	GetProfile(ctx context.Context) (*User, error)
	UpdateProfile(ctx context.Context, update ProfileUpdate) (*User, error)
	UpdateAvatar(ctx context.Context, update AvatarUpdate) (*User, error)
	CreateCard(ctx context.Context, card NewCard) (*Card, error)
	DeleteCard(ctx context.Context, id string) error
	LikeCard(ctx context.Context, id string) (*Card, error)
	UnlikeCard(ctx context.Context, id string) (*Card, error)
}

// Ensure Client implements ContentAPI at compile time.
var _ ContentAPI = (*Client)(nil)

// StatusError reports a non-2xx response from either remote service.
type StatusError struct {
	Path string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api %s returned status %d", e.Path, e.Code)
}

// Client talks to the content HTTP API.
type Client struct {
	baseURL       *url.URL
	http          *http.Client
	authorization string
	userAgent     string
}

const (
	defaultUserAgent = "placard/0.1"
	requestTimeout   = 10 * time.Second
)

// NewClient builds a Client for the given base URL. The authorization value
// is sent verbatim in the Authorization header on every request.
func NewClient(rawURL, authorization string) (*Client, error) {
	base, err := ParseBaseURL(rawURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		authorization: authorization,
		userAgent:     defaultUserAgent,
	}, nil
}

// ListCards retrieves the full card collection, feed-ordered.
func (c *Client) ListCards(ctx context.Context) ([]Card, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []Card
	if err := c.do(ctx, http.MethodGet, "/cards", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// GetProfile retrieves the current user's profile.
func (c *Client) GetProfile(ctx context.Context) (*User, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload User
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// UpdateProfile replaces the user's name and about text. The server returns
// the authoritative profile.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*User, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload User
	if err := c.do(ctx, http.MethodPatch, "/users/me", update, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// UpdateAvatar replaces the user's avatar URL.
func (c *Client) UpdateAvatar(ctx context.Context, update AvatarUpdate) (*User, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload User
	if err := c.do(ctx, http.MethodPatch, "/users/me/avatar", update, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// CreateCard posts a new card and returns the server's version of it.
func (c *Client) CreateCard(ctx context.Context, card NewCard) (*Card, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload Card
	if err := c.do(ctx, http.MethodPost, "/cards", card, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// DeleteCard removes a card by id.
func (c *Client) DeleteCard(ctx context.Context, id string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("card id required")
	}
	return c.do(ctx, http.MethodDelete, "/cards/"+id, nil, nil)
}

// LikeCard adds the current user to a card's likes and returns the updated card.
func (c *Client) LikeCard(ctx context.Context, id string) (*Card, error) {
	return c.setLike(ctx, http.MethodPut, id)
}

// UnlikeCard removes the current user from a card's likes and returns the
// updated card.
func (c *Client) UnlikeCard(ctx context.Context, id string) (*Card, error) {
	return c.setLike(ctx, http.MethodDelete, id)
}

func (c *Client) setLike(ctx context.Context, method, id string) (*Card, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("card id required")
	}
	var payload Card
	if err := c.do(ctx, method, "/cards/likes/"+id, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// do issues a single best-effort request. Any non-2xx status is reported as a
// *StatusError without reading the body; otherwise the body is decoded into
// dest when dest is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	// JoinPath rather than ResolveReference: the content service bases
	// carry a path prefix that an absolute reference would drop.
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
	if c.authorization != "" {
		req.Header.Set("Authorization", c.authorization)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Path: path, Code: resp.StatusCode}
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

// ParseBaseURL normalizes a service base URL. The scheme defaults to https
// and any path prefix is kept so cohort-style bases keep working.
func ParseBaseURL(rawURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return nil, fmt.Errorf("base url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", rawURL, err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

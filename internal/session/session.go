// Package session persists the opaque auth token across runs and validates
// it on startup. The token lives in ~/.config/placard/session.toml; absence
// of the file means anonymous.
package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"placard/internal/auth"
)

const defaultSessionPath = "~/.config/placard/session.toml"

type sessionFile struct {
	Token string `toml:"token"`
}

// Store owns the persisted credential.
type Store struct {
	path string
	auth auth.AuthAPI
}

// NewStore builds a Store backed by the file at path. An empty path uses the
// default location.
func NewStore(path string, authClient auth.AuthAPI) *Store {
	if strings.TrimSpace(path) == "" {
		path = defaultSessionPath
	}
	return &Store{path: path, auth: authClient}
}

// DefaultPath returns the default session file location.
func DefaultPath() string {
	return defaultSessionPath
}

// LoadToken reads the persisted token without any network I/O. A missing or
// unreadable file degrades to an empty token.
func (s *Store) LoadToken() string {
	resolved, err := expandPath(s.path)
	if err != nil {
		return ""
	}
	raw, err := os.ReadFile(resolved)
	if err != nil {
		return "" // Missing file or bad permissions both mean anonymous
	}
	var file sessionFile
	if err := toml.Unmarshal(raw, &file); err != nil {
		return ""
	}
	return strings.TrimSpace(file.Token)
}

// SaveToken persists the token, creating directories as needed. The file is
// written 0600 since it holds a credential.
func (s *Store) SaveToken(token string) error {
	resolved, err := expandPath(s.path)
	if err != nil {
		return fmt.Errorf("resolve session path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	encoded, err := toml.Marshal(sessionFile{Token: token})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := os.WriteFile(resolved, encoded, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// ClearToken removes the persisted token. Clearing an absent token is not an
// error.
func (s *Store) ClearToken() error {
	resolved, err := expandPath(s.path)
	if err != nil {
		return fmt.Errorf("resolve session path: %w", err)
	}
	if err := os.Remove(resolved); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// Validate checks the token against the auth service and returns the account
// email on success. Callers treat failure as "not logged in" without
// surfacing an error to the user; an expired token is expected, not fatal.
func (s *Store) Validate(ctx context.Context, token string) (string, error) {
	if s.auth == nil {
		return "", fmt.Errorf("auth client not configured")
	}
	account, err := s.auth.CheckToken(ctx, token)
	if err != nil {
		return "", err
	}
	return account.Email, nil
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

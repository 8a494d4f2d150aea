package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placard/internal/auth"
)

type stubAuth struct {
	account *auth.Account
	err     error
	got     string
}

func (s *stubAuth) Register(context.Context, string, string) (*auth.Account, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAuth) Login(context.Context, string, string) (string, error) {
	return "", errors.New("not implemented")
}

func (s *stubAuth) CheckToken(_ context.Context, token string) (*auth.Account, error) {
	s.got = token
	return s.account, s.err
}

func TestStore_TokenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	store := NewStore(path, nil)

	assert.Empty(t, store.LoadToken(), "missing file should read as anonymous")

	require.NoError(t, store.SaveToken("abc"))
	assert.Equal(t, "abc", store.LoadToken())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), "session file holds a credential")

	require.NoError(t, store.ClearToken())
	assert.Empty(t, store.LoadToken())
}

func TestStore_ClearMissingFileIsFine(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "session.toml"), nil)
	assert.NoError(t, store.ClearToken())
}

func TestStore_CorruptFileDegradesToAnonymous(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	require.NoError(t, os.WriteFile(path, []byte("not toml [["), 0o600))

	store := NewStore(path, nil)
	assert.Empty(t, store.LoadToken())
}

func TestStore_ValidateDelegatesToAuth(t *testing.T) {
	stub := &stubAuth{account: &auth.Account{ID: "1", Email: "a@b.com"}}
	store := NewStore(filepath.Join(t.TempDir(), "session.toml"), stub)

	email, err := store.Validate(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", email)
	assert.Equal(t, "abc", stub.got)
}

func TestStore_ValidateReportsRejection(t *testing.T) {
	stub := &stubAuth{err: errors.New("401")}
	store := NewStore(filepath.Join(t.TempDir(), "session.toml"), stub)

	_, err := store.Validate(context.Background(), "stale")
	assert.Error(t, err)
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnvOverrides(t)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ContentURL != defaultContentURL {
		t.Fatalf("ContentURL = %q, want %q", cfg.ContentURL, defaultContentURL)
	}
	if cfg.AuthURL != defaultAuthURL {
		t.Fatalf("AuthURL = %q, want %q", cfg.AuthURL, defaultAuthURL)
	}
	if !strings.HasPrefix(cfg.LogFile, home) {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
}

func TestLoad_ParsesConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnvOverrides(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
content_url = "https://content.example.com/v1/g7"
authorization = "deadbeef"
auth_url = "https://auth.example.com"
log_file = "~/logs/placard.log"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ContentURL != "https://content.example.com/v1/g7" {
		t.Fatalf("ContentURL = %q", cfg.ContentURL)
	}
	if cfg.Authorization != "deadbeef" {
		t.Fatalf("Authorization = %q", cfg.Authorization)
	}
	if cfg.LogFile != filepath.Join(home, "logs", "placard.log") {
		t.Fatalf("LogFile = %q, want expanded under HOME", cfg.LogFile)
	}
}

func TestLoad_EnvironmentBeatsFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnvOverrides(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`content_url = "https://file.example.com"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	t.Setenv("PLACARD_CONTENT_URL", "https://env.example.com")
	t.Setenv("PLACARD_AUTHORIZATION", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ContentURL != "https://env.example.com" {
		t.Fatalf("ContentURL = %q, want env override", cfg.ContentURL)
	}
	if cfg.Authorization != "from-env" {
		t.Fatalf("Authorization = %q, want env override", cfg.Authorization)
	}
}

func TestLoad_RejectsMalformedFile(t *testing.T) {
	clearEnvOverrides(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("content_url = [["), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Load should reject malformed TOML")
	}
}

func clearEnvOverrides(t *testing.T) {
	t.Helper()
	for _, name := range []string{"PLACARD_CONTENT_URL", "PLACARD_AUTHORIZATION", "PLACARD_AUTH_URL", "PLACARD_LOG_FILE"} {
		// t.Setenv registers the restore; the override itself must be absent,
		// not merely empty, or env.Parse would apply it.
		t.Setenv(name, "")
		if err := os.Unsetenv(name); err != nil {
			t.Fatalf("Unsetenv %s: %v", name, err)
		}
	}
}

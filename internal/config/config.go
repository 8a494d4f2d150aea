// Package config loads placard's service endpoints and paths from a TOML
// file, then applies PLACARD_* environment overrides on top.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	env "github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything placard needs to reach the two remote services.
type Config struct {
	// ContentURL is the content API base, path prefix included.
	ContentURL string `toml:"content_url" env:"PLACARD_CONTENT_URL"`
	// Authorization is sent verbatim on every content API request.
	Authorization string `toml:"authorization" env:"PLACARD_AUTHORIZATION"`
	// AuthURL is the authentication API base.
	AuthURL string `toml:"auth_url" env:"PLACARD_AUTH_URL"`
	// LogFile receives the operational log; stdout belongs to the TUI.
	LogFile string `toml:"log_file" env:"PLACARD_LOG_FILE"`
}

const (
	defaultConfigPath = "~/.config/placard/config.toml"
	defaultContentURL = "https://mesto.nomoreparties.co/v1/cohort-27"
	defaultAuthURL    = "https://auth.nomoreparties.co"
	defaultLogFile    = "~/.local/state/placard/placard.log"
)

// Load locates and parses the config file, falling back to defaults when
// missing, and finishes with environment overrides.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		ContentURL: defaultContentURL,
		AuthURL:    defaultAuthURL,
		LogFile:    defaultLogFile,
	}

	raw, err := os.ReadFile(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Defaults plus environment are enough to run.
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	default:
		if err := toml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("apply env overrides: %w", err)
	}

	if strings.TrimSpace(cfg.ContentURL) == "" {
		cfg.ContentURL = defaultContentURL
	}
	if strings.TrimSpace(cfg.AuthURL) == "" {
		cfg.AuthURL = defaultAuthURL
	}
	if strings.TrimSpace(cfg.LogFile) == "" {
		cfg.LogFile = defaultLogFile
	}
	cfg.LogFile = mustExpand(cfg.LogFile)

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
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

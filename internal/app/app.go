// Package app wires configuration, logging, the service clients, and the
// coordinator together and hands them to the UI.
package app

import (
	"context"
	"fmt"

	"placard/internal/api"
	"placard/internal/auth"
	"placard/internal/config"
	"placard/internal/coordinator"
	"placard/internal/prefs"
	"placard/internal/session"
	"placard/internal/ui"
)

// Options configure the placard application.
type Options struct {
	ConfigPath  string
	PrefsPath   string // empty uses default ~/.config/placard/prefs.toml
	SessionPath string // empty uses default ~/.config/placard/session.toml
	ContentURL  string // overrides the configured content API base
	AuthURL     string // overrides the configured auth API base
}

// Run boots the placard TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.ContentURL != "" {
		cfg.ContentURL = opts.ContentURL
	}
	if opts.AuthURL != "" {
		cfg.AuthURL = opts.AuthURL
	}

	logger, closeLog, err := newLogger(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closeLog()

	userPrefs := prefs.Load(opts.PrefsPath)

	content, err := api.NewClient(cfg.ContentURL, cfg.Authorization)
	if err != nil {
		return fmt.Errorf("init content client: %w", err)
	}
	authClient, err := auth.NewClient(cfg.AuthURL)
	if err != nil {
		return fmt.Errorf("init auth client: %w", err)
	}
	sess := session.NewStore(opts.SessionPath, authClient)

	co := coordinator.New(coordinator.Options{
		Context: ctx,
		Content: content,
		Auth:    authClient,
		Session: sess,
		Log:     logger,
	})

	return ui.Run(ui.Options{
		Coordinator: co,
		ThemeName:   userPrefs.Theme,
		PrefsPath:   opts.PrefsPath,
		LastEmail:   userPrefs.LastEmail,
		Log:         logger,
	})
}

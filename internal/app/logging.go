package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
)

// newLogger opens the operational log. Stdout belongs to the TUI, so every
// swallowed error from the intent handlers ends up in this file instead.
func newLogger(path string) (*slog.Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	level := slog.LevelInfo
	if raw := os.Getenv("PLACARD_LOG_LEVEL"); raw != "" {
		if err := level.UnmarshalText([]byte(raw)); err != nil {
			level = slog.LevelInfo
		}
	}

	handler := tint.NewHandler(file, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    true, // plain text in the file
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger, func() { _ = file.Close() }, nil
}

package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p := Load("")
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
	if p.LastEmail != "" {
		t.Fatalf("LastEmail = %q, want empty", p.LastEmail)
	}
}

func TestLoad_ReadsExistingFile(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "prefs.toml")
	content := "theme = \"Slate\"\nlast_email = \"a@b.com\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p := Load(path)
	if p.Theme != "Slate" {
		t.Fatalf("Theme = %q, want Slate", p.Theme)
	}
	if p.LastEmail != "a@b.com" {
		t.Fatalf("LastEmail = %q, want a@b.com", p.LastEmail)
	}
}

func TestLoad_CorruptFileFallsBackToDefaults(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "prefs.toml")
	if err := os.WriteFile(path, []byte("theme = [["), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p := Load(path)
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.toml")

	if err := Save(path, Prefs{Theme: "Paper", LastEmail: "b@c.com"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	p := Load(path)
	if p.Theme != "Paper" || p.LastEmail != "b@c.com" {
		t.Fatalf("round trip = %#v", p)
	}
}

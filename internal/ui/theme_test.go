package ui

import "testing"

func TestGetTheme_UnknownFallsBack(t *testing.T) {
	th := GetTheme("NoSuchTheme")
	if th.Name != themes[0].Name {
		t.Fatalf("GetTheme fallback = %q, want %q", th.Name, themes[0].Name)
	}

	th = GetTheme("Slate")
	if th.Name != "Slate" {
		t.Fatalf("GetTheme(Slate) = %q", th.Name)
	}
}

func TestNextTheme_CyclesThroughAll(t *testing.T) {
	seen := map[string]bool{}
	name := themes[0].Name
	for range themes {
		seen[name] = true
		name = NextTheme(name)
	}
	if len(seen) != len(themes) {
		t.Fatalf("cycle visited %d themes, want %d", len(seen), len(themes))
	}
	if name != themes[0].Name {
		t.Fatalf("cycle should wrap to %q, got %q", themes[0].Name, name)
	}
}

func TestNextTheme_UnknownResets(t *testing.T) {
	if got := NextTheme("NoSuchTheme"); got != themes[0].Name {
		t.Fatalf("NextTheme unknown = %q, want %q", got, themes[0].Name)
	}
}

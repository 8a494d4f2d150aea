package ui

import (
	"path/filepath"
	"strings"
	"testing"

	"placard/internal/api"
	"placard/internal/coordinator"
)

func newTestModel(t *testing.T, cards []api.Card) Model {
	t.Helper()
	co := coordinator.New(coordinator.Options{})
	co.Apply(coordinator.CardsLoaded{Cards: cards})
	m := New(Options{
		Coordinator: co,
		PrefsPath:   filepath.Join(t.TempDir(), "prefs.toml"),
	})
	m.width = 80
	m.height = 24
	m.ready = true
	return m
}

func TestSelectedCard_Bounds(t *testing.T) {
	m := newTestModel(t, nil)
	if _, ok := m.selectedCard(); ok {
		t.Fatal("selectedCard on empty feed should report false")
	}

	m = newTestModel(t, []api.Card{{ID: "c1"}, {ID: "c2"}})
	m.selectedRow = 1
	card, ok := m.selectedCard()
	if !ok || card.ID != "c2" {
		t.Fatalf("selectedCard = %#v ok=%v, want c2", card, ok)
	}
}

func TestUpdate_ClampsSelectionAfterDelete(t *testing.T) {
	m := newTestModel(t, []api.Card{{ID: "c1"}, {ID: "c2"}, {ID: "c3"}})
	m.selectedRow = 2

	m.co.RequestDelete(api.Card{ID: "c3"})
	next, _ := m.Update(coordMsg{ev: coordinator.CardDeleted{ID: "c3"}})

	updated := next.(Model)
	if got := len(updated.co.Cards()); got != 2 {
		t.Fatalf("cards after delete = %d, want 2", got)
	}
	if updated.selectedRow != 1 {
		t.Fatalf("selectedRow = %d, want clamped to 1", updated.selectedRow)
	}
}

func TestRenderCardRow_LikeMarker(t *testing.T) {
	m := newTestModel(t, nil)

	liked := api.Card{ID: "c1", Name: "Lake", Likes: []api.User{{ID: "u1"}}}
	row := m.renderCardRow(liked, "u1", false)
	if !strings.Contains(row, "♥") {
		t.Fatalf("liked row missing filled heart: %q", row)
	}

	row = m.renderCardRow(liked, "u2", false)
	if !strings.Contains(row, "♡") {
		t.Fatalf("unliked row missing empty heart: %q", row)
	}
}

func TestRenderFeed_EmptyState(t *testing.T) {
	m := newTestModel(t, nil)
	out := m.renderFeed()
	if !strings.Contains(out, "No cards yet") {
		t.Fatalf("empty feed output = %q", out)
	}
}

func TestView_PopupWinsOverRoute(t *testing.T) {
	m := newTestModel(t, []api.Card{{ID: "c1", Name: "Lake", Link: "https://img/l.png"}})
	m.co.Apply(coordinator.SessionRestored{Email: "a@b.com"})
	m.co.ViewImage(m.co.Cards()[0])

	out := m.View()
	if !strings.Contains(out, "Lake") || !strings.Contains(out, "https://img/l.png") {
		t.Fatalf("popup view missing card details: %q", out)
	}
}

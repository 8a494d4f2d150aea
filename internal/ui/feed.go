package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"placard/internal/api"
)

// selectedCard returns the card under the cursor.
func (m Model) selectedCard() (api.Card, bool) {
	cards := m.co.Cards()
	if m.selectedRow < 0 || m.selectedRow >= len(cards) {
		return api.Card{}, false
	}
	return cards[m.selectedRow], true
}

// handleFeedKey processes keyboard input on the feed.
func (m Model) handleFeedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cards := m.co.Cards()

	switch {
	case msg.String() == "q":
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.selectedRow < len(cards)-1 {
			m.selectedRow++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		if len(cards) > 0 {
			m.selectedRow = len(cards) - 1
		}
		return m, nil

	case key.Matches(msg, m.keys.Like):
		if card, ok := m.selectedCard(); ok {
			return m, emit(m.co.ToggleLike(card))
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		// Only own cards can be deleted; the server enforces it too.
		if card, ok := m.selectedCard(); ok && card.OwnedBy(m.co.User().ID) {
			m.co.RequestDelete(card)
		}
		return m, nil

	case key.Matches(msg, m.keys.View):
		if card, ok := m.selectedCard(); ok {
			m.co.ViewImage(card)
		}
		return m, nil

	case key.Matches(msg, m.keys.AddPlace):
		m.place.reset()
		m.co.OpenAddPlace()
		return m, nil

	case key.Matches(msg, m.keys.EditProfile):
		m.profile.reset()
		m.profile.setValue(0, m.co.User().Name)
		m.profile.setValue(1, m.co.User().About)
		m.co.OpenEditProfile()
		return m, nil

	case key.Matches(msg, m.keys.EditAvatar):
		m.avatar.reset()
		m.co.OpenEditAvatar()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, emit(m.co.LoadCards())

	case key.Matches(msg, m.keys.Logout):
		m.co.Logout()
		return m, nil
	}

	return m, nil
}

func (m Model) renderFeed() string {
	styles := m.theme.Styles()
	cards := m.co.Cards()
	user := m.co.User()

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch {
	case m.co.Loading().InitialData:
		b.WriteString(styles.Muted.Render("Loading cards…"))
	case len(cards) == 0:
		b.WriteString(styles.Muted.Render("No cards yet. Press a to add one."))
	default:
		visible := m.visibleRows()
		start := 0
		if m.selectedRow >= visible {
			start = m.selectedRow - visible + 1
		}
		end := min(start+visible, len(cards))
		for i := start; i < end; i++ {
			b.WriteString(m.renderCardRow(cards[i], user.ID, i == m.selectedRow))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.Muted.Render(
		"j/k Move · l Like · enter View · a Add · d Delete · p Profile · v Avatar · r Reload · o Sign out · ? Help"))
	return b.String()
}

func (m Model) renderCardRow(card api.Card, userID string, selected bool) string {
	styles := m.theme.Styles()

	heart := "♡"
	likeStyle := styles.Muted
	if card.LikedBy(userID) {
		heart = "♥"
		likeStyle = styles.Danger
	}
	likes := likeStyle.Render(fmt.Sprintf("%s %-3d", heart, len(card.Likes)))

	owner := card.Owner.Name
	if card.OwnedBy(userID) {
		owner = "you"
	}
	line := fmt.Sprintf("%s  %-30s  %s", likes, truncate(card.Name, 30), styles.Muted.Render("by "+owner))

	if ts := card.ParsedCreatedAt(); !ts.IsZero() {
		line += styles.Muted.Render("  " + ts.Format("2006-01-02"))
	}

	if selected {
		return styles.Selected.Render("» " + line)
	}
	return styles.Text.Render("  " + line)
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	user := m.co.User()

	left := styles.Title.Render("placard")
	name := user.Name
	if name == "" {
		name = "…"
	}
	identity := fmt.Sprintf("%s · %s", name, m.co.Email())
	return left + "  " + styles.Muted.Render(identity)
}

// visibleRows returns how many feed rows fit below the header and above the
// hint line.
func (m Model) visibleRows() int {
	rows := m.height - 6
	if rows < 1 {
		rows = 1
	}
	return rows
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}

package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"placard/internal/coordinator"
)

// handlePopupKey processes keyboard input while a popup is open.
func (m Model) handlePopupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.co.Popup() {
	case coordinator.PopupEditProfile:
		cmd := m.formPopupKey(msg, &m.profile, m.co.Loading().Profile, func() coordinator.Cmd {
			return m.co.UpdateProfile(m.profile.value(0), m.profile.value(1))
		})
		return m, cmd

	case coordinator.PopupEditAvatar:
		cmd := m.formPopupKey(msg, &m.avatar, m.co.Loading().Avatar, func() coordinator.Cmd {
			return m.co.UpdateAvatar(m.avatar.value(0))
		})
		return m, cmd

	case coordinator.PopupAddPlace:
		cmd := m.formPopupKey(msg, &m.place, m.co.Loading().AddPlace, func() coordinator.Cmd {
			return m.co.AddCard(m.place.value(0), m.place.value(1))
		})
		return m, cmd

	case coordinator.PopupConfirmDelete:
		switch {
		case key.Matches(msg, m.keys.Confirm):
			return m, emit(m.co.ConfirmDelete())
		case key.Matches(msg, m.keys.Escape), msg.String() == "n":
			m.co.CloseAllPopups()
		}
		return m, nil

	default:
		// ViewImage and InfoTooltip close on escape or enter.
		if key.Matches(msg, m.keys.Escape) || key.Matches(msg, m.keys.Submit) {
			m.co.CloseAllPopups()
		}
		return m, nil
	}
}

// formPopupKey drives one of the form popups. The submit key is ignored
// while the popup's mutation is already in flight, which is the only dedup
// guard there is.
func (m *Model) formPopupKey(msg tea.KeyMsg, f *form, busy bool, submit func() coordinator.Cmd) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.co.CloseAllPopups()
		return nil

	case key.Matches(msg, m.keys.Submit):
		if busy || f.empty() {
			return nil
		}
		return emit(submit())

	case key.Matches(msg, m.keys.NextField):
		f.next()
		return nil

	case key.Matches(msg, m.keys.PrevField):
		f.prev()
		return nil
	}

	return f.update(msg)
}

func (m Model) renderPopup() string {
	styles := m.theme.Styles()

	var body string
	switch m.co.Popup() {
	case coordinator.PopupEditProfile:
		body = m.renderFormPopup("Edit profile", m.profile, m.co.Loading().Profile)

	case coordinator.PopupEditAvatar:
		body = m.renderFormPopup("Change avatar", m.avatar, m.co.Loading().Avatar)

	case coordinator.PopupAddPlace:
		body = m.renderFormPopup("New place", m.place, m.co.Loading().AddPlace)

	case coordinator.PopupConfirmDelete:
		var b strings.Builder
		b.WriteString(styles.Title.Render("Are you sure?"))
		b.WriteString("\n\n")
		if card, ok := m.co.PendingDelete(); ok {
			b.WriteString(styles.Text.Render(truncate(card.Name, 40)))
			b.WriteString("\n\n")
		}
		b.WriteString(styles.Muted.Render("enter/y Delete · esc Cancel"))
		body = b.String()

	case coordinator.PopupViewImage:
		card := m.co.Selected()
		var b strings.Builder
		b.WriteString(styles.Title.Render(truncate(card.Name, 40)))
		b.WriteString("\n\n")
		b.WriteString(styles.Accent.Render(card.Link))
		b.WriteString("\n")
		b.WriteString(styles.Muted.Render("by " + card.Owner.Name))
		b.WriteString("\n\n")
		b.WriteString(styles.Muted.Render("esc Close"))
		body = b.String()

	case coordinator.PopupInfoTooltip:
		var b strings.Builder
		if m.co.TooltipOK() {
			b.WriteString(styles.Success.Render("✓ You're all signed up!"))
			b.WriteString("\n\n")
			b.WriteString(styles.Text.Render("Sign in to continue."))
		} else {
			b.WriteString(styles.Danger.Render("✗ Something went wrong."))
			b.WriteString("\n\n")
			b.WriteString(styles.Text.Render("Please try again."))
		}
		b.WriteString("\n\n")
		b.WriteString(styles.Muted.Render("esc Close"))
		body = b.String()
	}

	box := styles.FocusBox.Render(body)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) renderFormPopup(title string, f form, busy bool) string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n\n")
	b.WriteString(f.view(styles))
	b.WriteString("\n\n")
	if busy {
		b.WriteString(styles.Accent.Render("Saving…"))
	} else {
		b.WriteString(styles.Muted.Render("enter Save · tab Next field · esc Cancel"))
	}
	return b.String()
}

package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"placard/internal/coordinator"
)

// handleSignInKey processes keyboard input on the sign-in screen. Printable
// keys belong to the focused input, so only chorded bindings act here.
func (m Model) handleSignInKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.SwitchAuth):
		m.co.GoToSignUp()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		if m.signIn.empty() || m.co.Phase() == coordinator.PhaseAuthenticating {
			return m, nil
		}
		return m, emit(m.co.Login(m.signIn.value(0), m.signIn.value(1)))

	case key.Matches(msg, m.keys.NextField):
		m.signIn.next()
		return m, nil

	case key.Matches(msg, m.keys.PrevField):
		m.signIn.prev()
		return m, nil
	}

	return m, m.signIn.update(msg)
}

// handleSignUpKey processes keyboard input on the sign-up screen.
func (m Model) handleSignUpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.SwitchAuth):
		m.co.GoToSignIn()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		if m.signUp.empty() {
			return m, nil
		}
		return m, emit(m.co.Register(m.signUp.value(0), m.signUp.value(1)))

	case key.Matches(msg, m.keys.NextField):
		m.signUp.next()
		return m, nil

	case key.Matches(msg, m.keys.PrevField):
		m.signUp.prev()
		return m, nil
	}

	return m, m.signUp.update(msg)
}

func (m Model) renderSignIn() string {
	status := ""
	if m.co.Phase() == coordinator.PhaseAuthenticating {
		status = "Signing in…"
	}
	return m.renderAuthScreen("Sign in", m.signIn, status,
		"enter Sign in · ctrl+s Sign up · ctrl+c Quit")
}

func (m Model) renderSignUp() string {
	return m.renderAuthScreen("Sign up", m.signUp, "",
		"enter Register · ctrl+s Sign in · ctrl+c Quit")
}

func (m Model) renderAuthScreen(title string, f form, status, hints string) string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Title.Render("placard"))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render(title))
	b.WriteString("\n\n")
	b.WriteString(f.view(styles))
	b.WriteString("\n\n")
	if status != "" {
		b.WriteString(styles.Muted.Render(status))
		b.WriteString("\n")
	}
	b.WriteString(styles.Muted.Render(hints))

	box := styles.Box.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

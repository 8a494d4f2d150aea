package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHelp renders the full-screen help overlay. Any key closes it.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	sections := []struct {
		title string
		rows  [][2]string
	}{
		{
			title: "Feed",
			rows: [][2]string{
				{"j/k, ↓/↑", "Move selection"},
				{"g / G", "Top / bottom"},
				{"l, Space", "Like or unlike"},
				{"enter", "View image"},
				{"a", "Add a place"},
				{"d", "Delete own card"},
				{"r", "Reload feed"},
			},
		},
		{
			title: "Account",
			rows: [][2]string{
				{"p", "Edit profile"},
				{"v", "Change avatar"},
				{"o", "Sign out"},
			},
		},
		{
			title: "General",
			rows: [][2]string{
				{"T", "Cycle theme"},
				{"?", "Toggle this help"},
				{"q, ctrl+c", "Quit"},
			},
		},
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render("placard — keys"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(styles.Accent.Render(sec.title))
		b.WriteString("\n")
		for _, row := range sec.rows {
			b.WriteString(styles.Text.Render("  " + padRight(row[0], 12)))
			b.WriteString(styles.Muted.Render(row[1]))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render("Press any key to close"))

	box := m.theme.Styles().Box.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

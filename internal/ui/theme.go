package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors for the UI.
type Theme struct {
	Name string

	Text    string
	Muted   string
	Accent  string
	Success string
	Danger  string

	Border        string
	BorderFocus   string
	SelectionBg   string
	SelectionText string
}

// Styles holds the lipgloss styles derived from a theme.
type Styles struct {
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Success  lipgloss.Style
	Danger   lipgloss.Style
	Title    lipgloss.Style
	Selected lipgloss.Style
	Box      lipgloss.Style
	FocusBox lipgloss.Style
}

// Styles returns lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)).Bold(true),
		Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)).Bold(true),
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(1, 2),
		FocusBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderFocus)).
			Padding(1, 2),
	}
}

var themes = []Theme{
	{
		Name:          "Dracula",
		Text:          "#f8f8f2",
		Muted:         "#6272a4",
		Accent:        "#bd93f9",
		Success:       "#50fa7b",
		Danger:        "#ff5555",
		Border:        "#44475a",
		BorderFocus:   "#bd93f9",
		SelectionBg:   "#44475a",
		SelectionText: "#f8f8f2",
	},
	{
		Name:          "Slate",
		Text:          "#e2e8f0",
		Muted:         "#64748b",
		Accent:        "#38bdf8",
		Success:       "#4ade80",
		Danger:        "#f87171",
		Border:        "#334155",
		BorderFocus:   "#38bdf8",
		SelectionBg:   "#1e293b",
		SelectionText: "#f1f5f9",
	},
	{
		Name:          "Paper",
		Text:          "#3c3836",
		Muted:         "#928374",
		Accent:        "#b16286",
		Success:       "#79740e",
		Danger:        "#9d0006",
		Border:        "#bdae93",
		BorderFocus:   "#b16286",
		SelectionBg:   "#ebdbb2",
		SelectionText: "#3c3836",
	},
}

// GetTheme returns the theme with the given name, defaulting to the first
// theme when unknown.
func GetTheme(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return themes[0]
}

// NextTheme returns the name of the theme after the given one, cycling.
func NextTheme(name string) string {
	for i, t := range themes {
		if t.Name == name {
			return themes[(i+1)%len(themes)].Name
		}
	}
	return themes[0].Name
}

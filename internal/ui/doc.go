// Package ui provides the Bubble Tea terminal interface for placard.
//
// # Architecture
//
// The Model is a thin presentation shell: all domain state — session phase,
// user, cards, popups, loading flags — belongs to the coordinator. The model
// holds only what rendering needs: text-input forms, the feed cursor, window
// size, and the theme.
//
// Every user action maps 1:1 to a coordinator intent. Intents that hit the
// network hand back a coordinator.Cmd, which emit wraps into a tea.Cmd; the
// completion event flows back through Update as a coordMsg and is folded in
// with coordinator.Apply. The UI never mutates coordinator state directly.
//
// # Screens and Overlays
//
// The coordinator's Route picks the screen: sign-in, sign-up, or the feed.
// When a popup is open it replaces the screen entirely, centered with
// lipgloss.Place; the coordinator's single Popup value means there is never
// more than one. The help overlay is purely presentational and lives in the
// model.
//
// # Key Handling
//
// Printable keys belong to the focused text input on form screens, so those
// screens only react to chorded bindings (ctrl+s, tab, enter, esc). The feed
// has the full single-letter vocabulary; see keys.go.
package ui

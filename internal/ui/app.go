// Package ui provides the Bubble Tea terminal interface for placard.
package ui

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"placard/internal/coordinator"
	"placard/internal/prefs"
)

// Options configures the UI.
type Options struct {
	Coordinator *coordinator.Coordinator
	ThemeName   string
	PrefsPath   string
	LastEmail   string
	Log         *slog.Logger
}

// Model is the root application state for Bubble Tea. All domain state lives
// in the coordinator; the model only holds presentation concerns: forms,
// selection, sizes, theme.
type Model struct {
	co        *coordinator.Coordinator
	log       *slog.Logger
	keys      keyMap
	theme     Theme
	prefsPath string

	width  int
	height int
	ready  bool

	selectedRow int
	showHelp    bool

	signIn  form
	signUp  form
	profile form
	avatar  form
	place   form
}

// New creates the root model.
func New(opts Options) Model {
	logger := opts.Log
	if logger == nil {
		logger = slog.Default()
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	signIn := newForm(
		[]string{"Email", "Password"},
		textField("you@example.com", 64),
		passwordField("password"),
	)
	if opts.LastEmail != "" {
		signIn.setValue(0, opts.LastEmail)
		signIn.focusField(1)
	}

	return Model{
		co:        opts.Coordinator,
		log:       logger,
		keys:      defaultKeyMap(),
		theme:     GetTheme(opts.ThemeName),
		prefsPath: prefsPath,
		signIn:    signIn,
		signUp: newForm(
			[]string{"Email", "Password"},
			textField("you@example.com", 64),
			passwordField("password"),
		),
		profile: newForm(
			[]string{"Name", "About"},
			textField("Jacques Cousteau", 40),
			textField("Explorer", 200),
		),
		avatar: newForm(
			[]string{"Avatar URL"},
			textField("https://…", 300),
		),
		place: newForm(
			[]string{"Title", "Image URL"},
			textField("New place", 30),
			textField("https://…", 300),
		),
	}
}

// Init implements tea.Model. Startup fires the initial card load, the
// profile load, and stored-token validation concurrently.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		emitAll(m.co.StartUp()),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case coordMsg:
		m.co.Apply(msg.ev)
		m.afterApply(msg.ev)
		return m, nil
	}

	return m, nil
}

// afterApply reacts to completion events with presentation-only housekeeping.
func (m *Model) afterApply(ev coordinator.Msg) {
	m.clampSelection()

	if fin, ok := ev.(coordinator.LoginFinished); ok && fin.Err == nil {
		p := prefs.Load(m.prefsPath)
		p.LastEmail = fin.Email
		if err := prefs.Save(m.prefsPath, p); err != nil {
			m.log.Warn("save prefs", "error", err)
		}
	}
}

func (m *Model) clampSelection() {
	count := len(m.co.Cards())
	if count == 0 {
		m.selectedRow = 0
		return
	}
	if m.selectedRow >= count {
		m.selectedRow = count - 1
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.co.Popup() != coordinator.PopupNone {
		return m.renderPopup()
	}

	switch m.co.Route() {
	case coordinator.RouteSignUp:
		return m.renderSignUp()
	case coordinator.RouteFeed:
		return m.renderFeed()
	default:
		return m.renderSignIn()
	}
}

// handleKey routes keyboard input by overlay, then popup, then screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.co.Popup() != coordinator.PopupNone {
		return m.handlePopupKey(msg)
	}

	switch m.co.Route() {
	case coordinator.RouteSignUp:
		return m.handleSignUpKey(msg)
	case coordinator.RouteFeed:
		return m.handleFeedKey(msg)
	default:
		return m.handleSignInKey(msg)
	}
}

// cycleTheme advances and persists the theme choice.
func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	p := prefs.Load(m.prefsPath)
	p.Theme = m.theme.Name
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.log.Warn("save prefs", "error", err)
	}
}

// Messages

// coordMsg wraps a coordinator completion event into a tea.Msg.
type coordMsg struct {
	ev coordinator.Msg
}

// Commands

func emit(cmd coordinator.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		return coordMsg{ev: cmd()}
	}
}

func emitAll(cmds []coordinator.Cmd) tea.Cmd {
	batch := make([]tea.Cmd, 0, len(cmds))
	for _, cmd := range cmds {
		if cmd != nil {
			batch = append(batch, emit(cmd))
		}
	}
	return tea.Batch(batch...)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

package coordinator

import (
	"context"
	"log/slog"

	"placard/internal/api"
	"placard/internal/auth"
)

// Phase is the authentication state of the session.
type Phase int

const (
	PhaseAnonymous Phase = iota
	PhaseAuthenticating
	PhaseAuthenticated
)

// Route is the screen the presentation layer should show.
type Route int

const (
	RouteSignIn Route = iota
	RouteSignUp
	RouteFeed
)

// Popup is the single open modal overlay. Exactly one value is active at a
// time; the zero value means no popup is open.
type Popup int

const (
	PopupNone Popup = iota
	PopupEditAvatar
	PopupEditProfile
	PopupAddPlace
	PopupConfirmDelete
	PopupViewImage
	PopupInfoTooltip
)

// Loading tracks which mutations are in flight. Each flag is raised before
// its request is issued and lowered when the result is applied, success or
// not.
type Loading struct {
	InitialData bool
	Profile     bool
	Avatar      bool
	AddPlace    bool
}

// SessionStore is the persisted-credential surface the coordinator needs.
// Implemented by *session.Store.
type SessionStore interface {
	LoadToken() string
	SaveToken(token string) error
	ClearToken() error
	Validate(ctx context.Context, token string) (string, error)
}

// Msg is a completion event produced by an intent's asynchronous half. The
// presentation layer feeds every Msg back through Apply.
type Msg interface{}

// Cmd is the asynchronous half of an intent: it performs exactly one network
// call and returns the resulting Msg. A nil Cmd means the intent finished
// synchronously.
type Cmd func() Msg

// Completion events. Every event carries its error as data so the caller
// decides whether to surface it; Apply itself only logs.

// CardsLoaded reports the result of the initial feed fetch.
type CardsLoaded struct {
	Cards []api.Card
	Err   error
}

// UserLoaded reports the result of the profile fetch.
type UserLoaded struct {
	User *api.User
	Err  error
}

// SessionRestored reports startup validation of a persisted token.
type SessionRestored struct {
	Email string
	Err   error
}

// LoginFinished reports a sign-in attempt.
type LoginFinished struct {
	Email string
	Token string
	Err   error
}

// RegisterFinished reports a sign-up attempt.
type RegisterFinished struct {
	Account *auth.Account
	Err     error
}

// LikeToggled carries the server's authoritative card after a like change.
type LikeToggled struct {
	ID   string
	Card *api.Card
	Err  error
}

// CardDeleted reports a confirmed deletion.
type CardDeleted struct {
	ID  string
	Err error
}

// ProfileSaved reports a profile update.
type ProfileSaved struct {
	User *api.User
	Err  error
}

// AvatarSaved reports an avatar update.
type AvatarSaved struct {
	User *api.User
	Err  error
}

// CardAdded reports a newly created card.
type CardAdded struct {
	Card *api.Card
	Err  error
}

// Options configure a Coordinator.
type Options struct {
	Context context.Context
	Content api.ContentAPI
	Auth    auth.AuthAPI
	Session SessionStore
	Log     *slog.Logger
}

// Coordinator owns all mutable application state: session phase, current
// user, the card collection, the open popup and its payloads, and the
// per-mutation loading flags. Intents mutate owned state synchronously and
// hand back Cmds; completions come back through Apply on the same goroutine,
// so no field needs locking.
type Coordinator struct {
	ctx     context.Context
	content api.ContentAPI
	auth    auth.AuthAPI
	session SessionStore
	log     *slog.Logger

	phase         Phase
	route         Route
	email         string
	user          api.User
	cards         []api.Card
	popup         Popup
	selected      api.Card
	pendingDelete *api.Card
	tooltipOK     bool
	loading       Loading
}

// New builds a Coordinator in the anonymous state, routed to sign-in.
func New(opts Options) *Coordinator {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Log
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		ctx:     ctx,
		content: opts.Content,
		auth:    opts.Auth,
		session: opts.Session,
		log:     logger,
		phase:   PhaseAnonymous,
		route:   RouteSignIn,
	}
}

// State accessors. Cards returns a copy so callers cannot mutate the owned
// collection.

func (c *Coordinator) Phase() Phase       { return c.phase }
func (c *Coordinator) Route() Route       { return c.route }
func (c *Coordinator) Email() string      { return c.email }
func (c *Coordinator) User() api.User     { return c.user }
func (c *Coordinator) Popup() Popup       { return c.popup }
func (c *Coordinator) Selected() api.Card { return c.selected }
func (c *Coordinator) TooltipOK() bool    { return c.tooltipOK }
func (c *Coordinator) Loading() Loading   { return c.loading }

func (c *Coordinator) LoggedIn() bool {
	return c.phase == PhaseAuthenticated
}

func (c *Coordinator) Cards() []api.Card {
	if len(c.cards) == 0 {
		return nil
	}
	dup := make([]api.Card, len(c.cards))
	copy(dup, c.cards)
	return dup
}

// PendingDelete returns the card awaiting confirmation, if any.
func (c *Coordinator) PendingDelete() (api.Card, bool) {
	if c.pendingDelete == nil {
		return api.Card{}, false
	}
	return *c.pendingDelete, true
}

// StartUp begins the initial loads: the card collection, the profile, and,
// when a persisted token exists, its validation. The three run concurrently;
// the feed is interactive before the profile arrives.
func (c *Coordinator) StartUp() []Cmd {
	cmds := []Cmd{c.LoadCards(), c.LoadUser()}

	token := ""
	if c.session != nil {
		token = c.session.LoadToken()
	}
	if token != "" {
		c.phase = PhaseAuthenticating
		cmds = append(cmds, func() Msg {
			email, err := c.session.Validate(c.ctx, token)
			return SessionRestored{Email: email, Err: err}
		})
	}
	return cmds
}

// LoadCards fetches the full collection, replacing it wholesale on success.
func (c *Coordinator) LoadCards() Cmd {
	c.loading.InitialData = true
	return func() Msg {
		cards, err := c.content.ListCards(c.ctx)
		return CardsLoaded{Cards: cards, Err: err}
	}
}

// LoadUser fetches the profile, replacing the owned User wholesale.
func (c *Coordinator) LoadUser() Cmd {
	return func() Msg {
		user, err := c.content.GetProfile(c.ctx)
		return UserLoaded{User: user, Err: err}
	}
}

// Login exchanges credentials for a token.
func (c *Coordinator) Login(email, password string) Cmd {
	c.phase = PhaseAuthenticating
	return func() Msg {
		token, err := c.auth.Login(c.ctx, email, password)
		return LoginFinished{Email: email, Token: token, Err: err}
	}
}

// Register creates an account. Success and failure both open the info
// tooltip; neither changes the session phase.
func (c *Coordinator) Register(email, password string) Cmd {
	return func() Msg {
		account, err := c.auth.Register(c.ctx, email, password)
		return RegisterFinished{Account: account, Err: err}
	}
}

// Logout drops the session and returns to sign-in.
func (c *Coordinator) Logout() {
	if c.session != nil {
		if err := c.session.ClearToken(); err != nil {
			c.log.Warn("clear session token", "error", err)
		}
	}
	c.phase = PhaseAnonymous
	c.email = ""
	c.route = RouteSignIn
}

// ToggleLike flips the like state of a card. The direction is decided here,
// from the card's membership against the currently held user id, before the
// call goes out; the server's card replaces ours only after it confirms.
func (c *Coordinator) ToggleLike(card api.Card) Cmd {
	liked := card.LikedBy(c.user.ID)
	id := card.ID
	return func() Msg {
		var updated *api.Card
		var err error
		if liked {
			updated, err = c.content.UnlikeCard(c.ctx, id)
		} else {
			updated, err = c.content.LikeCard(c.ctx, id)
		}
		return LikeToggled{ID: id, Card: updated, Err: err}
	}
}

// RequestDelete stores the target and opens the confirmation popup. No
// network call happens until ConfirmDelete.
func (c *Coordinator) RequestDelete(card api.Card) {
	pending := card
	c.pendingDelete = &pending
	c.popup = PopupConfirmDelete
}

// ConfirmDelete deletes the pending card. Returns nil when nothing is
// pending.
func (c *Coordinator) ConfirmDelete() Cmd {
	if c.pendingDelete == nil {
		return nil
	}
	id := c.pendingDelete.ID
	return func() Msg {
		err := c.content.DeleteCard(c.ctx, id)
		return CardDeleted{ID: id, Err: err}
	}
}

// UpdateProfile saves a new name and about text.
func (c *Coordinator) UpdateProfile(name, about string) Cmd {
	c.loading.Profile = true
	return func() Msg {
		user, err := c.content.UpdateProfile(c.ctx, api.ProfileUpdate{Name: name, About: about})
		return ProfileSaved{User: user, Err: err}
	}
}

// UpdateAvatar saves a new avatar URL.
func (c *Coordinator) UpdateAvatar(avatar string) Cmd {
	c.loading.Avatar = true
	return func() Msg {
		user, err := c.content.UpdateAvatar(c.ctx, api.AvatarUpdate{Avatar: avatar})
		return AvatarSaved{User: user, Err: err}
	}
}

// AddCard posts a new card; on success it is prepended to the feed.
func (c *Coordinator) AddCard(name, link string) Cmd {
	c.loading.AddPlace = true
	return func() Msg {
		card, err := c.content.CreateCard(c.ctx, api.NewCard{Name: name, Link: link})
		return CardAdded{Card: card, Err: err}
	}
}

// Popup and navigation intents. Assigning the single popup field is what
// keeps "at most one popup open" true by construction.

func (c *Coordinator) OpenEditProfile() { c.popup = PopupEditProfile }
func (c *Coordinator) OpenEditAvatar()  { c.popup = PopupEditAvatar }
func (c *Coordinator) OpenAddPlace()    { c.popup = PopupAddPlace }

// ViewImage opens the image popup for the given card.
func (c *Coordinator) ViewImage(card api.Card) {
	c.selected = card
	c.popup = PopupViewImage
}

// CloseAllPopups resets the popup state and its payloads. Idempotent.
func (c *Coordinator) CloseAllPopups() {
	c.popup = PopupNone
	c.selected = api.Card{}
	c.pendingDelete = nil
}

// GoToSignUp routes to the registration screen.
func (c *Coordinator) GoToSignUp() { c.route = RouteSignUp }

// GoToSignIn routes to the sign-in screen.
func (c *Coordinator) GoToSignIn() { c.route = RouteSignIn }

// Apply folds a completion event into the owned state. Failed mutations
// leave everything as it was, except loading flags, which always clear;
// errors land in the operational log rather than a user-facing modal. The
// one exception is registration, whose failure opens the info tooltip.
func (c *Coordinator) Apply(msg Msg) {
	switch msg := msg.(type) {
	case CardsLoaded:
		c.loading.InitialData = false
		if msg.Err != nil {
			c.log.Error("load cards", "error", msg.Err)
			return
		}
		c.cards = msg.Cards

	case UserLoaded:
		if msg.Err != nil {
			c.log.Error("load profile", "error", msg.Err)
			return
		}
		c.user = *msg.User

	case SessionRestored:
		if msg.Err != nil {
			// Expired or invalid token: quietly stay anonymous.
			c.phase = PhaseAnonymous
			c.route = RouteSignIn
			c.log.Info("stored token rejected", "error", msg.Err)
			return
		}
		c.phase = PhaseAuthenticated
		c.email = msg.Email
		c.route = RouteFeed

	case LoginFinished:
		if msg.Err != nil {
			c.phase = PhaseAnonymous
			c.log.Error("sign in", "error", msg.Err)
			return
		}
		if c.session != nil {
			if err := c.session.SaveToken(msg.Token); err != nil {
				c.log.Warn("persist session token", "error", err)
			}
		}
		c.phase = PhaseAuthenticated
		c.email = msg.Email
		c.route = RouteFeed

	case RegisterFinished:
		c.tooltipOK = msg.Err == nil
		c.popup = PopupInfoTooltip
		if msg.Err != nil {
			c.log.Error("sign up", "error", msg.Err)
			return
		}
		c.route = RouteSignIn

	case LikeToggled:
		if msg.Err != nil {
			c.log.Error("toggle like", "card", msg.ID, "error", msg.Err)
			return
		}
		c.swapCard(msg.ID, *msg.Card)

	case CardDeleted:
		if msg.Err != nil {
			c.log.Error("delete card", "card", msg.ID, "error", msg.Err)
			return
		}
		c.removeCard(msg.ID)
		c.CloseAllPopups()

	case ProfileSaved:
		c.loading.Profile = false
		if msg.Err != nil {
			c.log.Error("update profile", "error", msg.Err)
			return
		}
		c.user = *msg.User
		c.CloseAllPopups()

	case AvatarSaved:
		c.loading.Avatar = false
		if msg.Err != nil {
			c.log.Error("update avatar", "error", msg.Err)
			return
		}
		c.user = *msg.User
		c.CloseAllPopups()

	case CardAdded:
		c.loading.AddPlace = false
		if msg.Err != nil {
			c.log.Error("add card", "error", msg.Err)
			return
		}
		c.cards = append([]api.Card{*msg.Card}, c.cards...)
		c.CloseAllPopups()
	}
}

// swapCard replaces the card with the given id by the server's authoritative
// version. A result for a card no longer in the collection is dropped, so a
// stale like response cannot resurrect a concurrently deleted card.
func (c *Coordinator) swapCard(id string, card api.Card) {
	for i := range c.cards {
		if c.cards[i].ID == id {
			c.cards[i] = card
			return
		}
	}
	c.log.Info("dropped stale card update", "card", id)
}

func (c *Coordinator) removeCard(id string) {
	kept := c.cards[:0]
	for _, card := range c.cards {
		if card.ID != id {
			kept = append(kept, card)
		}
	}
	c.cards = kept
}

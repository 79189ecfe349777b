package sessions

import (
	"context"
	"slices"
	"sync"

	"github.com/jrsteele09/bbdap-client/dashboard"
	apperrors "github.com/jrsteele09/bbdap-client/internal/errors"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// State is the session state the navigation shell renders from.
type State int

const (
	// StateUnknown is the initial state, before the stored token has been checked. Nothing is rendered.
	StateUnknown State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Notification titles and messages shown to the user
const (
	TitleLoginFailed    = "Login Failed"
	TitleError          = "Error"
	TitleSessionExpired = "Session Expired"

	MsgCannotConnect      = "Cannot connect to server"
	MsgUnexpectedResponse = "Unexpected response from server"
	MsgLoadFailed         = "Could not load dashboard"
	MsgStorageFailed      = "Could not access stored session"
	MsgLoginAgain         = "Please log in again"
)

// Authenticator exchanges credentials for a bearer token
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// DashboardAPI reads dashboard resources with a bearer token
type DashboardAPI interface {
	Load(ctx context.Context, token string) (*dashboard.Dashboard, error)
	Forecast(ctx context.Context, token string) (*dashboard.Forecast, error)
	StockAlerts(ctx context.Context, token string) ([]dashboard.StockAlert, error)
}

// Notifier surfaces an error to the user and returns once it has been shown
type Notifier interface {
	Notify(title, message string)
}

// Controller owns the session state and moves it between Unknown, Unauthenticated and
// Authenticated. The authenticated view is reachable only while the TokenStore holds a
// non-empty token; the token itself is read from the store for each request and never cached.
type Controller struct {
	store     TokenStore
	auth      Authenticator
	dashboard DashboardAPI
	notifier  Notifier

	mu        sync.RWMutex
	state     State
	listeners []func(State)
}

// ControllerOption defines a function type to modify the Controller instance.
type ControllerOption func(*Controller)

// OnStateChange registers a listener called after every state transition
func OnStateChange(listener func(State)) ControllerOption {
	return func(c *Controller) {
		c.listeners = append(c.listeners, listener)
	}
}

// NewController wires the controller to its collaborators. All four are required.
func NewController(store TokenStore, auth Authenticator, dash DashboardAPI, notifier Notifier, options ...ControllerOption) (*Controller, error) {
	if store == nil {
		return nil, errors.New("[NewController] token store is required")
	}
	if auth == nil {
		return nil, errors.New("[NewController] authenticator is required")
	}
	if dash == nil {
		return nil, errors.New("[NewController] dashboard client is required")
	}
	if notifier == nil {
		return nil, errors.New("[NewController] notifier is required")
	}

	c := &Controller{
		store:     store,
		auth:      auth,
		dashboard: dash,
		notifier:  notifier,
		state:     StateUnknown,
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// State returns the current session state
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Start checks the TokenStore and settles the initial state. Possession of a stored token is
// enough to be Authenticated; the server is not consulted.
func (c *Controller) Start(ctx context.Context) (State, error) {
	token, err := c.store.Get(ctx)
	if err != nil {
		c.notifier.Notify(TitleError, MsgStorageFailed)
		c.setState(StateUnauthenticated)
		return StateUnauthenticated, errors.Wrap(err, "[Start] read stored token")
	}

	if token == "" {
		c.setState(StateUnauthenticated)
		return StateUnauthenticated, nil
	}
	c.setState(StateAuthenticated)
	return StateAuthenticated, nil
}

// Login exchanges credentials for a token, persists it and moves to Authenticated.
// On failure the store and state are left untouched and the user is notified.
func (c *Controller) Login(ctx context.Context, username, password string) error {
	token, err := c.auth.Login(ctx, username, password)
	if err != nil {
		switch {
		case apperrors.Is(err, apperrors.ErrInvalidCredentials):
			c.notifier.Notify(TitleLoginFailed, credentialMessage(err))
		case apperrors.Is(err, apperrors.ErrConnection):
			c.notifier.Notify(TitleError, MsgCannotConnect)
		default:
			log.Debug().Err(err).Msg("login failed")
			c.notifier.Notify(TitleError, MsgUnexpectedResponse)
		}
		return err
	}

	if err := c.store.Set(ctx, token); err != nil {
		c.notifier.Notify(TitleError, MsgStorageFailed)
		return errors.Wrap(err, "[Login] persist token")
	}

	c.setState(StateAuthenticated)
	return nil
}

// Logout clears the stored token and moves to Unauthenticated. Logging out twice is a no-op.
func (c *Controller) Logout(ctx context.Context) error {
	if err := c.store.Clear(ctx); err != nil {
		c.notifier.Notify(TitleError, MsgStorageFailed)
		return errors.Wrap(err, "[Logout] clear stored token")
	}
	c.setState(StateUnauthenticated)
	return nil
}

// LoadDashboard fetches KPIs and the sales series with the stored token.
// A 401 from the server ends the session: the token is cleared and the state returns to
// Unauthenticated.
func (c *Controller) LoadDashboard(ctx context.Context) (*dashboard.Dashboard, error) {
	var d *dashboard.Dashboard
	err := c.withToken(ctx, func(token string) error {
		var err error
		d, err = c.dashboard.Load(ctx, token)
		return err
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Forecast fetches the next day projection with the stored token
func (c *Controller) Forecast(ctx context.Context) (*dashboard.Forecast, error) {
	var f *dashboard.Forecast
	err := c.withToken(ctx, func(token string) error {
		var err error
		f, err = c.dashboard.Forecast(ctx, token)
		return err
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

// StockAlerts fetches low stock alerts with the stored token
func (c *Controller) StockAlerts(ctx context.Context) ([]dashboard.StockAlert, error) {
	var alerts []dashboard.StockAlert
	err := c.withToken(ctx, func(token string) error {
		var err error
		alerts, err = c.dashboard.StockAlerts(ctx, token)
		return err
	})
	if err != nil {
		return nil, err
	}
	return alerts, nil
}

// withToken runs fetch with the token currently in the store and applies the session
// policy to whatever it returns.
func (c *Controller) withToken(ctx context.Context, fetch func(token string) error) error {
	token, err := c.store.Get(ctx)
	if err != nil {
		c.notifier.Notify(TitleError, MsgStorageFailed)
		return errors.Wrap(err, "read stored token")
	}
	if token == "" {
		// The store was emptied behind our back; keep the state consistent with it.
		c.setState(StateUnauthenticated)
		c.notifier.Notify(TitleSessionExpired, MsgLoginAgain)
		return apperrors.ErrNoSession
	}

	err = fetch(token)
	if err == nil {
		return nil
	}

	if apperrors.Is(err, apperrors.ErrUnauthorized) {
		if clearErr := c.store.Clear(ctx); clearErr != nil {
			log.Error().Err(clearErr).Msg("failed to clear rejected token")
			c.notifier.Notify(TitleError, MsgStorageFailed)
			return err
		}
		c.setState(StateUnauthenticated)
		c.notifier.Notify(TitleSessionExpired, MsgLoginAgain)
		return err
	}

	c.notifier.Notify(TitleError, MsgLoadFailed)
	return err
}

func (c *Controller) setState(next State) {
	c.mu.Lock()
	prev := c.state
	c.state = next
	listeners := slices.Clone(c.listeners)
	c.mu.Unlock()

	if prev == next {
		return
	}
	log.Debug().Stringer("from", prev).Stringer("to", next).Msg("session state changed")
	for _, l := range listeners {
		l(next)
	}
}

// credentialMessage returns the server supplied rejection message when there is one
func credentialMessage(err error) string {
	var withMessage interface{ ServerMessage() string }
	if apperrors.As(err, &withMessage) {
		return withMessage.ServerMessage()
	}
	return err.Error()
}

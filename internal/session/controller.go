// ABOUTME: Session controller for signup, login, logout, refresh and restore-on-load
// ABOUTME: Keeps persisted tokens and UI visibility consistent with the auth state

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/Sikan777/AtlanticPhoto/internal/client"
)

// ErrNotLoggedIn is returned by actions that need a session
var ErrNotLoggedIn = errors.New("not logged in")

// ErrNoTokens is returned by Refresh when login did not yield a token pair
var ErrNoTokens = errors.New("session has no tokens, log in again")

// SignupSuccessMessage is shown after a successful signup
const SignupSuccessMessage = "Registration successful!"

// Authenticator is the subset of the API client the controller uses
type Authenticator interface {
	Signup(ctx context.Context, input *client.SignupRequest) error
	Login(ctx context.Context, form url.Values) (*client.TokenPair, error)
	Logout(ctx context.Context, accessToken string) error
	Refresh(ctx context.Context, refreshToken string) (*client.TokenPair, error)
}

// Options configure a Controller
type Options struct {
	// RedirectURL is where the page goes after a successful signup.
	// Empty means stay.
	RedirectURL string
	Logger      *slog.Logger
}

// Controller owns the client-visible authentication state
type Controller struct {
	store    Store
	auth     Authenticator
	ui       Ports
	redirect string
	log      *slog.Logger

	mu      sync.Mutex
	state   State
	session Session

	refreshGroup singleflight.Group
}

// NewController creates a controller in the LoggedOut state.
// Call RestoreOnLoad to pick up a persisted session.
func NewController(store Store, auth Authenticator, ui Ports, opts Options) *Controller {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Controller{
		store:    store,
		auth:     auth,
		ui:       ui,
		redirect: opts.RedirectURL,
		log:      log.With("component", "session"),
		state:    LoggedOut,
	}
}

// State returns the current authentication state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Session returns a copy of the in-memory session
func (c *Controller) Session() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// AccessToken returns the bearer for authenticated requests, or ""
func (c *Controller) AccessToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != LoggedIn {
		return ""
	}
	return c.session.AccessToken
}

// RestoreOnLoad derives the initial state from persisted storage.
// It never contacts the server.
func (c *Controller) RestoreOnLoad() State {
	s := loadSession(c.store)

	c.mu.Lock()
	defer c.mu.Unlock()

	if !s.Present() {
		if s != (Session{}) {
			c.log.Warn("ignoring partial persisted session", "has_username", s.Username != "")
		}
		c.state = LoggedOut
		c.session = Session{}
		c.showLoggedOut()
		return c.state
	}

	c.state = LoggedIn
	c.session = s
	c.showLoggedIn(s.Username)
	c.log.Debug("session restored", "username", s.Username)
	return c.state
}

// SubmitSignup creates an account. Signup never logs the user in.
func (c *Controller) SubmitSignup(ctx context.Context, username, email, password string) error {
	err := c.auth.Signup(ctx, &client.SignupRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		c.logFailure("signup", err)
		if apiErr, ok := client.AsAPIError(err); ok {
			c.ui.Notify("Registration failed: " + apiErr.Detail)
		}
		return err
	}

	c.log.Info("signup succeeded", "username", username)
	c.ui.Notify(SignupSuccessMessage)
	if c.redirect != "" {
		c.ui.Navigate(c.redirect)
	}
	return nil
}

// SubmitLogin posts form-encoded credentials. On success the tokens from
// the response and the submitted username are persisted.
func (c *Controller) SubmitLogin(ctx context.Context, form url.Values) error {
	tokens, err := c.auth.Login(ctx, form)
	if err != nil {
		c.logFailure("login", err)
		return err
	}

	username := form.Get("username")
	s := Session{Username: username}
	if tokens.Complete() {
		s.AccessToken = tokens.AccessToken
		s.RefreshToken = tokens.RefreshToken
	}

	var persistErr error
	if s.Present() {
		if persistErr = saveSession(c.store, s); persistErr != nil {
			c.log.Error("failed to persist session", "error", persistErr)
		}
	} else {
		// Drop any earlier user's triple so a restart cannot resurrect it
		c.log.Warn("login response did not carry a complete session, not persisting", "username", username)
		if persistErr = clearSession(c.store); persistErr != nil {
			c.log.Error("failed to clear previous session", "error", persistErr)
		}
	}

	c.mu.Lock()
	c.state = LoggedIn
	c.session = s
	c.ui.SetVisible(LoginForm, false)
	c.showLoggedIn(username)
	c.mu.Unlock()

	c.log.Info("login succeeded", "username", username)
	if persistErr != nil {
		return fmt.Errorf("persist session: %w", persistErr)
	}
	return nil
}

// SubmitLogout ends the session on the server, then forgets it locally.
// A session without an access token is only forgotten locally.
func (c *Controller) SubmitLogout(ctx context.Context) error {
	c.mu.Lock()
	if c.state != LoggedIn {
		c.mu.Unlock()
		return ErrNotLoggedIn
	}
	token := c.session.AccessToken
	c.mu.Unlock()

	if token == "" {
		c.log.Warn("no access token, logging out locally")
	} else if err := c.auth.Logout(ctx, token); err != nil {
		c.logFailure("logout", err)
		return err
	}

	clearErr := clearSession(c.store)
	if clearErr != nil {
		c.log.Error("failed to clear persisted session", "error", clearErr)
	}

	c.mu.Lock()
	c.state = LoggedOut
	c.session = Session{}
	c.showLoggedOut()
	c.ui.SetVisible(LogoutForm, false)
	c.mu.Unlock()

	c.log.Info("logout succeeded")
	c.ui.Reload()
	if clearErr != nil {
		return fmt.Errorf("clear session: %w", clearErr)
	}
	return nil
}

// Refresh exchanges the refresh token for a new pair.
// Concurrent callers share one in-flight request.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	loggedIn := c.state == LoggedIn
	c.mu.Unlock()
	if !loggedIn {
		return ErrNotLoggedIn
	}

	_, err, shared := c.refreshGroup.Do("refresh", func() (interface{}, error) {
		return nil, c.refresh(ctx)
	})
	if shared {
		c.log.Debug("joined in-flight refresh")
	}
	return err
}

func (c *Controller) refresh(ctx context.Context) error {
	c.mu.Lock()
	if c.state != LoggedIn {
		c.mu.Unlock()
		return ErrNotLoggedIn
	}
	current := c.session
	c.mu.Unlock()

	if current.RefreshToken == "" {
		return ErrNoTokens
	}

	tokens, err := c.auth.Refresh(ctx, current.RefreshToken)
	if err != nil {
		c.logFailure("refresh", err)
		return err
	}
	if !tokens.Complete() {
		err := &client.APIError{Op: "refresh", StatusCode: 200, Detail: "response did not contain a token pair"}
		c.logFailure("refresh", err)
		return err
	}

	next := Session{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		Username:     current.Username,
	}
	if err := saveSession(c.store, next); err != nil {
		c.log.Error("failed to persist refreshed session", "error", err)
		return fmt.Errorf("persist session: %w", err)
	}

	c.mu.Lock()
	c.session = next
	c.mu.Unlock()

	c.log.Info("tokens refreshed", "username", next.Username)
	return nil
}

// showLoggedIn must be called with mu held
func (c *Controller) showLoggedIn(username string) {
	c.ui.SetVisible(LoginButton, false)
	c.ui.SetVisible(SignupButton, false)
	c.ui.SetVisible(LogoutButton, true)
	c.ui.SetText(UsernameDisplay, username)
}

// showLoggedOut must be called with mu held
func (c *Controller) showLoggedOut() {
	c.ui.SetVisible(LoginButton, true)
	c.ui.SetVisible(SignupButton, true)
	c.ui.SetVisible(LogoutButton, false)
	c.ui.SetText(UsernameDisplay, "")
}

func (c *Controller) logFailure(op string, err error) {
	if apiErr, ok := client.AsAPIError(err); ok {
		c.log.Error(op+" rejected", "status", apiErr.StatusCode, "detail", apiErr.Detail)
		return
	}
	c.log.Error(op+" failed", "error", err)
}

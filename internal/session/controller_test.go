// ABOUTME: Tests for the session controller
// ABOUTME: Drives signup/login/logout/refresh against a fake authenticator

package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Sikan777/AtlanticPhoto/internal/client"
)

type fakeAuth struct {
	signupErr   error
	loginTokens *client.TokenPair
	loginErr    error
	logoutErr   error
	refreshPair *client.TokenPair
	refreshErr  error
	calls       int
	lastForm    url.Values
	lastSignup  *client.SignupRequest
	lastBearer  string
	lastRefresh string
}

func (f *fakeAuth) Signup(ctx context.Context, input *client.SignupRequest) error {
	f.calls++
	f.lastSignup = input
	return f.signupErr
}

func (f *fakeAuth) Login(ctx context.Context, form url.Values) (*client.TokenPair, error) {
	f.calls++
	f.lastForm = form
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	if f.loginTokens == nil {
		return &client.TokenPair{}, nil
	}
	return f.loginTokens, nil
}

func (f *fakeAuth) Logout(ctx context.Context, accessToken string) error {
	f.calls++
	f.lastBearer = accessToken
	return f.logoutErr
}

func (f *fakeAuth) Refresh(ctx context.Context, refreshToken string) (*client.TokenPair, error) {
	f.calls++
	f.lastRefresh = refreshToken
	return f.refreshPair, f.refreshErr
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestController(store Store, auth *fakeAuth, redirect string) (*Controller, *Presentation) {
	ui := NewPresentation()
	c := NewController(store, auth, ui, Options{RedirectURL: redirect, Logger: quietLogger()})
	return c, ui
}

func loggedInStore() *MemoryStore {
	return NewMemoryStore(map[string]string{
		KeyAccessToken:  "abc",
		KeyRefreshToken: "def",
		KeyUsername:     "alice",
	})
}

func TestRestoreOnLoad_PersistedSession(t *testing.T) {
	auth := &fakeAuth{}
	c, ui := newTestController(loggedInStore(), auth, "")

	if got := c.RestoreOnLoad(); got != LoggedIn {
		t.Fatalf("expected LoggedIn, got %s", got)
	}
	if ui.Visible(LoginButton) || ui.Visible(SignupButton) {
		t.Error("expected login and signup buttons hidden")
	}
	if !ui.Visible(LogoutButton) {
		t.Error("expected logout button visible")
	}
	if ui.Text(UsernameDisplay) != "alice" {
		t.Errorf("expected username display alice, got %q", ui.Text(UsernameDisplay))
	}
	if auth.calls != 0 {
		t.Errorf("expected no network calls, got %d", auth.calls)
	}
}

func TestRestoreOnLoad_EmptyStoreIsIdempotent(t *testing.T) {
	auth := &fakeAuth{}
	c, ui := newTestController(NewMemoryStore(nil), auth, "")

	for i := 0; i < 2; i++ {
		if got := c.RestoreOnLoad(); got != LoggedOut {
			t.Fatalf("expected LoggedOut, got %s", got)
		}
		if ui.LoggedInView() {
			t.Error("expected logged-out presentation")
		}
		if !ui.Visible(LoginButton) || !ui.Visible(SignupButton) || ui.Visible(LogoutButton) {
			t.Error("unexpected button visibility")
		}
	}
	if auth.calls != 0 {
		t.Errorf("expected no network calls, got %d", auth.calls)
	}
}

func TestRestoreOnLoad_PartialSessionIsAbsent(t *testing.T) {
	store := NewMemoryStore(map[string]string{
		KeyAccessToken: "abc",
		KeyUsername:    "alice",
	})
	c, ui := newTestController(store, &fakeAuth{}, "")

	if got := c.RestoreOnLoad(); got != LoggedOut {
		t.Fatalf("expected LoggedOut for partial session, got %s", got)
	}
	if ui.Text(UsernameDisplay) != "" {
		t.Errorf("expected empty username display, got %q", ui.Text(UsernameDisplay))
	}
	if c.AccessToken() != "" {
		t.Error("expected no access token")
	}
}

func TestSubmitSignup_Success(t *testing.T) {
	store := NewMemoryStore(nil)
	auth := &fakeAuth{}
	c, ui := newTestController(store, auth, "/index.html")
	c.RestoreOnLoad()

	if err := c.SubmitSignup(context.Background(), "alice", "alice@example.com", "secret1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	notes := ui.Notifications()
	if len(notes) != 1 || notes[0] != SignupSuccessMessage {
		t.Errorf("expected success notification, got %v", notes)
	}
	if ui.NavigatedTo() != "/index.html" {
		t.Errorf("expected redirect to /index.html, got %q", ui.NavigatedTo())
	}
	if store.Len() != 0 {
		t.Error("signup must not persist session fields")
	}
	if c.State() != LoggedOut {
		t.Error("signup must not log in")
	}
	if auth.lastSignup.Email != "alice@example.com" {
		t.Errorf("unexpected signup payload %+v", auth.lastSignup)
	}
}

func TestSubmitSignup_NoRedirectConfigured(t *testing.T) {
	c, ui := newTestController(NewMemoryStore(nil), &fakeAuth{}, "")

	if err := c.SubmitSignup(context.Background(), "alice", "a@example.com", "pw"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ui.NavigatedTo() != "" {
		t.Errorf("expected no navigation, got %q", ui.NavigatedTo())
	}
}

func TestSubmitSignup_APIError(t *testing.T) {
	store := loggedInStore()
	auth := &fakeAuth{signupErr: &client.APIError{Op: "signup", StatusCode: 400, Detail: "Email already registered"}}
	c, ui := newTestController(store, auth, "/index.html")
	c.RestoreOnLoad()
	before := c.Session()

	err := c.SubmitSignup(context.Background(), "alice", "alice@example.com", "secret1")
	if Classify(err) != OutcomeAPIError {
		t.Fatalf("expected API error outcome, got %v", err)
	}

	notes := ui.Notifications()
	if len(notes) != 1 || notes[0] != "Registration failed: Email already registered" {
		t.Errorf("unexpected notifications %v", notes)
	}
	if ui.NavigatedTo() != "" {
		t.Error("expected no redirect on failure")
	}
	if c.Session() != before {
		t.Error("session must not change on signup failure")
	}
	if v, _ := store.Get(KeyAccessToken); v != "abc" {
		t.Error("persisted fields must not change on signup failure")
	}
}

func TestSubmitSignup_NetworkErrorOnlyLogged(t *testing.T) {
	auth := &fakeAuth{signupErr: &client.NetworkError{Op: "signup", Reason: "cannot connect"}}
	c, ui := newTestController(NewMemoryStore(nil), auth, "")

	err := c.SubmitSignup(context.Background(), "alice", "a@example.com", "pw")
	if Classify(err) != OutcomeNetworkError {
		t.Fatalf("expected network outcome, got %v", err)
	}
	if len(ui.Notifications()) != 0 {
		t.Errorf("expected no notification, got %v", ui.Notifications())
	}
}

func TestSubmitLogin_Success(t *testing.T) {
	store := NewMemoryStore(nil)
	auth := &fakeAuth{loginTokens: &client.TokenPair{AccessToken: "abc", RefreshToken: "def", TokenType: "bearer"}}
	c, ui := newTestController(store, auth, "")
	c.RestoreOnLoad()
	ui.SetVisible(LoginForm, true)

	form := url.Values{"username": {"alice"}, "password": {"pw"}}
	if err := c.SubmitLogin(context.Background(), form); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.State() != LoggedIn {
		t.Errorf("expected LoggedIn, got %s", c.State())
	}
	if !ui.LoggedInView() {
		t.Error("expected logged-in presentation")
	}
	if ui.Visible(LoginForm) {
		t.Error("expected login form closed")
	}
	if ui.Text(UsernameDisplay) != "alice" {
		t.Errorf("expected username alice, got %q", ui.Text(UsernameDisplay))
	}
	for key, want := range map[string]string{KeyAccessToken: "abc", KeyRefreshToken: "def", KeyUsername: "alice"} {
		if got, _ := store.Get(key); got != want {
			t.Errorf("expected %s=%q, got %q", key, want, got)
		}
	}
	if auth.lastForm.Get("password") != "pw" {
		t.Error("expected form to be forwarded unchanged")
	}
}

func TestSubmitLogin_SuccessWithoutTokens(t *testing.T) {
	store := NewMemoryStore(nil)
	c, ui := newTestController(store, &fakeAuth{}, "")
	c.RestoreOnLoad()

	if err := c.SubmitLogin(context.Background(), url.Values{"username": {"bob"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ui.LoggedInView() {
		t.Error("expected logged-in presentation regardless of body")
	}
	if ui.Text(UsernameDisplay) != "bob" {
		t.Errorf("expected username bob, got %q", ui.Text(UsernameDisplay))
	}
	if store.Len() != 0 {
		t.Error("expected nothing persisted without tokens")
	}
}

func TestSubmitLogin_WithoutTokensDropsPreviousUser(t *testing.T) {
	store := loggedInStore()
	auth := &fakeAuth{}
	c, _ := newTestController(store, auth, "")
	c.RestoreOnLoad()

	if err := c.SubmitLogin(context.Background(), url.Values{"username": {"bob"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("expected alice's session removed, store has %d keys", store.Len())
	}

	reloaded, ui := newTestController(store, auth, "")
	if state := reloaded.RestoreOnLoad(); state != LoggedOut {
		t.Errorf("expected LoggedOut after reload, got %s", state)
	}
	if got := ui.Text(UsernameDisplay); got != "" {
		t.Errorf("expected no username after reload, got %q", got)
	}

	// Logout of the tokenless session never sends an empty bearer
	calls := auth.calls
	if err := c.SubmitLogout(context.Background()); err != nil {
		t.Fatalf("unexpected logout error: %v", err)
	}
	if auth.calls != calls {
		t.Error("expected no logout request without an access token")
	}
	if c.State() != LoggedOut {
		t.Error("expected LoggedOut after local logout")
	}
}

func TestRefresh_WithoutTokens(t *testing.T) {
	auth := &fakeAuth{}
	c, _ := newTestController(NewMemoryStore(nil), auth, "")
	c.RestoreOnLoad()
	c.SubmitLogin(context.Background(), url.Values{"username": {"bob"}})

	calls := auth.calls
	if err := c.Refresh(context.Background()); !errors.Is(err, ErrNoTokens) {
		t.Fatalf("expected ErrNoTokens, got %v", err)
	}
	if auth.calls != calls {
		t.Error("expected no refresh request without a refresh token")
	}
}

func TestSubmitLogin_FailureLeavesPresentation(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"api error", &client.APIError{Op: "login", StatusCode: 401, Detail: "Invalid password"}},
		{"network error", &client.NetworkError{Op: "login", Reason: "cannot connect"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := NewMemoryStore(nil)
			c, ui := newTestController(store, &fakeAuth{loginErr: tc.err}, "")
			c.RestoreOnLoad()

			err := c.SubmitLogin(context.Background(), url.Values{"username": {"alice"}})
			if err == nil {
				t.Fatal("expected error")
			}
			if c.State() != LoggedOut {
				t.Error("expected state unchanged")
			}
			if ui.LoggedInView() || !ui.Visible(LoginButton) {
				t.Error("expected logged-out presentation unchanged")
			}
			if len(ui.Notifications()) != 0 {
				t.Error("login failures must not notify")
			}
			if store.Len() != 0 {
				t.Error("expected nothing persisted")
			}
		})
	}
}

func TestSubmitLogout_Success(t *testing.T) {
	store := loggedInStore()
	auth := &fakeAuth{}
	c, ui := newTestController(store, auth, "")
	c.RestoreOnLoad()

	if err := c.SubmitLogout(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if auth.lastBearer != "abc" {
		t.Errorf("expected access token as bearer, got %q", auth.lastBearer)
	}
	if store.Len() != 0 {
		t.Error("expected persisted session cleared")
	}
	if c.State() != LoggedOut {
		t.Error("expected LoggedOut")
	}
	if ui.LoggedInView() || !ui.Visible(LoginButton) || !ui.Visible(SignupButton) || ui.Visible(LogoutButton) {
		t.Error("expected logged-out presentation")
	}
	if ui.Reloads() != 1 {
		t.Errorf("expected one reload, got %d", ui.Reloads())
	}
}

func TestSubmitLogout_FailureKeepsSession(t *testing.T) {
	store := loggedInStore()
	auth := &fakeAuth{logoutErr: &client.APIError{Op: "logout", StatusCode: 401, Detail: "Already logged out"}}
	c, ui := newTestController(store, auth, "")
	c.RestoreOnLoad()

	if err := c.SubmitLogout(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if c.State() != LoggedIn {
		t.Error("expected to remain LoggedIn")
	}
	if v, _ := store.Get(KeyUsername); v != "alice" {
		t.Error("expected persisted session kept")
	}
	if !ui.LoggedInView() {
		t.Error("expected logged-in presentation kept")
	}
	if ui.Reloads() != 0 {
		t.Error("expected no reload on failure")
	}
}

func TestSubmitLogout_WhenLoggedOut(t *testing.T) {
	auth := &fakeAuth{}
	c, _ := newTestController(NewMemoryStore(nil), auth, "")
	c.RestoreOnLoad()

	err := c.SubmitLogout(context.Background())
	if !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
	if auth.calls != 0 {
		t.Error("expected no request")
	}
	if Classify(err) != OutcomeRejected {
		t.Errorf("expected rejected outcome, got %s", Classify(err))
	}
}

func TestRefresh_ReplacesTokens(t *testing.T) {
	store := loggedInStore()
	auth := &fakeAuth{refreshPair: &client.TokenPair{AccessToken: "abc2", RefreshToken: "def2"}}
	c, _ := newTestController(store, auth, "")
	c.RestoreOnLoad()

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if auth.lastRefresh != "def" {
		t.Errorf("expected refresh token bearer, got %q", auth.lastRefresh)
	}
	s := c.Session()
	if s.AccessToken != "abc2" || s.RefreshToken != "def2" || s.Username != "alice" {
		t.Errorf("unexpected session %+v", s)
	}
	if v, _ := store.Get(KeyAccessToken); v != "abc2" {
		t.Error("expected new access token persisted")
	}
}

func TestRefresh_FailureKeepsTokens(t *testing.T) {
	store := loggedInStore()
	auth := &fakeAuth{refreshErr: &client.APIError{Op: "refresh", StatusCode: 401, Detail: "Invalid refresh token"}}
	c, _ := newTestController(store, auth, "")
	c.RestoreOnLoad()

	if err := c.Refresh(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if c.Session().AccessToken != "abc" {
		t.Error("expected old access token kept")
	}
}

func TestRefresh_WhenLoggedOut(t *testing.T) {
	c, _ := newTestController(NewMemoryStore(nil), &fakeAuth{}, "")
	if err := c.Refresh(context.Background()); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
}

// slowRefresh blocks every refresh until release is closed
type slowRefresh struct {
	fakeAuth
	started chan struct{}
	release chan struct{}
	n       atomic.Int32
}

func (s *slowRefresh) Refresh(ctx context.Context, refreshToken string) (*client.TokenPair, error) {
	if s.n.Add(1) == 1 {
		close(s.started)
	}
	<-s.release
	return &client.TokenPair{AccessToken: "abc2", RefreshToken: "def2"}, nil
}

func TestRefresh_ConcurrentCallsShareOneRequest(t *testing.T) {
	auth := &slowRefresh{started: make(chan struct{}), release: make(chan struct{})}
	c := NewController(loggedInStore(), auth, NewPresentation(), Options{Logger: quietLogger()})
	c.RestoreOnLoad()

	var wg sync.WaitGroup
	errs := make([]error, 3)
	wg.Add(1)
	go func() {
		defer wg.Done()
		errs[0] = c.Refresh(context.Background())
	}()
	<-auth.started

	for i := 1; i < len(errs); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = c.Refresh(context.Background())
		}()
	}
	// Let the followers reach the in-flight call
	time.Sleep(50 * time.Millisecond)
	close(auth.release)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("caller %d: unexpected error: %v", i, err)
		}
	}
	if got := auth.n.Load(); got != 1 {
		t.Errorf("expected one refresh request, got %d", got)
	}
	if c.Session().AccessToken != "abc2" {
		t.Error("expected refreshed access token")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want Outcome
	}{
		{nil, OutcomeOK},
		{&client.NetworkError{Op: "x"}, OutcomeNetworkError},
		{&client.APIError{Op: "x", StatusCode: 500}, OutcomeAPIError},
		{ErrNotLoggedIn, OutcomeRejected},
	}

	for _, tc := range tests {
		t.Run(tc.want.String(), func(t *testing.T) {
			if got := Classify(tc.err); got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

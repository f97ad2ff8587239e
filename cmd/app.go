// ABOUTME: Wiring shared by every command: config, logger, API client, session controller
// ABOUTME: Maps controller outcomes to exit codes and prints pending notifications

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Sikan777/AtlanticPhoto/internal/client"
	"github.com/Sikan777/AtlanticPhoto/internal/config"
	"github.com/Sikan777/AtlanticPhoto/internal/logger"
	"github.com/Sikan777/AtlanticPhoto/internal/session"
)

// Exit codes
const (
	exitOK       = 0
	exitRejected = 1
	exitError    = 2
)

// logOutput receives CLI logs; tests swap it out
var logOutput io.Writer = os.Stderr

// app bundles the collaborators a command needs
type app struct {
	cfg     *config.Config
	log     *slog.Logger
	api     *client.Client
	ui      *session.Presentation
	session *session.Controller
}

// newApp builds the collaborators and restores the persisted session,
// the way the page does on load.
func newApp(logOut io.Writer) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log := logger.Init(logOut, cfg.LogLevel, cfg.LogFormat)
	api := client.New(cfg.APIURL, client.WithTimeout(cfg.Timeout))
	ui := session.NewPresentation()
	ctrl := session.NewController(session.NewFileStore(cfg.ConfigDir), api, ui, session.Options{
		RedirectURL: cfg.RedirectURL,
		Logger:      log,
	})
	ctrl.RestoreOnLoad()

	return &app{cfg: cfg, log: log, api: api, ui: ui, session: ctrl}, nil
}

// signalContext cancels on SIGINT/SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// exitCode maps an action error to the process exit code
func exitCode(err error) int {
	switch session.Classify(err) {
	case session.OutcomeOK:
		return exitOK
	case session.OutcomeAPIError:
		return exitRejected
	case session.OutcomeRejected:
		if errors.Is(err, session.ErrNotLoggedIn) || errors.Is(err, session.ErrNoTokens) {
			return exitRejected
		}
		return exitError
	default:
		return exitError
	}
}

// result is the JSON shape every auth command prints with --json
type result struct {
	Action        string   `json:"action"`
	Outcome       string   `json:"outcome"`
	LoggedIn      bool     `json:"logged_in"`
	Username      string   `json:"username,omitempty"`
	Notifications []string `json:"notifications,omitempty"`
	Redirect      string   `json:"redirect,omitempty"`
	Error         string   `json:"error,omitempty"`
}

// report prints the outcome of an action and returns the exit code
func (a *app) report(w io.Writer, action string, err error, okMessage string) int {
	notes := a.ui.DrainNotifications()

	if IsJSONOutput() {
		r := result{
			Action:        action,
			Outcome:       session.Classify(err).String(),
			LoggedIn:      a.session.State() == session.LoggedIn,
			Username:      a.ui.Text(session.UsernameDisplay),
			Notifications: notes,
			Redirect:      a.ui.NavigatedTo(),
		}
		if err != nil {
			r.Error = err.Error()
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.Encode(r)
		return exitCode(err)
	}

	for _, n := range notes {
		fmt.Fprintln(w, n)
	}
	if target := a.ui.NavigatedTo(); target != "" {
		fmt.Fprintf(w, "Continue at: %s\n", target)
	}
	switch {
	case err == nil:
		if okMessage != "" {
			fmt.Fprintln(w, okMessage)
		}
	case len(notes) == 0:
		fmt.Fprintf(w, "Error: %v\n", err)
	}
	return exitCode(err)
}

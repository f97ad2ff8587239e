// ABOUTME: Embeds one of the forms as a bubbletea model for a TUI panel
// ABOUTME: Emits SubmittedMsg on completion and CancelledMsg on esc or abort

package forms

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// Kind selects which form a Model shows
type Kind int

const (
	KindLogin Kind = iota
	KindSignup
	KindLogout
)

func (k Kind) String() string {
	switch k {
	case KindLogin:
		return "login"
	case KindSignup:
		return "signup"
	case KindLogout:
		return "logout"
	default:
		return "unknown"
	}
}

// SubmittedMsg is sent when the form completes
type SubmittedMsg struct {
	Kind   Kind
	Login  Login
	Signup Signup
}

// CancelledMsg is sent when the form is dismissed
type CancelledMsg struct {
	Kind Kind
}

// Model wraps a huh form for one panel
type Model struct {
	kind    Kind
	form    *huh.Form
	login   Login
	signup  Signup
	confirm bool
	done    bool
}

// New creates the form for kind. Values in prefill are shown in the
// inputs, so a rejected submission can be corrected.
func New(kind Kind, prefill SubmittedMsg) *Model {
	m := &Model{
		kind:    kind,
		login:   prefill.Login,
		signup:  prefill.Signup,
		confirm: true,
	}
	switch kind {
	case KindSignup:
		m.form = NewSignupForm(&m.signup)
	case KindLogout:
		m.form = NewLogoutForm(&m.confirm)
	default:
		m.form = NewLoginForm(&m.login)
	}
	return m
}

// Kind returns the form kind
func (m *Model) Kind() Kind {
	return m.kind
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return m.form.Init()
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.done {
		return m, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return m.finish(m.cancelled())
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if m.kind == KindLogout && !m.confirm {
			return m.finish(m.cancelled())
		}
		return m.finish(SubmittedMsg{Kind: m.kind, Login: m.login, Signup: m.signup})
	case huh.StateAborted:
		return m.finish(m.cancelled())
	}
	return m, cmd
}

func (m *Model) cancelled() tea.Msg {
	return CancelledMsg{Kind: m.kind}
}

func (m *Model) finish(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.done = true
	return m, func() tea.Msg { return msg }
}

// View implements tea.Model
func (m *Model) View() string {
	return m.form.View()
}

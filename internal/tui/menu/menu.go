// ABOUTME: Action menu (the navbar) for the TUI home screen
// ABOUTME: Lists only the actions whose buttons are visible for the current auth state

package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Sikan777/AtlanticPhoto/internal/tui/icons"
	"github.com/Sikan777/AtlanticPhoto/internal/tui/styles"
)

// Action is something the user can do from the menu
type Action int

const (
	ActionLogin Action = iota
	ActionSignup
	ActionLogout
	ActionUpload
	ActionSearch
	ActionRefresh
	ActionQuit
)

// ActionSelectedMsg is sent when an action is chosen
type ActionSelectedMsg struct {
	Action Action
}

// CancelledMsg is sent when the menu is dismissed
type CancelledMsg struct{}

type option struct {
	label   string
	icon    icons.Icon
	value   Action
	enabled bool
}

// Menu is the action list
type Menu struct {
	options []option
	cursor  int
}

// New creates the menu for the given auth state
func New(loggedIn bool) *Menu {
	m := &Menu{}
	m.SetLoggedIn(loggedIn)
	return m
}

// SetLoggedIn swaps login/signup for logout/refresh and resets the cursor
func (m *Menu) SetLoggedIn(loggedIn bool) {
	m.options = []option{
		{label: "Log in", icon: icons.Login, value: ActionLogin, enabled: !loggedIn},
		{label: "Sign up", icon: icons.Signup, value: ActionSignup, enabled: !loggedIn},
		{label: "Log out", icon: icons.Logout, value: ActionLogout, enabled: loggedIn},
		{label: "Upload image", icon: icons.Upload, value: ActionUpload, enabled: true},
		{label: "Search uploads", icon: icons.Search, value: ActionSearch, enabled: true},
		{label: "Refresh session", icon: icons.Refresh, value: ActionRefresh, enabled: loggedIn},
		{label: "Quit", icon: icons.Quit, value: ActionQuit, enabled: true},
	}
	m.cursor = 0
}

// Actions returns the enabled actions in display order
func (m *Menu) Actions() []Action {
	var out []Action
	for _, o := range m.visible() {
		out = append(out, o.value)
	}
	return out
}

// Selected returns the action under the cursor
func (m *Menu) Selected() Action {
	return m.visible()[m.cursor].value
}

func (m *Menu) visible() []option {
	var out []option
	for _, o := range m.options {
		if o.enabled {
			out = append(out, o)
		}
	}
	return out
}

// Init implements tea.Model
func (m *Menu) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	count := len(m.visible())
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < count-1 {
			m.cursor++
		}
	case "enter":
		action := m.Selected()
		return m, func() tea.Msg { return ActionSelectedMsg{Action: action} }
	case "esc":
		return m, func() tea.Msg { return CancelledMsg{} }
	}
	return m, nil
}

// View implements tea.Model
func (m *Menu) View() string {
	selected := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	normal := lipgloss.NewStyle().Foreground(styles.Text)

	var b strings.Builder
	b.WriteString(styles.Title.Render(icons.Menu.String() + " Menu"))
	b.WriteString("\n")
	for i, o := range m.visible() {
		cursor := "  "
		style := normal
		if i == m.cursor {
			cursor = "> "
			style = selected
		}
		b.WriteString(cursor + style.Render(o.icon.String()+" "+o.label) + "\n")
	}
	return b.String()
}

// String returns the string representation of an Action
func (a Action) String() string {
	switch a {
	case ActionLogin:
		return "login"
	case ActionSignup:
		return "signup"
	case ActionLogout:
		return "logout"
	case ActionUpload:
		return "upload"
	case ActionSearch:
		return "search"
	case ActionRefresh:
		return "refresh"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

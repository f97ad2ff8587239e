// ABOUTME: Tests for the action menu
// ABOUTME: Validates which actions are offered per auth state and key handling

package menu

import (
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestMenuLoggedOutActions(t *testing.T) {
	m := New(false)

	want := []Action{ActionLogin, ActionSignup, ActionUpload, ActionSearch, ActionQuit}
	if got := m.Actions(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestMenuLoggedInActions(t *testing.T) {
	m := New(true)

	want := []Action{ActionLogout, ActionUpload, ActionSearch, ActionRefresh, ActionQuit}
	if got := m.Actions(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestMenuSetLoggedInResetsCursor(t *testing.T) {
	m := New(false)
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})

	m.SetLoggedIn(true)
	if m.Selected() != ActionLogout {
		t.Errorf("expected cursor on logout, got %s", m.Selected())
	}
}

func TestMenuEnterSelects(t *testing.T) {
	m := New(false)
	m.Update(tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on enter")
	}
	msg, ok := cmd().(ActionSelectedMsg)
	if !ok {
		t.Fatalf("expected ActionSelectedMsg, got %T", cmd())
	}
	if msg.Action != ActionSignup {
		t.Errorf("expected signup, got %s", msg.Action)
	}
}

func TestMenuCursorBounds(t *testing.T) {
	m := New(true)
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.Selected() != ActionLogout {
		t.Errorf("cursor moved above first item: %s", m.Selected())
	}

	for i := 0; i < 10; i++ {
		m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.Selected() != ActionQuit {
		t.Errorf("cursor moved past last item: %s", m.Selected())
	}
}

func TestMenuEscCancels(t *testing.T) {
	m := New(false)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected a command on esc")
	}
	if _, ok := cmd().(CancelledMsg); !ok {
		t.Errorf("expected CancelledMsg, got %T", cmd())
	}
}

func TestMenuViewHidesDisabled(t *testing.T) {
	view := New(true).View()
	if strings.Contains(view, "Log in") {
		t.Error("expected login hidden when logged in")
	}
	if !strings.Contains(view, "Log out") {
		t.Error("expected logout shown when logged in")
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		action   Action
		expected string
	}{
		{ActionLogin, "login"},
		{ActionSignup, "signup"},
		{ActionLogout, "logout"},
		{ActionUpload, "upload"},
		{ActionSearch, "search"},
		{ActionRefresh, "refresh"},
		{ActionQuit, "quit"},
		{Action(99), "unknown"},
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			if got := tc.action.String(); got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

// ABOUTME: Tests for overlay panel exclusivity
// ABOUTME: Opening one panel closes the others; escape closes all

package tui

import (
	"testing"

	"github.com/Sikan777/AtlanticPhoto/internal/session"
)

func TestPanelsStartClosed(t *testing.T) {
	p := Panels{ui: session.NewPresentation()}

	if got := p.Open(); got != PanelNone {
		t.Errorf("expected no open panel, got %s", got)
	}
}

func TestPanelsOpeningClosesOthers(t *testing.T) {
	for _, first := range panelOrder {
		for _, second := range panelOrder {
			if first == second {
				continue
			}
			ui := session.NewPresentation()
			p := Panels{ui: ui}

			p.Toggle(first)
			if !p.Toggle(second) {
				t.Fatalf("%s then %s: expected second to open", first, second)
			}
			if ui.Visible(panelElements[first]) {
				t.Errorf("%s then %s: expected first closed", first, second)
			}
			if got := p.Open(); got != second {
				t.Errorf("%s then %s: expected %s open, got %s", first, second, second, got)
			}
		}
	}
}

func TestPanelsToggleOpenPanelCloses(t *testing.T) {
	p := Panels{ui: session.NewPresentation()}

	if !p.Toggle(PanelLogin) {
		t.Fatal("expected login to open")
	}
	if p.Toggle(PanelLogin) {
		t.Error("expected second toggle to close login")
	}
	if got := p.Open(); got != PanelNone {
		t.Errorf("expected no open panel, got %s", got)
	}
}

func TestPanelsCloseAll(t *testing.T) {
	ui := session.NewPresentation()
	p := Panels{ui: ui}
	p.Toggle(PanelSignup)

	p.CloseAll()

	for _, panel := range panelOrder {
		if ui.Visible(panelElements[panel]) {
			t.Errorf("expected %s closed", panel)
		}
	}
}

func TestPanelsSeeControllerClosingForm(t *testing.T) {
	ui := session.NewPresentation()
	p := Panels{ui: ui}
	p.Toggle(PanelLogin)

	ui.SetVisible(session.LoginForm, false)

	if got := p.Open(); got != PanelNone {
		t.Errorf("expected login closed by presentation, got %s", got)
	}
}

func TestPanelsToggleNoneIsNoop(t *testing.T) {
	p := Panels{ui: session.NewPresentation()}
	if p.Toggle(PanelNone) {
		t.Error("expected PanelNone not to open")
	}
}

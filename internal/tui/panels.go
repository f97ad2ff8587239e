// ABOUTME: Mutually exclusive overlay panels of the page (menu, search, forms, upload)
// ABOUTME: Panel visibility lives in the session presentation so the controller can close forms

package tui

import "github.com/Sikan777/AtlanticPhoto/internal/session"

// Panel is one overlay of the page
type Panel int

const (
	PanelNone Panel = iota
	PanelMenu
	PanelSearch
	PanelLogin
	PanelSignup
	PanelLogout
	PanelUpload
)

// Elements for the panels the session controller does not know about
const (
	Navbar     session.Element = "navbar"
	SearchForm session.Element = "search-form"
	UploadForm session.Element = "upload-form"
)

var panelElements = map[Panel]session.Element{
	PanelMenu:   Navbar,
	PanelSearch: SearchForm,
	PanelLogin:  session.LoginForm,
	PanelSignup: session.SignupForm,
	PanelLogout: session.LogoutForm,
	PanelUpload: UploadForm,
}

// panelOrder fixes the lookup order of Open
var panelOrder = []Panel{PanelMenu, PanelSearch, PanelLogin, PanelSignup, PanelLogout, PanelUpload}

func (p Panel) String() string {
	if p == PanelNone {
		return "none"
	}
	return string(panelElements[p])
}

// visibility is the part of session.Presentation the panels use
type visibility interface {
	SetVisible(el session.Element, visible bool)
	Visible(el session.Element) bool
}

// Panels opens and closes overlays so at most one is shown
type Panels struct {
	ui visibility
}

// Open returns the shown panel, or PanelNone
func (p Panels) Open() Panel {
	for _, panel := range panelOrder {
		if p.ui.Visible(panelElements[panel]) {
			return panel
		}
	}
	return PanelNone
}

// Toggle closes panel if it is open, otherwise opens it and closes the
// rest. It reports whether panel ends up open.
func (p Panels) Toggle(panel Panel) bool {
	el, ok := panelElements[panel]
	if !ok {
		return false
	}
	if p.ui.Visible(el) {
		p.ui.SetVisible(el, false)
		return false
	}
	p.CloseAll()
	p.ui.SetVisible(el, true)
	return true
}

// CloseAll hides every panel
func (p Panels) CloseAll() {
	for _, panel := range panelOrder {
		p.ui.SetVisible(panelElements[panel], false)
	}
}

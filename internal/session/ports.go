// ABOUTME: UI ports the session controller drives, and an in-memory implementation
// ABOUTME: Lets the controller run without a real rendering environment

package session

import "sync"

// Element identifies a UI control by role
type Element string

const (
	SignupForm      Element = "signup-form"
	LoginForm       Element = "login-form"
	LogoutForm      Element = "logout-form"
	LoginButton     Element = "login-btn"
	SignupButton    Element = "signup-btn"
	LogoutButton    Element = "logout-btn"
	UsernameDisplay Element = "username-data"
)

// Ports are the UI capabilities the controller needs
type Ports interface {
	SetVisible(el Element, visible bool)
	SetText(el Element, text string)
	Notify(message string)
	Navigate(target string)
	Reload()
}

// Presentation records UI state in memory. The CLI renders it, the TUI
// embeds it and tests assert on it.
type Presentation struct {
	mu            sync.Mutex
	visible       map[Element]bool
	text          map[Element]string
	notifications []string
	navigatedTo   string
	reloads       int
}

// NewPresentation returns the initial page: buttons for login and signup
// shown, logout hidden, every form panel closed.
func NewPresentation() *Presentation {
	return &Presentation{
		visible: map[Element]bool{
			LoginButton:  true,
			SignupButton: true,
			LogoutButton: false,
			LoginForm:    false,
			SignupForm:   false,
			LogoutForm:   false,
		},
		text: map[Element]string{},
	}
}

func (p *Presentation) SetVisible(el Element, visible bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.visible[el] = visible
}

func (p *Presentation) SetText(el Element, text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.text[el] = text
}

func (p *Presentation) Notify(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notifications = append(p.notifications, message)
}

func (p *Presentation) Navigate(target string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.navigatedTo = target
}

func (p *Presentation) Reload() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reloads++
}

// Visible reports whether el is shown
func (p *Presentation) Visible(el Element) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visible[el]
}

// Text returns the display text of el
func (p *Presentation) Text(el Element) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.text[el]
}

// Notifications returns a copy of every message shown so far
func (p *Presentation) Notifications() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.notifications...)
}

// DrainNotifications returns and forgets pending messages
func (p *Presentation) DrainNotifications() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := p.notifications
	p.notifications = nil
	return out
}

// NavigatedTo returns the last navigation target, if any
func (p *Presentation) NavigatedTo() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.navigatedTo
}

// Reloads counts Reload calls
func (p *Presentation) Reloads() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reloads
}

// LoggedInView reports whether the page shows the logged-in controls
func (p *Presentation) LoggedInView() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.visible[LoginButton] && !p.visible[SignupButton] && p.visible[LogoutButton]
}

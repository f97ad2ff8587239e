// ABOUTME: Login, signup and logout forms built with huh
// ABOUTME: Shared by CLI prompts (blocking Run) and the TUI (embedded as a tea.Model)

package forms

import (
	"fmt"
	"net/mail"
	"net/url"
	"unicode/utf8"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Signup holds the signup form values
type Signup struct {
	Username string
	Email    string
	Password string
}

// Complete reports whether every field is filled
func (s Signup) Complete() bool {
	return s.Username != "" && s.Email != "" && s.Password != ""
}

// Login holds the login form values
type Login struct {
	Username string
	Password string
}

// Complete reports whether both fields are filled
func (l Login) Complete() bool {
	return l.Username != "" && l.Password != ""
}

// Values encodes the credentials as the login form body
func (l Login) Values() url.Values {
	return url.Values{
		"username": {l.Username},
		"password": {l.Password},
	}
}

// createTheme returns the huh theme matching the TUI palette
func createTheme() *huh.Theme {
	t := huh.ThemeBase()

	sky := lipgloss.Color("#0EA5E9")
	skyLight := lipgloss.Color("#38BDF8")
	blue := lipgloss.Color("#3B82F6")
	gray := lipgloss.Color("#9CA3AF")
	grayLight := lipgloss.Color("#E5E7EB")
	red := lipgloss.Color("#F87171")
	slate := lipgloss.Color("#334155")

	t.Group.Title = lipgloss.NewStyle().
		Foreground(sky).
		Bold(true).
		MarginBottom(1)
	t.Group.Description = lipgloss.NewStyle().
		Foreground(gray).
		MarginBottom(1)

	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(sky)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(skyLight).
		Bold(true)
	t.Focused.Description = lipgloss.NewStyle().
		Foreground(gray)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(red).
		SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(red)

	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(sky)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(gray)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(sky)
	t.Focused.TextInput.Text = lipgloss.NewStyle().
		Foreground(grayLight)

	t.Focused.FocusedButton = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(blue).
		Padding(0, 2).
		MarginRight(1)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Foreground(gray).
		Background(slate).
		Padding(0, 2).
		MarginRight(1)

	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(gray)

	return t
}

// NewSignupForm builds the signup form bound to s
func NewSignupForm(s *Signup) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Placeholder("3-50 characters").
				CharLimit(50).
				Value(&s.Username).
				Validate(ValidateUsername),
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&s.Email).
				Validate(ValidateEmail),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&s.Password).
				Validate(ValidatePassword),
		).Title("Sign up").
			Description("Create an AtlanticPhoto account"),
	).WithTheme(createTheme())
}

// NewLoginForm builds the login form bound to l
func NewLoginForm(l *Login) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Description("Your account email").
				Value(&l.Username).
				Validate(required("username")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&l.Password).
				Validate(required("password")),
		).Title("Log in"),
	).WithTheme(createTheme())
}

// NewLogoutForm asks for confirmation before logging out
func NewLogoutForm(confirm *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Log out?").
				Affirmative("Log out").
				Negative("Stay").
				Value(confirm),
		),
	).WithTheme(createTheme())
}

// ValidateUsername accepts 3 to 50 characters
func ValidateUsername(s string) error {
	if n := utf8.RuneCountInString(s); n < 3 || n > 50 {
		return fmt.Errorf("must be 3-50 characters")
	}
	return nil
}

// ValidateEmail accepts a bare address
func ValidateEmail(s string) error {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return fmt.Errorf("must be a valid email address")
	}
	return nil
}

// ValidatePassword accepts 6 to 8 characters, the backend's limit
func ValidatePassword(s string) error {
	if n := utf8.RuneCountInString(s); n < 6 || n > 8 {
		return fmt.Errorf("must be 6-8 characters")
	}
	return nil
}

// ValidateDescription accepts an empty description or 3 to 150 characters
func ValidateDescription(s string) error {
	if s == "" {
		return nil
	}
	if n := utf8.RuneCountInString(s); n < 3 || n > 150 {
		return fmt.Errorf("must be 3-150 characters")
	}
	return nil
}

func required(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

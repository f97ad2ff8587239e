// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Renders the page (buttons, panels, username, gallery) and runs auth actions as commands

package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Sikan777/AtlanticPhoto/internal/gallery"
	"github.com/Sikan777/AtlanticPhoto/internal/session"
	"github.com/Sikan777/AtlanticPhoto/internal/tui/dashboard"
	"github.com/Sikan777/AtlanticPhoto/internal/tui/filepicker"
	"github.com/Sikan777/AtlanticPhoto/internal/tui/forms"
	"github.com/Sikan777/AtlanticPhoto/internal/tui/icons"
	"github.com/Sikan777/AtlanticPhoto/internal/tui/menu"
	"github.com/Sikan777/AtlanticPhoto/internal/tui/recentfiles"
	"github.com/Sikan777/AtlanticPhoto/internal/tui/styles"
	"github.com/Sikan777/AtlanticPhoto/internal/tui/widgets"
)

// Layout constants
const (
	minTerminalWidth = 80 // Minimum width before using single-column layout
	panelPadding     = 4  // Total horizontal padding from panel borders (2 each side)
)

// API is what the TUI needs from the backend client
type API interface {
	session.Authenticator
	gallery.ImageUploader
}

// Options configure the TUI
type Options struct {
	RedirectURL   string
	UploadWorkers int
	ConfigDir     string
	Logger        *slog.Logger
}

// actionDoneMsg is sent when an auth action finishes
type actionDoneMsg struct {
	action menu.Action
	input  forms.SubmittedMsg
	err    error
}

// uploadDoneMsg is sent when an image upload finishes
type uploadDoneMsg struct {
	path string
	url  string
	err  error
}

// App is the root model for the TUI. It embeds the presentation, so it
// is the session.Ports the controller drives.
type App struct {
	*session.Presentation

	session *session.Controller
	gallery *gallery.Gallery
	recent  *recentfiles.History
	log     *slog.Logger
	panels  Panels

	width  int
	height int

	// Child models
	menu       *menu.Menu
	form       *forms.Model
	filePicker *filepicker.FilePicker
	search     textinput.Model
	spinner    spinner.Model
	dashboard  *dashboard.Dashboard

	busy        string // action in flight, "" when idle
	status      string
	statusLevel widgets.StatusLevel
	reloads     int
}

// New creates the TUI and restores the persisted session
func New(api API, store session.Store, opts Options) *App {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	search := textinput.New()
	search.Placeholder = "filter uploads"
	search.CharLimit = 100
	search.Prompt = icons.Search.String() + " "

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	a := &App{
		Presentation: session.NewPresentation(),
		recent:       recentfiles.New(opts.ConfigDir),
		log:          log.With("component", "tui"),
		search:       search,
		spinner:      sp,
		dashboard:    dashboard.New(0, 0),
	}
	a.panels = Panels{ui: a}
	a.session = session.NewController(store, api, a, session.Options{
		RedirectURL: opts.RedirectURL,
		Logger:      log,
	})
	a.gallery = gallery.New(api, a.session, opts.UploadWorkers, log)

	state := a.session.RestoreOnLoad()
	a.menu = menu.New(state == session.LoggedIn)
	a.refreshView()
	return a
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.dashboard.SetSize(a.dashboardWidth(), a.contentHeight())
		if a.filePicker != nil {
			a.filePicker.Update(msg)
		}
		if a.form != nil {
			return a.updateForm(msg)
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.panels.Open() {
		case PanelMenu:
			return a.updateMenu(msg)
		case PanelLogin, PanelSignup, PanelLogout:
			return a.updateForm(msg)
		case PanelUpload:
			return a.updateFilePicker(msg)
		case PanelSearch:
			return a.updateSearch(msg)
		default:
			return a.updateHome(msg)
		}

	case spinner.TickMsg:
		if a.busy == "" {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case menu.ActionSelectedMsg:
		return a, a.perform(msg.Action)

	case menu.CancelledMsg, forms.CancelledMsg, filepicker.CancelledMsg:
		a.closePanels()
		return a, nil

	case forms.SubmittedMsg:
		return a, a.submit(msg)

	case filepicker.FileSelectedMsg:
		a.closePanels()
		return a, a.startUpload(msg.Path)

	case actionDoneMsg:
		return a, a.handleActionDone(msg)

	case uploadDoneMsg:
		a.handleUploadDone(msg)
		return a, nil

	default:
		// huh form internals need their own messages
		if a.form != nil {
			return a.updateForm(msg)
		}
	}

	return a, nil
}

func (a *App) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "m":
		a.panels.Toggle(PanelMenu)
		a.syncPanels()
	case "l":
		return a, a.perform(menu.ActionLogin)
	case "s":
		return a, a.perform(menu.ActionSignup)
	case "o":
		return a, a.perform(menu.ActionLogout)
	case "u":
		return a, a.perform(menu.ActionUpload)
	case "/":
		return a, a.perform(menu.ActionSearch)
	case "r":
		return a, a.perform(menu.ActionRefresh)
	case "esc":
		a.closePanels()
	}
	return a, nil
}

func (a *App) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	model, cmd := a.menu.Update(msg)
	a.menu = model.(*menu.Menu)
	return a, cmd
}

func (a *App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.form == nil {
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" && a.busy == "" {
			a.closePanels()
		}
		return a, nil
	}
	model, cmd := a.form.Update(msg)
	a.form = model.(*forms.Model)
	return a, cmd
}

func (a *App) updateFilePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.filePicker == nil {
		return a, nil
	}
	model, cmd := a.filePicker.Update(msg)
	a.filePicker = model.(*filepicker.FilePicker)
	return a, cmd
}

func (a *App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		a.closePanels()
		return a, nil
	}

	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	a.dashboard.SetFilter(a.search.Value())
	return a, cmd
}

// perform starts a menu action. Actions whose button is hidden do nothing.
func (a *App) perform(action menu.Action) tea.Cmd {
	if action == menu.ActionQuit {
		return tea.Quit
	}
	if a.busy != "" {
		return nil
	}

	switch action {
	case menu.ActionLogin:
		if a.Visible(session.LoginButton) {
			return a.openForm(PanelLogin, forms.KindLogin, forms.SubmittedMsg{})
		}
	case menu.ActionSignup:
		if a.Visible(session.SignupButton) {
			return a.openForm(PanelSignup, forms.KindSignup, forms.SubmittedMsg{})
		}
	case menu.ActionLogout:
		if a.Visible(session.LogoutButton) {
			return a.openForm(PanelLogout, forms.KindLogout, forms.SubmittedMsg{})
		}
	case menu.ActionUpload:
		if a.panels.Toggle(PanelUpload) {
			a.filePicker = filepicker.New(a.recent.Paths())
			a.filePicker.Update(tea.WindowSizeMsg{Width: a.actionsWidth(), Height: a.contentHeight()})
		}
		a.syncPanels()
	case menu.ActionSearch:
		var cmd tea.Cmd
		if a.panels.Toggle(PanelSearch) {
			cmd = a.search.Focus()
		}
		a.syncPanels()
		return cmd
	case menu.ActionRefresh:
		if a.session.State() == session.LoggedIn {
			a.closePanels()
			return a.startAction(menu.ActionRefresh, forms.SubmittedMsg{})
		}
	}
	return nil
}

// openForm toggles a form panel, building a fresh form when it opens
func (a *App) openForm(panel Panel, kind forms.Kind, prefill forms.SubmittedMsg) tea.Cmd {
	opened := a.panels.Toggle(panel)
	a.syncPanels()
	if !opened {
		return nil
	}
	a.form = forms.New(kind, prefill)
	return a.form.Init()
}

// submit runs the controller action for a completed form
func (a *App) submit(msg forms.SubmittedMsg) tea.Cmd {
	a.form = nil
	switch msg.Kind {
	case forms.KindSignup:
		return a.startAction(menu.ActionSignup, msg)
	case forms.KindLogout:
		return a.startAction(menu.ActionLogout, msg)
	default:
		return a.startAction(menu.ActionLogin, msg)
	}
}

func (a *App) startAction(action menu.Action, in forms.SubmittedMsg) tea.Cmd {
	a.busy = action.String()
	a.status = ""
	return tea.Batch(a.spinner.Tick, a.runAction(action, in))
}

// runAction calls the controller off the UI loop
func (a *App) runAction(action menu.Action, in forms.SubmittedMsg) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		switch action {
		case menu.ActionLogin:
			err = a.session.SubmitLogin(ctx, in.Login.Values())
		case menu.ActionSignup:
			err = a.session.SubmitSignup(ctx, in.Signup.Username, in.Signup.Email, in.Signup.Password)
		case menu.ActionLogout:
			err = a.session.SubmitLogout(ctx)
		case menu.ActionRefresh:
			err = a.session.Refresh(ctx)
		}
		return actionDoneMsg{action: action, input: in, err: err}
	}
}

func (a *App) handleActionDone(msg actionDoneMsg) tea.Cmd {
	a.busy = ""

	notes := a.DrainNotifications()
	switch {
	case len(notes) > 0:
		a.setStatus(strings.Join(notes, " "), msg.err)
	case errors.Is(msg.err, session.ErrNotLoggedIn):
		a.setStatus("Not logged in.", msg.err)
	case msg.err != nil:
		a.setStatus(fmt.Sprintf("%s failed: %v", msg.action, msg.err), msg.err)
	default:
		a.setStatus(successMessage(msg.action, a.Text(session.UsernameDisplay)), nil)
	}

	if a.Reloads() > a.reloads {
		a.reloads = a.Reloads()
		a.reload()
	}

	var cmd tea.Cmd
	switch msg.action {
	case menu.ActionSignup:
		if msg.err == nil {
			if target := a.NavigatedTo(); target != "" {
				a.status += " Continue at: " + target
			}
			a.closePanels()
		} else {
			cmd = a.reopenForm(forms.KindSignup, msg.input)
		}
	case menu.ActionLogin:
		if msg.err != nil {
			cmd = a.reopenForm(forms.KindLogin, msg.input)
		}
	case menu.ActionLogout:
		a.closePanels()
	}

	a.refreshView()
	return cmd
}

// reopenForm shows a rejected form again with the submitted values
func (a *App) reopenForm(kind forms.Kind, input forms.SubmittedMsg) tea.Cmd {
	input.Login.Password = ""
	input.Signup.Password = ""
	a.form = forms.New(kind, input)
	return a.form.Init()
}

func successMessage(action menu.Action, username string) string {
	switch action {
	case menu.ActionLogin:
		return "Logged in as " + username
	case menu.ActionLogout:
		return "Logged out."
	case menu.ActionRefresh:
		return "Session refreshed."
	default:
		return "Done."
	}
}

func (a *App) startUpload(path string) tea.Cmd {
	if a.busy != "" {
		return nil
	}
	a.busy = "upload"
	a.status = ""
	return tea.Batch(a.spinner.Tick, a.runUpload(path))
}

func (a *App) runUpload(path string) tea.Cmd {
	return func() tea.Msg {
		url, err := a.gallery.Upload(context.Background(), path, "")
		return uploadDoneMsg{path: path, url: url, err: err}
	}
}

func (a *App) handleUploadDone(msg uploadDoneMsg) {
	a.busy = ""
	if msg.err != nil {
		a.setStatus("Upload failed: "+msg.err.Error(), msg.err)
		return
	}
	if err := a.recent.Record(msg.path, msg.url); err != nil {
		a.log.Warn("could not remember upload", "path", msg.path, "error", err)
	}
	a.setStatus("Uploaded: "+msg.url, nil)
	a.refreshView()
}

func (a *App) setStatus(text string, err error) {
	a.status = text
	if err != nil {
		a.statusLevel = widgets.StatusCritical
		return
	}
	a.statusLevel = widgets.StatusOK
}

// reload resets the page the way a browser reload would
func (a *App) reload() {
	a.closePanels()
	a.search.SetValue("")
	a.dashboard.SetFilter("")
}

// closePanels is the escape path: every panel closes
func (a *App) closePanels() {
	a.panels.CloseAll()
	a.syncPanels()
}

// syncPanels drops child models whose panel is no longer shown
func (a *App) syncPanels() {
	open := a.panels.Open()
	switch open {
	case PanelLogin, PanelSignup, PanelLogout:
	default:
		a.form = nil
	}
	if open != PanelUpload {
		a.filePicker = nil
	}
	if open != PanelSearch {
		a.search.Blur()
	}
}

// refreshView pulls auth state and uploads into the child models
func (a *App) refreshView() {
	a.menu.SetLoggedIn(a.session.State() == session.LoggedIn)
	a.dashboard.Update(a.Text(session.UsernameDisplay), a.gallery.URLs())
}

// View implements tea.Model
func (a *App) View() string {
	leftPane := styles.Panel.Width(a.dashboardWidth()).Render(a.dashboard.View())

	var rightPane string
	if open := a.panels.Open(); open != PanelNone {
		rightPane = styles.ActivePanel.Width(a.actionsWidth()).Render(a.viewPanel(open))
	} else {
		rightPane = styles.Panel.Width(a.actionsWidth()).Render(a.viewActions())
	}

	var content string
	if a.width < minTerminalWidth {
		content = lipgloss.JoinVertical(lipgloss.Left, leftPane, rightPane)
	} else {
		content = lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)
	}

	if a.status != "" {
		content += "\n" + widgets.StatusText(a.status, a.statusLevel)
	}

	return a.wrapWithFrame(content)
}

// viewPanel renders the open overlay
func (a *App) viewPanel(open Panel) string {
	switch open {
	case PanelMenu:
		return a.menu.View()
	case PanelSearch:
		return styles.Title.Render("Search uploads") + "\n" + a.search.View()
	case PanelUpload:
		if a.filePicker != nil {
			return a.filePicker.View()
		}
	case PanelLogin, PanelSignup, PanelLogout:
		if a.form != nil {
			return a.form.View()
		}
		if a.busy != "" {
			return a.spinner.View() + " Working..."
		}
	}
	return ""
}

// viewActions lists the visible buttons
func (a *App) viewActions() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Menu.String() + " Actions"))
	sb.WriteString("\n")
	if a.Visible(session.LoginButton) {
		sb.WriteString(icons.Login.String() + " Log in\n")
	}
	if a.Visible(session.SignupButton) {
		sb.WriteString(icons.Signup.String() + " Sign up\n")
	}
	if a.Visible(session.LogoutButton) {
		sb.WriteString(icons.Logout.String() + " Log out\n")
		sb.WriteString(icons.Refresh.String() + " Refresh session\n")
	}
	sb.WriteString(icons.Upload.String() + " Upload image\n")
	sb.WriteString(icons.Search.String() + " Search uploads\n")
	sb.WriteString(icons.Quit.String() + " Quit\n")
	return sb.String()
}

// dashboardWidth calculates the width for the dashboard pane
func (a *App) dashboardWidth() int {
	if a.width < minTerminalWidth {
		return max(a.width-panelPadding, 0)
	}
	return (a.width - panelPadding) / 2
}

// actionsWidth calculates the width for the panel pane
func (a *App) actionsWidth() int {
	if a.width < minTerminalWidth {
		return a.dashboardWidth()
	}
	return a.width - a.dashboardWidth() - 4
}

// contentHeight calculates the height available for dashboard content
func (a *App) contentHeight() int {
	// header, blank, panel border+padding (4), status, blank, footer
	return max(a.height-9, 0)
}

// frameWidth leaves one column so the frame does not wrap
func (a *App) frameWidth() int {
	return max(a.width-1, minTerminalWidth)
}

// renderHeader creates the header bar with app branding and the session badge
func (a *App) renderHeader() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)

	left := fmt.Sprintf(" %s %s ", icons.App.String(), titleStyle.Render("AtlanticPhoto"))
	right := " " + widgets.SessionBadge(a.Text(session.UsernameDisplay)) + " "

	fillWidth := max(width-4-lipgloss.Width(left)-lipgloss.Width(right), 0) // -4 for ╭─ and ─╮
	return borderStyle.Render("╭─") + left + borderStyle.Render(strings.Repeat("─", fillWidth)) + right + borderStyle.Render("─╮")
}

// renderFooter creates the footer with keyboard shortcuts and activity
func (a *App) renderFooter() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	var styled []string
	for _, s := range a.shortcuts() {
		parts := strings.SplitN(s, " ", 2)
		styled = append(styled, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
	}
	left := " " + strings.Join(styled, "  ") + " "

	right := ""
	if a.busy != "" {
		right = " " + a.spinner.View() + statusStyle.Render(" "+a.busy+"...") + " "
	}

	fillWidth := max(width-4-lipgloss.Width(left)-lipgloss.Width(right), 0) // -4 for ╰─ and ─╯
	return borderStyle.Render("╰─") + left + borderStyle.Render(strings.Repeat("─", fillWidth)) + right + borderStyle.Render("─╯")
}

// shortcuts lists "key label" pairs for the current panel
func (a *App) shortcuts() []string {
	switch a.panels.Open() {
	case PanelMenu, PanelUpload:
		return []string{"↑↓ Navigate", "Enter Select", "Esc Close"}
	case PanelLogin, PanelSignup, PanelLogout:
		return []string{"Tab Next", "Enter Submit", "Esc Close"}
	case PanelSearch:
		return []string{"Enter Apply", "Esc Close"}
	}

	var out []string
	if a.Visible(session.LoginButton) {
		out = append(out, "l Login")
	}
	if a.Visible(session.SignupButton) {
		out = append(out, "s Signup")
	}
	if a.Visible(session.LogoutButton) {
		out = append(out, "o Logout", "r Refresh")
	}
	return append(out, "u Upload", "/ Search", "m Menu", "q Quit")
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Run starts the TUI
func Run(api API, store session.Store, opts Options) error {
	app := New(api, store, opts)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

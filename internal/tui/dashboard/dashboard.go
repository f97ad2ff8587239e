// ABOUTME: Home pane showing the session and the uploaded images list
// ABOUTME: The search panel narrows the list with a case-insensitive filter

package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Sikan777/AtlanticPhoto/internal/tui/icons"
	"github.com/Sikan777/AtlanticPhoto/internal/tui/styles"
	"github.com/Sikan777/AtlanticPhoto/internal/tui/widgets"
)

// Dashboard displays the account and gallery
type Dashboard struct {
	username string
	images   []string
	filter   string
	width    int
	height   int
}

// New creates an empty dashboard
func New(width, height int) *Dashboard {
	return &Dashboard{
		width:  width,
		height: height,
	}
}

// Update replaces the displayed username and image URLs
func (d *Dashboard) Update(username string, images []string) {
	d.username = username
	d.images = images
}

// SetFilter narrows the image list to URLs containing q
func (d *Dashboard) SetFilter(q string) {
	d.filter = strings.TrimSpace(q)
}

// SetSize updates the dashboard dimensions
func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// Matches returns the images that pass the filter
func (d *Dashboard) Matches() []string {
	if d.filter == "" {
		return d.images
	}
	q := strings.ToLower(d.filter)
	var out []string
	for _, u := range d.images {
		if strings.Contains(strings.ToLower(u), q) {
			out = append(out, u)
		}
	}
	return out
}

// View renders the dashboard
func (d *Dashboard) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Account"))
	sb.WriteString("\n")
	sb.WriteString(widgets.SessionBadge(d.username))
	sb.WriteString("\n")
	if d.username == "" {
		sb.WriteString(styles.Subtitle.Render("Log in or sign up to upload under your account."))
	}
	sb.WriteString("\n\n")

	sb.WriteString(styles.Title.Render(fmt.Sprintf("%s Uploaded images (%d)", icons.Image.String(), len(d.images))))
	sb.WriteString("\n")

	matches := d.Matches()
	if d.filter != "" {
		sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("%s %q: %d of %d", icons.Search.String(), d.filter, len(matches), len(d.images))))
		sb.WriteString("\n")
	}

	switch {
	case len(d.images) == 0:
		sb.WriteString(styles.Subtitle.Render("No images uploaded yet. Press u to upload."))
	case len(matches) == 0:
		sb.WriteString(styles.Subtitle.Render("No uploads match."))
	default:
		for _, u := range matches {
			sb.WriteString(icons.Image.String() + " " + styles.Link.Render(u) + "\n")
		}
	}

	return lipgloss.NewStyle().
		Width(d.width).
		Height(d.height).
		Render(sb.String())
}

// ABOUTME: Whoami command for atlantic-photo CLI
// ABOUTME: Shows the restored session without contacting the backend

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sikan777/AtlanticPhoto/internal/session"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show who is logged in",
	Long: `Show the session restored from the config directory.

The backend is not contacted; a stored session is trusted until the next request fails.

Exit codes:
  0 - Logged in
  1 - Not logged in`,
	Run: func(cmd *cobra.Command, args []string) {
		if code := runWhoami(os.Stdout); code != 0 {
			os.Exit(code)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(w io.Writer) int {
	a, err := newApp(logOutput)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitError
	}

	loggedIn := a.session.State() == session.LoggedIn
	if IsJSONOutput() {
		fmt.Fprintln(w, formatWhoamiJSON(a.ui, loggedIn))
	} else {
		fmt.Fprintln(w, formatWhoamiHuman(a.ui, loggedIn))
	}

	if !loggedIn {
		return exitRejected
	}
	return exitOK
}

// formatWhoamiHuman formats the presentation for human readability
func formatWhoamiHuman(p *session.Presentation, loggedIn bool) string {
	if !loggedIn {
		return "Not logged in."
	}
	return fmt.Sprintf("Logged in as %s", p.Text(session.UsernameDisplay))
}

// formatWhoamiJSON formats the presentation as JSON
func formatWhoamiJSON(p *session.Presentation, loggedIn bool) string {
	output := map[string]interface{}{
		"logged_in": loggedIn,
		"username":  p.Text(session.UsernameDisplay),
		"buttons": map[string]bool{
			"login":  p.Visible(session.LoginButton),
			"signup": p.Visible(session.SignupButton),
			"logout": p.Visible(session.LogoutButton),
		},
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}

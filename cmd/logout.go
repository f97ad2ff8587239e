// ABOUTME: Logout command for atlantic-photo CLI
// ABOUTME: Ends the server session and forgets the stored tokens

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sikan777/AtlanticPhoto/internal/session"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and forget the stored session",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		if code := runLogout(ctx, os.Stdout); code != 0 {
			os.Exit(code)
		}
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// runLogout submits the logout and returns exit code
func runLogout(ctx context.Context, w io.Writer) int {
	a, err := newApp(logOutput)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitError
	}

	err = a.session.SubmitLogout(ctx)
	if errors.Is(err, session.ErrNotLoggedIn) && !IsJSONOutput() {
		fmt.Fprintln(w, "Not logged in.")
		return exitRejected
	}
	return a.report(w, "logout", err, "Logged out.")
}

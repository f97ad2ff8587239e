// ABOUTME: Signup command for atlantic-photo CLI
// ABOUTME: Creates an account; prompts for missing fields when attached to a terminal

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sikan777/AtlanticPhoto/internal/tui/forms"
)

var signupInput forms.Signup

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	Long: `Create a new AtlanticPhoto account. Signing up does not log you in.

Exit codes:
  0 - Account created
  1 - Rejected by the backend (message is printed)
  2 - Error (connectivity, configuration)`,
	Run: func(cmd *cobra.Command, args []string) {
		if !signupInput.Complete() {
			if err := forms.NewSignupForm(&signupInput).Run(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(exitError)
			}
		}

		ctx, cancel := signalContext()
		defer cancel()

		if code := runSignup(ctx, os.Stdout, signupInput); code != 0 {
			os.Exit(code)
		}
	},
}

func init() {
	rootCmd.AddCommand(signupCmd)
	signupCmd.Flags().StringVar(&signupInput.Username, "username", "", "Username (3-50 characters)")
	signupCmd.Flags().StringVar(&signupInput.Email, "email", "", "Email address")
	signupCmd.Flags().StringVar(&signupInput.Password, "password", "", "Password")
}

// runSignup submits the signup and returns exit code
func runSignup(ctx context.Context, w io.Writer, in forms.Signup) int {
	a, err := newApp(logOutput)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitError
	}

	err = a.session.SubmitSignup(ctx, in.Username, in.Email, in.Password)
	return a.report(w, "signup", err, "")
}

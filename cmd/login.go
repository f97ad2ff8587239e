// ABOUTME: Login command for atlantic-photo CLI
// ABOUTME: Posts form-encoded credentials and persists the returned session

package cmd

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sikan777/AtlanticPhoto/internal/tui/forms"
)

var (
	loginInput  forms.Login
	loginFields []string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and remember the session",
	Long: `Log in with username and password. The tokens returned by the backend
are stored in the config directory so later commands stay logged in.

Extra form fields (for example scope or client_id) can be passed with --field key=value.`,
	Run: func(cmd *cobra.Command, args []string) {
		if !loginInput.Complete() {
			if err := forms.NewLoginForm(&loginInput).Run(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(exitError)
			}
		}

		form, err := loginForm(loginInput, loginFields)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(exitError)
		}

		ctx, cancel := signalContext()
		defer cancel()

		if code := runLogin(ctx, os.Stdout, form); code != 0 {
			os.Exit(code)
		}
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVar(&loginInput.Username, "username", "", "Username (the backend accepts the account email here)")
	loginCmd.Flags().StringVar(&loginInput.Password, "password", "", "Password")
	loginCmd.Flags().StringArrayVar(&loginFields, "field", nil, "Extra form field as key=value (repeatable)")
}

// loginForm builds the form-encoded body from credentials and extra fields
func loginForm(in forms.Login, extra []string) (url.Values, error) {
	form := in.Values()
	for _, kv := range extra {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --field %q, expected key=value", kv)
		}
		form.Add(key, value)
	}
	return form, nil
}

// runLogin submits the login form and returns exit code
func runLogin(ctx context.Context, w io.Writer, form url.Values) int {
	a, err := newApp(logOutput)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitError
	}

	err = a.session.SubmitLogin(ctx, form)
	return a.report(w, "login", err, "Logged in as "+form.Get("username"))
}

// ABOUTME: Refresh command for atlantic-photo CLI
// ABOUTME: Exchanges the stored refresh token for a new token pair

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Renew the stored access token",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		if code := runRefresh(ctx, os.Stdout); code != 0 {
			os.Exit(code)
		}
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(ctx context.Context, w io.Writer) int {
	a, err := newApp(logOutput)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitError
	}

	err = a.session.Refresh(ctx)
	return a.report(w, "refresh", err, "Tokens refreshed.")
}

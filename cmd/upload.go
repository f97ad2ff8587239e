// ABOUTME: Upload command for atlantic-photo CLI
// ABOUTME: Uploads one or more images in parallel and prints where they landed

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sikan777/AtlanticPhoto/internal/gallery"
	"github.com/Sikan777/AtlanticPhoto/internal/tui/forms"
)

var uploadDescription string

var uploadCmd = &cobra.Command{
	Use:   "upload FILE...",
	Short: "Upload images",
	Long: `Upload one or more image files. The stored session, if any, is sent as
the bearer token. Files upload in parallel (ATLANTIC_PHOTO_UPLOAD_WORKERS).

Exit codes:
  0 - Every file uploaded
  1 - The backend rejected at least one file
  2 - Error (connectivity, unreadable file)`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		if code := runUpload(ctx, os.Stdout, args, uploadDescription); code != 0 {
			os.Exit(code)
		}
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	uploadCmd.Flags().StringVar(&uploadDescription, "description", "", "Description attached to every uploaded image")
}

// uploadResult is one line of --json output
type uploadResult struct {
	Path  string `json:"path"`
	URL   string `json:"url,omitempty"`
	Error string `json:"error,omitempty"`
}

// runUpload uploads paths and returns exit code
func runUpload(ctx context.Context, w io.Writer, paths []string, description string) int {
	if err := forms.ValidateDescription(description); err != nil {
		fmt.Fprintf(w, "Error: invalid --description: %v\n", err)
		return exitError
	}

	a, err := newApp(logOutput)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitError
	}

	g := gallery.New(a.api, a.session, a.cfg.UploadWorkers, a.log)
	results := g.UploadAll(ctx, paths, description)

	if IsJSONOutput() {
		out := make([]uploadResult, len(results))
		for i, r := range results {
			out[i] = uploadResult{Path: r.Path, URL: r.URL}
			if r.Err != nil {
				out[i].Error = r.Err.Error()
			}
		}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		for _, r := range results {
			if r.Err != nil {
				fmt.Fprintf(w, "FAIL %s: %v\n", r.Path, r.Err)
				continue
			}
			fmt.Fprintf(w, "OK   %s -> %s\n", r.Path, r.URL)
		}
	}

	return uploadExitCode(results)
}

// uploadExitCode is the worst exit code across results
func uploadExitCode(results []gallery.Result) int {
	code := exitOK
	for _, r := range results {
		if c := exitCode(r.Err); c > code {
			code = c
		}
	}
	return code
}

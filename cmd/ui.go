// ABOUTME: UI command for atlantic-photo CLI
// ABOUTME: Launches the interactive terminal page with logs sent to the config directory

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sikan777/AtlanticPhoto/internal/client"
	"github.com/Sikan777/AtlanticPhoto/internal/logger"
	"github.com/Sikan777/AtlanticPhoto/internal/session"
	"github.com/Sikan777/AtlanticPhoto/internal/tui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive terminal UI",
	Long: `Open the AtlanticPhoto terminal UI. The stored session is restored on start.

Logs go to debug.log in the config directory so they do not draw over the screen.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runUI(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(exitError)
		}
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
}

func runUI() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logFile, err := logger.OpenFile(cfg.ConfigDir)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	log := logger.Init(logFile, cfg.LogLevel, cfg.LogFormat)
	log.Info("starting ui", "backend", cfg.APIURL)

	api := client.New(cfg.APIURL, client.WithTimeout(cfg.Timeout))
	return tui.Run(api, session.NewFileStore(cfg.ConfigDir), tui.Options{
		RedirectURL:   cfg.RedirectURL,
		UploadWorkers: cfg.UploadWorkers,
		ConfigDir:     cfg.ConfigDir,
		Logger:        log,
	})
}

// ABOUTME: Root command for atlantic-photo CLI
// ABOUTME: Handles global flags and configuration

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Sikan777/AtlanticPhoto/internal/config"
)

var (
	apiURL     string
	configDir  string
	logLevel   string
	jsonOutput bool
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "atlantic-photo",
	Short: "Client for the AtlanticPhoto photo-sharing service",
	Long: `atlantic-photo is a command-line and terminal UI client for AtlanticPhoto.

It signs you up, logs you in and out, keeps your session between runs
and uploads images.

Environment Variables:
  ATLANTIC_PHOTO_API_URL         Backend API URL (default: http://localhost:8000)
  ATLANTIC_PHOTO_CONFIG_DIR      Where the session and logs are kept
  ATLANTIC_PHOTO_REDIRECT_URL    Landing page announced after signup
  ATLANTIC_PHOTO_TIMEOUT         HTTP timeout (default: 30s)
  ATLANTIC_PHOTO_UPLOAD_WORKERS  Parallel uploads (default: 4)
  LOG_LEVEL, LOG_FORMAT          Logging (info/text by default)`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides ATLANTIC_PHOTO_API_URL)")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Session/config directory (overrides ATLANTIC_PHOTO_CONFIG_DIR)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// loadConfig reads env/.env and applies flag overrides (flag > env > default)
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.APIURL = config.NormalizeURL(apiURL)
	}
	if configDir != "" {
		cfg.ConfigDir = configDir
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

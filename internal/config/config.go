// ABOUTME: Configuration loader for the atlantic-photo client
// ABOUTME: Loads settings from an optional .env file and environment variables with defaults

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Sikan777/AtlanticPhoto/internal/session"
)

// Environment variable names
const (
	EnvAPIURL        = "ATLANTIC_PHOTO_API_URL"
	EnvConfigDir     = "ATLANTIC_PHOTO_CONFIG_DIR"
	EnvRedirectURL   = "ATLANTIC_PHOTO_REDIRECT_URL"
	EnvTimeout       = "ATLANTIC_PHOTO_TIMEOUT"
	EnvUploadWorkers = "ATLANTIC_PHOTO_UPLOAD_WORKERS"
	EnvLogLevel      = "LOG_LEVEL"
	EnvLogFormat     = "LOG_FORMAT"
)

// DefaultAPIURL is where a local AtlanticPhoto backend listens
const DefaultAPIURL = "http://localhost:8000"

type Config struct {
	// Backend
	APIURL  string
	Timeout time.Duration

	// Local state
	ConfigDir string

	// Landing page after signup; empty means stay
	RedirectURL string

	// Uploads
	UploadWorkers int

	// Logging
	LogLevel  string
	LogFormat string
}

// Load reads .env files (if present) and then the environment.
// Variables already set in the environment win over .env entries.
// The result is not validated: apply overrides first, then call Validate.
func Load(envFiles ...string) (*Config, error) {
	if err := loadDotEnv(envFiles...); err != nil {
		return nil, err
	}

	cfg := &Config{
		APIURL:        NormalizeURL(getEnv(EnvAPIURL, DefaultAPIURL)),
		Timeout:       getEnvDuration(EnvTimeout, 30*time.Second),
		ConfigDir:     getEnv(EnvConfigDir, session.DefaultConfigDir()),
		RedirectURL:   os.Getenv(EnvRedirectURL),
		UploadWorkers: getEnvInt(EnvUploadWorkers, 4),
		LogLevel:      getEnv(EnvLogLevel, "info"),
		LogFormat:     getEnv(EnvLogFormat, "text"),
	}
	return cfg, nil
}

// Validate checks values that would only fail later at request time
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%s must be an http(s) URL, got %q", EnvAPIURL, c.APIURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%s must be positive, got %s", EnvTimeout, c.Timeout)
	}
	if c.UploadWorkers < 1 || c.UploadWorkers > 64 {
		return fmt.Errorf("%s must be between 1 and 64, got %d", EnvUploadWorkers, c.UploadWorkers)
	}
	if c.ConfigDir == "" {
		return fmt.Errorf("%s is required when no home directory is available", EnvConfigDir)
	}
	return nil
}

// loadDotEnv loads the given files, or ./.env by default. Missing files are fine.
func loadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration accepts Go durations ("45s") or plain seconds ("45")
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

// NormalizeURL adds an http:// prefix when the URL has no scheme and
// drops trailing slashes
func NormalizeURL(u string) string {
	u = strings.TrimRight(u, "/")
	if u == "" {
		return u
	}
	if !strings.Contains(u, "://") {
		return "http://" + u
	}
	return u
}

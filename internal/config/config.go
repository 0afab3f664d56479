// Package config loads repoplan settings from ~/.repoplan/config.toml with
// environment overrides and built-in defaults, in that order of precedence:
//
//   - REPOPLAN_* environment variables
//   - ~/.repoplan/config.toml
//   - defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultBaseURL points at a locally run backend.
const DefaultBaseURL = "http://localhost:8000"

// Config holds everything the client needs to reach the backend.
type Config struct {
	// BaseURL is the backend origin; the client appends /api/process.
	BaseURL string `toml:"base_url"`
	// TimeoutSeconds bounds a single request. 0 means no client-side timeout.
	TimeoutSeconds int `toml:"timeout_seconds"`
	// LogFile receives diagnostics; the TUI owns the terminal.
	LogFile string `toml:"log_file"`
}

// Timeout returns TimeoutSeconds as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func defaults() Config {
	home, _ := os.UserHomeDir()
	return Config{
		BaseURL: DefaultBaseURL,
		LogFile: filepath.Join(home, ".repoplan", "repoplan.log"),
	}
}

// Path returns the config file location (~/.repoplan/config.toml).
func Path() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".repoplan", "config.toml")
}

// Load reads the config file at path if it exists, then applies environment
// overrides. A missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("read %s: %w", path, err)
		}
	}

	if v := os.Getenv("REPOPLAN_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("REPOPLAN_TIMEOUT_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return cfg, fmt.Errorf("REPOPLAN_TIMEOUT_SECONDS: invalid value %q", v)
		}
		cfg.TimeoutSeconds = n
	}
	if v := os.Getenv("REPOPLAN_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}

	return cfg, nil
}

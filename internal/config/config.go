// Package config holds runtime settings for jiratime, assembled from
// defaults, an optional JSON file, environment variables and command-line
// flags, in that order of precedence.
package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for jiratime.
type Config struct {
	// DatabasePath is the SQLite file holding all local state.
	DatabasePath string

	// JiraBaseURL is the site root, e.g. "https://me.atlassian.net".
	JiraBaseURL string

	// JiraEmail and JiraAPIToken form the Basic auth pair.
	JiraEmail    string
	JiraAPIToken string

	// HTTPTimeout bounds every Jira request.
	HTTPTimeout time.Duration

	// UploadInterval is the period of the watch-mode reconciliation loop.
	UploadInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = defaultDatabasePath()
	c.HTTPTimeout = 10 * time.Second
	c.UploadInterval = 15 * time.Minute
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), the environment and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// baseDir returns the data directory (~/.jiratime), falling back to the
// working directory when the home cannot be determined.
func baseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".jiratime")
}

func defaultDatabasePath() string {
	return filepath.Join(baseDir(), "jiratime.db")
}

// DefaultConfigPath is where login saves credentials and where LoadConfig
// looks when no -c/-config flag is given.
func DefaultConfigPath() string {
	return filepath.Join(baseDir(), "config.json")
}

package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays cfg with environment variables, loading a .env file
// from the working directory first if one exists.
//
// Recognized variables:
//
//	JIRATIME_DB        path to the SQLite database
//	JIRA_BASE_URL      site root, e.g. https://me.atlassian.net
//	JIRA_EMAIL         account email for Basic auth
//	JIRA_API_TOKEN     API token for Basic auth
//	JIRA_HTTP_TIMEOUT  Go duration string, e.g. "10s"
func parseEnv(cfg *Config) {
	// Best-effort: absence of a .env file is the normal case.
	_ = godotenv.Load()

	if v := os.Getenv("JIRATIME_DB"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("JIRA_BASE_URL"); v != "" {
		cfg.JiraBaseURL = v
	}
	if v := os.Getenv("JIRA_EMAIL"); v != "" {
		cfg.JiraEmail = v
	}
	if v := os.Getenv("JIRA_API_TOKEN"); v != "" {
		cfg.JiraAPIToken = v
	}
	if v := os.Getenv("JIRA_HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.HTTPTimeout = d
		}
	}
}

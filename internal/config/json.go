package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/jiratime/internal/flagx"
	"github.com/dmitrijs2005/jiratime/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON (un)marshalling. It relies
// on timex.Duration so intervals can be given either as strings like "15m"
// or as integer nanoseconds.
type JsonConfig struct {
	DatabasePath   string         `json:"database_path,omitempty"`
	JiraBaseURL    string         `json:"jira_base_url,omitempty"`
	JiraEmail      string         `json:"jira_email,omitempty"`
	JiraAPIToken   string         `json:"jira_api_token,omitempty"`
	HTTPTimeout    timex.Duration `json:"http_timeout,omitempty"`
	UploadInterval timex.Duration `json:"upload_interval,omitempty"`
}

// parseJson overlays cfg with values from a JSON file. The path comes from
// the -c/-config flags; when absent, DefaultConfigPath() is used if the
// file exists. Only fields present in the file override cfg.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		if _, err := os.Stat(DefaultConfigPath()); err != nil {
			return
		}
		jsonConfigFile = DefaultConfigPath()
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.JiraBaseURL != "" {
		cfg.JiraBaseURL = jc.JiraBaseURL
	}
	if jc.JiraEmail != "" {
		cfg.JiraEmail = jc.JiraEmail
	}
	if jc.JiraAPIToken != "" {
		cfg.JiraAPIToken = jc.JiraAPIToken
	}
	if jc.HTTPTimeout.Duration != 0 {
		cfg.HTTPTimeout = jc.HTTPTimeout.Duration
	}
	if jc.UploadInterval.Duration != 0 {
		cfg.UploadInterval = jc.UploadInterval.Duration
	}
}

// Save writes the credentials and settings to path (0600, directory created
// as needed) so a later LoadConfig picks them up.
func Save(cfg *Config, path string) error {
	jc := JsonConfig{
		DatabasePath:   cfg.DatabasePath,
		JiraBaseURL:    cfg.JiraBaseURL,
		JiraEmail:      cfg.JiraEmail,
		JiraAPIToken:   cfg.JiraAPIToken,
		HTTPTimeout:    timex.Duration{Duration: cfg.HTTPTimeout},
		UploadInterval: timex.Duration{Duration: cfg.UploadInterval},
	}

	data, err := json.MarshalIndent(jc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

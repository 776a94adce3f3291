package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/jiratime/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-d, --database string   path to the SQLite database
//	-u, --url string        Jira base URL
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with the cobra commands.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "--database", "-u", "--url"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local database")
	fs.StringVar(&cfg.DatabasePath, "database", cfg.DatabasePath, "path to the local database")
	fs.StringVar(&cfg.JiraBaseURL, "u", cfg.JiraBaseURL, "Jira base URL")
	fs.StringVar(&cfg.JiraBaseURL, "url", cfg.JiraBaseURL, "Jira base URL")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}

// Package cli wires the cobra commands around the tracking engine, the
// Jira client and the repositories.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/jiratime/internal/config"
	"github.com/dmitrijs2005/jiratime/internal/jira"
	"github.com/dmitrijs2005/jiratime/internal/logging"
	"github.com/dmitrijs2005/jiratime/internal/storage"
	"github.com/dmitrijs2005/jiratime/internal/tracker"
	"github.com/dmitrijs2005/jiratime/internal/uploader"
)

// App bundles everything the commands need.
type App struct {
	cfg      *config.Config
	log      logging.Logger
	db       *sql.DB
	repos    *storage.Repositories
	tracker  *tracker.Service
	jira     *jira.Client
	uploader *uploader.Uploader
}

// NewApp opens the database and builds the service graph from cfg.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.NewDefault(slog.LevelWarn)

	repos, db, err := storage.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("initializing database %s: %w", cfg.DatabasePath, err)
	}

	trk := tracker.NewService(repos.Records, log)
	jc := jira.NewClient(cfg.JiraBaseURL, cfg.JiraEmail, cfg.JiraAPIToken, cfg.HTTPTimeout, log)

	return &App{
		cfg:      cfg,
		log:      log,
		db:       db,
		repos:    repos,
		tracker:  trk,
		jira:     jc,
		uploader: uploader.New(trk, jc, log),
	}, nil
}

// Close releases the database handle.
func (a *App) Close() error {
	return a.db.Close()
}

func newRootCmd(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "jiratime",
		Short:         "jiratime is a personal Jira time tracker",
		Long:          `jiratime tracks time against Jira issues locally and uploads completed sessions as Jira worklogs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// These are consumed by config.LoadConfig before cobra runs; they are
	// declared here so cobra accepts them on any command.
	rootCmd.PersistentFlags().StringP("config", "c", "", "path to config file")
	rootCmd.PersistentFlags().StringP("database", "d", "", "path to the local database")
	rootCmd.PersistentFlags().StringP("url", "u", "", "Jira base URL")

	rootCmd.AddCommand(newStartCmd(app))
	rootCmd.AddCommand(newStopCmd(app))
	rootCmd.AddCommand(newStatusCmd(app))
	rootCmd.AddCommand(newLogCmd(app))
	rootCmd.AddCommand(newReportCmd(app))
	rootCmd.AddCommand(newUploadCmd(app))
	rootCmd.AddCommand(newWorklogsCmd(app))
	rootCmd.AddCommand(newIssuesCmd(app))
	rootCmd.AddCommand(newBoardCmd(app))
	rootCmd.AddCommand(newMilestoneCmd(app))
	rootCmd.AddCommand(newLoginCmd(app))

	return rootCmd
}

// Execute is the entry point called from main.
func Execute() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := NewApp(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer app.Close()

	if err := newRootCmd(app).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

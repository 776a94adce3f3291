package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/jiratime/internal/jira"
)

func newStartCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "start <issue-key>",
		Short: "Start tracking time against an issue",
		Long: `Start a new tracking session. Any session already running is stopped
first, at the same instant the new one starts.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			issueKey := args[0]
			if !jira.ValidIssueKey(issueKey) {
				// Not an error: local records accept any key. Just warn.
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %q does not look like a Jira issue key\n", issueKey)
			}

			rec, err := app.tracker.StartTracking(cmd.Context(), issueKey)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Started tracking %s at %s (record %d)\n",
				rec.IssueKey, rec.StartTime.Local().Format("15:04:05"), rec.Id)
			return nil
		},
	}
}

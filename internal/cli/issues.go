package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/jiratime/internal/models"
)

func newIssuesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issues",
		Short: "Manage the local issue-summary mirror",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "refresh",
		Short: "Refresh issue titles from Jira for all locally tracked issues",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			keys, err := app.repos.Records.DistinctIssueKeys(ctx)
			if err != nil {
				return err
			}
			if len(keys) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tracked issues.")
				return nil
			}

			summaries := app.jira.GetIssueSummaries(ctx, keys)
			now := time.Now()
			for key, summary := range summaries {
				err := app.repos.Issues.Upsert(ctx, &models.IssueSummary{
					IssueKey:  key,
					Summary:   summary,
					UpdatedAt: now,
				})
				if err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Refreshed %d of %d issue(s)\n", len(summaries), len(keys))
			return nil
		},
	})

	return cmd
}

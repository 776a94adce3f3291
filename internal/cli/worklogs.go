package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/jiratime/internal/models"
	"github.com/dmitrijs2005/jiratime/internal/timex"
)

func newWorklogsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "worklogs <issue-key>",
		Short: "Show local records and remote worklogs for an issue",
		Long: `Merge the local tracking records for an issue with the worklogs already
in Jira (whoever created them) into one chronological view. Remote
worklogs are fetched best-effort; on failure only local records show.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			issueKey := args[0]

			local, err := app.tracker.GetRecords(ctx, issueKey)
			if err != nil {
				return err
			}
			remote := app.jira.GetWorklogs(ctx, issueKey)

			now := time.Now()
			rows := make([]models.DisplayRow, 0, len(local)+len(remote))
			for i := range local {
				rows = append(rows, models.LocalSource(&local[i]).Project(issueKey, now))
			}
			for i := range remote {
				rows = append(rows, models.RemoteSource(&remote[i]).Project(issueKey, now))
			}

			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No time tracked.")
				return nil
			}

			sort.Slice(rows, func(i, j int) bool { return rows[i].Started.Before(rows[j].Started) })

			var localTotal, remoteTotal int64
			for _, row := range rows {
				origin := "local"
				if row.Origin == models.SourceRemote {
					origin = "jira"
					remoteTotal += row.TimeSpentSeconds
				} else {
					localTotal += row.TimeSpentSeconds
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-5s %s\n",
					row.Started.Local().Format("2006-01-02 15:04"),
					origin,
					timex.FormatDuration(row.TimeSpentSeconds))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\nLocal: %s   Jira: %s\n",
				timex.FormatDuration(localTotal), timex.FormatDuration(remoteTotal))
			return nil
		},
	}
}

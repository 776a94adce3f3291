package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/jiratime/internal/timex"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the running session, if any",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			active, err := app.tracker.GetActiveRecords(cmd.Context())
			if err != nil {
				return err
			}
			if len(active) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing is being tracked.")
				return nil
			}

			now := time.Now()
			for _, rec := range active {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  running for %s (since %s, record %d)\n",
					rec.IssueKey,
					timex.FormatDuration(rec.DurationSeconds(now)),
					rec.StartTime.Local().Format("15:04:05"),
					rec.Id)
			}
			return nil
		},
	}
}

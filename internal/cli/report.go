package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/jiratime/internal/timex"
)

func newReportCmd(app *App) *cobra.Command {
	var weekOffset int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show per-issue totals for a week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			recs, err := app.tracker.GetWeekRecords(ctx, weekOffset)
			if err != nil {
				return err
			}

			now := time.Now()
			totals := map[string]int64{}
			for _, r := range recs {
				totals[r.IssueKey] += r.DurationSeconds(now)
			}

			keys := make([]string, 0, len(totals))
			for k := range totals {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			summaries, err := app.repos.Issues.GetByKeys(ctx, keys)
			if err != nil {
				return err
			}

			from, _ := timex.WeekWindow(now, weekOffset)
			fmt.Fprintf(cmd.OutOrStdout(), "Week of %s\n", from.Format("2006-01-02"))
			fmt.Fprintln(cmd.OutOrStdout(), "--------------------------------")

			var grand int64
			for _, k := range keys {
				title := summaries[k]
				if title != "" {
					title = "  " + title
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %10s%s\n", k, timex.FormatDuration(totals[k]), title)
				grand += totals[k]
			}
			fmt.Fprintln(cmd.OutOrStdout(), "--------------------------------")
			fmt.Fprintf(cmd.OutOrStdout(), "%-12s %10s\n", "Total", timex.FormatDuration(grand))
			return nil
		},
	}

	cmd.Flags().IntVar(&weekOffset, "week", 0, "week offset (0 = this week, -1 = last week)")
	return cmd
}

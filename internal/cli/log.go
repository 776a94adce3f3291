package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/jiratime/internal/models"
	"github.com/dmitrijs2005/jiratime/internal/timex"
)

func newLogCmd(app *App) *cobra.Command {
	var (
		issueKey   string
		yesterday  bool
		weekOffset int
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "List tracked records",
		Long: `List tracked records for an issue, for yesterday, or for a week
(current week by default; --week -1 is last week).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var (
				recs []models.TimeRecord
				err  error
			)
			switch {
			case issueKey != "":
				recs, err = app.tracker.GetRecords(ctx, issueKey)
			case yesterday:
				recs, err = app.tracker.GetYesterdayRecords(ctx)
			default:
				recs, err = app.tracker.GetWeekRecords(ctx, weekOffset)
			}
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No records.")
				return nil
			}

			keys := make([]string, 0, len(recs))
			for _, r := range recs {
				keys = append(keys, r.IssueKey)
			}
			summaries, err := app.repos.Issues.GetByKeys(ctx, keys)
			if err != nil {
				return err
			}

			now := time.Now()
			for _, r := range recs {
				state := " "
				switch {
				case r.Active():
					state = "▶"
				case r.IsUploaded:
					state = "↑"
				}
				title := summaries[r.IssueKey]
				if title != "" {
					title = "  " + title
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%4d %s %-12s %s  %s%s\n",
					r.Id, state, r.IssueKey,
					r.StartTime.Local().Format("Mon 02.01 15:04"),
					timex.FormatDuration(r.DurationSeconds(now)),
					title)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&issueKey, "issue", "", "limit to one issue key")
	cmd.Flags().BoolVar(&yesterday, "yesterday", false, "records from yesterday")
	cmd.Flags().IntVar(&weekOffset, "week", 0, "week offset (0 = this week, -1 = last week)")
	return cmd
}

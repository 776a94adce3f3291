package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStopCmd(app *App) *cobra.Command {
	var recordID int64

	cmd := &cobra.Command{
		Use:   "stop [issue-key]",
		Short: "Stop the running tracking session",
		Long: `Stop the active session for the given issue, a specific record (--id),
or, with no arguments, whatever is currently running. Stopping when
nothing matches is a no-op.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if recordID != 0 {
				return app.tracker.StopTrackingById(ctx, recordID)
			}
			if len(args) == 1 {
				return app.tracker.StopTracking(ctx, args[0])
			}

			active, err := app.tracker.GetActiveRecords(ctx)
			if err != nil {
				return err
			}
			if len(active) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing is being tracked.")
				return nil
			}
			for _, rec := range active {
				if err := app.tracker.StopTrackingById(ctx, rec.Id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Stopped tracking %s\n", rec.IssueKey)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&recordID, "id", 0, "stop a specific record by id")
	return cmd
}

package cli

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func newUploadCmd(app *App) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload completed sessions to Jira as worklogs",
		Long: `Run one reconciliation pass: every completed-but-unsent record is
pushed to Jira and marked uploaded on success. Failed records stay in
the unsent set for the next pass. With --watch, repeat periodically
until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			runOnce := func() error {
				result, err := app.uploader.Run(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %d record(s), %d failed\n",
					result.Uploaded, result.Failed)
				return nil
			}

			if err := runOnce(); err != nil {
				return err
			}
			if !watch {
				return nil
			}

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			ticker := time.NewTicker(app.cfg.UploadInterval)
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					if err := runOnce(); err != nil {
						fmt.Fprintln(cmd.ErrOrStderr(), err)
					}
				}
			}
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "keep uploading every upload interval")
	return cmd
}

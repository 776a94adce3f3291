package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/jiratime/internal/models"
)

func newMilestoneCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "milestone",
		Short: "Manage the milestone log",
	}

	var note string
	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Record a milestone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.repos.Milestones.Add(cmd.Context(), &models.Milestone{
				Title:     args[0],
				Note:      note,
				CreatedAt: time.Now(),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded milestone %d\n", id)
			return nil
		},
	}
	addCmd.Flags().StringVar(&note, "note", "", "optional note")
	cmd.AddCommand(addCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List milestones, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			milestones, err := app.repos.Milestones.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, m := range milestones {
				line := fmt.Sprintf("%4d %s  %s", m.Id, m.CreatedAt.Local().Format("2006-01-02"), m.Title)
				if m.Note != "" {
					line += "  (" + m.Note + ")"
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a milestone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			return app.repos.Milestones.Delete(cmd.Context(), id)
		},
	})

	return cmd
}

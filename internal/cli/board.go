package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/jiratime/internal/models"
)

func parseColumn(s string) (models.KanbanColumn, error) {
	switch models.KanbanColumn(s) {
	case models.ColumnTodo, models.ColumnInProgress, models.ColumnDone:
		return models.KanbanColumn(s), nil
	}
	return "", fmt.Errorf("unknown column %q (todo, in_progress, done)", s)
}

func parseIDList(s string) ([]int64, error) {
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", p)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func newBoardCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Manage the personal kanban board",
	}

	var addIssue, addColumn string
	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a card to the board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			column, err := parseColumn(addColumn)
			if err != nil {
				return err
			}
			id, err := app.repos.Kanban.Add(cmd.Context(), &models.KanbanItem{
				IssueKey: addIssue,
				Title:    args[0],
				Column:   column,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added card %d to %s\n", id, column)
			return nil
		},
	}
	addCmd.Flags().StringVar(&addIssue, "issue", "", "linked Jira issue key")
	addCmd.Flags().StringVar(&addColumn, "column", string(models.ColumnTodo), "target column")
	cmd.AddCommand(addCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "move <id> <column>",
		Short: "Move a card to the end of another column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			column, err := parseColumn(args[1])
			if err != nil {
				return err
			}
			return app.repos.Kanban.Move(cmd.Context(), id, column)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reorder <column> <id,id,...>",
		Short: "Reorder a column; the id list must cover the whole column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			column, err := parseColumn(args[0])
			if err != nil {
				return err
			}
			ids, err := parseIDList(args[1])
			if err != nil {
				return err
			}
			return app.repos.Kanban.Reorder(cmd.Context(), column, ids)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			return app.repos.Kanban.Remove(cmd.Context(), id)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show the board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			for _, column := range []models.KanbanColumn{models.ColumnTodo, models.ColumnInProgress, models.ColumnDone} {
				items, err := app.repos.Kanban.ListByColumn(ctx, column)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", column)
				for _, item := range items {
					issue := ""
					if item.IssueKey != "" {
						issue = " [" + item.IssueKey + "]"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "  %4d %s%s\n", item.Id, item.Title, issue)
				}
			}
			return nil
		},
	})

	return cmd
}

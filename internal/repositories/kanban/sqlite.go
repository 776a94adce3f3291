package kanban

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/jiratime/internal/common"
	"github.com/dmitrijs2005/jiratime/internal/dbx"
	"github.com/dmitrijs2005/jiratime/internal/models"
)

// SQLiteRepository implements Repository over *sql.DB. It needs the full
// handle (not just a DBTX) because Reorder opens its own transaction.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository returns a new SQLiteRepository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Add(ctx context.Context, item *models.KanbanItem) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO kanban_items (issue_key, title, column_name, position)
		 VALUES (?, ?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM kanban_items WHERE column_name = ?))`,
		item.IssueKey, item.Title, string(item.Column), string(item.Column))
	if err != nil {
		return 0, fmt.Errorf("failed to insert board item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) Move(ctx context.Context, id int64, column models.KanbanColumn) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE kanban_items
		 SET column_name = ?,
		     position = (SELECT COALESCE(MAX(position), -1) + 1 FROM kanban_items WHERE column_name = ?)
		 WHERE id = ?`,
		string(column), string(column), id)
	if err != nil {
		return fmt.Errorf("failed to move board item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) Remove(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM kanban_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete board item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) ListByColumn(ctx context.Context, column models.KanbanColumn) ([]models.KanbanItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, issue_key, title, column_name, position
		 FROM kanban_items WHERE column_name = ? ORDER BY position`,
		string(column))
	if err != nil {
		return nil, fmt.Errorf("failed to select board items: %w", err)
	}
	defer rows.Close()

	var result []models.KanbanItem
	for rows.Next() {
		var item models.KanbanItem
		var col string
		if err := rows.Scan(&item.Id, &item.IssueKey, &item.Title, &col, &item.Position); err != nil {
			return nil, err
		}
		item.Column = models.KanbanColumn(col)
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Reorder renumbers positions 0..n-1 following orderedIDs, inside one
// transaction. Any id outside the column (or a missing one) aborts the
// whole renumbering.
func (r *SQLiteRepository) Reorder(ctx context.Context, column models.KanbanColumn, orderedIDs []int64) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var count int
		err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM kanban_items WHERE column_name = ?`, string(column)).Scan(&count)
		if err != nil {
			return fmt.Errorf("failed to count column items: %w", err)
		}
		if count != len(orderedIDs) {
			return fmt.Errorf("reorder of column %q: got %d ids, column has %d items", column, len(orderedIDs), count)
		}

		for pos, id := range orderedIDs {
			res, err := tx.ExecContext(ctx,
				`UPDATE kanban_items SET position = ? WHERE id = ? AND column_name = ?`,
				pos, id, string(column))
			if err != nil {
				return fmt.Errorf("failed to renumber item %d: %w", id, err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			if n == 0 {
				return fmt.Errorf("reorder of column %q: item %d: %w", column, id, common.ErrNotFound)
			}
		}
		return nil
	})
}

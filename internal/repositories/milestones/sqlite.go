package milestones

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/jiratime/internal/common"
	"github.com/dmitrijs2005/jiratime/internal/dbx"
	"github.com/dmitrijs2005/jiratime/internal/models"
	"github.com/dmitrijs2005/jiratime/internal/timex"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Add(ctx context.Context, m *models.Milestone) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO milestones (title, note, created_at) VALUES (?, ?, ?)`,
		m.Title, m.Note, m.CreatedAt.UTC().Format(timex.StoreLayout))
	if err != nil {
		return 0, fmt.Errorf("failed to insert milestone: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Milestone, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, note, created_at FROM milestones ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to select milestones: %w", err)
	}
	defer rows.Close()

	var result []models.Milestone
	for rows.Next() {
		var m models.Milestone
		var created string
		if err := rows.Scan(&m.Id, &m.Title, &m.Note, &created); err != nil {
			return nil, err
		}
		t, err := time.Parse(timex.StoreLayout, created)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		m.CreatedAt = t
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM milestones WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete milestone: %w", err)
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

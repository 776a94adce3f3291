package issues

import (
	"context"
	"fmt"
	"strings"

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

func (r *SQLiteRepository) Upsert(ctx context.Context, s *models.IssueSummary) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO issues (issue_key, summary, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(issue_key) DO UPDATE SET summary = excluded.summary, updated_at = excluded.updated_at`,
		s.IssueKey, s.Summary, s.UpdatedAt.UTC().Format(timex.StoreLayout))
	if err != nil {
		return fmt.Errorf("failed to upsert issue summary: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByKeys(ctx context.Context, issueKeys []string) (map[string]string, error) {
	result := make(map[string]string, len(issueKeys))
	if len(issueKeys) == 0 {
		return result, nil
	}

	placeholders := strings.Repeat("?,", len(issueKeys))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(issueKeys))
	for i, k := range issueKeys {
		args[i] = k
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT issue_key, summary FROM issues WHERE issue_key IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select issue summaries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, summary string
		if err := rows.Scan(&key, &summary); err != nil {
			return nil, err
		}
		result[key] = summary
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

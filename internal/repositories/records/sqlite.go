package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/jiratime/internal/common"
	"github.com/dmitrijs2005/jiratime/internal/dbx"
	"github.com/dmitrijs2005/jiratime/internal/models"
	"github.com/dmitrijs2005/jiratime/internal/timex"
)

// timeLayout is the fixed-width ISO-8601 form timestamps are stored in.
// All values are UTC-normalized before writing, so the TEXT columns sort
// bytewise in chronological order.
const timeLayout = timex.StoreLayout

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

func scanRecord(scan func(dest ...any) error) (*models.TimeRecord, error) {
	var r models.TimeRecord
	var start string
	var end sql.NullString
	var uploaded int
	if err := scan(&r.Id, &r.IssueKey, &start, &end, &uploaded); err != nil {
		return nil, err
	}
	st, err := parseTime(start)
	if err != nil {
		return nil, fmt.Errorf("parsing start_time: %w", err)
	}
	r.StartTime = st
	if end.Valid {
		et, err := parseTime(end.String)
		if err != nil {
			return nil, fmt.Errorf("parsing end_time: %w", err)
		}
		r.EndTime = &et
	}
	r.IsUploaded = uploaded != 0
	return &r, nil
}

const selectColumns = `id, issue_key, start_time, end_time, is_uploaded`

func (r *SQLiteRepository) queryRecords(ctx context.Context, query string, args ...any) ([]models.TimeRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select records: %w", err)
	}
	defer rows.Close()

	var result []models.TimeRecord
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Insert(ctx context.Context, rec *models.TimeRecord) (int64, error) {
	var end any
	if rec.EndTime != nil {
		end = formatTime(*rec.EndTime)
	}
	uploaded := 0
	if rec.IsUploaded {
		uploaded = 1
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO time_records (issue_key, start_time, end_time, is_uploaded) VALUES (?, ?, ?, ?)`,
		rec.IssueKey, formatTime(rec.StartTime), end, uploaded)
	if err != nil {
		return 0, fmt.Errorf("failed to insert record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.TimeRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM time_records WHERE id = ?`, id)
	rec, err := scanRecord(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select record: %w", err)
	}
	return rec, nil
}

func (r *SQLiteRepository) GetByIssue(ctx context.Context, issueKey string) ([]models.TimeRecord, error) {
	return r.queryRecords(ctx,
		`SELECT `+selectColumns+` FROM time_records WHERE issue_key = ? ORDER BY start_time DESC, id DESC`,
		issueKey)
}

func (r *SQLiteRepository) GetActive(ctx context.Context) ([]models.TimeRecord, error) {
	return r.queryRecords(ctx,
		`SELECT `+selectColumns+` FROM time_records WHERE end_time IS NULL ORDER BY start_time DESC, id DESC`)
}

func (r *SQLiteRepository) GetUnsentCompleted(ctx context.Context) ([]models.TimeRecord, error) {
	return r.queryRecords(ctx,
		`SELECT `+selectColumns+` FROM time_records WHERE is_uploaded = 0 AND end_time IS NOT NULL ORDER BY start_time DESC, id DESC`)
}

func (r *SQLiteRepository) GetStartedBetween(ctx context.Context, from, to time.Time) ([]models.TimeRecord, error) {
	// Stored timestamps are UTC ISO-8601, so lexicographic comparison
	// matches chronological order.
	return r.queryRecords(ctx,
		`SELECT `+selectColumns+` FROM time_records WHERE start_time >= ? AND start_time < ? ORDER BY start_time DESC, id DESC`,
		formatTime(from), formatTime(to))
}

func (r *SQLiteRepository) DistinctIssueKeys(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT issue_key FROM time_records ORDER BY issue_key`)
	if err != nil {
		return nil, fmt.Errorf("failed to select issue keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

func (r *SQLiteRepository) UpdateTimes(ctx context.Context, id int64, start time.Time, end *time.Time) error {
	var endVal any
	if end != nil {
		endVal = formatTime(*end)
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE time_records SET start_time = ?, end_time = ? WHERE id = ?`,
		formatTime(start), endVal, id)
	if err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}
	return requireRowAffected(res)
}

func (r *SQLiteRepository) SetEndTime(ctx context.Context, id int64, end time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE time_records SET end_time = ? WHERE id = ?`,
		formatTime(end), id)
	if err != nil {
		return fmt.Errorf("failed to stop record: %w", err)
	}
	return requireRowAffected(res)
}

func (r *SQLiteRepository) MarkUploaded(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE time_records SET is_uploaded = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to mark record uploaded: %w", err)
	}
	return requireRowAffected(res)
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM time_records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return requireRowAffected(res)
}

func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

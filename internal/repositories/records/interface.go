// Package records persists time-tracking records. The active session is
// never cached anywhere: it is derived from the end_time IS NULL scan,
// which is what keeps the single-active-session invariant enforceable
// through insert/update discipline alone.
package records

import (
	"context"
	"time"

	"github.com/dmitrijs2005/jiratime/internal/models"
)

// Repository is the persistence contract for time records.
type Repository interface {
	// Insert stores a new record and returns its store-assigned id.
	Insert(ctx context.Context, r *models.TimeRecord) (int64, error)

	// GetByID returns the record with the given id, or common.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*models.TimeRecord, error)

	// GetByIssue lists all records for an issue, most recent start first.
	GetByIssue(ctx context.Context, issueKey string) ([]models.TimeRecord, error)

	// GetActive lists all records with no end time.
	GetActive(ctx context.Context) ([]models.TimeRecord, error)

	// GetUnsentCompleted lists records with an end time that are not yet
	// uploaded, most recent start first.
	GetUnsentCompleted(ctx context.Context) ([]models.TimeRecord, error)

	// GetStartedBetween lists records with start_time in [from, to),
	// most recent start first.
	GetStartedBetween(ctx context.Context, from, to time.Time) ([]models.TimeRecord, error)

	// DistinctIssueKeys lists every issue key appearing in the table.
	DistinctIssueKeys(ctx context.Context) ([]string, error)

	// UpdateTimes overwrites both timestamps of the record.
	UpdateTimes(ctx context.Context, id int64, start time.Time, end *time.Time) error

	// SetEndTime stops the record at the given instant.
	SetEndTime(ctx context.Context, id int64, end time.Time) error

	// MarkUploaded flips is_uploaded to 1. Idempotent.
	MarkUploaded(ctx context.Context, id int64) error

	// Delete removes the record permanently.
	Delete(ctx context.Context, id int64) error
}

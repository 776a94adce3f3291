// Package tracker owns the time-tracking record lifecycle: the
// single-active-session invariant, all record CRUD, the windowed query
// views and the change notification channel.
//
// The "currently active session" is never held as separate state. It is
// derived from the end_time IS NULL query on every call, which keeps the
// invariant enforceable through insert/update discipline alone.
package tracker

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/jiratime/internal/common"
	"github.com/dmitrijs2005/jiratime/internal/logging"
	"github.com/dmitrijs2005/jiratime/internal/models"
	"github.com/dmitrijs2005/jiratime/internal/repositories/records"
	"github.com/dmitrijs2005/jiratime/internal/timex"
)

// Service is the time tracking engine.
type Service struct {
	repo     records.Repository
	notifier *Notifier
	log      logging.Logger
	now      func() time.Time
}

// NewService returns an engine over the given record repository.
func NewService(repo records.Repository, log logging.Logger) *Service {
	return &Service{
		repo:     repo,
		notifier: NewNotifier(),
		log:      log.With("component", "tracker"),
		now:      time.Now,
	}
}

// Subscribe registers fn to run after every mutating command and returns
// its unsubscribe handle.
func (s *Service) Subscribe(fn func()) func() {
	return s.notifier.Subscribe(fn)
}

// StartTracking begins a session for issueKey at "now". Any active record,
// whatever issue it belongs to, is stopped first, at the same instant the
// new session starts, so that after the call exactly one active record
// exists and it belongs to issueKey.
func (s *Service) StartTracking(ctx context.Context, issueKey string) (*models.TimeRecord, error) {
	now := s.now()

	active, err := s.repo.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range active {
		if err := s.repo.SetEndTime(ctx, a.Id, now); err != nil {
			return nil, err
		}
		s.log.Debug(ctx, "auto-stopped active session", "id", a.Id, "issue", a.IssueKey)
	}

	rec := &models.TimeRecord{IssueKey: issueKey, StartTime: now}
	id, err := s.repo.Insert(ctx, rec)
	if err != nil {
		return nil, err
	}
	rec.Id = id

	s.log.Info(ctx, "tracking started", "id", id, "issue", issueKey)
	s.notifier.Notify()
	return rec, nil
}

// StopTracking stops the active record matching issueKey, if any. Stopping
// when nothing matches is a silent no-op, not an error.
func (s *Service) StopTracking(ctx context.Context, issueKey string) error {
	now := s.now()

	active, err := s.repo.GetActive(ctx)
	if err != nil {
		return err
	}
	for _, a := range active {
		if a.IssueKey != issueKey {
			continue
		}
		if err := s.repo.SetEndTime(ctx, a.Id, now); err != nil {
			return err
		}
		s.log.Info(ctx, "tracking stopped", "id", a.Id, "issue", issueKey)
		s.notifier.Notify()
		return nil
	}
	return nil
}

// StopTrackingById stops the specific record if it is currently active.
// A missing or already-stopped record is a silent no-op.
func (s *Service) StopTrackingById(ctx context.Context, id int64) error {
	now := s.now()

	rec, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !rec.Active() {
		return nil
	}
	if err := s.repo.SetEndTime(ctx, id, now); err != nil {
		return err
	}
	s.log.Info(ctx, "tracking stopped", "id", id, "issue", rec.IssueKey)
	s.notifier.Notify()
	return nil
}

// GetRecords lists all records for an issue, most recent start first.
func (s *Service) GetRecords(ctx context.Context, issueKey string) ([]models.TimeRecord, error) {
	return s.repo.GetByIssue(ctx, issueKey)
}

// GetActiveRecords lists records with no end time. In practice this is 0 or
// 1 records, but callers must not assume exactly one: external edits can
// produce transient multiplicity.
func (s *Service) GetActiveRecords(ctx context.Context) ([]models.TimeRecord, error) {
	return s.repo.GetActive(ctx)
}

// GetUnsentCompletedRecords lists completed records not yet uploaded, most
// recent start first. This is the candidate set for an upload pass.
func (s *Service) GetUnsentCompletedRecords(ctx context.Context) ([]models.TimeRecord, error) {
	return s.repo.GetUnsentCompleted(ctx)
}

// GetYesterdayRecords lists records started during the previous calendar
// day, local time.
func (s *Service) GetYesterdayRecords(ctx context.Context) ([]models.TimeRecord, error) {
	from, to := timex.DayWindow(s.now(), -1)
	return s.repo.GetStartedBetween(ctx, from, to)
}

// GetCurrentWeekRecords lists records started this week.
func (s *Service) GetCurrentWeekRecords(ctx context.Context) ([]models.TimeRecord, error) {
	return s.GetWeekRecords(ctx, 0)
}

// GetWeekRecords lists records started in the week weekOffset whole weeks
// away from the current Monday-aligned one (0 = this week, -1 = last week).
func (s *Service) GetWeekRecords(ctx context.Context, weekOffset int) ([]models.TimeRecord, error) {
	from, to := timex.WeekWindow(s.now(), weekOffset)
	return s.repo.GetStartedBetween(ctx, from, to)
}

// UpdateRecord overwrites the timestamps of the record with rec.Id. An end
// time earlier than the start time is rejected with common.ErrEndBeforeStart.
// Editing an already-uploaded record is allowed and does not clear the
// uploaded flag; the resulting local/remote drift is the caller's to accept,
// so it is logged at Warn.
func (s *Service) UpdateRecord(ctx context.Context, rec *models.TimeRecord) error {
	if rec.EndTime != nil && rec.EndTime.Before(rec.StartTime) {
		return common.ErrEndBeforeStart
	}

	existing, err := s.repo.GetByID(ctx, rec.Id)
	if err != nil {
		return err
	}
	if existing.IsUploaded {
		s.log.Warn(ctx, "editing an already-uploaded record; remote worklog will not be adjusted",
			"id", rec.Id, "issue", existing.IssueKey)
	}

	if err := s.repo.UpdateTimes(ctx, rec.Id, rec.StartTime, rec.EndTime); err != nil {
		return err
	}
	s.notifier.Notify()
	return nil
}

// DeleteRecord permanently removes a record. An uploaded record's remote
// worklog is untouched.
func (s *Service) DeleteRecord(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.notifier.Notify()
	return nil
}

// MarkAsUploaded flips the record's uploaded flag to true. Idempotent; the
// flag never transitions back.
func (s *Service) MarkAsUploaded(ctx context.Context, id int64) error {
	if err := s.repo.MarkUploaded(ctx, id); err != nil {
		return err
	}
	s.notifier.Notify()
	return nil
}

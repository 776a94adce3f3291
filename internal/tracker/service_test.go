package tracker

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dmitrijs2005/jiratime/internal/common"
	"github.com/dmitrijs2005/jiratime/internal/logging"
	"github.com/dmitrijs2005/jiratime/internal/models"
	"github.com/dmitrijs2005/jiratime/internal/repositories/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupService(t *testing.T) (*Service, *clock) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE time_records (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  issue_key TEXT NOT NULL,
  start_time TEXT NOT NULL,
  end_time TEXT NULL,
  is_uploaded INTEGER NOT NULL DEFAULT 0
);
`)
	require.NoError(t, err)

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	s := NewService(records.NewSQLiteRepository(db), log)

	clk := &clock{now: time.Date(2026, 2, 4, 13, 0, 0, 0, time.Local)}
	s.now = clk.Now
	return s, clk
}

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

func (c *clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestStartTracking_SingleActiveInvariant(t *testing.T) {
	s, clk := setupService(t)
	ctx := context.Background()

	for _, issue := range []string{"PROJ-1", "PROJ-2", "PROJ-3"} {
		_, err := s.StartTracking(ctx, issue)
		require.NoError(t, err)

		active, err := s.GetActiveRecords(ctx)
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, issue, active[0].IssueKey)

		clk.Advance(10 * time.Minute)
	}
}

func TestStartTracking_StopsPreviousAtSameInstant(t *testing.T) {
	s, clk := setupService(t)
	ctx := context.Background()

	_, err := s.StartTracking(ctx, "PROJ-A")
	require.NoError(t, err)

	clk.Advance(25 * time.Minute)
	b, err := s.StartTracking(ctx, "PROJ-B")
	require.NoError(t, err)

	aRecs, err := s.GetRecords(ctx, "PROJ-A")
	require.NoError(t, err)
	require.Len(t, aRecs, 1)
	require.NotNil(t, aRecs[0].EndTime)
	assert.True(t, aRecs[0].EndTime.Equal(b.StartTime))
}

func TestStopTracking_MatchingIssue(t *testing.T) {
	s, clk := setupService(t)
	ctx := context.Background()

	rec, err := s.StartTracking(ctx, "PROJ-1")
	require.NoError(t, err)

	clk.Advance(90 * time.Second)
	require.NoError(t, s.StopTracking(ctx, "PROJ-1"))

	got, err := s.GetRecords(ctx, "PROJ-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].EndTime)
	assert.Equal(t, int64(90), got[0].DurationSeconds(clk.Now()))
	_ = rec
}

func TestStopTracking_NoMatch_IsSilentNoop(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()

	// Nothing active at all.
	require.NoError(t, s.StopTracking(ctx, "PROJ-1"))

	// Active record belongs to a different issue.
	_, err := s.StartTracking(ctx, "PROJ-2")
	require.NoError(t, err)
	require.NoError(t, s.StopTracking(ctx, "PROJ-1"))

	active, err := s.GetActiveRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestStopTrackingById(t *testing.T) {
	s, clk := setupService(t)
	ctx := context.Background()

	rec, err := s.StartTracking(ctx, "PROJ-1")
	require.NoError(t, err)

	clk.Advance(time.Minute)
	require.NoError(t, s.StopTrackingById(ctx, rec.Id))

	got, err := s.GetRecords(ctx, "PROJ-1")
	require.NoError(t, err)
	require.NotNil(t, got[0].EndTime)

	// Already stopped and unknown ids are silent no-ops.
	require.NoError(t, s.StopTrackingById(ctx, rec.Id))
	require.NoError(t, s.StopTrackingById(ctx, 9999))
}

func TestGetUnsentCompletedRecords_NeverContainsActiveOrUploaded(t *testing.T) {
	s, clk := setupService(t)
	ctx := context.Background()

	first, err := s.StartTracking(ctx, "PROJ-1")
	require.NoError(t, err)
	clk.Advance(time.Minute)

	second, err := s.StartTracking(ctx, "PROJ-2")
	require.NoError(t, err)
	clk.Advance(time.Minute)

	// third stays active
	_, err = s.StartTracking(ctx, "PROJ-3")
	require.NoError(t, err)

	require.NoError(t, s.MarkAsUploaded(ctx, first.Id))

	unsent, err := s.GetUnsentCompletedRecords(ctx)
	require.NoError(t, err)
	require.Len(t, unsent, 1)
	assert.Equal(t, second.Id, unsent[0].Id)
	for _, r := range unsent {
		assert.NotNil(t, r.EndTime)
		assert.False(t, r.IsUploaded)
	}
}

func TestGetWeekRecords_Windowing(t *testing.T) {
	s, clk := setupService(t)
	ctx := context.Background()

	// clk starts Wednesday 2026-02-04. Track one record this week.
	_, err := s.StartTracking(ctx, "PROJ-1")
	require.NoError(t, err)
	require.NoError(t, s.StopTracking(ctx, "PROJ-1"))

	// Jump to next Wednesday and track another.
	clk.Advance(7 * 24 * time.Hour)
	_, err = s.StartTracking(ctx, "PROJ-2")
	require.NoError(t, err)
	require.NoError(t, s.StopTracking(ctx, "PROJ-2"))

	thisWeek, err := s.GetCurrentWeekRecords(ctx)
	require.NoError(t, err)
	require.Len(t, thisWeek, 1)
	assert.Equal(t, "PROJ-2", thisWeek[0].IssueKey)

	lastWeek, err := s.GetWeekRecords(ctx, -1)
	require.NoError(t, err)
	require.Len(t, lastWeek, 1)
	assert.Equal(t, "PROJ-1", lastWeek[0].IssueKey)

	empty, err := s.GetWeekRecords(ctx, -2)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGetYesterdayRecords(t *testing.T) {
	s, clk := setupService(t)
	ctx := context.Background()

	_, err := s.StartTracking(ctx, "PROJ-OLD")
	require.NoError(t, err)
	require.NoError(t, s.StopTracking(ctx, "PROJ-OLD"))

	clk.Advance(24 * time.Hour)
	_, err = s.StartTracking(ctx, "PROJ-NEW")
	require.NoError(t, err)

	got, err := s.GetYesterdayRecords(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "PROJ-OLD", got[0].IssueKey)
}

func TestUpdateRecord_RoundTripPreservesUploadedFlag(t *testing.T) {
	s, clk := setupService(t)
	ctx := context.Background()

	rec, err := s.StartTracking(ctx, "PROJ-1")
	require.NoError(t, err)
	clk.Advance(time.Hour)
	require.NoError(t, s.StopTracking(ctx, "PROJ-1"))
	require.NoError(t, s.MarkAsUploaded(ctx, rec.Id))

	newStart := rec.StartTime.Add(5 * time.Minute)
	newEnd := newStart.Add(30 * time.Minute)
	require.NoError(t, s.UpdateRecord(ctx, &models.TimeRecord{
		Id:        rec.Id,
		StartTime: newStart,
		EndTime:   &newEnd,
	}))

	got, err := s.GetRecords(ctx, "PROJ-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].StartTime.Equal(newStart))
	require.NotNil(t, got[0].EndTime)
	assert.True(t, got[0].EndTime.Equal(newEnd))
	assert.True(t, got[0].IsUploaded)
}

func TestUpdateRecord_RejectsEndBeforeStart(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()

	rec, err := s.StartTracking(ctx, "PROJ-1")
	require.NoError(t, err)

	badEnd := rec.StartTime.Add(-time.Minute)
	err = s.UpdateRecord(ctx, &models.TimeRecord{
		Id:        rec.Id,
		StartTime: rec.StartTime,
		EndTime:   &badEnd,
	})

	assert.ErrorIs(t, err, common.ErrEndBeforeStart)
}

func TestMarkAsUploaded_Idempotent(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()

	rec, err := s.StartTracking(ctx, "PROJ-1")
	require.NoError(t, err)
	require.NoError(t, s.StopTracking(ctx, "PROJ-1"))

	require.NoError(t, s.MarkAsUploaded(ctx, rec.Id))
	require.NoError(t, s.MarkAsUploaded(ctx, rec.Id))

	got, err := s.GetRecords(ctx, "PROJ-1")
	require.NoError(t, err)
	assert.True(t, got[0].IsUploaded)
}

func TestDeleteRecord(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()

	rec, err := s.StartTracking(ctx, "PROJ-1")
	require.NoError(t, err)

	require.NoError(t, s.DeleteRecord(ctx, rec.Id))

	got, err := s.GetRecords(ctx, "PROJ-1")
	require.NoError(t, err)
	assert.Empty(t, got)

	assert.ErrorIs(t, s.DeleteRecord(ctx, rec.Id), common.ErrNotFound)
}

func TestNotifications_FireAfterMutatingCommandsOnly(t *testing.T) {
	s, _ := setupService(t)
	ctx := context.Background()

	var fired int
	unsubscribe := s.Subscribe(func() { fired++ })

	rec, err := s.StartTracking(ctx, "PROJ-1")
	require.NoError(t, err)
	assert.Equal(t, 1, fired)

	// No-op stop of a non-matching issue does not notify.
	require.NoError(t, s.StopTracking(ctx, "PROJ-OTHER"))
	assert.Equal(t, 1, fired)

	require.NoError(t, s.StopTracking(ctx, "PROJ-1"))
	assert.Equal(t, 2, fired)

	require.NoError(t, s.MarkAsUploaded(ctx, rec.Id))
	assert.Equal(t, 3, fired)

	unsubscribe()
	require.NoError(t, s.DeleteRecord(ctx, rec.Id))
	assert.Equal(t, 3, fired)
}

// Package uploader drives the one-way handoff of completed local records
// into Jira worklogs. A record is marked uploaded if and only if its own
// upload call succeeded in that pass; a crash between the remote write and
// the local mark is an accepted at-least-once risk, so there is no
// two-phase commit.
package uploader

import (
	"context"
	"time"

	"github.com/dmitrijs2005/jiratime/internal/logging"
	"github.com/dmitrijs2005/jiratime/internal/timex"
	"github.com/dmitrijs2005/jiratime/internal/tracker"
)

// WorklogClient is the Jira write path the uploader depends on.
type WorklogClient interface {
	UploadTimeTracking(ctx context.Context, issueKey string, timeSpentSeconds int64, startedAt *time.Time) error
}

// Result counts the outcome of one reconciliation pass.
type Result struct {
	Uploaded int
	Failed   int
}

// Uploader runs reconciliation passes over the tracker's unsent set.
type Uploader struct {
	tracker *tracker.Service
	client  WorklogClient
	log     logging.Logger
}

// New returns an uploader pushing the engine's unsent records via client.
func New(trk *tracker.Service, client WorklogClient, log logging.Logger) *Uploader {
	return &Uploader{
		tracker: trk,
		client:  client,
		log:     log.With("component", "uploader"),
	}
}

// Run executes one reconciliation pass: every completed-but-unsent record is
// pushed to Jira and, on success, marked uploaded. A failing record is
// counted and skipped; it never blocks the rest of the batch. The returned
// error covers only the inability to run the pass at all.
func (u *Uploader) Run(ctx context.Context) (Result, error) {
	var result Result

	recs, err := u.tracker.GetUnsentCompletedRecords(ctx)
	if err != nil {
		return result, err
	}

	for _, rec := range recs {
		if rec.EndTime == nil {
			// Defensive: the source query excludes active records.
			continue
		}

		seconds := timex.DurationSeconds(rec.StartTime, *rec.EndTime)
		started := rec.StartTime

		if err := u.client.UploadTimeTracking(ctx, rec.IssueKey, seconds, &started); err != nil {
			u.log.Error(ctx, "worklog upload failed; record stays unsent",
				"id", rec.Id, "issue", rec.IssueKey, "error", err)
			result.Failed++
			continue
		}

		if err := u.tracker.MarkAsUploaded(ctx, rec.Id); err != nil {
			// Uploaded remotely but not marked locally: the record will be
			// retried next pass and Jira may receive it twice.
			u.log.Error(ctx, "uploaded but failed to mark record locally",
				"id", rec.Id, "issue", rec.IssueKey, "error", err)
			result.Failed++
			continue
		}

		u.log.Info(ctx, "record uploaded", "id", rec.Id, "issue", rec.IssueKey, "seconds", seconds)
		result.Uploaded++
	}

	u.log.Info(ctx, "reconciliation pass finished",
		"uploaded", result.Uploaded, "failed", result.Failed)
	return result, nil
}

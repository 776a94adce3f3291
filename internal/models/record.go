// Package models defines the data types persisted and exchanged by jiratime.
package models

import (
	"time"

	"github.com/dmitrijs2005/jiratime/internal/timex"
)

// TimeRecord is one tracked work session against a Jira issue.
//
// A record with a nil EndTime is the active session; the tracker guarantees
// at most one such record exists store-wide. IsUploaded only ever
// transitions false to true, after the span has been pushed to Jira.
type TimeRecord struct {
	// Id is the store-assigned auto-increment identifier.
	Id int64

	// IssueKey names the external issue, e.g. "PROJ-123". Not validated
	// against Jira at creation time.
	IssueKey string

	// StartTime is when the session started, UTC-normalized.
	StartTime time.Time

	// EndTime is when the session stopped; nil while the session runs.
	EndTime *time.Time

	// IsUploaded reports whether the span was pushed to Jira as a worklog.
	IsUploaded bool
}

// Active reports whether the session is still running.
func (r *TimeRecord) Active() bool {
	return r.EndTime == nil
}

// DurationSeconds returns the whole seconds tracked by the record. For an
// active record the duration is computed against now and is therefore not
// stable across calls.
func (r *TimeRecord) DurationSeconds(now time.Time) int64 {
	end := now
	if r.EndTime != nil {
		end = *r.EndTime
	}
	return timex.DurationSeconds(r.StartTime, end)
}

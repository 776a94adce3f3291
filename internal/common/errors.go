// Package common defines shared sentinel errors used across the
// jiratime layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Validation errors on record edits.
	ErrEndBeforeStart = errors.New("end time before start time")

	// Jira client errors.
	ErrInvalidIssueKey = errors.New("invalid issue key")
	ErrUploadRejected  = errors.New("worklog upload rejected")
)

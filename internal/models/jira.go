package models

import "time"

// JiraWorklog is a worklog entry as it exists in Jira, regardless of which
// tool created it. Read-only from jiratime's perspective.
type JiraWorklog struct {
	Author           string
	Started          time.Time
	TimeSpentSeconds int64
}

// IssueSummary pairs an issue key with its human-readable title, used for
// display only.
type IssueSummary struct {
	IssueKey  string
	Summary   string
	UpdatedAt time.Time
}

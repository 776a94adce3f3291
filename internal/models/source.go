package models

import "time"

// SourceKind distinguishes where a displayed time span came from.
type SourceKind string

const (
	SourceLocal  SourceKind = "local"
	SourceRemote SourceKind = "remote"
)

// RecordSource is a tagged union over a local TimeRecord and a remote
// JiraWorklog. Exactly one of Local/Remote is set, per Kind.
type RecordSource struct {
	Kind   SourceKind
	Local  *TimeRecord
	Remote *JiraWorklog
}

// LocalSource wraps a local record.
func LocalSource(r *TimeRecord) RecordSource {
	return RecordSource{Kind: SourceLocal, Local: r}
}

// RemoteSource wraps a remote worklog for the given issue.
func RemoteSource(w *JiraWorklog) RecordSource {
	return RecordSource{Kind: SourceRemote, Remote: w}
}

// DisplayRow is the shared projection of either source used by views.
type DisplayRow struct {
	IssueKey         string
	Started          time.Time
	TimeSpentSeconds int64
	Origin           SourceKind
}

// Project produces the display fields for the source. For an active local
// record the duration is computed against now.
func (s RecordSource) Project(issueKey string, now time.Time) DisplayRow {
	switch s.Kind {
	case SourceRemote:
		return DisplayRow{
			IssueKey:         issueKey,
			Started:          s.Remote.Started,
			TimeSpentSeconds: s.Remote.TimeSpentSeconds,
			Origin:           SourceRemote,
		}
	default:
		return DisplayRow{
			IssueKey:         s.Local.IssueKey,
			Started:          s.Local.StartTime,
			TimeSpentSeconds: s.Local.DurationSeconds(now),
			Origin:           SourceLocal,
		}
	}
}

package jira

// worklogCreation is the POST body for adding a worklog to an issue.
// Started is serialized in the millisecond+offset layout the API requires;
// a bare RFC3339 string is rejected.
type worklogCreation struct {
	TimeSpentSeconds int64  `json:"timeSpentSeconds"`
	Started          string `json:"started,omitempty"`
}

type worklogAuthor struct {
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress"`
}

type worklogItem struct {
	Author           worklogAuthor `json:"author"`
	Started          string        `json:"started"`
	TimeSpentSeconds int64         `json:"timeSpentSeconds"`
}

type worklogResult struct {
	StartAt    int           `json:"startAt"`
	Total      int           `json:"total"`
	MaxResults int           `json:"maxResults"`
	Worklogs   []worklogItem `json:"worklogs"`
}

type searchIssueFields struct {
	Summary string `json:"summary"`
}

type searchIssue struct {
	Key    string            `json:"key"`
	Fields searchIssueFields `json:"fields"`
}

type searchResult struct {
	StartAt    int           `json:"startAt"`
	Total      int           `json:"total"`
	MaxResults int           `json:"maxResults"`
	Issues     []searchIssue `json:"issues"`
}

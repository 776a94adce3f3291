// Package jira is a stateless REST client for the worklog subset of the
// Jira API: reading worklogs, posting worklogs and looking up issue
// summaries. Read paths soft-fail to empty results; the upload path
// propagates errors so callers never mark a record uploaded on failure.
package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/dmitrijs2005/jiratime/internal/common"
	"github.com/dmitrijs2005/jiratime/internal/logging"
	"github.com/dmitrijs2005/jiratime/internal/models"
)

// startedLayout is the fixed-offset timestamp encoding the worklog endpoint
// requires, e.g. "2026-02-04T10:00:00.000+0000".
const startedLayout = "2006-01-02T15:04:05.000-0700"

// issueKeyRe matches the PROJECT-NUMBER shape of Jira issue keys.
var issueKeyRe = regexp.MustCompile(`^[A-Z][A-Z0-9]*-[0-9]+$`)

// ValidIssueKey reports whether key has the PROJECT-NUMBER shape.
func ValidIssueKey(key string) bool {
	return issueKeyRe.MatchString(key)
}

// Client talks to one Jira site with Basic (email:apiToken) authentication.
type Client struct {
	baseURL    string
	email      string
	apiToken   string
	httpClient *http.Client
	log        logging.Logger
}

// NewClient creates a client for baseURL (e.g. "https://me.atlassian.net").
// timeout bounds every request; zero means no client-side timeout.
func NewClient(baseURL, email, apiToken string, timeout time.Duration, log logging.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		email:      email,
		apiToken:   apiToken,
		httpClient: &http.Client{Timeout: timeout},
		log:        log.With("component", "jira"),
	}
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("creating request: %w", err)
	}
	req.SetBasicAuth(c.email, c.apiToken)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("reading response body: %w", err)
	}
	return resp.StatusCode, data, nil
}

// GetWorklogs fetches all worklog entries recorded against the issue,
// regardless of which tool created them. This is a read path feeding
// aggregate totals: any transport or HTTP failure degrades to an empty
// slice and is only logged.
func (c *Client) GetWorklogs(ctx context.Context, issueKey string) []models.JiraWorklog {
	status, data, err := c.do(ctx, http.MethodGet,
		fmt.Sprintf("/rest/api/2/issue/%s/worklog", url.PathEscape(issueKey)), nil)
	if err != nil {
		c.log.Warn(ctx, "worklog fetch failed", "issue", issueKey, "error", err)
		return nil
	}
	if status != http.StatusOK {
		c.log.Warn(ctx, "worklog fetch returned non-OK status", "issue", issueKey, "status", status)
		return nil
	}

	var result worklogResult
	if err := json.Unmarshal(data, &result); err != nil {
		c.log.Warn(ctx, "decoding worklog response failed", "issue", issueKey, "error", err)
		return nil
	}

	worklogs := make([]models.JiraWorklog, 0, len(result.Worklogs))
	for _, item := range result.Worklogs {
		started, err := time.Parse(startedLayout, item.Started)
		if err != nil {
			c.log.Warn(ctx, "skipping worklog with unparseable start", "issue", issueKey, "started", item.Started)
			continue
		}
		worklogs = append(worklogs, models.JiraWorklog{
			Author:           item.Author.DisplayName,
			Started:          started,
			TimeSpentSeconds: item.TimeSpentSeconds,
		})
	}
	return worklogs
}

// UploadTimeTracking posts a new worklog entry against the issue. Unlike the
// read paths this is correctness-critical: any failure is returned so the
// caller leaves the local record unsent and safe to retry. A key that does
// not have the PROJECT-NUMBER shape is rejected locally with
// common.ErrInvalidIssueKey, without hitting the API.
func (c *Client) UploadTimeTracking(ctx context.Context, issueKey string, timeSpentSeconds int64, startedAt *time.Time) error {
	if !ValidIssueKey(issueKey) {
		return fmt.Errorf("%w: %q", common.ErrInvalidIssueKey, issueKey)
	}

	payload := worklogCreation{TimeSpentSeconds: timeSpentSeconds}
	if startedAt != nil {
		payload.Started = startedAt.UTC().Format(startedLayout)
	}

	status, data, err := c.do(ctx, http.MethodPost,
		fmt.Sprintf("/rest/api/2/issue/%s/worklog", url.PathEscape(issueKey)), payload)
	if err != nil {
		return fmt.Errorf("uploading worklog for %s: %w", issueKey, err)
	}
	if status != http.StatusCreated && status != http.StatusOK {
		return fmt.Errorf("%w: issue %s: status %d: %s", common.ErrUploadRejected, issueKey, status, string(data))
	}
	return nil
}

// GetIssueSummaries batch-resolves human-readable titles for the given keys.
// Keys not matching the PROJECT-NUMBER shape are filtered out before
// querying; unknown keys are absent from the result. Never returns an error
// for "not found" or transport failures; this feeds display only.
func (c *Client) GetIssueSummaries(ctx context.Context, issueKeys []string) map[string]string {
	result := map[string]string{}

	valid := make([]string, 0, len(issueKeys))
	for _, key := range issueKeys {
		if ValidIssueKey(key) {
			valid = append(valid, key)
		}
	}
	if len(valid) == 0 {
		return result
	}

	jql := fmt.Sprintf("key in (%s)", strings.Join(valid, ","))
	endpoint := fmt.Sprintf("/rest/api/2/search?jql=%s&fields=summary&maxResults=%d",
		url.QueryEscape(jql), len(valid))

	status, data, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.log.Warn(ctx, "issue summary lookup failed", "error", err)
		return result
	}
	if status != http.StatusOK {
		c.log.Warn(ctx, "issue summary lookup returned non-OK status", "status", status)
		return result
	}

	var search searchResult
	if err := json.Unmarshal(data, &search); err != nil {
		c.log.Warn(ctx, "decoding search response failed", "error", err)
		return result
	}

	for _, issue := range search.Issues {
		result[issue.Key] = issue.Fields.Summary
	}
	return result
}

// Package issues persists the local mirror of Jira issue summaries,
// refreshed opportunistically and used only for display.
package issues

import (
	"context"

	"github.com/dmitrijs2005/jiratime/internal/models"
)

// Repository is the persistence contract for the issue-summary mirror.
type Repository interface {
	// Upsert stores or refreshes one summary.
	Upsert(ctx context.Context, s *models.IssueSummary) error

	// GetByKeys returns the summaries known for the given keys. Unknown
	// keys are simply absent from the result.
	GetByKeys(ctx context.Context, issueKeys []string) (map[string]string, error)
}

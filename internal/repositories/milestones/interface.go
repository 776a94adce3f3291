// Package milestones persists the append-only milestone log.
package milestones

import (
	"context"

	"github.com/dmitrijs2005/jiratime/internal/models"
)

// Repository is the persistence contract for milestones.
type Repository interface {
	// Add stores a milestone and returns its id.
	Add(ctx context.Context, m *models.Milestone) (int64, error)

	// List returns all milestones, most recent first.
	List(ctx context.Context) ([]models.Milestone, error)

	// Delete removes a milestone.
	Delete(ctx context.Context, id int64) error
}

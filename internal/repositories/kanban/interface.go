// Package kanban persists the personal board. Reordering renumbers the
// positions of a whole column inside one transaction so a partial update
// can never leave the column with duplicate or gapped positions.
package kanban

import (
	"context"

	"github.com/dmitrijs2005/jiratime/internal/models"
)

// Repository is the persistence contract for board items.
type Repository interface {
	// Add appends an item to the end of its column and returns its id.
	Add(ctx context.Context, item *models.KanbanItem) (int64, error)

	// Move places the item at the end of the target column.
	Move(ctx context.Context, id int64, column models.KanbanColumn) error

	// Remove deletes the item.
	Remove(ctx context.Context, id int64) error

	// ListByColumn lists a column's items ordered by position.
	ListByColumn(ctx context.Context, column models.KanbanColumn) ([]models.KanbanItem, error)

	// Reorder renumbers the column to match orderedIDs exactly. The id set
	// must equal the column's current contents; otherwise nothing changes.
	Reorder(ctx context.Context, column models.KanbanColumn, orderedIDs []int64) error
}

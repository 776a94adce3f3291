package models

// KanbanColumn is one lane of the personal board.
type KanbanColumn string

const (
	ColumnTodo       KanbanColumn = "todo"
	ColumnInProgress KanbanColumn = "in_progress"
	ColumnDone       KanbanColumn = "done"
)

// KanbanItem is one card on the personal board. Position is the 0-based
// ordering inside the item's column; the repository renumbers positions
// transactionally on reorder.
type KanbanItem struct {
	Id       int64
	IssueKey string
	Title    string
	Column   KanbanColumn
	Position int64
}

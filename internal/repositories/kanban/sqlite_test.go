package kanban

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/jiratime/internal/common"
	"github.com/dmitrijs2005/jiratime/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE kanban_items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  issue_key TEXT NOT NULL DEFAULT '',
  title TEXT NOT NULL,
  column_name TEXT NOT NULL,
  position INTEGER NOT NULL
);
`)
	require.NoError(t, err)

	return db
}

func mustAdd(t *testing.T, r *SQLiteRepository, column models.KanbanColumn, title string) int64 {
	t.Helper()
	id, err := r.Add(context.Background(), &models.KanbanItem{Title: title, Column: column})
	require.NoError(t, err)
	return id
}

func columnTitles(t *testing.T, r *SQLiteRepository, column models.KanbanColumn) []string {
	t.Helper()
	items, err := r.ListByColumn(context.Background(), column)
	require.NoError(t, err)
	titles := make([]string, 0, len(items))
	for _, it := range items {
		titles = append(titles, it.Title)
	}
	return titles
}

func TestAdd_AppendsAtEndOfColumn(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	mustAdd(t, r, models.ColumnTodo, "a")
	mustAdd(t, r, models.ColumnTodo, "b")
	mustAdd(t, r, models.ColumnDone, "c")

	assert.Equal(t, []string{"a", "b"}, columnTitles(t, r, models.ColumnTodo))
	assert.Equal(t, []string{"c"}, columnTitles(t, r, models.ColumnDone))
}

func TestMove_PlacesItemAtEndOfTargetColumn(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	id := mustAdd(t, r, models.ColumnTodo, "a")
	mustAdd(t, r, models.ColumnInProgress, "b")

	require.NoError(t, r.Move(ctx, id, models.ColumnInProgress))

	assert.Empty(t, columnTitles(t, r, models.ColumnTodo))
	assert.Equal(t, []string{"b", "a"}, columnTitles(t, r, models.ColumnInProgress))
}

func TestMove_UnknownItem(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	err := r.Move(context.Background(), 42, models.ColumnDone)

	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestReorder_RenumbersWholeColumn(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	a := mustAdd(t, r, models.ColumnTodo, "a")
	b := mustAdd(t, r, models.ColumnTodo, "b")
	c := mustAdd(t, r, models.ColumnTodo, "c")

	require.NoError(t, r.Reorder(ctx, models.ColumnTodo, []int64{c, a, b}))

	assert.Equal(t, []string{"c", "a", "b"}, columnTitles(t, r, models.ColumnTodo))
}

func TestReorder_RollsBackOnForeignID(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	a := mustAdd(t, r, models.ColumnTodo, "a")
	b := mustAdd(t, r, models.ColumnTodo, "b")
	other := mustAdd(t, r, models.ColumnDone, "other")

	err := r.Reorder(ctx, models.ColumnTodo, []int64{other, a})

	assert.Error(t, err)
	// Original ordering untouched.
	assert.Equal(t, []string{"a", "b"}, columnTitles(t, r, models.ColumnTodo))
	_ = b
}

func TestReorder_RejectsWrongCardinality(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	a := mustAdd(t, r, models.ColumnTodo, "a")
	mustAdd(t, r, models.ColumnTodo, "b")

	err := r.Reorder(context.Background(), models.ColumnTodo, []int64{a})

	assert.Error(t, err)
	assert.Equal(t, []string{"a", "b"}, columnTitles(t, r, models.ColumnTodo))
}

func TestRemove(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	id := mustAdd(t, r, models.ColumnTodo, "a")

	require.NoError(t, r.Remove(ctx, id))
	assert.ErrorIs(t, r.Remove(ctx, id), common.ErrNotFound)
}

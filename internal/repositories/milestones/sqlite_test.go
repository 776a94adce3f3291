package milestones

import (
	"context"
	"database/sql"
	"testing"
	"time"

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
CREATE TABLE milestones (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  title TEXT NOT NULL,
  note TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL
);
`)
	require.NoError(t, err)

	return db
}

func TestAddAndList_MostRecentFirst(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	_, err := r.Add(ctx, &models.Milestone{Title: "v1 shipped", Note: "first release", CreatedAt: base})
	require.NoError(t, err)
	_, err = r.Add(ctx, &models.Milestone{Title: "v2 shipped", CreatedAt: base.AddDate(0, 0, 3)})
	require.NoError(t, err)

	got, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "v2 shipped", got[0].Title)
	assert.Equal(t, "v1 shipped", got[1].Title)
	assert.Equal(t, "first release", got[1].Note)
	assert.True(t, got[1].CreatedAt.Equal(base))
}

func TestList_SubSecondCreationsOrderChronologically(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	_, err := r.Add(ctx, &models.Milestone{Title: "first", CreatedAt: base.Add(120 * time.Millisecond)})
	require.NoError(t, err)
	_, err = r.Add(ctx, &models.Milestone{Title: "second", CreatedAt: base.Add(123 * time.Millisecond)})
	require.NoError(t, err)

	got, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "second", got[0].Title)
	assert.Equal(t, "first", got[1].Title)
}

func TestDelete(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	id, err := r.Add(ctx, &models.Milestone{Title: "x", CreatedAt: time.Now()})
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, id))
	assert.ErrorIs(t, r.Delete(ctx, id), common.ErrNotFound)
}

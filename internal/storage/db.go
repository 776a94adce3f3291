// Package storage opens the local SQLite database, applies the embedded
// goose migrations and wires up the repositories.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/jiratime/internal/migrations"
	"github.com/dmitrijs2005/jiratime/internal/repositories/issues"
	"github.com/dmitrijs2005/jiratime/internal/repositories/kanban"
	"github.com/dmitrijs2005/jiratime/internal/repositories/milestones"
	"github.com/dmitrijs2005/jiratime/internal/repositories/records"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// Repositories bundles every repository bound to the opened database.
type Repositories struct {
	Records    records.Repository
	Kanban     kanban.Repository
	Milestones milestones.Repository
	Issues     issues.Repository
}

// RunMigrations applies all pending embedded migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if needed) the database at dsn, migrates it
// and returns the repository set together with the raw handle, which the
// caller owns and must close.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, *sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, err
	}
	// SQLite is single-writer, and a :memory: DSN is per-connection.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}

	repos := &Repositories{
		Records:    records.NewSQLiteRepository(db),
		Kanban:     kanban.NewSQLiteRepository(db),
		Milestones: milestones.NewSQLiteRepository(db),
		Issues:     issues.NewSQLiteRepository(db),
	}
	return repos, db, nil
}

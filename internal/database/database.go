package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go sqlite driver
)

// NewSQLXSQLiteDB opens (or creates) the sqlite database at path and verifies
// the connection. Foreign keys are enabled per connection.
func NewSQLXSQLiteDB(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to sqlite database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// sqlite handles a single writer; cap the pool so concurrent writes
	// queue instead of erroring with a locked database.
	db.SetMaxOpenConns(1)

	return db, nil
}

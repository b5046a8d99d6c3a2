// Package db sets up/opens the program database.
package db

import (
	"database/sql"
	"fmt"

	"audiorr/internal/utils/logging"

	_ "github.com/mattn/go-sqlite3"
)

const (
	dbDriver = "sqlite3"
)

type Database struct {
	DB *sql.DB
}

// InitDB opens (creating if needed) the database at dbPath and ensures
// the table schema exists.
func InitDB(dbPath string) (d *Database, err error) {
	d = new(Database)
	d.DB, err = sql.Open(dbDriver, dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at path %q: %w", dbPath, err)
	}

	// Enable foreign key enforcement
	_, err = d.DB.Exec("PRAGMA foreign_keys = ON;")
	if err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := d.initTables(); err != nil {
		return nil, fmt.Errorf("failed to initialize tables: %w", err)
	}
	return d, nil
}

// initTables initializes the SQL tables.
func (d *Database) initTables() error {
	tx, err := d.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				logging.E("transaction rollback failed: %v", rollbackErr)
			}
		}
	}()

	if err = initSessionsTable(tx); err != nil {
		return err
	}

	if err = initVideoResultsTable(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

package db

import (
	"database/sql"
	"embed"
	"fmt"
)

//go:embed sql/*.sql
var sqlFiles embed.FS

const (
	sessionSQL     = "sql/sessions.sql"
	videoResultSQL = "sql/video_results.sql"
)

// initSessionsTable initializes the sessions table.
func initSessionsTable(tx *sql.Tx) error {
	return executeSQLFile(tx, sessionSQL, "sessions table")
}

// initVideoResultsTable initializes the per-video results table.
func initVideoResultsTable(tx *sql.Tx) error {
	return executeSQLFile(tx, videoResultSQL, "video results table")
}

// readSQLFile reads the SQL file stored in memory from go:embed.
func readSQLFile(filename string) (string, error) {
	data, err := sqlFiles.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("failed to read SQL file %s: %w", filename, err)
	}
	return string(data), nil
}

// executeSQLFile executes the SQL file stored in memory from go:embed.
func executeSQLFile(tx *sql.Tx, filename, tableName string) error {
	query, err := readSQLFile(filename)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query); err != nil {
		return fmt.Errorf("failed to create %s: %w", tableName, err)
	}
	return nil
}

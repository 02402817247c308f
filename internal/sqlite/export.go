package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
)

// userTables are the tables holding per-user data, in dependency order so
// foreign keys resolve during the copy. The sessions table is excluded on
// purpose, session blobs are transient and not user content.
var userTables = []struct {
	name       string
	userColumn string
}{
	{"users", "id"},
	{"equipment_profiles", "user_id"},
	{"morning_checkins", "user_id"},
	{"workout_feedback", "user_id"},
	{"recovery_snapshots", "user_id"},
	{"daily_plans", "user_id"},
}

// ExportUserData copies one user's rows into a standalone SQLite database
// file and returns its path. This gives the user all their data in a
// portable form to comply with GDPR.
func (db *Database) ExportUserData(ctx context.Context, userID int, basePath string) (_ string, err error) {
	exportPath := filepath.Join(basePath, fmt.Sprintf("user-db-%d.sqlite3", userID))
	exportDsn := fmt.Sprintf("file:%s?mode=rwc", exportPath)

	conn, err := db.ReadOnly.Conn(ctx)
	if err != nil {
		return "", fmt.Errorf("get db connection: %w", err)
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close db connection: %w", closeErr)
		}
	}()

	// The read connection is query-only by default; lift that for the
	// duration of the export so the attached database can be written.
	if _, err = conn.ExecContext(ctx, `PRAGMA query_only = FALSE`); err != nil {
		return "", fmt.Errorf("disable query only mode: %w", err)
	}
	defer func() {
		if _, pragmaErr := conn.ExecContext(ctx, `PRAGMA query_only = TRUE`); pragmaErr != nil && err == nil {
			err = fmt.Errorf("restore query only mode: %w", pragmaErr)
		}
	}()

	if _, err = conn.ExecContext(ctx, `ATTACH DATABASE ? AS export`, exportDsn); err != nil {
		return "", fmt.Errorf("attach export database: %w", err)
	}
	defer func() {
		if _, detachErr := conn.ExecContext(ctx, `DETACH DATABASE export`); detachErr != nil && err == nil {
			err = fmt.Errorf("detach export database: %w", detachErr)
		}
	}()

	if err = copyUserTables(ctx, conn, userID); err != nil {
		return "", err
	}

	return exportPath, nil
}

func copyUserTables(ctx context.Context, conn *sql.Conn, userID int) error {
	for _, table := range userTables {
		var createSQL string
		err := conn.QueryRowContext(ctx,
			`SELECT sql FROM sqlite_schema WHERE type = 'table' AND name = ?`,
			table.name).Scan(&createSQL)
		if err != nil {
			return fmt.Errorf("get schema for table %s: %w", table.name, err)
		}

		exportSQL := fmt.Sprintf("CREATE TABLE export.%s%s",
			table.name, createSQL[len("CREATE TABLE "+table.name):])
		if _, err = conn.ExecContext(ctx, exportSQL); err != nil {
			return fmt.Errorf("create export table %s: %w", table.name, err)
		}

		//nolint:gosec // Table and column names come from the fixed list above.
		copySQL := fmt.Sprintf(
			"INSERT INTO export.%s SELECT * FROM main.%s WHERE %s = ?",
			table.name, table.name, table.userColumn)
		if _, err = conn.ExecContext(ctx, copySQL, userID); err != nil {
			return fmt.Errorf("copy table %s: %w", table.name, err)
		}
	}
	return nil
}

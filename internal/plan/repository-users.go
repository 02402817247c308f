package plan

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/myrjola/coachapp/internal/sqlite"
)

// sqliteUserRepository manages user records.
type sqliteUserRepository struct {
	baseRepository
}

func newSQLiteUserRepository(db *sqlite.Database, logger *slog.Logger) *sqliteUserRepository {
	return &sqliteUserRepository{baseRepository: newBaseRepository(db, logger)}
}

// GetOrCreate resolves a display name to a user id, creating the user on
// first login.
func (r *sqliteUserRepository) GetOrCreate(ctx context.Context, displayName string) (int, error) {
	var id int
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id FROM users WHERE display_name = ?`, displayName).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("query user: %w", err)
	}

	result, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO users (display_name) VALUES (?)
		ON CONFLICT (display_name) DO UPDATE SET display_name = excluded.display_name`,
		displayName)
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return int(lastID), nil
}

// ListIDs returns all user ids. The scheduler uses this to fan plan
// generation out every morning.
func (r *sqliteUserRepository) ListIDs(ctx context.Context) (_ []int, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `SELECT id FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var ids []int
	for rows.Next() {
		var id int
		if err = rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return ids, nil
}

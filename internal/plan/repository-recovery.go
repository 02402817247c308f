package plan

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/myrjola/coachapp/internal/contexthelpers"
	"github.com/myrjola/coachapp/internal/sqlite"
)

// sqliteRecoveryRepository manages recovery snapshots.
type sqliteRecoveryRepository struct {
	baseRepository
}

func newSQLiteRecoveryRepository(db *sqlite.Database, logger *slog.Logger) *sqliteRecoveryRepository {
	return &sqliteRecoveryRepository{baseRepository: newBaseRepository(db, logger)}
}

// Get retrieves the recovery snapshot for a date. Returns ErrNotFound when
// the physiological data has not arrived yet.
func (r *sqliteRecoveryRepository) Get(ctx context.Context, date time.Time) (RecoverySnapshot, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	snapshot := RecoverySnapshot{Date: normalizeDate(date)}
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT recovery_score, sleep_summary
		FROM recovery_snapshots
		WHERE user_id = ? AND snapshot_date = ?`,
		userID, formatDate(date)).Scan(&snapshot.RecoveryScore, &snapshot.SleepSummary)
	if errors.Is(err, sql.ErrNoRows) {
		return RecoverySnapshot{}, ErrNotFound
	}
	if err != nil {
		return RecoverySnapshot{}, fmt.Errorf("query recovery snapshot: %w", err)
	}
	return snapshot, nil
}

// Set saves a recovery snapshot, replacing any earlier one for the date.
func (r *sqliteRecoveryRepository) Set(ctx context.Context, snapshot RecoverySnapshot) error {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO recovery_snapshots (user_id, snapshot_date, recovery_score, sleep_summary)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, snapshot_date) DO UPDATE SET
			recovery_score = excluded.recovery_score,
			sleep_summary = excluded.sleep_summary`,
		userID, formatDate(snapshot.Date), snapshot.RecoveryScore, snapshot.SleepSummary)
	if err != nil {
		return fmt.Errorf("save recovery snapshot: %w", err)
	}
	return nil
}

// Exists reports whether a snapshot has arrived for the date. The morning
// scheduler skips users without fresh physiological data.
func (r *sqliteRecoveryRepository) Exists(ctx context.Context, date time.Time) (bool, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	var count int
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM recovery_snapshots
		WHERE user_id = ? AND snapshot_date = ?`,
		userID, formatDate(date)).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("count recovery snapshots: %w", err)
	}
	return count > 0, nil
}

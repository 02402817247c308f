package plan

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/myrjola/coachapp/internal/contexthelpers"
	"github.com/myrjola/coachapp/internal/sqlite"
)

// sqliteCheckInRepository manages morning check-ins.
type sqliteCheckInRepository struct {
	baseRepository
}

func newSQLiteCheckInRepository(db *sqlite.Database, logger *slog.Logger) *sqliteCheckInRepository {
	return &sqliteCheckInRepository{baseRepository: newBaseRepository(db, logger)}
}

// Get retrieves the check-in for a date. Returns ErrNotFound when the user
// has not checked in that morning.
func (r *sqliteCheckInRepository) Get(ctx context.Context, date time.Time) (MorningCheckIn, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	var (
		soreness          int
		painLocationsJSON string
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT soreness, pain_locations
		FROM morning_checkins
		WHERE user_id = ? AND checkin_date = ?`,
		userID, formatDate(date)).Scan(&soreness, &painLocationsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return MorningCheckIn{}, ErrNotFound
	}
	if err != nil {
		return MorningCheckIn{}, fmt.Errorf("query morning check-in: %w", err)
	}

	var painLocations []string
	if err = json.Unmarshal([]byte(painLocationsJSON), &painLocations); err != nil {
		return MorningCheckIn{}, fmt.Errorf("unmarshal pain locations: %w", err)
	}

	return MorningCheckIn{
		Date:          normalizeDate(date),
		Soreness:      soreness,
		PainLocations: painLocations,
	}, nil
}

// Set saves a check-in, replacing any earlier report for the same morning.
func (r *sqliteCheckInRepository) Set(ctx context.Context, checkIn MorningCheckIn) error {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	painLocations := checkIn.PainLocations
	if painLocations == nil {
		painLocations = []string{}
	}
	painLocationsJSON, err := json.Marshal(painLocations)
	if err != nil {
		return fmt.Errorf("marshal pain locations: %w", err)
	}

	_, err = r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO morning_checkins (user_id, checkin_date, soreness, pain_locations)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, checkin_date) DO UPDATE SET
			soreness = excluded.soreness,
			pain_locations = excluded.pain_locations`,
		userID, formatDate(checkIn.Date), checkIn.Soreness, string(painLocationsJSON))
	if err != nil {
		return fmt.Errorf("save morning check-in: %w", err)
	}
	return nil
}

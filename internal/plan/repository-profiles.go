package plan

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/myrjola/coachapp/internal/contexthelpers"
	"github.com/myrjola/coachapp/internal/sqlite"
)

// Default kettlebell capabilities for users who have not configured weights.
const (
	defaultKBOverheadMaxKg = 12
	defaultKBHeavyKg       = 20
	defaultKBSwingKg       = 12
)

// sqliteProfileRepository manages equipment profiles.
type sqliteProfileRepository struct {
	baseRepository
}

func newSQLiteProfileRepository(db *sqlite.Database, logger *slog.Logger) *sqliteProfileRepository {
	return &sqliteProfileRepository{baseRepository: newBaseRepository(db, logger)}
}

// Get retrieves the authenticated user's profile, falling back to the
// default home setup when none has been saved.
func (r *sqliteProfileRepository) Get(ctx context.Context) (Profile, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	var profile Profile
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT equipment, kb_overhead_max_kg, kb_heavy_kg, kb_swing_kg
		FROM equipment_profiles
		WHERE user_id = ?`, userID).Scan(
		&profile.Equipment,
		&profile.KBOverheadMaxKg,
		&profile.KBHeavyKg,
		&profile.KBSwingKg,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{
			Equipment:       EquipmentHomeFull,
			KBOverheadMaxKg: defaultKBOverheadMaxKg,
			KBHeavyKg:       defaultKBHeavyKg,
			KBSwingKg:       defaultKBSwingKg,
		}, nil
	}
	if err != nil {
		return Profile{}, fmt.Errorf("query equipment profile: %w", err)
	}
	return profile, nil
}

// Set saves the authenticated user's profile.
func (r *sqliteProfileRepository) Set(ctx context.Context, profile Profile) error {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO equipment_profiles (
			user_id, equipment, kb_overhead_max_kg, kb_heavy_kg, kb_swing_kg
		) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			equipment = excluded.equipment,
			kb_overhead_max_kg = excluded.kb_overhead_max_kg,
			kb_heavy_kg = excluded.kb_heavy_kg,
			kb_swing_kg = excluded.kb_swing_kg`,
		userID, profile.Equipment, profile.KBOverheadMaxKg, profile.KBHeavyKg, profile.KBSwingKg)
	if err != nil {
		return fmt.Errorf("save equipment profile: %w", err)
	}
	return nil
}

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

// planRecord is a stored plan together with its creation timestamp, which
// the service needs for the Z4 cooldown derivation.
type planRecord struct {
	Plan      Plan
	CreatedAt time.Time
}

// sqlitePlanRepository manages stored daily plans.
type sqlitePlanRepository struct {
	baseRepository
}

func newSQLitePlanRepository(db *sqlite.Database, logger *slog.Logger) *sqlitePlanRepository {
	return &sqlitePlanRepository{baseRepository: newBaseRepository(db, logger)}
}

// Get retrieves the plan for a date. Returns ErrNotFound when no plan has
// been generated yet.
func (r *sqlitePlanRepository) Get(ctx context.Context, date time.Time) (Plan, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	var (
		optionsJSON      string
		debugJSON        string
		selectedOptionID sql.NullString
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT options_shown, scoring_debug, selected_option_id
		FROM daily_plans
		WHERE user_id = ? AND plan_date = ?`,
		userID, formatDate(date)).Scan(&optionsJSON, &debugJSON, &selectedOptionID)
	if errors.Is(err, sql.ErrNoRows) {
		return Plan{}, ErrNotFound
	}
	if err != nil {
		return Plan{}, fmt.Errorf("query daily plan: %w", err)
	}

	return parsePlanRow(optionsJSON, debugJSON, selectedOptionID)
}

// Set upserts the plan for its date. Regenerating replaces the stored plan
// and resets any earlier option selection.
func (r *sqlitePlanRepository) Set(ctx context.Context, p Plan) error {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	// The ranked list with rule tags is audit data and lives in its own
	// column so the plan blob stays small.
	debugJSON, err := json.Marshal(p.Debug)
	if err != nil {
		return fmt.Errorf("marshal scoring debug: %w", err)
	}
	stripped := p
	stripped.Debug = ScoringDebug{}
	optionsJSON, err := json.Marshal(stripped)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}

	createdAt := time.Now().UTC().Format(timestampFormat)
	_, err = r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO daily_plans (
			user_id, plan_date, recovery_score, sleep_summary, equipment,
			options_shown, scoring_debug, selected_option_id, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, plan_date) DO UPDATE SET
			recovery_score = excluded.recovery_score,
			sleep_summary = excluded.sleep_summary,
			equipment = excluded.equipment,
			options_shown = excluded.options_shown,
			scoring_debug = excluded.scoring_debug,
			selected_option_id = excluded.selected_option_id,
			created_at = excluded.created_at`,
		userID, formatDate(p.Date), p.RecoveryScore, p.SleepSummary, string(p.Equipment),
		string(optionsJSON), string(debugJSON), p.SelectedOptionID, createdAt)
	if err != nil {
		return fmt.Errorf("save daily plan: %w", err)
	}
	return nil
}

// SetSelected records which option the user picked from the plan.
func (r *sqlitePlanRepository) SetSelected(ctx context.Context, date time.Time, optionID string) error {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	result, err := r.db.ReadWrite.ExecContext(ctx, `
		UPDATE daily_plans
		SET selected_option_id = ?
		WHERE user_id = ? AND plan_date = ?`,
		optionID, userID, formatDate(date))
	if err != nil {
		return fmt.Errorf("update selected option: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// ListSince returns stored plans dated on or after the given date, most
// recent first.
func (r *sqlitePlanRepository) ListSince(ctx context.Context, since time.Time) (_ []planRecord, err error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT options_shown, scoring_debug, selected_option_id, created_at
		FROM daily_plans
		WHERE user_id = ? AND plan_date >= ?
		ORDER BY plan_date DESC`,
		userID, formatDate(since))
	if err != nil {
		return nil, fmt.Errorf("query daily plans: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var records []planRecord
	for rows.Next() {
		var (
			optionsJSON      string
			debugJSON        string
			selectedOptionID sql.NullString
			createdAtStr     string
		)
		if err = rows.Scan(&optionsJSON, &debugJSON, &selectedOptionID, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scan plan row: %w", err)
		}

		var record planRecord
		if record.Plan, err = parsePlanRow(optionsJSON, debugJSON, selectedOptionID); err != nil {
			return nil, err
		}
		if record.CreatedAt, err = time.Parse(timestampFormat, createdAtStr); err != nil {
			return nil, fmt.Errorf("parse created at: %w", err)
		}
		records = append(records, record)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return records, nil
}

func parsePlanRow(optionsJSON, debugJSON string, selectedOptionID sql.NullString) (Plan, error) {
	var p Plan
	if err := json.Unmarshal([]byte(optionsJSON), &p); err != nil {
		return Plan{}, fmt.Errorf("unmarshal plan: %w", err)
	}
	if err := json.Unmarshal([]byte(debugJSON), &p.Debug); err != nil {
		return Plan{}, fmt.Errorf("unmarshal scoring debug: %w", err)
	}
	if selectedOptionID.Valid {
		p.SelectedOptionID = &selectedOptionID.String
	} else {
		p.SelectedOptionID = nil
	}
	return p, nil
}

package plan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/myrjola/coachapp/internal/contexthelpers"
	"github.com/myrjola/coachapp/internal/sqlite"
)

// sqliteFeedbackRepository manages workout feedback records.
type sqliteFeedbackRepository struct {
	baseRepository
}

func newSQLiteFeedbackRepository(db *sqlite.Database, logger *slog.Logger) *sqliteFeedbackRepository {
	return &sqliteFeedbackRepository{baseRepository: newBaseRepository(db, logger)}
}

// Create stores a post-workout effort rating.
func (r *sqliteFeedbackRepository) Create(ctx context.Context, feedback WorkoutFeedback) error {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	createdAt := feedback.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO workout_feedback (user_id, effort, workout_date, created_at)
		VALUES (?, ?, ?, ?)`,
		userID, feedback.Effort, formatDate(feedback.WorkoutDate),
		createdAt.UTC().Format(timestampFormat))
	if err != nil {
		return fmt.Errorf("insert workout feedback: %w", err)
	}
	return nil
}

// ListSince returns feedback on or after the given date, most recent first.
func (r *sqliteFeedbackRepository) ListSince(ctx context.Context, since time.Time) (_ []WorkoutFeedback, err error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT effort, workout_date, created_at
		FROM workout_feedback
		WHERE user_id = ? AND workout_date >= ?
		ORDER BY workout_date DESC, created_at DESC`,
		userID, formatDate(since))
	if err != nil {
		return nil, fmt.Errorf("query workout feedback: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var feedback []WorkoutFeedback
	for rows.Next() {
		var (
			fb             WorkoutFeedback
			workoutDateStr string
			createdAtStr   string
		)
		if err = rows.Scan(&fb.Effort, &workoutDateStr, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scan feedback row: %w", err)
		}
		if fb.WorkoutDate, err = time.Parse(dateFormat, workoutDateStr); err != nil {
			return nil, fmt.Errorf("parse workout date: %w", err)
		}
		if fb.CreatedAt, err = time.Parse(timestampFormat, createdAtStr); err != nil {
			return nil, fmt.Errorf("parse created at: %w", err)
		}
		feedback = append(feedback, fb)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return feedback, nil
}

package plan

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/myrjola/coachapp/internal/contexthelpers"
	"golang.org/x/sync/errgroup"
)

const schedulerConcurrency = 4

// Scheduler generates the morning plan for every user with fresh recovery
// data. It wakes up once a minute and fires when the configured morning
// hour is reached.
type Scheduler struct {
	service *Service
	cfg     Config
	logger  *slog.Logger
	// generated tracks the date plans were last generated for, so one
	// morning triggers exactly one run.
	generated time.Time
}

// NewScheduler creates a morning plan scheduler.
func NewScheduler(service *Service, cfg Config, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		service:   service,
		cfg:       cfg,
		logger:    logger,
		generated: time.Time{},
	}
}

// Run blocks until the context is cancelled, generating plans every morning.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if err := s.tick(ctx, now); err != nil {
				s.logger.LogAttrs(ctx, slog.LevelError, "morning plan run failed",
					slog.Any("error", err))
			}
		}
	}
}

// tick generates plans when the morning hour has been reached and the day's
// run has not happened yet. Ticks past the late hour are skipped entirely,
// a plan delivered at noon helps nobody.
func (s *Scheduler) tick(ctx context.Context, now time.Time) error {
	today := normalizeDate(now)
	if s.generated.Equal(today) {
		return nil
	}
	if now.Hour() < s.cfg.MorningHour || now.Hour() >= s.cfg.LateHour {
		return nil
	}

	if err := s.generateAll(ctx, today); err != nil {
		return err
	}
	s.generated = today
	return nil
}

// generateAll fans plan generation out across users with bounded
// concurrency. Users without a recovery snapshot for the day are skipped;
// their data has not arrived yet.
func (s *Scheduler) generateAll(ctx context.Context, date time.Time) error {
	userIDs, err := s.service.UserIDs(ctx)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(schedulerConcurrency)

	for _, userID := range userIDs {
		g.Go(func() error {
			userCtx := contexthelpers.WithAuthenticatedUser(gctx, userID)

			ok, snapErr := s.service.HasRecoverySnapshot(userCtx, date)
			if snapErr != nil {
				return snapErr
			}
			if !ok {
				s.logger.LogAttrs(userCtx, slog.LevelInfo, "skipping user without recovery data",
					slog.Int("userID", userID))
				return nil
			}

			if _, genErr := s.service.GenerateDailyPlan(userCtx, date); genErr != nil {
				// A fully filtered catalog is a valid state for one
				// user and must not abort the whole run.
				if errors.Is(genErr, ErrNoOptions) {
					s.logger.LogAttrs(userCtx, slog.LevelWarn, "no options available",
						slog.Int("userID", userID))
					return nil
				}
				return genErr
			}
			return nil
		})
	}

	if err = g.Wait(); err != nil {
		return err
	}
	return nil
}

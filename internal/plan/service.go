package plan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/myrjola/coachapp/internal/sqlite"
)

const z4LookbackDays = 7

// Service handles the business logic for daily training plans.
type Service struct {
	repo    *repository
	planner *planner
	cfg     Config
	logger  *slog.Logger
}

// NewService creates a new planning service.
func NewService(db *sqlite.Database, logger *slog.Logger, cfg Config) *Service {
	factory := newRepositoryFactory(db, logger)
	return &Service{
		repo:    factory.newRepository(),
		planner: newPlanner(cfg, Catalog()),
		cfg:     cfg,
		logger:  logger,
	}
}

// Authenticate resolves a display name to a user id, creating the user on
// first login.
func (s *Service) Authenticate(ctx context.Context, displayName string) (int, error) {
	if displayName == "" {
		return 0, fmt.Errorf("%w: display name must not be empty", ErrInvalidInput)
	}
	id, err := s.repo.users.GetOrCreate(ctx, displayName)
	if err != nil {
		return 0, fmt.Errorf("get or create user: %w", err)
	}
	return id, nil
}

// GenerateDailyPlan gathers the user's state for a date, runs the planning
// pipeline and stores the result, replacing any earlier plan for the date.
func (s *Service) GenerateDailyPlan(ctx context.Context, date time.Time) (Plan, error) {
	date = normalizeDate(date)

	profile, err := s.repo.profiles.Get(ctx)
	if err != nil {
		return Plan{}, fmt.Errorf("get profile: %w", err)
	}

	recoveryScore, sleepSummary, err := s.resolveRecovery(ctx, date)
	if err != nil {
		return Plan{}, err
	}

	checkIn, err := s.resolveCheckIn(ctx, date)
	if err != nil {
		return Plan{}, err
	}

	feedback, err := s.repo.feedback.ListSince(ctx, date.AddDate(0, 0, -s.cfg.HeavyLookbackDays))
	if err != nil {
		return Plan{}, fmt.Errorf("list feedback: %w", err)
	}

	history, err := s.repo.plans.ListSince(ctx, date.AddDate(0, 0, -z4LookbackDays))
	if err != nil {
		return Plan{}, fmt.Errorf("list plan history: %w", err)
	}
	priorPlans := plansBefore(history, date)

	z4Count, hoursSinceZ4 := z4Stats(priorPlans)

	generated, err := s.planner.assemble(assembleInput{
		Date:                 date,
		Profile:              profile,
		RecoveryScore:        recoveryScore,
		SleepSummary:         sleepSummary,
		CheckIn:              checkIn,
		Feedback:             feedback,
		PriorSelections:      selectedOptionIDs(priorPlans),
		Z4Last7Days:          z4Count,
		HoursSinceLastZ4:     hoursSinceZ4,
		HadHeavyLegYesterday: hadHeavyLegYesterday(priorPlans, date),
	})
	if err != nil {
		return Plan{}, fmt.Errorf("assemble plan %s: %w", formatDate(date), err)
	}

	if err = s.repo.plans.Set(ctx, generated); err != nil {
		return Plan{}, fmt.Errorf("save plan %s: %w", formatDate(date), err)
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "generated daily plan",
		slog.String("date", formatDate(date)),
		slog.Int("recovery", recoveryScore),
		slog.Int("optionCount", len(generated.Today)))

	return generated, nil
}

// resolveRecovery loads the recovery snapshot for a date, substituting safe
// defaults when the physiological data has not arrived.
func (s *Service) resolveRecovery(ctx context.Context, date time.Time) (int, string, error) {
	snapshot, err := s.repo.recovery.Get(ctx, date)
	if errors.Is(err, ErrNotFound) {
		return s.cfg.DefaultRecoveryScore, "no sleep data", nil
	}
	if err != nil {
		return 0, "", fmt.Errorf("get recovery snapshot: %w", err)
	}
	return snapshot.RecoveryScore, snapshot.SleepSummary, nil
}

// resolveCheckIn loads the morning check-in for a date. A missing check-in
// is not an error, the pipeline treats it as no soreness and no pain.
func (s *Service) resolveCheckIn(ctx context.Context, date time.Time) (*MorningCheckIn, error) {
	checkIn, err := s.repo.checkIns.Get(ctx, date)
	if errors.Is(err, ErrNotFound) {
		return nil, nil //nolint:nilnil // Absence of a check-in is a valid state.
	}
	if err != nil {
		return nil, fmt.Errorf("get morning check-in: %w", err)
	}
	return &checkIn, nil
}

// plansBefore keeps the records dated strictly before the planning date, so
// a regenerated plan never feeds on itself.
func plansBefore(records []planRecord, date time.Time) []planRecord {
	var prior []planRecord
	for _, record := range records {
		if normalizeDate(record.Plan.Date).Before(date) {
			prior = append(prior, record)
		}
	}
	return prior
}

// selectedOptionIDs collects the selected option ids of prior plans, most
// recent first. Plans the user never acted on carry no modality signal.
func selectedOptionIDs(records []planRecord) []string {
	var ids []string
	for _, record := range records {
		if record.Plan.SelectedOptionID != nil {
			ids = append(ids, *record.Plan.SelectedOptionID)
		}
	}
	return ids
}

// z4Stats derives the Z4 count over the lookback window and the hours since
// the most recent Z4 session.
func z4Stats(records []planRecord) (int, *float64) {
	count := 0
	var hoursSince *float64
	for _, record := range records {
		if record.Plan.SelectedOptionID == nil {
			continue
		}
		opt, err := OptionByID(*record.Plan.SelectedOptionID)
		if err != nil || !opt.IsRun() || opt.Zone != ZoneZ4 {
			continue
		}
		count++
		if hoursSince == nil {
			hours := time.Since(record.CreatedAt).Hours()
			hoursSince = &hours
		}
	}
	return count, hoursSince
}

// hadHeavyLegYesterday reports whether yesterday's selected option was
// leg-heavy.
func hadHeavyLegYesterday(records []planRecord, date time.Time) bool {
	yesterday := date.AddDate(0, 0, -1)
	for _, record := range records {
		if !normalizeDate(record.Plan.Date).Equal(yesterday) || record.Plan.SelectedOptionID == nil {
			continue
		}
		opt, err := OptionByID(*record.Plan.SelectedOptionID)
		if err != nil {
			continue
		}
		return opt.IsLegHeavy
	}
	return false
}

// Plan retrieves the stored plan for a date.
func (s *Service) Plan(ctx context.Context, date time.Time) (Plan, error) {
	p, err := s.repo.plans.Get(ctx, normalizeDate(date))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Plan{}, ErrNotFound
		}
		return Plan{}, fmt.Errorf("get plan %s: %w", formatDate(date), err)
	}
	return p, nil
}

// Summary renders the stored plan for a date as the morning message.
func (s *Service) Summary(ctx context.Context, date time.Time) (string, error) {
	p, err := s.Plan(ctx, date)
	if err != nil {
		return "", err
	}
	profile, err := s.repo.profiles.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("get profile: %w", err)
	}
	return FormatSummary(p, profile), nil
}

// SelectOption records which option the user picked from the plan for a
// date. Unknown option ids are rejected with ErrNotFound.
func (s *Service) SelectOption(ctx context.Context, date time.Time, optionID string) error {
	if _, err := OptionByID(optionID); err != nil {
		return fmt.Errorf("option %s: %w", optionID, err)
	}
	if err := s.repo.plans.SetSelected(ctx, normalizeDate(date), optionID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("select option %s: %w", optionID, err)
	}
	return nil
}

// SaveMorningCheckIn stores the soreness report for a morning.
func (s *Service) SaveMorningCheckIn(ctx context.Context, checkIn MorningCheckIn) error {
	if checkIn.Soreness < 0 || checkIn.Soreness > 3 {
		return fmt.Errorf("%w: soreness must be 0-3, got %d", ErrInvalidInput, checkIn.Soreness)
	}
	if err := s.repo.checkIns.Set(ctx, checkIn); err != nil {
		return fmt.Errorf("save check-in: %w", err)
	}
	return nil
}

// SaveWorkoutFeedback stores a post-workout effort rating.
func (s *Service) SaveWorkoutFeedback(ctx context.Context, feedback WorkoutFeedback) error {
	if feedback.Effort < 1 || feedback.Effort > 5 {
		return fmt.Errorf("%w: effort must be 1-5, got %d", ErrInvalidInput, feedback.Effort)
	}
	if err := s.repo.feedback.Create(ctx, feedback); err != nil {
		return fmt.Errorf("save feedback: %w", err)
	}
	return nil
}

// SaveRecoverySnapshot stores the physiological readiness signal for a date.
func (s *Service) SaveRecoverySnapshot(ctx context.Context, snapshot RecoverySnapshot) error {
	if snapshot.RecoveryScore < 0 || snapshot.RecoveryScore > 100 {
		return fmt.Errorf("%w: recovery score must be 0-100, got %d", ErrInvalidInput, snapshot.RecoveryScore)
	}
	if err := s.repo.recovery.Set(ctx, snapshot); err != nil {
		return fmt.Errorf("save recovery snapshot: %w", err)
	}
	return nil
}

// Profile retrieves the user's equipment profile.
func (s *Service) Profile(ctx context.Context) (Profile, error) {
	profile, err := s.repo.profiles.Get(ctx)
	if err != nil {
		return Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

// SetProfile saves the user's equipment profile.
func (s *Service) SetProfile(ctx context.Context, profile Profile) error {
	switch profile.Equipment {
	case EquipmentHomeFull, EquipmentTravelBands, EquipmentTravelNone:
	default:
		return fmt.Errorf("%w: unknown equipment profile %q", ErrInvalidInput, profile.Equipment)
	}
	if err := s.repo.profiles.Set(ctx, profile); err != nil {
		return fmt.Errorf("set profile: %w", err)
	}
	return nil
}

// UserIDs lists all user ids for the morning scheduler.
func (s *Service) UserIDs(ctx context.Context) ([]int, error) {
	ids, err := s.repo.users.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return ids, nil
}

// HasRecoverySnapshot reports whether physiological data has arrived for a
// date.
func (s *Service) HasRecoverySnapshot(ctx context.Context, date time.Time) (bool, error) {
	ok, err := s.repo.recovery.Exists(ctx, normalizeDate(date))
	if err != nil {
		return false, fmt.Errorf("check recovery snapshot: %w", err)
	}
	return ok, nil
}

package plan

import "time"

// contextInput carries the raw history records the context builder
// aggregates. Feedback and PriorSelections are ordered most recent first,
// which is how the repositories return them.
type contextInput struct {
	Date            time.Time
	RecoveryScore   int
	CheckIn         *MorningCheckIn
	Feedback        []WorkoutFeedback
	PriorSelections []string
}

// buildScoringContext aggregates recent history into the context consumed by
// scoring. Pure computation; all I/O happens before this is called.
func buildScoringContext(cfg Config, in contextInput) ScoringContext {
	soreness := 0
	var painLocations []string
	if in.CheckIn != nil {
		soreness = in.CheckIn.Soreness
		painLocations = in.CheckIn.PainLocations
	}

	sctx := ScoringContext{
		RecoveryScore:    in.RecoveryScore,
		Soreness:         soreness,
		RecentHeavyCount: countRecentHeavy(cfg, in.Date, in.Feedback),
		LastLegDOMSHigh:  legDOMSHigh(in.Date, soreness, painLocations, in.Feedback),
		LastModality:     nil,
		LastModalities:   recentModalities(in.PriorSelections),
	}
	if len(sctx.LastModalities) > 0 {
		sctx.LastModality = &sctx.LastModalities[0]
	}
	return sctx
}

// countRecentHeavy counts workout feedback rated 4 or higher within the
// trailing lookback window. Morning check-ins are a separate record type and
// never reach this count.
func countRecentHeavy(cfg Config, date time.Time, feedback []WorkoutFeedback) int {
	cutoff := normalizeDate(date).AddDate(0, 0, -cfg.HeavyLookbackDays)
	count := 0
	for _, fb := range feedback {
		if fb.Effort >= 4 && !normalizeDate(fb.WorkoutDate).Before(cutoff) {
			count++
		}
	}
	return count
}

// legDOMSHigh decides whether the legs should be treated as fatigued today.
//
// Any very recent high-effort session counts as a potential leg-fatigue
// source because sessions are not tagged with muscle groups yet. This is a
// known approximation; downstream scoring and tests depend on it, so keep
// the heuristic as is.
func legDOMSHigh(date time.Time, soreness int, painLocations []string, feedback []WorkoutFeedback) bool {
	if soreness == 3 {
		return true
	}
	if hasLegPain(painLocations) {
		return true
	}
	if len(feedback) > 0 {
		yesterday := normalizeDate(date).AddDate(0, 0, -1)
		latest := feedback[0]
		if latest.Effort >= 4 && !normalizeDate(latest.WorkoutDate).Before(yesterday) {
			return true
		}
	}
	return false
}

// recentModalities maps the selected option ids of the most recent plans to
// modalities, most recent first, keeping at most two. Ids that no longer
// exist in the catalog are skipped rather than failing the planning pass.
func recentModalities(selections []string) []Modality {
	var modalities []Modality
	for _, id := range selections {
		opt, err := OptionByID(id)
		if err != nil {
			continue
		}
		modalities = append(modalities, opt.Modality)
		if len(modalities) == 2 {
			break
		}
	}
	return modalities
}

// normalizeDate truncates a timestamp to midnight so that date comparisons
// ignore the time of day.
func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

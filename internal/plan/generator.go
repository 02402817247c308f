// Package plan generates daily training recommendations from recovery,
// soreness and training-load history.
package plan

import (
	"fmt"
	"strings"
	"time"
)

const draftCount = 2

// assembleInput is the fully materialized state one planning run needs. The
// service gathers it from the repositories before calling assemble, so the
// pipeline itself stays pure and trivially parallel across users.
type assembleInput struct {
	Date                 time.Time
	Profile              Profile
	RecoveryScore        int
	SleepSummary         string
	CheckIn              *MorningCheckIn
	Feedback             []WorkoutFeedback
	PriorSelections      []string
	Z4Last7Days          int
	HoursSinceLastZ4     *float64
	HadHeavyLegYesterday bool
}

// planner runs the planning pipeline over a catalog with a fixed config.
type planner struct {
	cfg     Config
	catalog []WorkoutOption
}

func newPlanner(cfg Config, catalog []WorkoutOption) *planner {
	return &planner{cfg: cfg, catalog: catalog}
}

// assemble runs filter, context build, scoring and selection for one day
// and drafts the two days after it.
func (p *planner) assemble(in assembleInput) (Plan, error) {
	soreness := 0
	var painLocations []string
	if in.CheckIn != nil {
		soreness = in.CheckIn.Soreness
		painLocations = in.CheckIn.PainLocations
	}

	filtered := filterOptions(p.cfg, p.catalog, filterInput{
		Equipment:            in.Profile.Equipment,
		PainLocations:        painLocations,
		Soreness:             soreness,
		Z4Last7Days:          in.Z4Last7Days,
		HoursSinceLastZ4:     in.HoursSinceLastZ4,
		HadHeavyLegYesterday: in.HadHeavyLegYesterday,
		RecoveryScore:        in.RecoveryScore,
	})
	filtered = ensureZ3Included(filtered, p.catalog)
	if len(filtered) == 0 {
		return Plan{}, ErrNoOptions
	}

	sctx := buildScoringContext(p.cfg, contextInput{
		Date:            in.Date,
		RecoveryScore:   in.RecoveryScore,
		CheckIn:         in.CheckIn,
		Feedback:        in.Feedback,
		PriorSelections: in.PriorSelections,
	})

	scored := scoreOptions(p.cfg, filtered, sctx)
	today := selectDiversified(scored)

	return Plan{
		Date:             in.Date,
		RecoveryScore:    in.RecoveryScore,
		SleepSummary:     in.SleepSummary,
		Equipment:        in.Profile.Equipment,
		Today:            today,
		Tomorrow:         optionsOf(selectTop(scored, draftCount, true)),
		DayAfter:         optionsOf(selectTop(scored, draftCount, true)),
		SelectedOptionID: nil,
		Debug: ScoringDebug{
			Context: sctx,
			Scored:  scored,
		},
	}, nil
}

func optionsOf(scored []ScoredOption) []WorkoutOption {
	options := make([]WorkoutOption, len(scored))
	for i, s := range scored {
		options[i] = s.Option
	}
	return options
}

// FormatSummary renders a plan as the morning message shown to the user.
func FormatSummary(p Plan, profile Profile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Good morning! Recovery: %d%% (%s)\n", p.RecoveryScore, p.SleepSummary)
	fmt.Fprintf(&b, "Equipment: %s\n", equipmentLabel(p.Equipment))
	b.WriteString("\nToday (pick one):\n")

	for i, s := range p.Today {
		letter := rune('A' + i)
		fmt.Fprintf(&b, "  %c. %s", letter, s.Option.Name)
		if hint := assignKBWeights(s.Option.MovementTags, profile).String(); hint != "" {
			fmt.Fprintf(&b, " (%s)", hint)
		}
		b.WriteByte('\n')
	}

	b.WriteString("\nTomorrow / day after (draft):\n")
	names := make([]string, 0, draftCount)
	for _, opt := range p.Tomorrow {
		names = append(names, opt.Name)
	}
	fmt.Fprintf(&b, "  %s\n", strings.Join(names, " / "))

	return b.String()
}

func equipmentLabel(profile EquipmentProfile) string {
	switch profile {
	case EquipmentTravelBands:
		return "travel (bands)"
	case EquipmentTravelNone:
		return "travel (no equipment)"
	default:
		return "home (kettlebell)"
	}
}

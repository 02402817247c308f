package plan

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func homeProfile() Profile {
	return Profile{
		Equipment:       EquipmentHomeFull,
		KBOverheadMaxKg: 12,
		KBHeavyKg:       20,
		KBSwingKg:       12,
	}
}

func TestAssemble_RestedMorning(t *testing.T) {
	p := newPlanner(DefaultConfig(), Catalog())

	plan, err := p.assemble(assembleInput{
		Date:          date("2026-06-10"),
		Profile:       homeProfile(),
		RecoveryScore: 90,
		SleepSummary:  "7.5h sleep",
	})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	wantToday := []string{"run_z4_20", "kb_12", "run_z2_30"}
	if diff := cmp.Diff(wantToday, selectedIDs(plan.Today)); diff != "" {
		t.Errorf("today mismatch (-want +got):\n%s", diff)
	}

	primary := plan.Today[0]
	if primary.Net != 43 {
		t.Errorf("primary net = %d, want 43", primary.Net)
	}
	if !containsID(primary.Rules, ruleZ4Great) {
		t.Errorf("expected great-day bonus on the primary, rules %v", primary.Rules)
	}

	wantDraft := []string{"run_z4_20", "kb_12"}
	if diff := cmp.Diff(wantDraft, optionIDs(plan.Tomorrow)); diff != "" {
		t.Errorf("tomorrow mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(optionIDs(plan.Tomorrow), optionIDs(plan.DayAfter)); diff != "" {
		t.Errorf("day-after draft should match tomorrow (-tomorrow +dayafter):\n%s", diff)
	}

	if len(plan.Debug.Scored) != len(Catalog()) {
		t.Errorf("debug scored %d options, want %d", len(plan.Debug.Scored), len(Catalog()))
	}
	if plan.Debug.Context.RecoveryScore != 90 {
		t.Errorf("debug context recovery = %d, want 90", plan.Debug.Context.RecoveryScore)
	}
	if plan.SelectedOptionID != nil {
		t.Errorf("fresh plan has selected option %q", *plan.SelectedOptionID)
	}
}

func TestAssemble_SoreLowRecoveryMorning(t *testing.T) {
	p := newPlanner(DefaultConfig(), Catalog())

	plan, err := p.assemble(assembleInput{
		Date:          date("2026-06-10"),
		Profile:       homeProfile(),
		RecoveryScore: 30,
		SleepSummary:  "5h sleep",
		CheckIn: &MorningCheckIn{
			Date:     date("2026-06-10"),
			Soreness: 3,
		},
	})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	for _, s := range plan.Debug.Scored {
		if s.Option.IsRun() || s.Option.ID == "kb_20" {
			t.Errorf("option %s should have been filtered out", s.Option.ID)
		}
	}

	wantToday := []string{"kb_12", "mobility", "walking"}
	if diff := cmp.Diff(wantToday, selectedIDs(plan.Today)); diff != "" {
		t.Errorf("today mismatch (-want +got):\n%s", diff)
	}

	// Soreness 3 flags leg fatigue, which lifts the gentle options.
	mobility := scoredByID(t, plan.Debug.Scored, "mobility")
	if mobility.Rank != 4 {
		t.Errorf("mobility rank = %d, want 4", mobility.Rank)
	}
	walking := scoredByID(t, plan.Debug.Scored, "walking")
	if walking.Rank != 5 {
		t.Errorf("walking rank = %d, want 5", walking.Rank)
	}
}

func TestAssemble_NoOptions(t *testing.T) {
	p := newPlanner(DefaultConfig(), []WorkoutOption{mustOption(t, "kb_12")})

	_, err := p.assemble(assembleInput{
		Date:          date("2026-06-10"),
		Profile:       Profile{Equipment: EquipmentTravelNone},
		RecoveryScore: 50,
	})
	if !errors.Is(err, ErrNoOptions) {
		t.Fatalf("expected ErrNoOptions, got %v", err)
	}
}

func TestFormatSummary(t *testing.T) {
	p := newPlanner(DefaultConfig(), Catalog())
	profile := homeProfile()

	plan, err := p.assemble(assembleInput{
		Date:          date("2026-06-10"),
		Profile:       profile,
		RecoveryScore: 90,
		SleepSummary:  "7.5h sleep",
	})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	summary := FormatSummary(plan, profile)

	wantFragments := []string{
		"Good morning! Recovery: 90% (7.5h sleep)",
		"Equipment: home (kettlebell)",
		"Today (pick one):",
		"A. Run Z4 quality, 20 min",
		"(overhead 12 kg; swing 12 kg)",
		"Tomorrow / day after (draft):",
	}
	for _, fragment := range wantFragments {
		if !strings.Contains(summary, fragment) {
			t.Errorf("summary missing %q:\n%s", fragment, summary)
		}
	}

	if strings.Count(summary, "\n  A. ") > 1 {
		t.Errorf("option letters repeated:\n%s", summary)
	}
}

func optionIDs(options []WorkoutOption) []string {
	ids := make([]string, 0, len(options))
	for _, opt := range options {
		ids = append(ids, opt.ID)
	}
	return ids
}

package plan

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustOption(t *testing.T, id string) WorkoutOption {
	t.Helper()
	opt, err := OptionByID(id)
	if err != nil {
		t.Fatalf("unknown option %s: %v", id, err)
	}
	return opt
}

func scoredByID(t *testing.T, scored []ScoredOption, id string) ScoredOption {
	t.Helper()
	for _, s := range scored {
		if s.Option.ID == id {
			return s
		}
	}
	t.Fatalf("option %s not in scored list", id)
	return ScoredOption{}
}

func TestScoreOptions_BaseBenefits(t *testing.T) {
	cfg := DefaultConfig()
	sctx := ScoringContext{RecoveryScore: 50}

	tests := []struct {
		id   string
		want int
	}{
		{"run_z4_20", 35},
		{"run_z3_30", 30},
		{"run_z2_30", 22},
		{"kb_12", 28},
		{"barre", 26},
		{"mobility", 20},
		{"walking", 18},
	}

	scored := scoreOptions(cfg, Catalog(), sctx)
	for _, tt := range tests {
		if got := scoredByID(t, scored, tt.id).Benefit; got != tt.want {
			t.Errorf("benefit(%s) = %d, want %d", tt.id, got, tt.want)
		}
	}
}

func TestComputeBenefit_FallbackForUnknownModality(t *testing.T) {
	cfg := DefaultConfig()
	opt := WorkoutOption{ID: "swim_easy", Modality: "swim"}

	var rules []string
	if got := computeBenefit(cfg, opt, ScoringContext{RecoveryScore: 50}, &rules); got != defaultBenefit {
		t.Errorf("benefit for unknown modality = %d, want %d", got, defaultBenefit)
	}
}

func TestScoreOptions_GreatDayBonus(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("fires on a rested morning", func(t *testing.T) {
		scored := scoreOptions(cfg, Catalog(), ScoringContext{RecoveryScore: 90})
		z4 := scoredByID(t, scored, "run_z4_20")
		if z4.Net != 43 {
			t.Errorf("z4 net = %d, want 43", z4.Net)
		}
		if z4.Rank != 1 {
			t.Errorf("z4 rank = %d, want 1", z4.Rank)
		}
		if diff := cmp.Diff([]string{ruleZ4Great}, z4.Rules); diff != "" {
			t.Errorf("z4 rules mismatch (-want +got):\n%s", diff)
		}
	})

	exclusivity := []struct {
		name string
		sctx ScoringContext
	}{
		{"recovery below threshold", ScoringContext{RecoveryScore: 84}},
		{"recent heavy session", ScoringContext{RecoveryScore: 90, RecentHeavyCount: 1}},
		{"leg fatigue flagged", ScoringContext{RecoveryScore: 90, LastLegDOMSHigh: true}},
	}
	for _, tt := range exclusivity {
		t.Run("withheld when "+tt.name, func(t *testing.T) {
			scored := scoreOptions(cfg, Catalog(), tt.sctx)
			z4 := scoredByID(t, scored, "run_z4_20")
			if containsID(z4.Rules, ruleZ4Great) {
				t.Errorf("great-day bonus fired with context %+v", tt.sctx)
			}
		})
	}
}

func TestScoreOptions_FatigueGuardrail(t *testing.T) {
	cfg := DefaultConfig()
	sctx := ScoringContext{RecoveryScore: 50, RecentHeavyCount: 2}
	scored := scoreOptions(cfg, Catalog(), sctx)

	z4 := scoredByID(t, scored, "run_z4_20")
	z3 := scoredByID(t, scored, "run_z3_30")
	z2 := scoredByID(t, scored, "run_z2_30")
	kb20 := scoredByID(t, scored, "kb_20")

	if z4.Net != -5 {
		t.Errorf("z4 net = %d, want -5", z4.Net)
	}
	if diff := cmp.Diff([]string{ruleFatigueHard, ruleZ4NotDefault}, z4.Rules); diff != "" {
		t.Errorf("z4 rules mismatch (-want +got):\n%s", diff)
	}

	if z3.Net != 20 {
		t.Errorf("z3 net = %d, want 20", z3.Net)
	}
	if diff := cmp.Diff([]string{ruleFatigueMedium}, z3.Rules); diff != "" {
		t.Errorf("z3 rules mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{ruleFatigueHard}, kb20.Rules); diff != "" {
		t.Errorf("kb_20 rules mismatch (-want +got):\n%s", diff)
	}

	// After two heavy days the moderate options must dominate the hard ones.
	if z3.Net <= z4.Net {
		t.Errorf("expected z3 (%d) above z4 (%d) under fatigue", z3.Net, z4.Net)
	}
	if z2.Net <= z4.Net {
		t.Errorf("expected z2 (%d) above z4 (%d) under fatigue", z2.Net, z4.Net)
	}
}

func TestScoreOptions_LegDOMS(t *testing.T) {
	cfg := DefaultConfig()
	sctx := ScoringContext{RecoveryScore: 50, LastLegDOMSHigh: true}
	scored := scoreOptions(cfg, Catalog(), sctx)

	mobility := scoredByID(t, scored, "mobility")
	walking := scoredByID(t, scored, "walking")
	z3 := scoredByID(t, scored, "run_z3_30")
	z2 := scoredByID(t, scored, "run_z2_30")
	barre := scoredByID(t, scored, "barre")

	if mobility.Net != 28 {
		t.Errorf("mobility net = %d, want 28", mobility.Net)
	}
	if diff := cmp.Diff([]string{ruleDOMSBoost}, mobility.Rules); diff != "" {
		t.Errorf("mobility rules mismatch (-want +got):\n%s", diff)
	}
	if walking.Net != 26 {
		t.Errorf("walking net = %d, want 26", walking.Net)
	}

	if z3.Net != 10 {
		t.Errorf("z3 net = %d, want 10", z3.Net)
	}
	if diff := cmp.Diff([]string{ruleDOMSLegHeavy}, z3.Rules); diff != "" {
		t.Errorf("z3 rules mismatch (-want +got):\n%s", diff)
	}

	// Z2 is not leg heavy, so it takes the lighter residual penalty.
	if z2.Net != 12 {
		t.Errorf("z2 net = %d, want 12", z2.Net)
	}
	if diff := cmp.Diff([]string{ruleDOMSResidual}, z2.Rules); diff != "" {
		t.Errorf("z2 rules mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{ruleDOMSResidual}, barre.Rules); diff != "" {
		t.Errorf("barre rules mismatch (-want +got):\n%s", diff)
	}

	if mobility.Net <= z3.Net {
		t.Errorf("expected mobility (%d) above z3 (%d) with leg fatigue", mobility.Net, z3.Net)
	}
}

func TestScoreOptions_AntiRepeat(t *testing.T) {
	cfg := DefaultConfig()
	run := ModalityRun

	t.Run("single repeat", func(t *testing.T) {
		sctx := ScoringContext{
			RecoveryScore:  50,
			LastModality:   &run,
			LastModalities: []Modality{ModalityRun, ModalityStrength},
		}
		scored := scoreOptions(cfg, Catalog(), sctx)
		z3 := scoredByID(t, scored, "run_z3_30")
		if z3.Net != 24 {
			t.Errorf("z3 net = %d, want 24", z3.Net)
		}
		if diff := cmp.Diff([]string{ruleRepeatModality}, z3.Rules); diff != "" {
			t.Errorf("z3 rules mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("two-day streak", func(t *testing.T) {
		sctx := ScoringContext{
			RecoveryScore:  50,
			LastModality:   &run,
			LastModalities: []Modality{ModalityRun, ModalityRun},
		}
		scored := scoreOptions(cfg, Catalog(), sctx)
		z3 := scoredByID(t, scored, "run_z3_30")
		if z3.Net != 12 {
			t.Errorf("z3 net = %d, want 12", z3.Net)
		}
		want := []string{ruleRepeatModality, ruleRepeatStreak}
		if diff := cmp.Diff(want, z3.Rules); diff != "" {
			t.Errorf("z3 rules mismatch (-want +got):\n%s", diff)
		}
		// Non-running options stay untouched.
		kb := scoredByID(t, scored, "kb_12")
		if len(kb.Rules) != 0 {
			t.Errorf("kb_12 rules = %v, want none", kb.Rules)
		}
	})
}

func TestScoreOptions_StableTieBreak(t *testing.T) {
	cfg := DefaultConfig()
	scored := scoreOptions(cfg, Catalog(), ScoringContext{RecoveryScore: 90})

	z330 := scoredByID(t, scored, "run_z3_30")
	z345 := scoredByID(t, scored, "run_z3_45")
	if z330.Net != z345.Net {
		t.Fatalf("expected equal nets, got %d and %d", z330.Net, z345.Net)
	}
	if z330.Rank >= z345.Rank {
		t.Errorf("expected run_z3_30 (rank %d) before run_z3_45 (rank %d)", z330.Rank, z345.Rank)
	}
}

func TestScoreOptions_RanksAreSequential(t *testing.T) {
	cfg := DefaultConfig()
	scored := scoreOptions(cfg, Catalog(), ScoringContext{RecoveryScore: 50})

	for i, s := range scored {
		if s.Rank != i+1 {
			t.Errorf("scored[%d].Rank = %d, want %d", i, s.Rank, i+1)
		}
		if i > 0 && scored[i-1].Net < s.Net {
			t.Errorf("net scores not descending at index %d", i)
		}
	}
}

package plan

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func selectedIDs(scored []ScoredOption) []string {
	ids := make([]string, 0, len(scored))
	for _, s := range scored {
		ids = append(ids, s.Option.ID)
	}
	return ids
}

func TestSelectDiversified(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("rested morning picks primary, easy alternative and variety", func(t *testing.T) {
		scored := scoreOptions(cfg, Catalog(), ScoringContext{RecoveryScore: 90})
		selected := selectDiversified(scored)

		want := []string{"run_z4_20", "kb_12", "run_z2_30"}
		if diff := cmp.Diff(want, selectedIDs(selected)); diff != "" {
			t.Errorf("selection mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("selection is sorted by net descending", func(t *testing.T) {
		scored := scoreOptions(cfg, Catalog(), ScoringContext{RecoveryScore: 90})
		selected := selectDiversified(scored)
		for i := 1; i < len(selected); i++ {
			if selected[i-1].Net < selected[i].Net {
				t.Errorf("selection not sorted by net at index %d: %v", i, selectedIDs(selected))
			}
		}
	})

	t.Run("bounds and uniqueness hold across contexts", func(t *testing.T) {
		contexts := []ScoringContext{
			{RecoveryScore: 90},
			{RecoveryScore: 50},
			{RecoveryScore: 30, Soreness: 3, LastLegDOMSHigh: true},
			{RecoveryScore: 50, RecentHeavyCount: 2},
		}
		for _, sctx := range contexts {
			selected := selectDiversified(scoreOptions(cfg, Catalog(), sctx))
			if len(selected) < minSelection || len(selected) > maxSelection {
				t.Errorf("selection size %d outside [%d, %d] for %+v",
					len(selected), minSelection, maxSelection, sctx)
			}
			seen := map[string]bool{}
			for _, s := range selected {
				if seen[s.Option.ID] {
					t.Errorf("duplicate option %s for %+v", s.Option.ID, sctx)
				}
				seen[s.Option.ID] = true
			}
		}
	})

	t.Run("always includes the top-ranked option", func(t *testing.T) {
		scored := scoreOptions(cfg, Catalog(), ScoringContext{RecoveryScore: 50})
		selected := selectDiversified(scored)
		if selected[0].Option.ID != scored[0].Option.ID {
			t.Errorf("expected %s first, got %s", scored[0].Option.ID, selected[0].Option.ID)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if got := selectDiversified(nil); got != nil {
			t.Errorf("expected nil, got %v", selectedIDs(got))
		}
	})

	t.Run("single option", func(t *testing.T) {
		scored := scoreOptions(cfg, []WorkoutOption{mustOption(t, "mobility")}, ScoringContext{RecoveryScore: 50})
		selected := selectDiversified(scored)
		if diff := cmp.Diff([]string{"mobility"}, selectedIDs(selected)); diff != "" {
			t.Errorf("selection mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestSelectTop(t *testing.T) {
	cfg := DefaultConfig()
	scored := scoreOptions(cfg, Catalog(), ScoringContext{RecoveryScore: 90})

	t.Run("variety guarantees a run and a non-run", func(t *testing.T) {
		selected := selectTop(scored, 2, true)
		if diff := cmp.Diff([]string{"run_z4_20", "kb_12"}, selectedIDs(selected)); diff != "" {
			t.Errorf("selection mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("without variety takes the plain top slice", func(t *testing.T) {
		selected := selectTop(scored, 2, false)
		want := selectedIDs(scored[:2])
		if diff := cmp.Diff(want, selectedIDs(selected)); diff != "" {
			t.Errorf("selection mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("short list is returned unchanged", func(t *testing.T) {
		short := scoreOptions(cfg, []WorkoutOption{mustOption(t, "walking")}, ScoringContext{RecoveryScore: 50})
		selected := selectTop(short, 2, true)
		if diff := cmp.Diff([]string{"walking"}, selectedIDs(selected)); diff != "" {
			t.Errorf("selection mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("variety with only non-runs available", func(t *testing.T) {
		options := []WorkoutOption{
			mustOption(t, "kb_12"),
			mustOption(t, "mobility"),
			mustOption(t, "walking"),
		}
		ranked := scoreOptions(cfg, options, ScoringContext{RecoveryScore: 50})
		selected := selectTop(ranked, 2, true)
		if len(selected) != 2 {
			t.Fatalf("expected 2 options, got %v", selectedIDs(selected))
		}
	})
}

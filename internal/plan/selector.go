package plan

import "sort"

const (
	minSelection = 2
	maxSelection = 3
)

// selectDiversified picks today's 2-3 recommendations from a ranked list:
// the best option, the best easy alternative, and the best option of a
// different modality than the primary, backfilled to at least two and
// capped at three.
func selectDiversified(ranked []ScoredOption) []ScoredOption {
	if len(ranked) == 0 {
		return nil
	}

	selected := []ScoredOption{ranked[0]}
	picked := map[string]bool{ranked[0].Option.ID: true}

	// Easy alternative: the best-ranked low-strain option.
	for _, s := range ranked {
		if picked[s.Option.ID] {
			continue
		}
		if isEasyOption(s.Option) {
			selected = append(selected, s)
			picked[s.Option.ID] = true
			break
		}
	}

	// Modality variety against the primary.
	primaryModality := ranked[0].Option.Modality
	for _, s := range ranked {
		if picked[s.Option.ID] || s.Option.Modality == primaryModality {
			continue
		}
		selected = append(selected, s)
		picked[s.Option.ID] = true
		break
	}

	// Backfill degenerate cases with the next best unused options.
	for _, s := range ranked {
		if len(selected) >= minSelection {
			break
		}
		if !picked[s.Option.ID] {
			selected = append(selected, s)
			picked[s.Option.ID] = true
		}
	}

	if len(selected) > maxSelection {
		selected = selected[:maxSelection]
	}
	sortByNet(selected)
	return selected
}

// isEasyOption reports whether an option qualifies as the easy alternative.
func isEasyOption(opt WorkoutOption) bool {
	if opt.Modality == ModalityMobility || opt.Modality == ModalityWalk {
		return true
	}
	return opt.IsRun() && opt.Zone == ZoneZ2
}

// selectTop picks the top count options by net score. With ensureVariety it
// guarantees at least one running and one non-running option when both
// exist in the ranked list.
func selectTop(ranked []ScoredOption, count int, ensureVariety bool) []ScoredOption {
	if len(ranked) <= count {
		return ranked
	}
	if !ensureVariety {
		return ranked[:count]
	}

	var selected []ScoredOption
	picked := map[string]bool{}

	for _, s := range ranked {
		if s.Option.IsRun() {
			selected = append(selected, s)
			picked[s.Option.ID] = true
			break
		}
	}
	for _, s := range ranked {
		if !s.Option.IsRun() && !picked[s.Option.ID] {
			selected = append(selected, s)
			picked[s.Option.ID] = true
			break
		}
	}
	for _, s := range ranked {
		if len(selected) >= count {
			break
		}
		if !picked[s.Option.ID] {
			selected = append(selected, s)
			picked[s.Option.ID] = true
		}
	}
	if len(selected) > count {
		selected = selected[:count]
	}

	sortByNet(selected)
	return selected
}

func sortByNet(scored []ScoredOption) {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Net > scored[j].Net
	})
}

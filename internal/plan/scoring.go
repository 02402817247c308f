package plan

import "sort"

// Scoring rule tags recorded per option for audit and tests.
const (
	ruleZ4Great        = "z4_great"
	ruleDOMSBoost      = "doms_boost"
	ruleFatigueHard    = "fatigue_hard"
	ruleFatigueMedium  = "fatigue_medium"
	ruleRepeatModality = "repeat_modality"
	ruleRepeatStreak   = "repeat_streak"
	ruleDOMSLegHeavy   = "doms_leg_heavy"
	ruleDOMSResidual   = "doms_residual"
	ruleZ4NotDefault   = "z4_not_default"
)

// benefitKey keys the base benefit table.
type benefitKey struct {
	modality Modality
	zone     Zone
}

//nolint:gochecknoglobals // Fixed benefit table over a closed key space.
var benefitTable = map[benefitKey]int{
	{ModalityRun, ZoneZ4}:  35,
	{ModalityRun, ZoneZ3}:  30,
	{ModalityRun, ZoneZ2}:  22,
	{ModalityStrength, ""}: 28,
	{ModalityBarre, ""}:    26,
	{ModalityMobility, ""}: 20,
	{ModalityWalk, ""}:     18,
}

const defaultBenefit = 20

// scoreOptions scores every option against the context and returns them
// ranked by net score descending. Each option's score depends only on itself
// and the context, never on the other options in the batch. Ties keep the
// incoming order, which is the catalog order.
func scoreOptions(cfg Config, options []WorkoutOption, sctx ScoringContext) []ScoredOption {
	scored := make([]ScoredOption, len(options))
	for i, opt := range options {
		var rules []string
		benefit := computeBenefit(cfg, opt, sctx, &rules)
		cost := computeCost(cfg, opt, sctx, &rules)
		scored[i] = ScoredOption{
			Option:  opt,
			Benefit: benefit,
			Cost:    cost,
			Net:     benefit - cost,
			Rank:    0,
			Rules:   rules,
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Net > scored[j].Net
	})
	for i := range scored {
		scored[i].Rank = i + 1
	}
	return scored
}

func computeBenefit(cfg Config, opt WorkoutOption, sctx ScoringContext, rules *[]string) int {
	benefit, ok := benefitTable[benefitKey{opt.Modality, opt.Zone}]
	if !ok {
		benefit, ok = benefitTable[benefitKey{opt.Modality, ""}]
	}
	if !ok {
		benefit = defaultBenefit
	}

	if opt.Zone == ZoneZ4 && opt.IsRun() &&
		sctx.RecoveryScore >= cfg.GreatDayRecovery &&
		sctx.RecentHeavyCount == 0 &&
		!sctx.LastLegDOMSHigh {
		benefit += 8
		*rules = append(*rules, ruleZ4Great)
	}

	if sctx.LastLegDOMSHigh && (opt.Modality == ModalityMobility || opt.Modality == ModalityWalk) {
		benefit += 8
		*rules = append(*rules, ruleDOMSBoost)
	}

	return benefit
}

func computeCost(cfg Config, opt WorkoutOption, sctx ScoringContext, rules *[]string) int {
	cost := 0
	isZ4Run := opt.IsRun() && opt.Zone == ZoneZ4
	isZ3Run := opt.IsRun() && opt.Zone == ZoneZ3

	// Fatigue guardrail: after two heavy days in the window, tax hard
	// options heavily and medium-hard options lightly.
	if sctx.RecentHeavyCount >= 2 {
		if isZ4Run || opt.ID == "kb_20" {
			cost += 25
			*rules = append(*rules, ruleFatigueHard)
		} else if isZ3Run || opt.Modality == ModalityStrength {
			cost += 10
			*rules = append(*rules, ruleFatigueMedium)
		}
	}

	// Anti-repeat: discourage the same modality as last time, and much
	// more so a third consecutive day of it.
	if sctx.LastModality != nil && opt.Modality == *sctx.LastModality {
		cost += 6
		*rules = append(*rules, ruleRepeatModality)
		if len(sctx.LastModalities) >= 2 &&
			sctx.LastModalities[0] == opt.Modality &&
			sctx.LastModalities[1] == opt.Modality {
			cost += 12
			*rules = append(*rules, ruleRepeatStreak)
		}
	}

	if sctx.LastLegDOMSHigh {
		if isZ3Run || isZ4Run || opt.IsLegHeavy {
			cost += 20
			*rules = append(*rules, ruleDOMSLegHeavy)
		} else if opt.Modality == ModalityBarre || (opt.IsRun() && opt.Zone == ZoneZ2) {
			cost += 10
			*rules = append(*rules, ruleDOMSResidual)
		}
	}

	// Z4 should never win by default on an ordinary day.
	if isZ4Run && sctx.RecoveryScore < cfg.Z4DefaultRecovery {
		cost += 15
		*rules = append(*rules, ruleZ4NotDefault)
	}

	return cost
}

package plan

// filterInput carries the state the hard-constraint rules need.
type filterInput struct {
	Equipment            EquipmentProfile
	PainLocations        []string
	Soreness             int
	Z4Last7Days          int
	HoursSinceLastZ4     *float64
	HadHeavyLegYesterday bool
	RecoveryScore        int
}

// filterOptions removes options that are unsafe or unavailable given the
// current state. The rules are independent predicates: an option is excluded
// when any applicable rule excludes it, and evaluation order never changes
// the result.
func filterOptions(cfg Config, options []WorkoutOption, in filterInput) []WorkoutOption {
	legPain := hasLegPain(in.PainLocations)

	allowed := make([]WorkoutOption, 0, len(options))
	for _, opt := range options {
		if excludedByEquipment(opt, in.Equipment) {
			continue
		}
		if legPain && opt.IsRun() {
			continue
		}
		if excludedBySoreness(cfg, opt, in.Soreness, legPain, in.RecoveryScore) {
			continue
		}
		if excludedByZ4Caps(cfg, opt, in) {
			continue
		}
		allowed = append(allowed, opt)
	}
	return allowed
}

func excludedByEquipment(opt WorkoutOption, equipment EquipmentProfile) bool {
	switch equipment {
	case EquipmentTravelBands:
		return opt.Equipment == EquipmentKettlebell
	case EquipmentTravelNone:
		return opt.Equipment == EquipmentKettlebell || opt.Equipment == EquipmentBands
	default:
		return false
	}
}

func excludedBySoreness(cfg Config, opt WorkoutOption, soreness int, legPain bool, recovery int) bool {
	if soreness >= 3 {
		if opt.IsRun() {
			return true
		}
		// The heavy kettlebell is too leg-intensive for a very sore day.
		if opt.ID == "kb_20" {
			return true
		}
	}
	if soreness >= 2 {
		if opt.Zone == ZoneZ4 {
			return true
		}
		if opt.Zone == ZoneZ3 && (legPain || recovery < cfg.Z3RecoveryFloor) {
			return true
		}
	}
	return false
}

func excludedByZ4Caps(cfg Config, opt WorkoutOption, in filterInput) bool {
	if opt.Zone != ZoneZ4 {
		return false
	}
	if in.Z4Last7Days >= cfg.Z4WeeklyCap {
		return true
	}
	if in.HoursSinceLastZ4 != nil && *in.HoursSinceLastZ4 < cfg.Z4CooldownHours {
		return true
	}
	return in.HadHeavyLegYesterday
}

// ensureZ3Included reinstates the default 30-minute Z3 run when filtering
// left some run on the table but removed every Z3. Z3 is the canonical base
// run and must be offered whenever running is permitted at all.
func ensureZ3Included(filtered, all []WorkoutOption) []WorkoutOption {
	hasAnyRun := false
	hasZ3 := false
	for _, opt := range filtered {
		if opt.IsRun() {
			hasAnyRun = true
			if opt.Zone == ZoneZ3 {
				hasZ3 = true
			}
		}
	}
	if !hasAnyRun || hasZ3 {
		return filtered
	}

	for _, opt := range all {
		if opt.ID == "run_z3_30" {
			return append([]WorkoutOption{opt}, filtered...)
		}
	}
	return filtered
}

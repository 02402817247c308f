package plan

import (
	"fmt"
	"strings"
)

// heavyTags are the movement patterns performed with the heavy bell.
//
//nolint:gochecknoglobals // Fixed movement tag set.
var heavyTags = map[string]struct{}{
	"pull":  {},
	"squat": {},
	"carry": {},
}

// kbWeights holds suggested kettlebell weights per movement pattern. A zero
// field means the pattern does not occur in the workout.
type kbWeights struct {
	OverheadKg int
	SwingKg    int
	HeavyKg    int
}

// assignKBWeights maps a workout's movement tags to the user's configured
// kettlebell weights. Overhead work uses the overhead max, swings the swing
// bell, and pulls, squats and carries the heavy bell.
func assignKBWeights(movementTags []string, profile Profile) kbWeights {
	var weights kbWeights
	for _, tag := range movementTags {
		tag = strings.ToLower(tag)
		switch {
		case tag == "overhead":
			weights.OverheadKg = profile.KBOverheadMaxKg
		case tag == "swing":
			weights.SwingKg = profile.KBSwingKg
		default:
			if _, ok := heavyTags[tag]; ok {
				weights.HeavyKg = profile.KBHeavyKg
			}
		}
	}
	return weights
}

// String formats the weights as a compact hint, e.g.
// "overhead 12 kg; swing 12 kg; pull/squat/carry 20 kg".
func (w kbWeights) String() string {
	var parts []string
	if w.OverheadKg > 0 {
		parts = append(parts, fmt.Sprintf("overhead %d kg", w.OverheadKg))
	}
	if w.SwingKg > 0 {
		parts = append(parts, fmt.Sprintf("swing %d kg", w.SwingKg))
	}
	if w.HeavyKg > 0 {
		parts = append(parts, fmt.Sprintf("pull/squat/carry %d kg", w.HeavyKg))
	}
	return strings.Join(parts, "; ")
}

package plan

// Config holds the tunable thresholds of the planning pipeline. It is passed
// explicitly into the planner so tests can vary thresholds without touching
// process state.
type Config struct {
	// HeavyLookbackDays is the trailing window for counting heavy sessions.
	HeavyLookbackDays int
	// Z4WeeklyCap is the maximum number of Z4 runs allowed per 7 days.
	Z4WeeklyCap int
	// Z4CooldownHours is the minimum gap between Z4 runs.
	Z4CooldownHours float64
	// Z3RecoveryFloor blocks Z3 running when sore and recovery drops below it.
	Z3RecoveryFloor int
	// Z4DefaultRecovery is the recovery score under which Z4 carries the
	// not-a-default penalty.
	Z4DefaultRecovery int
	// GreatDayRecovery is the recovery score at which the Z4 bonus can fire.
	GreatDayRecovery int
	// DefaultRecoveryScore substitutes for a missing recovery snapshot.
	DefaultRecoveryScore int
	// MorningHour is the local hour at which the scheduler generates plans.
	MorningHour int
	// LateHour is the local hour after which the scheduler no longer runs.
	LateHour int
}

// DefaultConfig returns the production thresholds.
func DefaultConfig() Config {
	return Config{
		HeavyLookbackDays:    3,
		Z4WeeklyCap:          2,
		Z4CooldownHours:      48,
		Z3RecoveryFloor:      33,
		Z4DefaultRecovery:    75,
		GreatDayRecovery:     85,
		DefaultRecoveryScore: 50,
		MorningHour:          7,
		LateHour:             11,
	}
}

package plan

import (
	"errors"
	"time"
)

// Modality is the coarse workout category used for variety and history rules.
type Modality string

const (
	ModalityRun      Modality = "run"
	ModalityStrength Modality = "strength"
	ModalityBarre    Modality = "barre"
	ModalityMobility Modality = "mobility"
	ModalityWalk     Modality = "walk"
)

// Zone is the heart-rate intensity band of a running option.
type Zone string

const (
	ZoneZ2 Zone = "Z2"
	ZoneZ3 Zone = "Z3"
	ZoneZ4 Zone = "Z4"
)

// Equipment identifies what gear an option needs.
type Equipment string

const (
	EquipmentNone       Equipment = "none"
	EquipmentKettlebell Equipment = "kettlebell"
	EquipmentBands      Equipment = "bands"
)

// EquipmentProfile describes what the user has available today.
type EquipmentProfile string

const (
	EquipmentHomeFull    EquipmentProfile = "home_full"
	EquipmentTravelBands EquipmentProfile = "travel_bands"
	EquipmentTravelNone  EquipmentProfile = "travel_none"
)

// Impact is the joint-impact level of an option.
type Impact string

const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)

// WorkoutOption is a catalog entry. Options are defined once at process
// start and never mutated.
type WorkoutOption struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Modality    Modality  `json:"modality"`
	Zone        Zone      `json:"zone,omitempty"`
	Equipment   Equipment `json:"equipment"`
	Impact      Impact    `json:"impact"`
	BaseBenefit float64   `json:"base_benefit"`
	BaseCost    float64   `json:"base_cost"`
	DurationMin int       `json:"duration_min"`
	IsLegHeavy  bool      `json:"is_leg_heavy"`
	// Movement tags drive kettlebell weight suggestions ("swing",
	// "overhead", "pull"). Empty for non-kettlebell options.
	MovementTags []string `json:"movement_tags,omitempty"`
}

// IsRun reports whether the option is a running workout of any zone.
func (o WorkoutOption) IsRun() bool {
	return o.Modality == ModalityRun
}

// ScoringContext aggregates recent history for one planning request. It is
// built fresh on every call and never persisted as such, though its fields
// are echoed into the plan's debug blob.
type ScoringContext struct {
	RecoveryScore    int        `json:"recovery_score"`
	Soreness         int        `json:"soreness"`
	RecentHeavyCount int        `json:"recent_heavy_count"`
	LastLegDOMSHigh  bool       `json:"last_leg_doms_high"`
	LastModality     *Modality  `json:"last_modality,omitempty"`
	LastModalities   []Modality `json:"last_modalities,omitempty"`
}

// ScoredOption wraps a catalog option with its computed score.
type ScoredOption struct {
	Option  WorkoutOption `json:"option"`
	Benefit int           `json:"benefit"`
	Cost    int           `json:"cost"`
	Net     int           `json:"net"`
	Rank    int           `json:"rank"`
	// Rules lists the scoring rules that fired, in firing order. Used for
	// debugging and test assertions only, never for control flow.
	Rules []string `json:"rules,omitempty"`
}

// Plan is the output of one planning run.
type Plan struct {
	Date             time.Time        `json:"date"`
	RecoveryScore    int              `json:"recovery_score"`
	SleepSummary     string           `json:"sleep_summary"`
	Equipment        EquipmentProfile `json:"equipment"`
	Today            []ScoredOption   `json:"today"`
	Tomorrow         []WorkoutOption  `json:"tomorrow"`
	DayAfter         []WorkoutOption  `json:"day_after"`
	SelectedOptionID *string          `json:"selected_option_id,omitempty"`
	Debug            ScoringDebug     `json:"debug"`
}

// ScoringDebug captures the context and the full ranked list for audit.
type ScoringDebug struct {
	Context ScoringContext `json:"context"`
	Scored  []ScoredOption `json:"scored"`
}

// Profile is the user's equipment setup and kettlebell capabilities.
type Profile struct {
	Equipment       EquipmentProfile `json:"equipment"`
	KBOverheadMaxKg int              `json:"kb_overhead_max_kg"`
	KBHeavyKg       int              `json:"kb_heavy_kg"`
	KBSwingKg       int              `json:"kb_swing_kg"`
}

// MorningCheckIn is the user's subjective soreness report for one morning.
type MorningCheckIn struct {
	Date          time.Time `json:"date"`
	Soreness      int       `json:"soreness"`
	PainLocations []string  `json:"pain_locations"`
}

// WorkoutFeedback is a post-workout effort rating on a 1-5 scale.
type WorkoutFeedback struct {
	Effort      int       `json:"effort"`
	WorkoutDate time.Time `json:"workout_date"`
	CreatedAt   time.Time `json:"created_at"`
}

// RecoverySnapshot is the physiological readiness signal for one date.
type RecoverySnapshot struct {
	Date          time.Time `json:"date"`
	RecoveryScore int       `json:"recovery_score"`
	SleepSummary  string    `json:"sleep_summary"`
}

var (
	// ErrNotFound signals a missing record or an unknown catalog option id.
	ErrNotFound = errors.New("not found")
	// ErrNoOptions signals that filtering removed every catalog option.
	ErrNoOptions = errors.New("no options available")
	// ErrInvalidInput signals a request value outside its allowed range.
	ErrInvalidInput = errors.New("invalid input")
)

// legPainLocations are the pain reports that rule out running.
var legPainLocations = map[string]struct{}{
	"knee":   {},
	"calves": {},
	"thigh":  {},
}

// hasLegPain reports whether any reported pain location affects the legs.
func hasLegPain(painLocations []string) bool {
	for _, loc := range painLocations {
		if _, ok := legPainLocations[loc]; ok {
			return true
		}
	}
	return false
}

package plan

// Catalog returns the full workout option catalog. The catalog is fixed at
// compile time; callers must not mutate the returned slice.
func Catalog() []WorkoutOption {
	return catalog
}

// OptionByID looks up a catalog option. Returns ErrNotFound for unknown ids.
func OptionByID(id string) (WorkoutOption, error) {
	for _, opt := range catalog {
		if opt.ID == id {
			return opt, nil
		}
	}
	return WorkoutOption{}, ErrNotFound
}

//nolint:gochecknoglobals // The catalog is immutable reference data.
var catalog = []WorkoutOption{
	// Running
	{
		ID:          "run_z3_30",
		Name:        "Run Z3, 30 min",
		Modality:    ModalityRun,
		Zone:        ZoneZ3,
		Equipment:   EquipmentNone,
		Impact:      ImpactHigh,
		BaseBenefit: 7.0,
		BaseCost:    5.0,
		DurationMin: 30,
		IsLegHeavy:  true,
	},
	{
		ID:          "run_z3_45",
		Name:        "Run Z3, 45 min",
		Modality:    ModalityRun,
		Zone:        ZoneZ3,
		Equipment:   EquipmentNone,
		Impact:      ImpactHigh,
		BaseBenefit: 8.0,
		BaseCost:    6.5,
		DurationMin: 45,
		IsLegHeavy:  true,
	},
	{
		ID:          "run_z4_20",
		Name:        "Run Z4 quality, 20 min",
		Modality:    ModalityRun,
		Zone:        ZoneZ4,
		Equipment:   EquipmentNone,
		Impact:      ImpactHigh,
		BaseBenefit: 9.0,
		BaseCost:    8.0,
		DurationMin: 20,
		IsLegHeavy:  true,
	},
	{
		// Run-walk intervals, light enough to count as residual leg
		// impact rather than a leg-heavy session.
		ID:          "run_z2_30",
		Name:        "Run Z2 run-walk, 30 min",
		Modality:    ModalityRun,
		Zone:        ZoneZ2,
		Equipment:   EquipmentNone,
		Impact:      ImpactHigh,
		BaseBenefit: 5.0,
		BaseCost:    3.0,
		DurationMin: 30,
		IsLegHeavy:  false,
	},

	// Kettlebell
	{
		ID:           "kb_12",
		Name:         "Kettlebell 12 kg",
		Modality:     ModalityStrength,
		Equipment:    EquipmentKettlebell,
		Impact:       ImpactMedium,
		BaseBenefit:  6.0,
		BaseCost:     4.0,
		DurationMin:  30,
		IsLegHeavy:   false,
		MovementTags: []string{"swing", "overhead"},
	},
	{
		// Heavy kettlebell work is leg-intensive.
		ID:           "kb_20",
		Name:         "Kettlebell 20 kg",
		Modality:     ModalityStrength,
		Equipment:    EquipmentKettlebell,
		Impact:       ImpactMedium,
		BaseBenefit:  7.5,
		BaseCost:     6.0,
		DurationMin:  30,
		IsLegHeavy:   true,
		MovementTags: []string{"swing", "pull"},
	},

	// Bands
	{
		ID:          "bands_strength",
		Name:        "Band strength",
		Modality:    ModalityStrength,
		Equipment:   EquipmentBands,
		Impact:      ImpactLow,
		BaseBenefit: 5.5,
		BaseCost:    3.5,
		DurationMin: 30,
		IsLegHeavy:  false,
	},

	// Bodyweight
	{
		ID:          "bodyweight_strength",
		Name:        "Bodyweight strength",
		Modality:    ModalityStrength,
		Equipment:   EquipmentNone,
		Impact:      ImpactLow,
		BaseBenefit: 5.0,
		BaseCost:    3.0,
		DurationMin: 30,
		IsLegHeavy:  false,
	},

	// Low-impact cardio
	{
		ID:          "barre",
		Name:        "Barre",
		Modality:    ModalityBarre,
		Equipment:   EquipmentNone,
		Impact:      ImpactLow,
		BaseBenefit: 5.0,
		BaseCost:    2.5,
		DurationMin: 45,
		IsLegHeavy:  false,
	},

	// Recovery
	{
		ID:          "mobility",
		Name:        "Mobility and stretching",
		Modality:    ModalityMobility,
		Equipment:   EquipmentNone,
		Impact:      ImpactLow,
		BaseBenefit: 3.0,
		BaseCost:    0.5,
		DurationMin: 30,
		IsLegHeavy:  false,
	},
	{
		ID:          "walking",
		Name:        "Walk",
		Modality:    ModalityWalk,
		Equipment:   EquipmentNone,
		Impact:      ImpactLow,
		BaseBenefit: 2.0,
		BaseCost:    0.5,
		DurationMin: 30,
		IsLegHeavy:  false,
	},
}

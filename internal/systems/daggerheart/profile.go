package daggerheart

import apperrors "github.com/louisbranch/sheetkeeper/internal/platform/errors"

// Profile defaults for Daggerheart player characters.
const (
	PCLevelDefault    = 1
	PCHpMax           = 6
	PCStressMax       = 6
	PCHopeMax         = 6
	PCEvasion         = 10
	PCMajorThreshold  = 8
	PCSevereThreshold = 12
	PCArmorScore      = 0

	LevelMin = 1
	LevelMax = 10

	HPMaxCap     = 12
	StressMaxCap = 12
	ArmorMaxCap  = 12
)

var (
	// ErrInvalidLevel indicates level is out of range.
	ErrInvalidLevel = apperrors.New(apperrors.CodeDaggerheartInvalidLevel, "level must be in range 1..10")
	// ErrInvalidThresholds indicates threshold ordering is invalid.
	ErrInvalidThresholds = apperrors.New(apperrors.CodeDaggerheartInvalidThresholds, "severe_threshold must be >= major_threshold >= 0")
)

// ValidateLevel validates level is within 1..10.
func ValidateLevel(level int) error {
	if level < LevelMin || level > LevelMax {
		return ErrInvalidLevel
	}
	return nil
}

// DefaultTotals returns the stat totals of a fresh level-one character with
// no armor equipped.
func DefaultTotals() Totals {
	return Totals{
		HP:         PCHpMax,
		Stress:     PCStressMax,
		Hope:       PCHopeMax,
		Evasion:    PCEvasion,
		ArmorScore: PCArmorScore,
	}
}

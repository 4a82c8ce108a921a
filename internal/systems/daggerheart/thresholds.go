package daggerheart

import (
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/sheetkeeper/internal/platform/errors"
)

// Manual threshold validation failures, in the order they are checked.
var (
	ErrThresholdNotNumber        = apperrors.New(apperrors.CodeThresholdNotNumber, "Major and Severe must be whole numbers")
	ErrThresholdNegative         = apperrors.New(apperrors.CodeThresholdNegative, "Thresholds cannot be negative")
	ErrThresholdSevereBelowMajor = apperrors.New(apperrors.CodeThresholdSevereBelowMajor, "Severe must be ≥ Major")
	ErrThresholdDSNotNumber      = apperrors.New(apperrors.CodeThresholdDSNotNumber, "Major Damage must be a whole number")
	ErrThresholdDSNegative       = apperrors.New(apperrors.CodeThresholdDSNegative, "Major Damage cannot be negative")
	ErrThresholdDSBelowSevere    = apperrors.New(apperrors.CodeThresholdDSBelowSevere, "Major Damage must be ≥ Severe")
)

// ThresholdValues are the damage thresholds in effect for a character.
// DS is the massive damage threshold, twice Severe unless overridden.
type ThresholdValues struct {
	Major      int  `json:"major"`
	Severe     int  `json:"severe"`
	DSOverride bool `json:"ds_override"`
	DS         int  `json:"ds"`
}

// ThresholdsSettings is the threshold block of a character record.
type ThresholdsSettings struct {
	Auto           bool            `json:"auto"`
	Values         ThresholdValues `json:"values"`
	EnableCritical bool            `json:"enable_critical"`
}

// ValidateThresholdsManual checks manually entered thresholds. It returns nil
// when the values can be saved, otherwise the first failing rule.
func ValidateThresholdsManual(major, severe string, dsOverride bool, ds string) error {
	majorValue, majorErr := parseWhole(major)
	severeValue, severeErr := parseWhole(severe)
	if majorErr != nil || severeErr != nil {
		return ErrThresholdNotNumber
	}
	if majorValue < 0 || severeValue < 0 {
		return ErrThresholdNegative
	}
	if severeValue < majorValue {
		return ErrThresholdSevereBelowMajor
	}
	if !dsOverride {
		return nil
	}
	dsValue, err := parseWhole(ds)
	if err != nil {
		return ErrThresholdDSNotNumber
	}
	if dsValue < 0 {
		return ErrThresholdDSNegative
	}
	if dsValue < severeValue {
		return ErrThresholdDSBelowSevere
	}
	return nil
}

// ComputeDsValue returns the massive damage threshold: the parsed override
// when set and readable, otherwise twice severe. Never negative.
func ComputeDsValue(severe int, override bool, ds string) int {
	value := severe * 2
	if override {
		if parsed, err := parseWhole(ds); err == nil {
			value = parsed
		}
	}
	return max(0, value)
}

// DeriveThresholds computes automatic thresholds from the equipped armor's
// base thresholds plus the character level.
func DeriveThresholds(armorMajor, armorSevere, level int) (ThresholdValues, error) {
	if err := ValidateLevel(level); err != nil {
		return ThresholdValues{}, err
	}
	if armorMajor < 0 || armorSevere < armorMajor {
		return ThresholdValues{}, ErrInvalidThresholds
	}
	major := armorMajor + level
	severe := armorSevere + level
	return ThresholdValues{
		Major:  major,
		Severe: severe,
		DS:     ComputeDsValue(severe, false, ""),
	}, nil
}

// ResolveThresholds returns the thresholds a character sheet should display:
// derived values in auto mode, the stored manual values otherwise. Manual DS
// is recomputed from severe unless overridden.
func ResolveThresholds(settings ThresholdsSettings, armorMajor, armorSevere, level int) (ThresholdValues, error) {
	if settings.Auto {
		return DeriveThresholds(armorMajor, armorSevere, level)
	}
	values := settings.Values
	if values.Major < 0 || values.Severe < values.Major {
		return ThresholdValues{}, ErrInvalidThresholds
	}
	ds := values.Severe * 2
	if values.DSOverride {
		ds = max(0, values.DS)
	}
	values.DS = ds
	return values, nil
}

func parseWhole(value string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(value))
}

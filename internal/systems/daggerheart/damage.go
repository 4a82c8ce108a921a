package daggerheart

// DamageSeverity describes the severity tier of incoming damage.
type DamageSeverity int

const (
	DamageNone DamageSeverity = iota
	DamageMinor
	DamageMajor
	DamageSevere
	DamageMassive
)

// String returns the lowercase severity label.
func (s DamageSeverity) String() string {
	switch s {
	case DamageMinor:
		return "minor"
	case DamageMajor:
		return "major"
	case DamageSevere:
		return "severe"
	case DamageMassive:
		return "massive"
	default:
		return "none"
	}
}

// DamageResult describes the damage severity and HP marks to apply.
type DamageResult struct {
	Severity DamageSeverity
	Marks    int
}

// DamageApplication captures HP and armor slot deltas alongside damage evaluation.
type DamageApplication struct {
	Result      DamageResult
	HPBefore    int
	HPAfter     int
	ArmorBefore int
	ArmorAfter  int
	ArmorSpent  int
}

// EvaluateDamage determines severity and HP marks from a damage total.
// Massive damage only applies when critical damage is enabled on the sheet.
func EvaluateDamage(amount int, thresholds ThresholdValues, enableCritical bool) (DamageResult, error) {
	if thresholds.Major < 0 || thresholds.Severe < thresholds.Major {
		return DamageResult{}, ErrInvalidThresholds
	}
	if amount <= 0 {
		return DamageResult{Severity: DamageNone}, nil
	}
	massive := thresholds.DS
	if massive <= 0 {
		massive = thresholds.Severe * 2
	}
	if enableCritical && amount >= massive {
		return DamageResult{Severity: DamageMassive, Marks: 4}, nil
	}
	if amount >= thresholds.Severe {
		return DamageResult{Severity: DamageSevere, Marks: 3}, nil
	}
	if amount >= thresholds.Major {
		return DamageResult{Severity: DamageMajor, Marks: 2}, nil
	}
	return DamageResult{Severity: DamageMinor, Marks: 1}, nil
}

// ApplyDamageMarks reduces current HP by the given number of marks.
func ApplyDamageMarks(currentHP, marks int) (before, after int) {
	before = currentHP
	if marks <= 0 {
		return before, before
	}
	return before, max(0, currentHP-marks)
}

// ApplyDamageWithArmor spends one armor slot, when available, to lower the
// severity by one step before marking HP.
func ApplyDamageWithArmor(currentHP, armorSlots int, result DamageResult) DamageApplication {
	reduced, spent := ReduceDamageWithArmor(result, armorSlots)
	before, after := ApplyDamageMarks(currentHP, reduced.Marks)
	return DamageApplication{
		Result:      reduced,
		HPBefore:    before,
		HPAfter:     after,
		ArmorBefore: armorSlots,
		ArmorAfter:  armorSlots - spent,
		ArmorSpent:  spent,
	}
}

// ReduceDamageWithArmor reduces damage severity by one step when armor is spent.
func ReduceDamageWithArmor(result DamageResult, availableSlots int) (DamageResult, int) {
	if availableSlots <= 0 || result.Marks <= 0 {
		return result, 0
	}
	reduced := result
	if reduced.Severity > DamageNone {
		reduced.Severity--
	}
	reduced.Marks = max(0, reduced.Marks-1)
	return reduced, 1
}

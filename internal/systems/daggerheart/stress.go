package daggerheart

// ConditionVulnerable is applied automatically once stress is full.
const ConditionVulnerable = "vulnerable"

// StressMark is the outcome of marking stress.
type StressMark struct {
	StressMarked int  `json:"stress_marked"`
	HPOverflow   int  `json:"hp_overflow"`
	StressAfter  int  `json:"stress_after"`
	Vulnerable   bool `json:"vulnerable"`
}

// StressChange is the outcome of setting stress to an absolute value.
type StressChange struct {
	StressBefore int  `json:"stress_before"`
	StressAfter  int  `json:"stress_after"`
	HPOverflow   int  `json:"hp_overflow"`
	Vulnerable   bool `json:"vulnerable"`
}

// CalculateStressMark marks amount stress against the remaining capacity.
// Stress that does not fit spills over and must be marked as HP by the
// caller. Non-positive amounts change nothing.
func CalculateStressMark(current, maxStress, amount int) StressMark {
	if amount <= 0 {
		return StressMark{
			StressAfter: current,
			Vulnerable:  ShouldApplyVulnerable(current, maxStress),
		}
	}
	remaining := max(0, maxStress-current)
	overflow := max(0, amount-remaining)
	marked := amount - overflow
	after := current + marked
	return StressMark{
		StressMarked: marked,
		HPOverflow:   overflow,
		StressAfter:  after,
		Vulnerable:   ShouldApplyVulnerable(after, maxStress),
	}
}

// ShouldApplyVulnerable reports whether stress has reached its maximum.
func ShouldApplyVulnerable(stress, maxStress int) bool {
	return maxStress > 0 && stress >= maxStress
}

// ApplyStressWithOverflow sets stress to target. Clearing stress never
// overflows; raising it marks the difference, so anything past max spills
// into HP.
func ApplyStressWithOverflow(current, maxStress, target int) StressChange {
	if target <= current {
		after := max(0, target)
		return StressChange{
			StressBefore: current,
			StressAfter:  after,
			Vulnerable:   ShouldApplyVulnerable(after, maxStress),
		}
	}
	mark := CalculateStressMark(current, maxStress, target-current)
	return StressChange{
		StressBefore: current,
		StressAfter:  mark.StressAfter,
		HPOverflow:   mark.HPOverflow,
		Vulnerable:   mark.Vulnerable,
	}
}

// ApplyHPOverflow removes overflow from the remaining HP.
func ApplyHPOverflow(currentHP, overflow int) (before, after int) {
	return ApplyDamageMarks(currentHP, overflow)
}

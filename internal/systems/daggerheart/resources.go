package daggerheart

// Track is a raw max/current pair as stored on a character record.
// Either side may be missing.
type Track struct {
	Max     *int `json:"max,omitempty" yaml:"max,omitempty"`
	Current *int `json:"current,omitempty" yaml:"current,omitempty"`
}

// Resources is the raw resources object of a character record.
type Resources struct {
	HP         *Track `json:"hp,omitempty"`
	Stress     *Track `json:"stress,omitempty"`
	Hope       *Track `json:"hope,omitempty"`
	ArmorSlots *Track `json:"armor_slots,omitempty"`
	Evasion    *int   `json:"evasion,omitempty"`
	ArmorScore *int   `json:"armor_score,omitempty"`
	Gold       *Gold  `json:"gold,omitempty"`
}

// Totals holds stat totals computed from class, level, armor and modifiers.
type Totals struct {
	HP         int `json:"hp"`
	Stress     int `json:"stress"`
	Hope       int `json:"hope"`
	Evasion    int `json:"evasion"`
	ArmorScore int `json:"armor_score"`
}

// ResourceSnapshot is the display projection of a character's resources.
// Current values are expected to stay within their max, but nothing here
// clamps them.
type ResourceSnapshot struct {
	HPMax             int `json:"hp_max"`
	HPCurrent         int `json:"hp_current"`
	StressMax         int `json:"stress_max"`
	StressCurrent     int `json:"stress_current"`
	Evasion           int `json:"evasion"`
	ArmorScore        int `json:"armor_score"`
	ArmorSlotsCurrent int `json:"armor_slots_current"`
	HopeMax           int `json:"hope_max"`
	HopeCurrent       int `json:"hope_current"`
	Gold              int `json:"gold"`
}

// BuildResourceSnapshot projects raw resources onto display values. Missing
// maxima fall back to the computed totals and missing current values fall back
// to their max.
func BuildResourceSnapshot(res Resources, totals Totals) ResourceSnapshot {
	hopeTotal := totals.Hope
	if hopeTotal <= 0 {
		hopeTotal = PCHopeMax
	}
	armorScore := intOr(res.ArmorScore, totals.ArmorScore)

	hpMax, hpCurrent := res.HP.resolve(totals.HP)
	stressMax, stressCurrent := res.Stress.resolve(totals.Stress)
	hopeMax, hopeCurrent := res.Hope.resolve(hopeTotal)
	_, armorSlots := res.ArmorSlots.resolve(armorScore)

	return ResourceSnapshot{
		HPMax:             hpMax,
		HPCurrent:         hpCurrent,
		StressMax:         stressMax,
		StressCurrent:     stressCurrent,
		Evasion:           intOr(res.Evasion, totals.Evasion),
		ArmorScore:        armorScore,
		ArmorSlotsCurrent: armorSlots,
		HopeMax:           hopeMax,
		HopeCurrent:       hopeCurrent,
		Gold:              TotalGold(res.Gold),
	}
}

func (t *Track) resolve(fallbackMax int) (maxValue, current int) {
	if t == nil {
		return fallbackMax, fallbackMax
	}
	maxValue = intOr(t.Max, fallbackMax)
	return maxValue, intOr(t.Current, maxValue)
}

func intOr(value *int, fallback int) int {
	if value == nil {
		return fallback
	}
	return *value
}

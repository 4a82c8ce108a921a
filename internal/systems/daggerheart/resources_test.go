package daggerheart

import "testing"

func intPtr(v int) *int { return &v }

func TestBuildResourceSnapshotDefaultsToTotals(t *testing.T) {
	totals := Totals{HP: 7, Stress: 6, Hope: 6, Evasion: 11, ArmorScore: 3}
	got := BuildResourceSnapshot(Resources{}, totals)
	want := ResourceSnapshot{
		HPMax:             7,
		HPCurrent:         7,
		StressMax:         6,
		StressCurrent:     6,
		Evasion:           11,
		ArmorScore:        3,
		ArmorSlotsCurrent: 3,
		HopeMax:           6,
		HopeCurrent:       6,
	}
	if got != want {
		t.Fatalf("BuildResourceSnapshot = %+v, want %+v", got, want)
	}
}

func TestBuildResourceSnapshotPrefersRawValues(t *testing.T) {
	res := Resources{
		HP:         &Track{Max: intPtr(9), Current: intPtr(4)},
		Stress:     &Track{Current: intPtr(2)},
		Hope:       &Track{Max: intPtr(5)},
		ArmorSlots: &Track{Current: intPtr(1)},
		Evasion:    intPtr(13),
		ArmorScore: intPtr(4),
		Gold:       &Gold{Handfuls: 2, Coins: 3},
	}
	got := BuildResourceSnapshot(res, Totals{HP: 6, Stress: 6, Hope: 6, Evasion: 10})
	want := ResourceSnapshot{
		HPMax:             9,
		HPCurrent:         4,
		StressMax:         6,
		StressCurrent:     2,
		Evasion:           13,
		ArmorScore:        4,
		ArmorSlotsCurrent: 1,
		HopeMax:           5,
		HopeCurrent:       5,
		Gold:              23,
	}
	if got != want {
		t.Fatalf("BuildResourceSnapshot = %+v, want %+v", got, want)
	}
}

func TestBuildResourceSnapshotHPFallsBackExactly(t *testing.T) {
	for _, hp := range []int{0, 1, 6, 12} {
		got := BuildResourceSnapshot(Resources{Stress: &Track{Current: intPtr(1)}}, Totals{HP: hp})
		if got.HPMax != hp || got.HPCurrent != hp {
			t.Fatalf("totals.HP=%d: snapshot hp = %d/%d", hp, got.HPCurrent, got.HPMax)
		}
	}
}

func TestBuildResourceSnapshotDoesNotClamp(t *testing.T) {
	got := BuildResourceSnapshot(Resources{HP: &Track{Max: intPtr(3), Current: intPtr(8)}}, DefaultTotals())
	if got.HPCurrent != 8 {
		t.Fatalf("hp current = %d, want raw 8", got.HPCurrent)
	}
}

func TestBuildResourceSnapshotHopeDefault(t *testing.T) {
	got := BuildResourceSnapshot(Resources{}, Totals{})
	if got.HopeMax != PCHopeMax || got.HopeCurrent != PCHopeMax {
		t.Fatalf("hope = %d/%d, want default %d", got.HopeCurrent, got.HopeMax, PCHopeMax)
	}
}

package daggerheart

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateThresholdsManual(t *testing.T) {
	tests := []struct {
		name       string
		major      string
		severe     string
		dsOverride bool
		ds         string
		want       error
	}{
		{"valid", "8", "12", false, "", nil},
		{"valid with whitespace", " 8 ", "12 ", false, "", nil},
		{"equal thresholds", "8", "8", false, "", nil},
		{"major not a number", "eight", "12", false, "", ErrThresholdNotNumber},
		{"severe empty", "8", "", false, "", ErrThresholdNotNumber},
		{"fractional", "8.5", "12", false, "", ErrThresholdNotNumber},
		{"negative major", "-1", "12", false, "", ErrThresholdNegative},
		{"negative checked before ordering", "5", "-1", false, "", ErrThresholdNegative},
		{"severe below major", "10", "5", false, "", ErrThresholdSevereBelowMajor},
		{"ds ignored without override", "8", "12", false, "garbage", nil},
		{"ds override valid", "8", "12", true, "24", nil},
		{"ds override equal to severe", "8", "12", true, "12", nil},
		{"ds not a number", "8", "12", true, "lots", ErrThresholdDSNotNumber},
		{"ds empty", "8", "12", true, "", ErrThresholdDSNotNumber},
		{"ds negative", "8", "12", true, "-4", ErrThresholdDSNegative},
		{"ds below severe", "3", "7", true, "5", ErrThresholdDSBelowSevere},
		{"ordering checked before ds", "10", "5", true, "bad", ErrThresholdSevereBelowMajor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateThresholdsManual(tt.major, tt.severe, tt.dsOverride, tt.ds)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidateThresholdsManualMessages(t *testing.T) {
	err := ValidateThresholdsManual("10", "5", false, "")
	if err == nil || !strings.Contains(err.Error(), "Severe must be ≥ Major") {
		t.Fatalf("error = %v, want severe/major message", err)
	}
	err = ValidateThresholdsManual("3", "7", true, "5")
	if err == nil || !strings.Contains(err.Error(), "Major Damage must be ≥ Severe") {
		t.Fatalf("error = %v, want major damage message", err)
	}
}

func TestComputeDsValue(t *testing.T) {
	tests := []struct {
		name     string
		severe   int
		override bool
		ds       string
		want     int
	}{
		{"double severe", 10, false, "", 20},
		{"override ignored when disabled", 10, false, "15", 20},
		{"override", 10, true, "15", 15},
		{"unparseable override", 10, true, "bad", 20},
		{"negative override floored", 10, true, "-5", 0},
		{"negative severe floored", -3, false, "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeDsValue(tt.severe, tt.override, tt.ds); got != tt.want {
				t.Fatalf("ComputeDsValue(%d, %v, %q) = %d, want %d", tt.severe, tt.override, tt.ds, got, tt.want)
			}
		})
	}
}

func TestDeriveThresholds(t *testing.T) {
	got, err := DeriveThresholds(5, 11, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := ThresholdValues{Major: 8, Severe: 14, DS: 28}
	if got != want {
		t.Fatalf("DeriveThresholds = %+v, want %+v", got, want)
	}

	if _, err := DeriveThresholds(5, 11, 0); !errors.Is(err, ErrInvalidLevel) {
		t.Fatalf("error = %v, want %v", err, ErrInvalidLevel)
	}
	if _, err := DeriveThresholds(12, 6, 1); !errors.Is(err, ErrInvalidThresholds) {
		t.Fatalf("error = %v, want %v", err, ErrInvalidThresholds)
	}
}

func TestResolveThresholds(t *testing.T) {
	t.Run("auto", func(t *testing.T) {
		got, err := ResolveThresholds(ThresholdsSettings{Auto: true, Values: ThresholdValues{Major: 99, Severe: 99}}, 6, 13, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Major != 8 || got.Severe != 15 || got.DS != 30 {
			t.Fatalf("auto thresholds = %+v", got)
		}
	})

	t.Run("manual recomputes ds", func(t *testing.T) {
		got, err := ResolveThresholds(ThresholdsSettings{Values: ThresholdValues{Major: 7, Severe: 12, DS: 3}}, 0, 0, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.DS != 24 {
			t.Fatalf("ds = %d, want 24", got.DS)
		}
	})

	t.Run("manual override", func(t *testing.T) {
		got, err := ResolveThresholds(ThresholdsSettings{Values: ThresholdValues{Major: 7, Severe: 12, DSOverride: true, DS: 18}}, 0, 0, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.DS != 18 {
			t.Fatalf("ds = %d, want 18", got.DS)
		}
	})

	t.Run("manual invalid", func(t *testing.T) {
		_, err := ResolveThresholds(ThresholdsSettings{Values: ThresholdValues{Major: 12, Severe: 7}}, 0, 0, 1)
		if !errors.Is(err, ErrInvalidThresholds) {
			t.Fatalf("error = %v, want %v", err, ErrInvalidThresholds)
		}
	})
}

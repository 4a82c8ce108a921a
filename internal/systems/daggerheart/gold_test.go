package daggerheart

import "testing"

func TestTotalGold(t *testing.T) {
	tests := []struct {
		name string
		gold *Gold
		want int
	}{
		{"nil", nil, 0},
		{"empty", &Gold{}, 0},
		{"every tier", &Gold{Handfuls: 1, Bags: 1, Chests: 1, Coins: 5}, 1115},
		{"handfuls only", &Gold{Handfuls: 7}, 70},
		{"chests", &Gold{Chests: 2, Bags: 3}, 2300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TotalGold(tt.gold); got != tt.want {
				t.Fatalf("TotalGold(%+v) = %d, want %d", tt.gold, got, tt.want)
			}
		})
	}
}

func TestNormalizeGold(t *testing.T) {
	got := NormalizeGold(2345)
	want := Gold{Chests: 2, Bags: 3, Handfuls: 4, Coins: 5}
	if got != want {
		t.Fatalf("NormalizeGold(2345) = %+v, want %+v", got, want)
	}
	if got := NormalizeGold(-10); got != (Gold{}) {
		t.Fatalf("NormalizeGold(-10) = %+v, want empty", got)
	}
	for total := 0; total < 3000; total += 37 {
		breakdown := NormalizeGold(total)
		if TotalGold(&breakdown) != total {
			t.Fatalf("NormalizeGold(%d) = %+v does not total back", total, breakdown)
		}
	}
}

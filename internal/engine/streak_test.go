package engine_test

import (
	"testing"
	"time"

	"github.com/Samandarcodee/Yurlo-sub000/internal/domain"
	"github.com/Samandarcodee/Yurlo-sub000/internal/engine"
)

func TestCalculateStreak(t *testing.T) {
	all := make([]bool, 10)
	for i := range all {
		all[i] = true
	}
	gap := make([]bool, 10)
	copy(gap, all)
	gap[5] = false

	tests := []struct {
		name    string
		history []bool
		want    domain.Streak
	}{
		{"empty", nil, domain.Streak{}},
		{"all met", all, domain.Streak{Current: 10, Longest: 10}},
		{"miss at index 5", gap, domain.Streak{Current: 5, Longest: 5}},
		{"today pending", []bool{false, true, true, true, false, true}, domain.Streak{Current: 3, Longest: 3}},
		{"two days missed", []bool{false, false, true}, domain.Streak{Current: 0, Longest: 1}},
		{"longest in the past", []bool{true, false, true, true, true}, domain.Streak{Current: 1, Longest: 3}},
		{"none met", []bool{false, false, false}, domain.Streak{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := engine.CalculateStreak(tc.history); got != tc.want {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestDayHistory(t *testing.T) {
	today := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)
	met := map[string]bool{"2024-03-10": true, "2024-03-08": true, "2024-03-01": true}
	got := engine.DayHistory(today, 3, met)
	want := []bool{true, false, true}
	if len(got) != len(want) {
		t.Fatalf("got %d days, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("day %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

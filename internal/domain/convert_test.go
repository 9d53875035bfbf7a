package domain_test

import (
	"math"
	"testing"

	"github.com/Samandarcodee/Yurlo-sub000/internal/domain"
)

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestConvertWeight(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		from, to string
		want     float64
	}{
		{"kg to lb", 100.0, "kg", "lb", 220.46226218},
		{"lb to kg", 220.46226218, "lb", "kg", 100.0},
		{"same unit kg", 80.0, "kg", "kg", 80.0},
		{"unknown units", 50.0, "st", "kg", 50.0},
		{"zero value", 0, "kg", "lb", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := domain.ConvertWeight(tc.value, tc.from, tc.to)
			if !almostEqual(got, tc.want, 0.001) {
				t.Errorf("ConvertWeight(%v, %q, %q) = %v; want %v",
					tc.value, tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestWeightToKg(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		unit    string
		want    float64
		wantErr bool
	}{
		{"default unit", 70, "", 70, false},
		{"kilograms", 70, "kg", 70, false},
		{"pounds", 154.324, "lb", 70, false},
		{"stone rejected", 11, "st", 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := domain.WeightToKg(tc.value, tc.unit)
			if (err != nil) != tc.wantErr {
				t.Fatalf("WeightToKg error = %v, wantErr %v", err, tc.wantErr)
			}
			if !almostEqual(got, tc.want, 0.01) {
				t.Errorf("WeightToKg(%v, %q) = %v; want %v", tc.value, tc.unit, got, tc.want)
			}
		})
	}
}

func TestHeightToCm(t *testing.T) {
	got, err := domain.HeightToCm(70, "in")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(got, 177.8, 0.001) {
		t.Errorf("HeightToCm(70, in) = %v; want 177.8", got)
	}
	if _, err := domain.HeightToCm(5, "ft"); err == nil {
		t.Error("expected error for unknown unit")
	}
}

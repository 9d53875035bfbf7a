package engine

import (
	"math"

	"github.com/Samandarcodee/Yurlo-sub000/internal/domain"
)

const (
	minutesPerDay = 24 * 60

	// defaultStrideMeters is used when the user's height is unknown.
	defaultStrideMeters = 0.762
	// strideHeightRatio approximates walking stride from height.
	strideHeightRatio = 0.415
	// stepKcalPerKg is energy per step per kilogram of body weight.
	stepKcalPerKg = 0.0005
	// defaultWeightKg stands in for an unknown body weight.
	defaultWeightKg = 70
)

// intensityMET is the metabolic-equivalent factor per workout intensity.
var intensityMET = map[domain.Intensity]float64{
	domain.IntensityLow:      3.5,
	domain.IntensityModerate: 5.0,
	domain.IntensityHigh:     8.0,
	domain.IntensityExtreme:  10.0,
}

// SleepDuration returns the hours between bed and wake times given as HH:MM.
// A wake time at or before the bed time is taken to be on the next day.
func SleepDuration(bedTime, wakeTime string) (float64, error) {
	bed, err := domain.ParseClock(bedTime)
	if err != nil {
		return 0, err
	}
	wake, err := domain.ParseClock(wakeTime)
	if err != nil {
		return 0, err
	}
	mins := wake - bed
	if mins <= 0 {
		mins += minutesPerDay
	}
	return float64(mins) / 60, nil
}

// StepDistanceKm estimates walked distance from step count and height.
func StepDistanceKm(steps int, heightCm float64) float64 {
	stride := defaultStrideMeters
	if heightCm > 0 {
		stride = heightCm * strideHeightRatio / 100
	}
	return round2(float64(steps) * stride / 1000)
}

// StepCalories estimates energy spent walking.
func StepCalories(steps int, weightKg float64) float64 {
	if weightKg <= 0 {
		weightKg = defaultWeightKg
	}
	return math.Round(float64(steps) * weightKg * stepKcalPerKg)
}

// WorkoutCalories is weight x duration x intensity factor. Unknown
// intensities use the moderate factor.
func WorkoutCalories(weightKg float64, durationMinutes int, intensity domain.Intensity) float64 {
	if weightKg <= 0 {
		weightKg = defaultWeightKg
	}
	met, ok := intensityMET[intensity]
	if !ok {
		met = intensityMET[domain.IntensityModerate]
	}
	return math.Round(met * weightKg * float64(durationMinutes) / 60)
}

// WaterTotal sums entry amounts and reports whether the goal is reached.
func WaterTotal(entries []domain.WaterEntry, goalGlasses float64) (total float64, reached bool) {
	for _, e := range entries {
		total += e.Amount
	}
	total = round2(total)
	return total, total >= goalGlasses
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

package engine

import (
	"math"

	"github.com/Samandarcodee/Yurlo-sub000/internal/domain"
)

// Sleep score weights. They sum to 1.
const (
	sleepDurationWeight    = 0.50
	sleepQualityWeight     = 0.35
	sleepConsistencyWeight = 0.15

	// sleepPenaltyPerHour is deducted from the duration component for every
	// hour away from the target.
	sleepPenaltyPerHour = 25.0
	// scheduleToleranceMinutes is how far bed/wake times may drift from
	// their targets and still count as on schedule.
	scheduleToleranceMinutes = 30
)

// Label thresholds.
const (
	excellentThreshold = 85
	goodThreshold      = 70
	fairThreshold      = 50
)

// Label maps a 0-100 score to a qualitative rating.
func Label(score float64) string {
	switch {
	case score >= excellentThreshold:
		return "excellent"
	case score >= goodThreshold:
		return "good"
	case score >= fairThreshold:
		return "fair"
	default:
		return "poor"
	}
}

func newScore(v float64) domain.Score {
	v = round1(clamp(v, 0, 100))
	return domain.Score{Value: v, Label: Label(v)}
}

// ProgressPercent is min(actual/goal, 1) x 100. A non-positive goal is
// trivially satisfied.
func ProgressPercent(actual, goal float64) float64 {
	if goal <= 0 {
		return 100
	}
	if actual <= 0 {
		return 0
	}
	return math.Min(actual/goal, 1) * 100
}

// SleepScore weighs duration match, self-rated quality and schedule
// consistency.
func SleepScore(rec domain.SleepRecord, goals domain.SleepGoals) domain.Score {
	hours := rec.DurationHours
	if hours <= 0 {
		if d, err := SleepDuration(rec.BedTime, rec.WakeTime); err == nil {
			hours = d
		}
	}
	durationPart := 0.0
	if hours > 0 {
		durationPart = math.Max(0, 100-sleepPenaltyPerHour*math.Abs(hours-goals.TargetDurationHours))
	}
	qualityPart := ratingPercent(rec.Quality)
	consistencyPart := scheduleConsistency(rec, goals)

	return newScore(sleepDurationWeight*durationPart +
		sleepQualityWeight*qualityPart +
		sleepConsistencyWeight*consistencyPart)
}

// ratingPercent scales a 1-5 rating to 0-100.
func ratingPercent(r int) float64 {
	r = min(max(r, 1), 5)
	return float64(r-1) / 4 * 100
}

func scheduleConsistency(rec domain.SleepRecord, goals domain.SleepGoals) float64 {
	onTime := 0
	if withinClock(rec.BedTime, goals.TargetBedTime) {
		onTime++
	}
	if withinClock(rec.WakeTime, goals.TargetWakeTime) {
		onTime++
	}
	return float64(onTime) * 50
}

func withinClock(actual, target string) bool {
	a, err := domain.ParseClock(actual)
	if err != nil {
		return false
	}
	t, err := domain.ParseClock(target)
	if err != nil {
		return false
	}
	return clockDistance(a, t) <= scheduleToleranceMinutes
}

// clockDistance is the shortest distance between two times of day, so 23:50
// and 00:10 are 20 minutes apart.
func clockDistance(a, b int) int {
	d := a - b
	if d < 0 {
		d = -d
	}
	return min(d, minutesPerDay-d)
}

// StepScore is progress towards the daily step goal.
func StepScore(rec domain.StepRecord, goals domain.StepGoals) domain.Score {
	return newScore(ProgressPercent(float64(rec.Steps), float64(goals.DailySteps)))
}

// WaterScore is progress towards the daily glass goal.
func WaterScore(rec domain.WaterRecord, goals domain.WaterGoals) domain.Score {
	total := rec.TotalIntake
	if total == 0 && len(rec.Entries) > 0 {
		total, _ = WaterTotal(rec.Entries, goals.DailyGlasses)
	}
	return newScore(ProgressPercent(total, goals.DailyGlasses))
}

// WorkoutScore rates a week of training: the mean of capped progress towards
// the weekly minutes and weekly session goals.
func WorkoutScore(minutes, sessions int, goals domain.WorkoutGoals) domain.Score {
	m := ProgressPercent(float64(minutes), float64(goals.WeeklyMinutes))
	s := ProgressPercent(float64(sessions), float64(goals.WeeklyWorkouts))
	return newScore((m + s) / 2)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

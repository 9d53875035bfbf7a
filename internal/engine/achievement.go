package engine

import (
	"time"

	"github.com/Samandarcodee/Yurlo-sub000/internal/domain"
)

// Catalog is the static, ordered list of achievements. Evaluation follows
// this order.
var Catalog = []domain.Achievement{
	{ID: "first-steps", Title: "First Steps", Description: "Log your first 1,000 steps.", Metric: domain.MetricLifetimeSteps, Threshold: 1000, Rarity: domain.RarityCommon, Points: 10},
	{ID: "step-master", Title: "Step Master", Description: "Walk 50,000 steps in total.", Metric: domain.MetricLifetimeSteps, Threshold: 50000, Rarity: domain.RarityRare, Points: 50},
	{ID: "marathoner", Title: "Marathoner", Description: "Walk 1,000,000 steps in total.", Metric: domain.MetricLifetimeSteps, Threshold: 1000000, Rarity: domain.RarityLegendary, Points: 250},
	{ID: "big-day", Title: "Big Day", Description: "Take 20,000 steps in a single day.", Metric: domain.MetricBestDailySteps, Threshold: 20000, Rarity: domain.RarityEpic, Points: 75},
	{ID: "step-week", Title: "Week on Foot", Description: "Hit your step goal 7 days in a row.", Metric: domain.MetricStepStreak, Threshold: 7, Rarity: domain.RarityRare, Points: 50},
	{ID: "hydrated", Title: "Hydrated", Description: "Reach your water goal for the first time.", Metric: domain.MetricWaterGoalDays, Threshold: 1, Rarity: domain.RarityCommon, Points: 10},
	{ID: "water-regular", Title: "Water Regular", Description: "Reach your water goal on 10 days.", Metric: domain.MetricWaterGoalDays, Threshold: 10, Rarity: domain.RarityRare, Points: 40},
	{ID: "hydration-streak", Title: "Hydration Streak", Description: "Reach your water goal 7 days in a row.", Metric: domain.MetricWaterStreak, Threshold: 7, Rarity: domain.RarityEpic, Points: 75},
	{ID: "ocean", Title: "Ocean", Description: "Drink 500 glasses in total.", Metric: domain.MetricLifetimeWaterGlasses, Threshold: 500, Rarity: domain.RarityLegendary, Points: 200},
	{ID: "sleep-logger", Title: "Sleep Logger", Description: "Log your first night of sleep.", Metric: domain.MetricSleepNights, Threshold: 1, Rarity: domain.RarityCommon, Points: 10},
	{ID: "well-rested", Title: "Well Rested", Description: "Score 90 or more on 5 nights.", Metric: domain.MetricGreatSleepNights, Threshold: 5, Rarity: domain.RarityRare, Points: 50},
	{ID: "sleep-streak", Title: "Sleep Routine", Description: "Meet your sleep goal 7 nights in a row.", Metric: domain.MetricSleepStreak, Threshold: 7, Rarity: domain.RarityEpic, Points: 75},
	{ID: "first-workout", Title: "First Workout", Description: "Log your first workout.", Metric: domain.MetricWorkoutSessions, Threshold: 1, Rarity: domain.RarityCommon, Points: 10},
	{ID: "dedicated", Title: "Dedicated", Description: "Complete 25 workouts.", Metric: domain.MetricWorkoutSessions, Threshold: 25, Rarity: domain.RarityRare, Points: 60},
	{ID: "thousand-minutes", Title: "Thousand Minutes", Description: "Train for 1,000 minutes in total.", Metric: domain.MetricWorkoutMinutes, Threshold: 1000, Rarity: domain.RarityEpic, Points: 100},
	{ID: "active-week", Title: "Active Week", Description: "Work out 7 days in a row.", Metric: domain.MetricWorkoutStreak, Threshold: 7, Rarity: domain.RarityLegendary, Points: 150},
	{ID: "food-diary", Title: "Food Diary", Description: "Log 20 meal items.", Metric: domain.MetricMealsLogged, Threshold: 20, Rarity: domain.RarityCommon, Points: 20},
}

// AchievementMetrics are the cumulative and streak values conditions read.
type AchievementMetrics map[domain.Metric]float64

// EvaluateAchievements returns the achievements in catalog that are not in
// earned and whose condition now holds, stamped with now, in catalog order.
// Already-earned achievements are never returned again, whatever the metrics.
func EvaluateAchievements(catalog []domain.Achievement, metrics AchievementMetrics, earned map[string]time.Time, now time.Time) []domain.EarnedAchievement {
	var unlocked []domain.EarnedAchievement
	for _, a := range catalog {
		if _, ok := earned[a.ID]; ok {
			continue
		}
		if metrics[a.Metric] >= a.Threshold {
			unlocked = append(unlocked, domain.EarnedAchievement{Achievement: a, EarnedAt: now})
		}
	}
	return unlocked
}

// EarnedList joins the earned set back onto catalog entries, in catalog
// order. Unknown ids are ignored.
func EarnedList(catalog []domain.Achievement, earned map[string]time.Time) []domain.EarnedAchievement {
	out := make([]domain.EarnedAchievement, 0, len(earned))
	for _, a := range catalog {
		if at, ok := earned[a.ID]; ok {
			out = append(out, domain.EarnedAchievement{Achievement: a, EarnedAt: at})
		}
	}
	return out
}

// TotalPoints sums the points of earned achievements.
func TotalPoints(earned []domain.EarnedAchievement) int {
	var n int
	for _, e := range earned {
		n += e.Points
	}
	return n
}

// greatSleepScore is the nightly score that counts towards great-sleep
// achievements.
const greatSleepScore = 90

// maxStreakDays bounds how far back streak metrics look.
const maxStreakDays = 3660

// BuildAchievementMetrics reduces a user's whole record history, across all
// domains, into the values achievement conditions read. Streak metrics use
// the longest run ever recorded.
func BuildAchievementMetrics(records []domain.DailyRecord, goals domain.Goals, today time.Time) AchievementMetrics {
	goals = goals.WithDefaults()
	m := AchievementMetrics{}
	stepMet := map[string]bool{}
	waterMet := map[string]bool{}
	sleepMet := map[string]bool{}
	workoutMet := map[string]bool{}
	earliest := today.Format(domain.DayLayout)

	for _, r := range records {
		if r.Day < earliest {
			earliest = r.Day
		}
		switch {
		case r.Steps != nil:
			steps := float64(r.Steps.Steps)
			m[domain.MetricLifetimeSteps] += steps
			m[domain.MetricBestDailySteps] = max(m[domain.MetricBestDailySteps], steps)
			stepMet[r.Day] = r.Steps.Steps >= goals.Steps.DailySteps
		case r.Water != nil:
			total, reached := WaterTotal(r.Water.Entries, goals.Water.DailyGlasses)
			if len(r.Water.Entries) == 0 {
				total, reached = r.Water.TotalIntake, r.Water.TotalIntake >= goals.Water.DailyGlasses
			}
			m[domain.MetricLifetimeWaterGlasses] += total
			if reached {
				m[domain.MetricWaterGoalDays]++
			}
			waterMet[r.Day] = reached
		case r.Sleep != nil:
			m[domain.MetricSleepNights]++
			if SleepScore(*r.Sleep, goals.Sleep).Value >= greatSleepScore {
				m[domain.MetricGreatSleepNights]++
			}
			hours := r.Sleep.DurationHours
			if hours <= 0 {
				hours, _ = SleepDuration(r.Sleep.BedTime, r.Sleep.WakeTime)
			}
			sleepMet[r.Day] = hours >= goals.Sleep.TargetDurationHours-sleepGoalToleranceHours
		case r.Workout != nil:
			m[domain.MetricWorkoutSessions] += float64(len(r.Workout.Sessions))
			m[domain.MetricWorkoutMinutes] += float64(r.Workout.TotalMinutes())
			workoutMet[r.Day] = len(r.Workout.Sessions) > 0
		case r.Meals != nil:
			m[domain.MetricMealsLogged] += float64(len(r.Meals.Items))
		}
	}

	days := maxStreakDays
	if first, err := time.Parse(domain.DayLayout, earliest); err == nil {
		span := int(today.Sub(first).Hours()/24) + 1
		days = min(max(span, 1), maxStreakDays)
	}
	m[domain.MetricStepStreak] = float64(CalculateStreak(DayHistory(today, days, stepMet)).Longest)
	m[domain.MetricWaterStreak] = float64(CalculateStreak(DayHistory(today, days, waterMet)).Longest)
	m[domain.MetricSleepStreak] = float64(CalculateStreak(DayHistory(today, days, sleepMet)).Longest)
	m[domain.MetricWorkoutStreak] = float64(CalculateStreak(DayHistory(today, days, workoutMet)).Longest)
	return m
}

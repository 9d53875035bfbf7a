package domain

import (
	"context"
	"time"
)

// Rarity is an achievement's tier.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Metric names a cumulative or streak value an achievement condition reads.
type Metric string

const (
	MetricLifetimeSteps        Metric = "lifetime_steps"
	MetricBestDailySteps       Metric = "best_daily_steps"
	MetricStepStreak           Metric = "step_streak"
	MetricWaterGoalDays        Metric = "water_goal_days"
	MetricWaterStreak          Metric = "water_streak"
	MetricSleepNights          Metric = "sleep_nights"
	MetricSleepStreak          Metric = "sleep_streak"
	MetricGreatSleepNights     Metric = "great_sleep_nights"
	MetricWorkoutSessions      Metric = "workout_sessions"
	MetricWorkoutMinutes       Metric = "workout_minutes"
	MetricWorkoutStreak        Metric = "workout_streak"
	MetricMealsLogged          Metric = "meals_logged"
	MetricLifetimeWaterGlasses Metric = "lifetime_water_glasses"
)

// Achievement is a static catalog entry. It unlocks once the named metric
// reaches Threshold.
type Achievement struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Metric      Metric  `json:"metric"`
	Threshold   float64 `json:"threshold"`
	Rarity      Rarity  `json:"rarity"`
	Points      int     `json:"points"`
}

// EarnedAchievement is an unlocked achievement with its immutable unlock time.
type EarnedAchievement struct {
	Achievement
	EarnedAt time.Time `json:"earnedAt"`
}

// AchievementRepository is the port for earned-achievement persistence.
// MarkEarned must leave an existing earnedAt untouched and reports whether
// this call recorded the unlock.
type AchievementRepository interface {
	ListEarned(ctx context.Context, userID int64) (map[string]time.Time, error)
	MarkEarned(ctx context.Context, userID int64, achievementID string, at time.Time) (bool, error)
}

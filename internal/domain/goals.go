package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidGoals is returned when a goal edit contains non-positive targets
// or malformed clock times.
var ErrInvalidGoals = errors.New("invalid goals")

// SleepGoals are the nightly sleep targets.
type SleepGoals struct {
	TargetDurationHours float64 `json:"targetDuration"`
	TargetBedTime       string  `json:"targetBedTime"`
	TargetWakeTime      string  `json:"targetWakeTime"`
}

// StepGoals are the daily step targets.
type StepGoals struct {
	DailySteps int `json:"dailySteps"`
}

// WaterGoals are the daily hydration targets, in glasses.
type WaterGoals struct {
	DailyGlasses float64 `json:"dailyGlasses"`
}

// WorkoutGoals are weekly workout targets.
type WorkoutGoals struct {
	WeeklyWorkouts int `json:"weeklyWorkouts"`
	WeeklyMinutes  int `json:"weeklyMinutes"`
}

// Goals groups a user's targets for every domain.
type Goals struct {
	Sleep   SleepGoals   `json:"sleep"`
	Steps   StepGoals    `json:"steps"`
	Water   WaterGoals   `json:"water"`
	Workout WorkoutGoals `json:"workout"`
}

// DefaultGoals returns the targets used before a user configures their own.
func DefaultGoals() Goals {
	return Goals{
		Sleep:   SleepGoals{TargetDurationHours: 8, TargetBedTime: "23:00", TargetWakeTime: "07:00"},
		Steps:   StepGoals{DailySteps: 10000},
		Water:   WaterGoals{DailyGlasses: 8},
		Workout: WorkoutGoals{WeeklyWorkouts: 3, WeeklyMinutes: 150},
	}
}

// WithDefaults fills every unset domain section from DefaultGoals.
func (g Goals) WithDefaults() Goals {
	def := DefaultGoals()
	if g.Sleep.TargetDurationHours <= 0 {
		g.Sleep.TargetDurationHours = def.Sleep.TargetDurationHours
	}
	if g.Sleep.TargetBedTime == "" {
		g.Sleep.TargetBedTime = def.Sleep.TargetBedTime
	}
	if g.Sleep.TargetWakeTime == "" {
		g.Sleep.TargetWakeTime = def.Sleep.TargetWakeTime
	}
	if g.Steps.DailySteps <= 0 {
		g.Steps = def.Steps
	}
	if g.Water.DailyGlasses <= 0 {
		g.Water = def.Water
	}
	if g.Workout.WeeklyWorkouts <= 0 && g.Workout.WeeklyMinutes <= 0 {
		g.Workout = def.Workout
	}
	return g
}

// Validate rejects targets below one unit and malformed HH:MM times.
func (g Goals) Validate() error {
	if g.Sleep.TargetDurationHours < 1 || g.Sleep.TargetDurationHours > 24 {
		return fmt.Errorf("%w: sleep target must be within [1, 24] hours", ErrInvalidGoals)
	}
	if _, err := ParseClock(g.Sleep.TargetBedTime); err != nil {
		return fmt.Errorf("%w: bed time: %v", ErrInvalidGoals, err)
	}
	if _, err := ParseClock(g.Sleep.TargetWakeTime); err != nil {
		return fmt.Errorf("%w: wake time: %v", ErrInvalidGoals, err)
	}
	if g.Steps.DailySteps < 1 {
		return fmt.Errorf("%w: daily steps must be >= 1", ErrInvalidGoals)
	}
	if g.Water.DailyGlasses < 1 {
		return fmt.Errorf("%w: daily glasses must be >= 1", ErrInvalidGoals)
	}
	if g.Workout.WeeklyWorkouts < 1 || g.Workout.WeeklyMinutes < 1 {
		return fmt.Errorf("%w: weekly workouts and minutes must be >= 1", ErrInvalidGoals)
	}
	return nil
}

// ParseClock parses an HH:MM wall-clock time and returns minutes after midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("time %q must be HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// GoalRepository is the port for goal persistence. GetGoals returns nil when
// the user has never saved goals.
type GoalRepository interface {
	GetGoals(ctx context.Context, userID int64) (*Goals, error)
	SaveGoals(ctx context.Context, userID int64, g Goals) error
}

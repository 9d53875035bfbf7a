package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DayLayout is the calendar-day key format used throughout the store.
const DayLayout = "2006-01-02"

// ErrInvalidRecord is returned when a log entry fails validation.
var ErrInvalidRecord = errors.New("invalid record")

// Domain names one tracked area of a user's day.
type Domain string

const (
	DomainSleep   Domain = "sleep"
	DomainSteps   Domain = "steps"
	DomainWater   Domain = "water"
	DomainWorkout Domain = "workout"
	DomainMeals   Domain = "meals"
)

// InsightDomains are the domains that produce scores and insights.
var InsightDomains = []Domain{DomainSleep, DomainSteps, DomainWater, DomainWorkout}

// ParseDomain validates a domain name.
func ParseDomain(s string) (Domain, error) {
	switch d := Domain(s); d {
	case DomainSleep, DomainSteps, DomainWater, DomainWorkout, DomainMeals:
		return d, nil
	}
	return "", fmt.Errorf("unknown domain %q", s)
}

// SleepRecord is one night of sleep, keyed by the day the user woke up.
type SleepRecord struct {
	BedTime          string  `json:"bedTime"`
	WakeTime         string  `json:"wakeTime"`
	DurationHours    float64 `json:"sleepDuration"`
	Quality          int     `json:"sleepQuality"`
	Mood             int     `json:"mood"`
	EnergyLevel      int     `json:"energyLevel"`
	TimesToWakeUp    int     `json:"timesToWakeUp"`
	FellAsleepMinute int     `json:"fellAsleepTime"`
}

// StepRecord is a day's step total. Distance and calories are derived.
type StepRecord struct {
	Steps          int     `json:"steps"`
	DistanceKm     float64 `json:"distance"`
	CaloriesBurned float64 `json:"caloriesBurned"`
	ActiveMinutes  int     `json:"activeMinutes"`
}

// DrinkType classifies a water entry.
type DrinkType string

const (
	DrinkWater    DrinkType = "water"
	DrinkTea      DrinkType = "tea"
	DrinkCoffee   DrinkType = "coffee"
	DrinkJuice    DrinkType = "juice"
	DrinkSmoothie DrinkType = "smoothie"
	DrinkOther    DrinkType = "other"
)

// WaterEntry is a single drink, measured in glasses.
type WaterEntry struct {
	Amount    float64   `json:"amount"`
	Type      DrinkType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

// WaterRecord holds all drinks for a day.
type WaterRecord struct {
	Entries     []WaterEntry `json:"entries"`
	TotalIntake float64      `json:"totalIntake"`
	GoalReached bool         `json:"goalReached"`
}

// Intensity is a workout effort level.
type Intensity string

const (
	IntensityLow      Intensity = "low"
	IntensityModerate Intensity = "moderate"
	IntensityHigh     Intensity = "high"
	IntensityExtreme  Intensity = "extreme"
)

// WorkoutSession is one logged workout.
type WorkoutSession struct {
	Type            string    `json:"type"`
	DurationMinutes int       `json:"duration"`
	Intensity       Intensity `json:"intensity"`
	CaloriesBurned  float64   `json:"caloriesBurned"`
	Timestamp       time.Time `json:"timestamp"`
}

// WorkoutRecord holds all workouts for a day.
type WorkoutRecord struct {
	Sessions []WorkoutSession `json:"sessions"`
}

// TotalMinutes sums session durations.
func (w WorkoutRecord) TotalMinutes() int {
	var n int
	for _, s := range w.Sessions {
		n += s.DurationMinutes
	}
	return n
}

// TotalCalories sums session calories.
func (w WorkoutRecord) TotalCalories() float64 {
	var n float64
	for _, s := range w.Sessions {
		n += s.CaloriesBurned
	}
	return n
}

// MealType is the slot a meal item was eaten in.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// MealItem is one logged food.
type MealItem struct {
	Name      string    `json:"name"`
	MealType  MealType  `json:"mealType"`
	Calories  float64   `json:"calories"`
	ProteinG  float64   `json:"protein"`
	CarbsG    float64   `json:"carbs"`
	FatG      float64   `json:"fat"`
	Timestamp time.Time `json:"timestamp"`
}

// MealRecord holds all meal items for a day.
type MealRecord struct {
	Items []MealItem `json:"items"`
}

// Totals sums calories and macros across all items.
func (m MealRecord) Totals() (calories, protein, carbs, fat float64) {
	for _, it := range m.Items {
		calories += it.Calories
		protein += it.ProteinG
		carbs += it.CarbsG
		fat += it.FatG
	}
	return calories, protein, carbs, fat
}

// DailyRecord is the single stored record for (user, day, domain). Exactly
// one of the domain payload fields is set, matching Domain.
type DailyRecord struct {
	UserID    int64          `json:"userId"`
	Day       string         `json:"day"`
	Domain    Domain         `json:"domain"`
	Sleep     *SleepRecord   `json:"sleep,omitempty"`
	Steps     *StepRecord    `json:"steps,omitempty"`
	Water     *WaterRecord   `json:"water,omitempty"`
	Workout   *WorkoutRecord `json:"workout,omitempty"`
	Meals     *MealRecord    `json:"meals,omitempty"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// DailyLogStore is the port for per-day record persistence. Days are
// DayLayout strings; GetRecords returns records with from <= day <= to in
// ascending day order.
//
// UpdateRecord is the merge-on-write path: it passes the stored record for
// (user, domain, day), or a fresh one, to fn and saves the result, with no
// other write to that record in between. An fn error aborts the write. fn
// must not call back into the store.
type DailyLogStore interface {
	GetRecord(ctx context.Context, userID int64, d Domain, day string) (*DailyRecord, error)
	GetRecords(ctx context.Context, userID int64, d Domain, from, to string) ([]DailyRecord, error)
	SaveRecord(ctx context.Context, rec DailyRecord) error
	UpdateRecord(ctx context.Context, userID int64, d Domain, day string, fn func(*DailyRecord) error) (*DailyRecord, error)
}

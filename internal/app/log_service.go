package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Samandarcodee/Yurlo-sub000/internal/domain"
	"github.com/Samandarcodee/Yurlo-sub000/internal/engine"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Input bounds for log entries.
const (
	maxDailySteps       = 200000
	maxGlassesPerEntry  = 10
	maxWorkoutMinutes   = 24 * 60
	maxMealCalories     = 10000
	maxHistoryDays      = 366
	defaultHistoryDays  = 30
	maxActiveMinutesDay = 24 * 60
)

// SleepInput logs one night. Day is the day the user woke up; empty means today.
type SleepInput struct {
	Day string `json:"day"`
	domain.SleepRecord
}

// StepsInput sets a day's step total.
type StepsInput struct {
	Day           string `json:"day"`
	Steps         int    `json:"steps"`
	ActiveMinutes int    `json:"activeMinutes"`
}

// WaterInput adds one drink.
type WaterInput struct {
	Day    string           `json:"day"`
	Amount float64          `json:"amount"`
	Type   domain.DrinkType `json:"type"`
}

// WorkoutInput adds one workout session.
type WorkoutInput struct {
	Day             string           `json:"day"`
	Type            string           `json:"type"`
	DurationMinutes int              `json:"duration"`
	Intensity       domain.Intensity `json:"intensity"`
	CaloriesBurned  float64          `json:"caloriesBurned"`
}

// MealInput adds one food item.
type MealInput struct {
	Day string `json:"day"`
	domain.MealItem
}

// LogService records daily entries. Writes merge into the stored record for
// (user, day, domain) and fill in derived fields.
type LogService struct {
	store    domain.DailyLogStore
	profiles domain.ProfileRepository
	goals    *GoalService
	notifier domain.Notifier
	logger   *log.Logger
	now      func() time.Time
}

// NewLogService creates a LogService. notifier may be nil.
func NewLogService(store domain.DailyLogStore, profiles domain.ProfileRepository, goals domain.GoalRepository, notifier domain.Notifier, logger *log.Logger) *LogService {
	if logger == nil {
		logger = log.Default()
	}
	return &LogService{
		store:    store,
		profiles: profiles,
		goals:    NewGoalService(goals),
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// RecordSleep stores a night of sleep, replacing any earlier entry for the day.
func (s *LogService) RecordSleep(ctx context.Context, userID int64, in SleepInput) (*domain.DailyRecord, error) {
	day, err := s.resolveDay(in.Day)
	if err != nil {
		return nil, err
	}
	rec := in.SleepRecord
	hours, err := engine.SleepDuration(rec.BedTime, rec.WakeTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRecord, err)
	}
	if rec.Quality < 1 || rec.Quality > 5 {
		return nil, fmt.Errorf("%w: sleep quality must be within [1, 5]", domain.ErrInvalidRecord)
	}
	for _, v := range []int{rec.Mood, rec.EnergyLevel} {
		if v < 0 || v > 5 {
			return nil, fmt.Errorf("%w: mood and energy must be within [1, 5] when set", domain.ErrInvalidRecord)
		}
	}
	if rec.TimesToWakeUp < 0 || rec.FellAsleepMinute < 0 {
		return nil, fmt.Errorf("%w: wake-ups and time to fall asleep cannot be negative", domain.ErrInvalidRecord)
	}
	rec.DurationHours = hours

	out := domain.DailyRecord{UserID: userID, Day: day, Domain: domain.DomainSleep, Sleep: &rec}
	return s.save(ctx, out)
}

// RecordSteps sets the step total for a day and derives distance and calories
// from the user's profile.
func (s *LogService) RecordSteps(ctx context.Context, userID int64, in StepsInput) (*domain.DailyRecord, error) {
	day, err := s.resolveDay(in.Day)
	if err != nil {
		return nil, err
	}
	if in.Steps < 0 || in.Steps > maxDailySteps {
		return nil, fmt.Errorf("%w: steps must be within [0, %d]", domain.ErrInvalidRecord, maxDailySteps)
	}
	if in.ActiveMinutes < 0 || in.ActiveMinutes > maxActiveMinutesDay {
		return nil, fmt.Errorf("%w: active minutes must be within [0, %d]", domain.ErrInvalidRecord, maxActiveMinutesDay)
	}

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	var heightCm, weightKg float64
	if profile != nil {
		heightCm, weightKg = profile.HeightCm, profile.WeightKg
	}

	steps := &domain.StepRecord{
		Steps:          in.Steps,
		DistanceKm:     engine.StepDistanceKm(in.Steps, heightCm),
		CaloriesBurned: engine.StepCalories(in.Steps, weightKg),
		ActiveMinutes:  in.ActiveMinutes,
	}
	prevSteps := 0
	rec, err := s.update(ctx, userID, domain.DomainSteps, day, func(r *domain.DailyRecord) {
		if r.Steps != nil {
			prevSteps = r.Steps.Steps
		}
		r.Steps = steps
	})
	if err != nil {
		return nil, err
	}

	goals, err := s.goals.Get(ctx, userID)
	if err != nil {
		s.logger.Warn("skipping step goal check", "user", userID, "error", err)
		return rec, nil
	}
	if prevSteps < goals.Steps.DailySteps && in.Steps >= goals.Steps.DailySteps {
		s.notify(ctx, domain.Event{
			Kind:    domain.EventStepGoalReached,
			UserID:  userID,
			Day:     day,
			Message: fmt.Sprintf("You reached %d steps today!", goals.Steps.DailySteps),
		})
	}
	return rec, nil
}

// AddWater appends a drink and recomputes the day's total.
func (s *LogService) AddWater(ctx context.Context, userID int64, in WaterInput) (*domain.DailyRecord, error) {
	day, err := s.resolveDay(in.Day)
	if err != nil {
		return nil, err
	}
	if in.Amount <= 0 || in.Amount > maxGlassesPerEntry {
		return nil, fmt.Errorf("%w: amount must be within (0, %d] glasses", domain.ErrInvalidRecord, maxGlassesPerEntry)
	}
	drink := in.Type
	if drink == "" {
		drink = domain.DrinkWater
	}
	switch drink {
	case domain.DrinkWater, domain.DrinkTea, domain.DrinkCoffee, domain.DrinkJuice, domain.DrinkSmoothie, domain.DrinkOther:
	default:
		return nil, fmt.Errorf("%w: unknown drink type %q", domain.ErrInvalidRecord, in.Type)
	}

	goals, err := s.goals.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	// The stored GoalReached flag may predate a goal change, so the crossing is
	// judged against the current goal on both sides.
	var wasReached bool
	out, err := s.update(ctx, userID, domain.DomainWater, day, func(r *domain.DailyRecord) {
		if r.Water == nil {
			r.Water = &domain.WaterRecord{}
		}
		_, wasReached = engine.WaterTotal(r.Water.Entries, goals.Water.DailyGlasses)
		r.Water.Entries = append(r.Water.Entries, domain.WaterEntry{Amount: in.Amount, Type: drink, Timestamp: s.now().UTC()})
		r.Water.TotalIntake, r.Water.GoalReached = engine.WaterTotal(r.Water.Entries, goals.Water.DailyGlasses)
	})
	if err != nil {
		return nil, err
	}
	if !wasReached && out.Water.GoalReached {
		s.notify(ctx, domain.Event{
			Kind:    domain.EventWaterGoalReached,
			UserID:  userID,
			Day:     day,
			Message: fmt.Sprintf("Water goal of %g glasses reached!", goals.Water.DailyGlasses),
		})
	}
	return out, nil
}

// AddWorkout appends a workout session. Calories are estimated from body
// weight and intensity when not given.
func (s *LogService) AddWorkout(ctx context.Context, userID int64, in WorkoutInput) (*domain.DailyRecord, error) {
	day, err := s.resolveDay(in.Day)
	if err != nil {
		return nil, err
	}
	if in.Type == "" {
		return nil, fmt.Errorf("%w: workout type is required", domain.ErrInvalidRecord)
	}
	if in.DurationMinutes <= 0 || in.DurationMinutes > maxWorkoutMinutes {
		return nil, fmt.Errorf("%w: duration must be within (0, %d] minutes", domain.ErrInvalidRecord, maxWorkoutMinutes)
	}
	intensity := in.Intensity
	if intensity == "" {
		intensity = domain.IntensityModerate
	}
	switch intensity {
	case domain.IntensityLow, domain.IntensityModerate, domain.IntensityHigh, domain.IntensityExtreme:
	default:
		return nil, fmt.Errorf("%w: unknown intensity %q", domain.ErrInvalidRecord, in.Intensity)
	}
	if in.CaloriesBurned < 0 {
		return nil, fmt.Errorf("%w: calories cannot be negative", domain.ErrInvalidRecord)
	}

	calories := in.CaloriesBurned
	if calories == 0 {
		profile, err := s.profiles.GetProfile(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("get profile: %w", err)
		}
		var weightKg float64
		if profile != nil {
			weightKg = profile.WeightKg
		}
		calories = engine.WorkoutCalories(weightKg, in.DurationMinutes, intensity)
	}

	session := domain.WorkoutSession{
		Type:            in.Type,
		DurationMinutes: in.DurationMinutes,
		Intensity:       intensity,
		CaloriesBurned:  calories,
		Timestamp:       s.now().UTC(),
	}
	return s.update(ctx, userID, domain.DomainWorkout, day, func(r *domain.DailyRecord) {
		if r.Workout == nil {
			r.Workout = &domain.WorkoutRecord{}
		}
		r.Workout.Sessions = append(r.Workout.Sessions, session)
	})
}

// AddMealItem appends a food item to the day's meals.
func (s *LogService) AddMealItem(ctx context.Context, userID int64, in MealInput) (*domain.DailyRecord, error) {
	day, err := s.resolveDay(in.Day)
	if err != nil {
		return nil, err
	}
	item := in.MealItem
	if item.Name == "" {
		return nil, fmt.Errorf("%w: meal name is required", domain.ErrInvalidRecord)
	}
	if item.Calories < 0 || item.Calories > maxMealCalories {
		return nil, fmt.Errorf("%w: calories must be within [0, %d]", domain.ErrInvalidRecord, maxMealCalories)
	}
	if item.ProteinG < 0 || item.CarbsG < 0 || item.FatG < 0 {
		return nil, fmt.Errorf("%w: macros cannot be negative", domain.ErrInvalidRecord)
	}
	if item.MealType == "" {
		item.MealType = domain.MealSnack
	}
	switch item.MealType {
	case domain.MealBreakfast, domain.MealLunch, domain.MealDinner, domain.MealSnack:
	default:
		return nil, fmt.Errorf("%w: unknown meal type %q", domain.ErrInvalidRecord, item.MealType)
	}
	item.Timestamp = s.now().UTC()

	return s.update(ctx, userID, domain.DomainMeals, day, func(r *domain.DailyRecord) {
		if r.Meals == nil {
			r.Meals = &domain.MealRecord{}
		}
		r.Meals.Items = append(r.Meals.Items, item)
	})
}

// Records lists stored records for the last days days, oldest first.
func (s *LogService) Records(ctx context.Context, userID int64, d domain.Domain, days int) ([]domain.DailyRecord, error) {
	days = clampDays(days)
	today := s.now()
	from := today.AddDate(0, 0, -(days - 1)).Format(domain.DayLayout)
	recs, err := s.store.GetRecords(ctx, userID, d, from, today.Format(domain.DayLayout))
	if err != nil {
		return nil, fmt.Errorf("list %s records: %w", d, err)
	}
	return recs, nil
}

// update merges fn into the stored record for the day in one atomic store
// call, so concurrent appends are not lost.
func (s *LogService) update(ctx context.Context, userID int64, d domain.Domain, day string, fn func(*domain.DailyRecord)) (*domain.DailyRecord, error) {
	rec, err := s.store.UpdateRecord(ctx, userID, d, day, func(r *domain.DailyRecord) error {
		fn(r)
		r.UpdatedAt = s.now().UTC()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update %s record: %w", d, err)
	}
	s.logger.Debug("record saved", "user", userID, "domain", d, "day", day)
	return rec, nil
}

func (s *LogService) save(ctx context.Context, rec domain.DailyRecord) (*domain.DailyRecord, error) {
	rec.UpdatedAt = s.now().UTC()
	if err := s.store.SaveRecord(ctx, rec); err != nil {
		return nil, fmt.Errorf("save %s record: %w", rec.Domain, err)
	}
	s.logger.Debug("record saved", "user", rec.UserID, "domain", rec.Domain, "day", rec.Day)
	return &rec, nil
}

// resolveDay defaults an empty day to today and rejects malformed or future days.
func (s *LogService) resolveDay(day string) (string, error) {
	today := s.now().Format(domain.DayLayout)
	if day == "" {
		return today, nil
	}
	if _, err := time.Parse(domain.DayLayout, day); err != nil {
		return "", fmt.Errorf("%w: day must be YYYY-MM-DD", domain.ErrInvalidRecord)
	}
	if day > today {
		return "", fmt.Errorf("%w: day %s is in the future", domain.ErrInvalidRecord, day)
	}
	return day, nil
}

// notify delivers e best-effort; failures are logged and dropped.
func (s *LogService) notify(ctx context.Context, e domain.Event) {
	deliver(ctx, s.notifier, s.logger, e, s.now())
}

func deliver(ctx context.Context, n domain.Notifier, logger *log.Logger, e domain.Event, at time.Time) {
	if n == nil {
		return
	}
	e.ID = uuid.NewString()
	e.OccurredAt = at.UTC()
	if err := n.Notify(ctx, e); err != nil {
		logger.Warn("notification failed", "kind", e.Kind, "user", e.UserID, "error", err)
	}
}

func clampDays(days int) int {
	if days <= 0 {
		return defaultHistoryDays
	}
	return min(days, maxHistoryDays)
}

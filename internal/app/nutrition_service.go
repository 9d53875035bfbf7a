package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Samandarcodee/Yurlo-sub000/internal/domain"
	"github.com/Samandarcodee/Yurlo-sub000/internal/engine"
)

// NutritionService compares logged meals against the profile's targets.
type NutritionService struct {
	store    domain.DailyLogStore
	profiles *ProfileService
	now      func() time.Time
}

// NewNutritionService creates a NutritionService.
func NewNutritionService(store domain.DailyLogStore, profiles *ProfileService) *NutritionService {
	return &NutritionService{store: store, profiles: profiles, now: time.Now}
}

// Day returns intake progress for day, or today when day is empty.
func (s *NutritionService) Day(ctx context.Context, userID int64, day string) (engine.NutritionProgress, error) {
	if day == "" {
		day = s.now().Format(domain.DayLayout)
	}
	if _, err := time.Parse(domain.DayLayout, day); err != nil {
		return engine.NutritionProgress{}, fmt.Errorf("%w: day must be YYYY-MM-DD", domain.ErrInvalidRecord)
	}
	metrics, err := s.profiles.Metrics(ctx, userID)
	if err != nil {
		return engine.NutritionProgress{}, err
	}
	rec, err := s.store.GetRecord(ctx, userID, domain.DomainMeals, day)
	if err != nil {
		return engine.NutritionProgress{}, fmt.Errorf("get meals: %w", err)
	}
	var meals domain.MealRecord
	if rec != nil && rec.Meals != nil {
		meals = *rec.Meals
	}
	return engine.ComputeNutritionProgress(meals, metrics), nil
}

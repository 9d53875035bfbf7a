package app

import (
	"context"
	"testing"

	"github.com/Samandarcodee/Yurlo-sub000/internal/adapter/memory"
	"github.com/Samandarcodee/Yurlo-sub000/internal/domain"
	"github.com/Samandarcodee/Yurlo-sub000/internal/engine"
)

func TestHistoryService_Daily(t *testing.T) {
	db := memory.New()
	seedWater(t, db, "2024-03-14", 4)
	svc := NewHistoryService(db, db)
	svc.now = fixedClock

	points, err := svc.Daily(context.Background(), 1, domain.DomainWater, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	if points[0].Day != "2024-03-12" || points[0].Logged || points[0].Score != nil {
		t.Errorf("empty day: got %+v", points[0])
	}
	last := points[2]
	if last.Day != "2024-03-14" || last.Value != 4 || last.Score == nil || *last.Score != 50 {
		t.Errorf("today: got %+v", last)
	}
}

func TestHistoryService_ClampsDays(t *testing.T) {
	svc := NewHistoryService(memory.New(), &mockGoalRepo{})
	svc.now = fixedClock

	points, err := svc.Daily(context.Background(), 1, domain.DomainSteps, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 366 {
		t.Errorf("expected 366 points, got %d", len(points))
	}
}

func TestNutritionService_Day(t *testing.T) {
	db := memory.New()
	ctx := context.Background()
	_ = db.SaveProfile(ctx, domain.UserProfile{
		UserID: 1, Gender: domain.GenderMale, BirthYear: 1990,
		HeightCm: 175, WeightKg: 70, ActivityLevel: domain.ActivityModerate, Goal: domain.GoalMaintain,
	})
	_ = db.SaveRecord(ctx, domain.DailyRecord{
		UserID: 1, Day: "2024-03-14", Domain: domain.DomainMeals,
		Meals: &domain.MealRecord{Items: []domain.MealItem{{Name: "pasta", Calories: 1000, ProteinG: 40}}},
	})
	profiles := NewProfileService(db, engine.MacroSplit{})
	profiles.now = fixedClock
	svc := NewNutritionService(db, profiles)
	svc.now = fixedClock

	got, err := svc.Day(ctx, 1, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ItemCount != 1 || got.RemainingCalories != 1593 || got.Calories.Target != 2593 {
		t.Errorf("got %+v", got)
	}
}

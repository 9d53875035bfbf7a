package app

import (
	"context"
	"errors"
	"testing"

	"github.com/Samandarcodee/Yurlo-sub000/internal/domain"
)

func TestGoalService_GetDefaults(t *testing.T) {
	svc := NewGoalService(&mockGoalRepo{})
	g, err := svc.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g != domain.DefaultGoals() {
		t.Errorf("expected defaults, got %+v", g)
	}
}

func TestGoalService_GetStoreError(t *testing.T) {
	repo := &mockGoalRepo{
		getFn: func(context.Context, int64) (*domain.Goals, error) { return nil, errors.New("boom") },
	}
	if _, err := NewGoalService(repo).Get(context.Background(), 1); err == nil {
		t.Fatal("expected error")
	}
}

func TestGoalService_UpdateReplacesSection(t *testing.T) {
	stored := domain.DefaultGoals()
	stored.Water.DailyGlasses = 10
	var saved *domain.Goals
	repo := &mockGoalRepo{
		getFn: func(context.Context, int64) (*domain.Goals, error) { return &stored, nil },
		saveFn: func(_ context.Context, _ int64, g domain.Goals) error {
			saved = &g
			return nil
		},
	}
	svc := NewGoalService(repo)

	g, err := svc.Update(context.Background(), 1, GoalsPatch{Steps: &domain.StepGoals{DailySteps: 6000}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Steps.DailySteps != 6000 || g.Water.DailyGlasses != 10 {
		t.Errorf("got %+v", g)
	}
	if saved == nil || *saved != g {
		t.Error("expected updated goals to be saved")
	}
}

func TestGoalService_UpdateInvalid(t *testing.T) {
	tests := []struct {
		name  string
		patch GoalsPatch
	}{
		{"zero steps", GoalsPatch{Steps: &domain.StepGoals{DailySteps: 0}}},
		{"fractional glasses", GoalsPatch{Water: &domain.WaterGoals{DailyGlasses: 0.5}}},
		{"bad bed time", GoalsPatch{Sleep: &domain.SleepGoals{TargetDurationHours: 8, TargetBedTime: "11pm", TargetWakeTime: "07:00"}}},
		{"no workouts", GoalsPatch{Workout: &domain.WorkoutGoals{WeeklyWorkouts: 0, WeeklyMinutes: 100}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			saved := false
			repo := &mockGoalRepo{saveFn: func(context.Context, int64, domain.Goals) error {
				saved = true
				return nil
			}}
			_, err := NewGoalService(repo).Update(context.Background(), 1, tc.patch)
			if !errors.Is(err, domain.ErrInvalidGoals) {
				t.Errorf("expected ErrInvalidGoals, got %v", err)
			}
			if saved {
				t.Error("invalid goals must not be saved")
			}
		})
	}
}

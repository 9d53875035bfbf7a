package app

import (
	"context"
	"fmt"

	"github.com/Samandarcodee/Yurlo-sub000/internal/domain"
)

// GoalsPatch replaces whole domain sections. Nil sections are left as they are.
type GoalsPatch struct {
	Sleep   *domain.SleepGoals   `json:"sleep,omitempty"`
	Steps   *domain.StepGoals    `json:"steps,omitempty"`
	Water   *domain.WaterGoals   `json:"water,omitempty"`
	Workout *domain.WorkoutGoals `json:"workout,omitempty"`
}

// GoalService reads and edits per-domain targets.
type GoalService struct {
	repo domain.GoalRepository
}

// NewGoalService creates a GoalService backed by the given repository.
func NewGoalService(repo domain.GoalRepository) *GoalService {
	return &GoalService{repo: repo}
}

// Get returns the user's goals with defaults filled in for unset sections.
func (s *GoalService) Get(ctx context.Context, userID int64) (domain.Goals, error) {
	g, err := s.repo.GetGoals(ctx, userID)
	if err != nil {
		return domain.Goals{}, fmt.Errorf("get goals: %w", err)
	}
	if g == nil {
		return domain.DefaultGoals(), nil
	}
	return g.WithDefaults(), nil
}

// Update applies patch on top of the current goals, validates the result and
// stores it.
func (s *GoalService) Update(ctx context.Context, userID int64, patch GoalsPatch) (domain.Goals, error) {
	g, err := s.Get(ctx, userID)
	if err != nil {
		return domain.Goals{}, err
	}
	if patch.Sleep != nil {
		g.Sleep = *patch.Sleep
	}
	if patch.Steps != nil {
		g.Steps = *patch.Steps
	}
	if patch.Water != nil {
		g.Water = *patch.Water
	}
	if patch.Workout != nil {
		g.Workout = *patch.Workout
	}
	if err := g.Validate(); err != nil {
		return domain.Goals{}, err
	}
	if err := s.repo.SaveGoals(ctx, userID, g); err != nil {
		return domain.Goals{}, fmt.Errorf("save goals: %w", err)
	}
	return g, nil
}

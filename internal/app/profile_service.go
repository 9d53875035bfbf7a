package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Samandarcodee/Yurlo-sub000/internal/domain"
	"github.com/Samandarcodee/Yurlo-sub000/internal/engine"
)

// ErrProfileNotFound is returned when a user has not saved a profile yet.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileInput is a profile edit as submitted by a client. Height and weight
// carry their own units and are normalised to cm and kg.
type ProfileInput struct {
	Gender        string  `json:"gender"`
	BirthYear     int     `json:"birthYear"`
	Height        float64 `json:"height"`
	HeightUnit    string  `json:"heightUnit"`
	Weight        float64 `json:"weight"`
	WeightUnit    string  `json:"weightUnit"`
	ActivityLevel string  `json:"activityLevel"`
	Goal          string  `json:"goal"`
}

// ProfileService manages the physical profile and the targets derived from it.
type ProfileService struct {
	repo  domain.ProfileRepository
	split engine.MacroSplit
	now   func() time.Time
}

// NewProfileService creates a ProfileService. A zero split uses
// engine.DefaultMacroSplit.
func NewProfileService(repo domain.ProfileRepository, split engine.MacroSplit) *ProfileService {
	if split == (engine.MacroSplit{}) {
		split = engine.DefaultMacroSplit
	}
	return &ProfileService{repo: repo, split: split, now: time.Now}
}

// Get returns the stored profile.
func (s *ProfileService) Get(ctx context.Context, userID int64) (*domain.UserProfile, error) {
	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

// Update validates and stores a profile edit.
func (s *ProfileService) Update(ctx context.Context, userID int64, in ProfileInput) (*domain.UserProfile, error) {
	level, ok := domain.ParseActivityLevel(in.ActivityLevel)
	if !ok {
		return nil, fmt.Errorf("%w: unknown activity level %q", domain.ErrInvalidProfile, in.ActivityLevel)
	}
	heightCm, err := domain.HeightToCm(in.Height, in.HeightUnit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidProfile, err)
	}
	weightKg, err := domain.WeightToKg(in.Weight, in.WeightUnit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidProfile, err)
	}

	now := s.now()
	p := domain.UserProfile{
		UserID:        userID,
		Gender:        domain.Gender(strings.ToLower(in.Gender)),
		BirthYear:     in.BirthYear,
		HeightCm:      heightCm,
		WeightKg:      weightKg,
		ActivityLevel: level,
		Goal:          domain.FitnessGoal(strings.ToLower(in.Goal)),
		UpdatedAt:     now.UTC(),
	}
	if p.Goal == "" {
		p.Goal = domain.GoalMaintain
	}
	if err := p.Validate(now.Year()); err != nil {
		return nil, err
	}
	if err := s.repo.SaveProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return &p, nil
}

// Metrics computes BMR, calorie targets and macros for the stored profile.
func (s *ProfileService) Metrics(ctx context.Context, userID int64) (engine.ProfileMetrics, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return engine.ProfileMetrics{}, err
	}
	return engine.ComputeProfileMetrics(*p, s.now().Year(), s.split), nil
}

package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidProfile is returned when physical profile values fall outside the
// ranges the metrics engine accepts.
var ErrInvalidProfile = errors.New("invalid profile")

// Physical bounds accepted for a profile.
const (
	MinHeightCm = 100
	MaxHeightCm = 250
	MinWeightKg = 30
	MaxWeightKg = 300
	MinAge      = 10
	MaxAge      = 120
)

// Gender selects the BMR equation.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ActivityLevel is the canonical five-level activity scale. The coarser
// three-level names (low, medium, high) are accepted as aliases by
// ParseActivityLevel.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

var activityAliases = map[string]ActivityLevel{
	"sedentary":   ActivitySedentary,
	"light":       ActivityLight,
	"moderate":    ActivityModerate,
	"active":      ActivityActive,
	"very_active": ActivityVeryActive,
	"very-active": ActivityVeryActive,
	"low":         ActivitySedentary,
	"medium":      ActivityModerate,
	"high":        ActivityActive,
}

// ParseActivityLevel maps any accepted spelling onto the canonical scale.
// ok is false for unknown values, in which case the returned level is
// ActivitySedentary.
func ParseActivityLevel(s string) (ActivityLevel, bool) {
	lvl, ok := activityAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return ActivitySedentary, false
	}
	return lvl, true
}

// FitnessGoal is what the user wants to do with their body weight.
type FitnessGoal string

const (
	GoalLose     FitnessGoal = "lose"
	GoalMaintain FitnessGoal = "maintain"
	GoalGain     FitnessGoal = "gain"
)

// UserProfile holds the physical attributes the metrics engine reads.
type UserProfile struct {
	UserID        int64         `json:"userId"`
	Gender        Gender        `json:"gender"`
	BirthYear     int           `json:"birthYear"`
	HeightCm      float64       `json:"heightCm"`
	WeightKg      float64       `json:"weightKg"`
	ActivityLevel ActivityLevel `json:"activityLevel"`
	Goal          FitnessGoal   `json:"goal"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// Age returns the user's age in whole years for the given calendar year.
func (p UserProfile) Age(currentYear int) int {
	return currentYear - p.BirthYear
}

// Validate checks the profile against the accepted physical ranges.
func (p UserProfile) Validate(currentYear int) error {
	if p.Gender != GenderMale && p.Gender != GenderFemale {
		return fmt.Errorf("%w: gender must be %q or %q", ErrInvalidProfile, GenderMale, GenderFemale)
	}
	if p.HeightCm < MinHeightCm || p.HeightCm > MaxHeightCm {
		return fmt.Errorf("%w: height must be within [%d, %d] cm", ErrInvalidProfile, MinHeightCm, MaxHeightCm)
	}
	if p.WeightKg < MinWeightKg || p.WeightKg > MaxWeightKg {
		return fmt.Errorf("%w: weight must be within [%d, %d] kg", ErrInvalidProfile, MinWeightKg, MaxWeightKg)
	}
	if age := p.Age(currentYear); age < MinAge || age > MaxAge {
		return fmt.Errorf("%w: age must be within [%d, %d] years", ErrInvalidProfile, MinAge, MaxAge)
	}
	switch p.Goal {
	case GoalLose, GoalMaintain, GoalGain, "":
	default:
		return fmt.Errorf("%w: goal must be lose, maintain or gain", ErrInvalidProfile)
	}
	return nil
}

// ProfileRepository is the port for profile persistence.
type ProfileRepository interface {
	GetProfile(ctx context.Context, userID int64) (*UserProfile, error)
	SaveProfile(ctx context.Context, p UserProfile) error
}

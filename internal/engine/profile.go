// Package engine holds the pure health-metric derivations: profile targets,
// per-domain scores, trends, streaks, achievements and recommendations.
// Nothing here performs I/O or keeps state; callers pass in a snapshot.
package engine

import (
	"math"

	"github.com/Samandarcodee/Yurlo-sub000/internal/domain"
)

// activityMultipliers is the canonical TDEE table. Three-level names resolve
// onto it through domain.ParseActivityLevel (low=sedentary, medium=moderate,
// high=active).
var activityMultipliers = map[domain.ActivityLevel]float64{
	domain.ActivitySedentary:  1.2,
	domain.ActivityLight:      1.375,
	domain.ActivityModerate:   1.55,
	domain.ActivityActive:     1.725,
	domain.ActivityVeryActive: 1.9,
}

// DefaultActivityMultiplier applies to unrecognised activity levels.
const DefaultActivityMultiplier = 1.2

// kcal per gram.
const (
	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9
)

// Calorie adjustments applied per fitness goal.
const (
	loseDeficit = 500
	gainSurplus = 300
)

// MacroSplit is the share of daily calories given to each macronutrient, in
// percent. The three values should sum to 100.
type MacroSplit struct {
	ProteinPct float64 `json:"proteinPct"`
	CarbsPct   float64 `json:"carbsPct"`
	FatPct     float64 `json:"fatPct"`
}

// DefaultMacroSplit is 30% protein, 40% carbs, 30% fat.
var DefaultMacroSplit = MacroSplit{ProteinPct: 30, CarbsPct: 40, FatPct: 30}

// Macros are daily targets in grams.
type Macros struct {
	ProteinG int `json:"protein"`
	CarbsG   int `json:"carbs"`
	FatG     int `json:"fat"`
}

// ProfileMetrics are the targets derived from a user's physical profile.
type ProfileMetrics struct {
	Age           int        `json:"age"`
	BMR           int        `json:"bmr"`
	TDEE          float64    `json:"tdee"`
	Multiplier    float64    `json:"activityMultiplier"`
	DailyCalories int        `json:"dailyCalories"`
	GoalCalories  int        `json:"goalCalories"`
	Split         MacroSplit `json:"macroSplit"`
	Macros        Macros     `json:"macros"`
	GoalMacros    Macros     `json:"goalMacros"`
	BMI           float64    `json:"bmi"`
	BMICategory   string     `json:"bmiCategory"`
}

// ActivityMultiplier returns the TDEE multiplier for a level, accepting any
// alias. Unknown levels get DefaultActivityMultiplier.
func ActivityMultiplier(level domain.ActivityLevel) float64 {
	canonical, ok := domain.ParseActivityLevel(string(level))
	if !ok {
		return DefaultActivityMultiplier
	}
	return activityMultipliers[canonical]
}

// BMR returns the unrounded basal metabolic rate (revised Harris-Benedict
// coefficients) for the given body values.
func BMR(g domain.Gender, weightKg, heightCm float64, age int) float64 {
	if g == domain.GenderFemale {
		return 447.593 + 9.247*weightKg + 3.098*heightCm - 4.330*float64(age)
	}
	return 88.362 + 13.397*weightKg + 4.799*heightCm - 5.677*float64(age)
}

// ComputeProfileMetrics derives BMR, TDEE, calorie targets and macros. Macros
// split DailyCalories; GoalMacros split GoalCalories and are the intake
// targets. The profile must already have passed UserProfile.Validate; for
// such input the function is total.
func ComputeProfileMetrics(p domain.UserProfile, currentYear int, split MacroSplit) ProfileMetrics {
	age := p.Age(currentYear)
	bmr := BMR(p.Gender, p.WeightKg, p.HeightCm, age)
	mult := ActivityMultiplier(p.ActivityLevel)
	tdee := bmr * mult

	m := ProfileMetrics{
		Age:           age,
		BMR:           int(math.Round(bmr)),
		TDEE:          math.Round(tdee*10) / 10,
		Multiplier:    mult,
		DailyCalories: int(math.Round(tdee)),
		Split:         normaliseSplit(split),
	}
	if m.BMR < 1 {
		m.BMR = 1
	}
	if m.DailyCalories < m.BMR {
		m.DailyCalories = m.BMR
	}

	switch p.Goal {
	case domain.GoalLose:
		m.GoalCalories = max(m.DailyCalories-loseDeficit, m.BMR)
	case domain.GoalGain:
		m.GoalCalories = m.DailyCalories + gainSurplus
	default:
		m.GoalCalories = m.DailyCalories
	}

	m.Macros = MacroGrams(m.DailyCalories, m.Split)
	m.GoalMacros = MacroGrams(m.GoalCalories, m.Split)
	m.BMI = BMI(p.HeightCm, p.WeightKg)
	m.BMICategory = BMICategory(m.BMI)
	return m
}

// MacroGrams converts a calorie budget into gram targets for the split.
func MacroGrams(calories int, split MacroSplit) Macros {
	c := float64(calories)
	return Macros{
		ProteinG: int(math.Round(c * split.ProteinPct / 100 / kcalPerGramProtein)),
		CarbsG:   int(math.Round(c * split.CarbsPct / 100 / kcalPerGramCarbs)),
		FatG:     int(math.Round(c * split.FatPct / 100 / kcalPerGramFat)),
	}
}

func normaliseSplit(s MacroSplit) MacroSplit {
	if s.ProteinPct < 0 || s.CarbsPct < 0 || s.FatPct < 0 {
		return DefaultMacroSplit
	}
	total := s.ProteinPct + s.CarbsPct + s.FatPct
	if total <= 0 {
		return DefaultMacroSplit
	}
	if total == 100 {
		return s
	}
	return MacroSplit{
		ProteinPct: s.ProteinPct * 100 / total,
		CarbsPct:   s.CarbsPct * 100 / total,
		FatPct:     s.FatPct * 100 / total,
	}
}

// BMI returns body-mass index rounded to one decimal.
func BMI(heightCm, weightKg float64) float64 {
	if heightCm <= 0 || weightKg <= 0 {
		return 0
	}
	h := heightCm / 100
	return math.Round(weightKg/(h*h)*10) / 10
}

// BMICategory names the WHO band for a BMI value.
func BMICategory(bmi float64) string {
	switch {
	case bmi <= 0:
		return ""
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25.0:
		return "Normal weight"
	case bmi < 30.0:
		return "Overweight"
	case bmi < 35.0:
		return "Obesity class I"
	case bmi < 40.0:
		return "Obesity class II"
	default:
		return "Obesity class III"
	}
}

package engine_test

import (
	"testing"

	"github.com/Samandarcodee/Yurlo-sub000/internal/domain"
	"github.com/Samandarcodee/Yurlo-sub000/internal/engine"
)

func referenceProfile() domain.UserProfile {
	return domain.UserProfile{
		Gender:        domain.GenderMale,
		BirthYear:     1990,
		HeightCm:      175,
		WeightKg:      70,
		ActivityLevel: domain.ActivityModerate,
		Goal:          domain.GoalMaintain,
	}
}

func TestComputeProfileMetrics_Reference(t *testing.T) {
	m := engine.ComputeProfileMetrics(referenceProfile(), 2024, engine.DefaultMacroSplit)

	if m.Age != 34 {
		t.Errorf("age: got %d, want 34", m.Age)
	}
	if m.BMR != 1673 {
		t.Errorf("bmr: got %d, want 1673", m.BMR)
	}
	if m.DailyCalories != 2593 {
		t.Errorf("dailyCalories: got %d, want 2593", m.DailyCalories)
	}
	if m.GoalCalories != m.DailyCalories {
		t.Errorf("maintain goalCalories: got %d, want %d", m.GoalCalories, m.DailyCalories)
	}
	want := engine.Macros{ProteinG: 194, CarbsG: 259, FatG: 86}
	if m.Macros != want || m.GoalMacros != want {
		t.Errorf("macros: got %+v / %+v, want %+v", m.Macros, m.GoalMacros, want)
	}
	if m.BMI != 22.9 || m.BMICategory != "Normal weight" {
		t.Errorf("bmi: got %v %q", m.BMI, m.BMICategory)
	}
}

func TestComputeProfileMetrics_Goal(t *testing.T) {
	tests := []struct {
		goal domain.FitnessGoal
		want int
	}{
		{domain.GoalLose, 2093},
		{domain.GoalMaintain, 2593},
		{domain.GoalGain, 2893},
		{"", 2593},
	}
	for _, tc := range tests {
		t.Run(string(tc.goal), func(t *testing.T) {
			p := referenceProfile()
			p.Goal = tc.goal
			m := engine.ComputeProfileMetrics(p, 2024, engine.DefaultMacroSplit)
			if m.GoalCalories != tc.want {
				t.Errorf("got %d, want %d", m.GoalCalories, tc.want)
			}
		})
	}
}

func TestComputeProfileMetrics_GoalMacrosFollowGoalCalories(t *testing.T) {
	p := referenceProfile()
	p.Goal = domain.GoalLose
	m := engine.ComputeProfileMetrics(p, 2024, engine.DefaultMacroSplit)

	if want := (engine.Macros{ProteinG: 157, CarbsG: 209, FatG: 70}); m.GoalMacros != want {
		t.Errorf("goal macros: got %+v, want %+v", m.GoalMacros, want)
	}
	if want := (engine.Macros{ProteinG: 194, CarbsG: 259, FatG: 86}); m.Macros != want {
		t.Errorf("maintenance macros: got %+v, want %+v", m.Macros, want)
	}
	kcal := m.GoalMacros.ProteinG*4 + m.GoalMacros.CarbsG*4 + m.GoalMacros.FatG*9
	if diff := kcal - m.GoalCalories; diff < -10 || diff > 10 {
		t.Errorf("goal macros sum to %d kcal, goal is %d", kcal, m.GoalCalories)
	}

	progress := engine.ComputeNutritionProgress(domain.MealRecord{}, m)
	if progress.Calories.Target != 2093 || progress.Protein.Target != 157 {
		t.Errorf("nutrition targets not goal-adjusted: %+v", progress)
	}
}

func TestComputeProfileMetrics_LoseFlooredAtBMR(t *testing.T) {
	p := domain.UserProfile{
		Gender:        domain.GenderFemale,
		BirthYear:     1944,
		HeightCm:      150,
		WeightKg:      40,
		ActivityLevel: domain.ActivitySedentary,
		Goal:          domain.GoalLose,
	}
	m := engine.ComputeProfileMetrics(p, 2024, engine.DefaultMacroSplit)
	if m.GoalCalories < m.BMR {
		t.Errorf("goalCalories %d below bmr %d", m.GoalCalories, m.BMR)
	}
}

func TestComputeProfileMetrics_PositiveForValidRange(t *testing.T) {
	genders := []domain.Gender{domain.GenderMale, domain.GenderFemale}
	levels := []domain.ActivityLevel{
		domain.ActivitySedentary, domain.ActivityLight, domain.ActivityModerate,
		domain.ActivityActive, domain.ActivityVeryActive, "unknown",
	}
	for _, g := range genders {
		for _, lvl := range levels {
			for _, age := range []int{domain.MinAge, 40, domain.MaxAge} {
				for _, h := range []float64{domain.MinHeightCm, 175, domain.MaxHeightCm} {
					for _, w := range []float64{domain.MinWeightKg, 80, domain.MaxWeightKg} {
						p := domain.UserProfile{Gender: g, BirthYear: 2024 - age, HeightCm: h, WeightKg: w, ActivityLevel: lvl}
						m := engine.ComputeProfileMetrics(p, 2024, engine.DefaultMacroSplit)
						if m.BMR <= 0 {
							t.Fatalf("%+v: bmr %d not positive", p, m.BMR)
						}
						if m.DailyCalories < m.BMR {
							t.Fatalf("%+v: dailyCalories %d < bmr %d", p, m.DailyCalories, m.BMR)
						}
					}
				}
			}
		}
	}
}

func TestActivityMultiplier(t *testing.T) {
	tests := []struct {
		level domain.ActivityLevel
		want  float64
	}{
		{domain.ActivitySedentary, 1.2},
		{domain.ActivityLight, 1.375},
		{domain.ActivityModerate, 1.55},
		{domain.ActivityActive, 1.725},
		{domain.ActivityVeryActive, 1.9},
		{"low", 1.2},
		{"medium", 1.55},
		{"high", 1.725},
		{"couch", engine.DefaultActivityMultiplier},
		{"", engine.DefaultActivityMultiplier},
	}
	for _, tc := range tests {
		if got := engine.ActivityMultiplier(tc.level); got != tc.want {
			t.Errorf("%q: got %v, want %v", tc.level, got, tc.want)
		}
	}
}

func TestMacroGrams_CustomSplit(t *testing.T) {
	got := engine.MacroGrams(2000, engine.MacroSplit{ProteinPct: 25, CarbsPct: 50, FatPct: 25})
	want := engine.Macros{ProteinG: 125, CarbsG: 250, FatG: 56}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestBMICategory(t *testing.T) {
	tests := []struct {
		bmi  float64
		want string
	}{
		{0, ""},
		{18.4, "Underweight"},
		{18.5, "Normal weight"},
		{24.9, "Normal weight"},
		{25, "Overweight"},
		{30, "Obesity class I"},
		{35, "Obesity class II"},
		{40, "Obesity class III"},
	}
	for _, tc := range tests {
		if got := engine.BMICategory(tc.bmi); got != tc.want {
			t.Errorf("%v: got %q, want %q", tc.bmi, got, tc.want)
		}
	}
}

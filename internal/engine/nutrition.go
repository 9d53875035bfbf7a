package engine

import "github.com/Samandarcodee/Yurlo-sub000/internal/domain"

// NutrientProgress compares consumed against target for one nutrient.
type NutrientProgress struct {
	Consumed float64 `json:"consumed"`
	Target   float64 `json:"target"`
	Percent  float64 `json:"percent"`
}

// NutritionProgress is a day's intake against the profile targets.
type NutritionProgress struct {
	Calories          NutrientProgress `json:"calories"`
	Protein           NutrientProgress `json:"protein"`
	Carbs             NutrientProgress `json:"carbs"`
	Fat               NutrientProgress `json:"fat"`
	RemainingCalories float64          `json:"remainingCalories"`
	ItemCount         int              `json:"itemCount"`
}

// ComputeNutritionProgress sums a day's meals against the calorie and macro
// targets. Percentages are capped at 100. All targets are goal-adjusted:
// GoalCalories and the GoalMacros split of it.
func ComputeNutritionProgress(meals domain.MealRecord, m ProfileMetrics) NutritionProgress {
	cal, protein, carbs, fat := meals.Totals()
	progress := func(consumed float64, target int) NutrientProgress {
		return NutrientProgress{
			Consumed: round1(consumed),
			Target:   float64(target),
			Percent:  round1(ProgressPercent(consumed, float64(target))),
		}
	}
	return NutritionProgress{
		Calories:          progress(cal, m.GoalCalories),
		Protein:           progress(protein, m.GoalMacros.ProteinG),
		Carbs:             progress(carbs, m.GoalMacros.CarbsG),
		Fat:               progress(fat, m.GoalMacros.FatG),
		RemainingCalories: round1(float64(m.GoalCalories) - cal),
		ItemCount:         len(meals.Items),
	}
}

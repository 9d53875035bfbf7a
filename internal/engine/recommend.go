package engine

import "github.com/Samandarcodee/Yurlo-sub000/internal/domain"

// MaxRecommendations caps how many matching rules are reported.
const MaxRecommendations = 4

type rule struct {
	when    func(in domain.Insights) bool
	message string
}

func noData(in domain.Insights) bool { return in.Highlights["daysLogged"] == 0 }

func logged(in domain.Insights) bool { return in.Highlights["daysLogged"] > 0 }

var sleepRules = []rule{
	{noData, "Log your sleep each morning to start building insights."},
	{func(in domain.Insights) bool { return logged(in) && in.AverageValue < 7 },
		"You are averaging under 7 hours. Try going to bed 30 minutes earlier."},
	{func(in domain.Insights) bool { return logged(in) && in.ConsistencyScore < 70 },
		"Keep the same bedtime and wake time every day, weekends included."},
	{func(in domain.Insights) bool { return logged(in) && in.Highlights["averageQuality"] < 3 },
		"Sleep quality is low. Skip screens and caffeine in the hour before bed."},
	{func(in domain.Insights) bool { return in.Highlights["averageWakeUps"] >= 2 },
		"You wake up often at night. Keep the bedroom cool, dark and quiet."},
	{func(in domain.Insights) bool { return in.Highlights["averageFellAsleepMinutes"] > 30 },
		"Falling asleep takes a while. A short wind-down routine can help."},
	{func(in domain.Insights) bool { return in.AverageValue > 9.5 },
		"You are sleeping over 9.5 hours on average. Check in with how rested you feel."},
	{func(in domain.Insights) bool { return in.Trend == domain.TrendDeclining },
		"Your sleep score dipped compared with the week before."},
}

var stepRules = []rule{
	{noData, "Log your steps daily to track your activity."},
	{func(in domain.Insights) bool { return logged(in) && in.AverageScore < 50 },
		"You are under half your step goal. Add a 15-minute walk after meals."},
	{func(in domain.Insights) bool { return logged(in) && in.ConsistencyScore < 70 },
		"Aim to reach your step goal on more days of the week."},
	{func(in domain.Insights) bool { return logged(in) && in.Highlights["averageActiveMinutes"] < 30 },
		"Try to get at least 30 active minutes a day."},
	{func(in domain.Insights) bool { return in.Trend == domain.TrendDeclining },
		"Your step count is lower than the week before. Take the stairs when you can."},
}

var waterRules = []rule{
	{noData, "Log every glass you drink to see your hydration pattern."},
	{func(in domain.Insights) bool { return logged(in) && in.AverageScore < 75 },
		"You are drinking less than your goal. Keep a bottle within reach."},
	{func(in domain.Insights) bool { return logged(in) && in.ConsistencyScore < 70 },
		"Spread your drinks across the day so you hit the goal more often."},
	{func(in domain.Insights) bool {
		return in.Highlights["totalGlasses"] > 0 && in.Highlights["plainWaterShare"] < 50
	}, "Most of your intake is not plain water. Swap one drink a day for water."},
	{func(in domain.Insights) bool { return in.Trend == domain.TrendDeclining },
		"Hydration dropped compared with the week before."},
}

var workoutRules = []rule{
	{noData, "Log a workout to start tracking your training week."},
	{func(in domain.Insights) bool { return in.ConsistencyScore < 70 },
		"You are behind your weekly workout goal. Schedule your next session now."},
	{func(in domain.Insights) bool {
		return in.Highlights["weeklySessions"] > 0 && in.Highlights["weeklyMinutes"]/in.Highlights["weeklySessions"] < 20
	}, "Your sessions are short. Try extending one workout to 30 minutes."},
	{func(in domain.Insights) bool { return in.Highlights["weeklySessions"] >= 6 },
		"You trained almost every day. Plan a rest day to recover."},
	{func(in domain.Insights) bool { return in.Trend == domain.TrendDeclining },
		"Training volume fell compared with the week before."},
}

var positive = map[domain.Domain]string{
	domain.DomainSleep:   "Great sleep habits. Keep your routine going!",
	domain.DomainSteps:   "You are hitting your step goals. Keep moving!",
	domain.DomainWater:   "Nicely hydrated. Keep it up!",
	domain.DomainWorkout: "You are on track with your workouts. Well done!",
}

var ruleTables = map[domain.Domain][]rule{
	domain.DomainSleep:   sleepRules,
	domain.DomainSteps:   stepRules,
	domain.DomainWater:   waterRules,
	domain.DomainWorkout: workoutRules,
}

// Recommend evaluates the domain's rule table in order. Every matching rule
// fires, up to MaxRecommendations. When nothing matches a single positive
// message is returned, so the result is never empty.
func Recommend(d domain.Domain, in domain.Insights) []string {
	var out []string
	for _, r := range ruleTables[d] {
		if len(out) == MaxRecommendations {
			break
		}
		if r.when(in) {
			out = append(out, r.message)
		}
	}
	if len(out) == 0 {
		msg, ok := positive[d]
		if !ok {
			msg = "Keep up the good work!"
		}
		out = append(out, msg)
	}
	return out
}

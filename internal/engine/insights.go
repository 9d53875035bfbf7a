package engine

import (
	"time"

	"github.com/Samandarcodee/Yurlo-sub000/internal/domain"
)

// Aggregation defaults.
const (
	DefaultInsightsWindow = 7
	DefaultHistoryDays    = 60

	// sleepGoalToleranceHours lets a night slightly under target still count
	// as meeting the goal.
	sleepGoalToleranceHours = 0.5
)

// InsightsInput is a snapshot of one domain for one user. Records may be in
// any order and should cover HistoryDays days ending at Today.
type InsightsInput struct {
	Domain      domain.Domain
	Today       time.Time
	Records     []domain.DailyRecord
	Goals       domain.Goals
	Window      int
	HistoryDays int
	Tolerance   float64
}

// daySample is one day reduced to the values the aggregator needs.
type daySample struct {
	day        string
	logged     bool
	value      float64
	score      float64
	trendValue float64
	met        bool
	rec        *domain.DailyRecord
}

// ComputeInsights builds the insights for in.Domain. Missing days count as
// not logged and not met.
func ComputeInsights(in InsightsInput) domain.Insights {
	window := in.Window
	if window <= 0 {
		window = DefaultInsightsWindow
	}
	history := in.HistoryDays
	if history <= 0 {
		history = DefaultHistoryDays
	}
	history = max(history, 2*window)
	tolerance := in.Tolerance
	if tolerance <= 0 {
		tolerance = DefaultTrendTolerance
	}
	goals := in.Goals.WithDefaults()

	byDay := make(map[string]*domain.DailyRecord, len(in.Records))
	for i := range in.Records {
		r := &in.Records[i]
		if r.Domain == in.Domain {
			byDay[r.Day] = r
		}
	}

	// samples are chronological: samples[len-1] is today.
	samples := make([]daySample, history)
	for i := range history {
		day := in.Today.AddDate(0, 0, -(history - 1 - i)).Format(domain.DayLayout)
		samples[i] = sampleDay(in.Domain, day, byDay[day], goals)
	}
	recent := samples[history-window:]

	out := domain.Insights{
		Domain: in.Domain,
		From:   recent[0].day,
		To:     recent[len(recent)-1].day,
	}

	var valueSum, scoreSum float64
	var logged, metDays int
	for _, s := range recent {
		if s.met {
			metDays++
		}
		if !s.logged {
			continue
		}
		logged++
		valueSum += s.value
		scoreSum += s.score
	}
	if logged > 0 {
		out.AverageValue = round2(valueSum / float64(logged))
		out.AverageScore = round1(scoreSum / float64(logged))
	}
	out.ConsistencyScore = round1(float64(metDays) / float64(window) * 100)

	out.Trend = windowTrend(samples[history-2*window:], window, tolerance)

	met := make([]bool, history)
	for i, s := range samples {
		met[history-1-i] = s.met
	}
	out.Streak = CalculateStreak(met)

	today := samples[history-1]
	out.Today = newScore(today.score)
	out.GoalProgress = round1(todayProgress(in.Domain, today, goals))

	if in.Domain == domain.DomainWorkout {
		minutes, sessions := weekTotals(recent)
		weekly := WorkoutScore(minutes, sessions, goals.Workout)
		out.Today = weekly
		out.ConsistencyScore = weekly.Value
		out.GoalProgress = round1(ProgressPercent(float64(minutes), float64(goals.Workout.WeeklyMinutes)))
	}

	out.Highlights = highlights(in.Domain, recent, logged, metDays)
	out.Recommendations = Recommend(in.Domain, out)
	return out
}

// windowTrend compares the logged days of the last window with the logged
// days of the window before it. Unlogged days are skipped rather than read as
// zero; with no logged day in either window the trend is stable.
func windowTrend(samples []daySample, window int, tolerance float64) domain.Trend {
	prior := loggedTrendValues(samples[:window])
	recent := loggedTrendValues(samples[window:])
	if len(prior) == 0 || len(recent) == 0 {
		return domain.TrendStable
	}
	return compareMeans(mean(recent), mean(prior), tolerance)
}

func loggedTrendValues(samples []daySample) []float64 {
	var out []float64
	for _, s := range samples {
		if s.logged {
			out = append(out, s.trendValue)
		}
	}
	return out
}

func sampleDay(d domain.Domain, day string, rec *domain.DailyRecord, goals domain.Goals) daySample {
	s := daySample{day: day, rec: rec}
	if rec == nil {
		return s
	}
	switch d {
	case domain.DomainSleep:
		if rec.Sleep == nil {
			return s
		}
		hours := rec.Sleep.DurationHours
		if hours <= 0 {
			hours, _ = SleepDuration(rec.Sleep.BedTime, rec.Sleep.WakeTime)
		}
		s.logged = true
		s.value = hours
		s.score = SleepScore(*rec.Sleep, goals.Sleep).Value
		s.trendValue = s.score
		s.met = hours >= goals.Sleep.TargetDurationHours-sleepGoalToleranceHours
	case domain.DomainSteps:
		if rec.Steps == nil {
			return s
		}
		s.logged = true
		s.value = float64(rec.Steps.Steps)
		s.score = StepScore(*rec.Steps, goals.Steps).Value
		s.trendValue = s.score
		s.met = rec.Steps.Steps >= goals.Steps.DailySteps
	case domain.DomainWater:
		if rec.Water == nil {
			return s
		}
		total, reached := WaterTotal(rec.Water.Entries, goals.Water.DailyGlasses)
		if len(rec.Water.Entries) == 0 {
			total, reached = rec.Water.TotalIntake, rec.Water.TotalIntake >= goals.Water.DailyGlasses
		}
		s.logged = true
		s.value = total
		s.score = WaterScore(domain.WaterRecord{TotalIntake: total}, goals.Water).Value
		s.trendValue = s.score
		s.met = reached
	case domain.DomainWorkout:
		if rec.Workout == nil || len(rec.Workout.Sessions) == 0 {
			return s
		}
		minutes := float64(rec.Workout.TotalMinutes())
		s.logged = true
		s.value = minutes
		s.score = ProgressPercent(minutes, float64(goals.Workout.WeeklyMinutes)/7)
		s.trendValue = minutes
		s.met = true
	}
	return s
}

func todayProgress(d domain.Domain, today daySample, goals domain.Goals) float64 {
	switch d {
	case domain.DomainSleep:
		return ProgressPercent(today.value, goals.Sleep.TargetDurationHours)
	case domain.DomainSteps:
		return ProgressPercent(today.value, float64(goals.Steps.DailySteps))
	case domain.DomainWater:
		return ProgressPercent(today.value, goals.Water.DailyGlasses)
	}
	return 0
}

func weekTotals(samples []daySample) (minutes, sessions int) {
	for _, s := range samples {
		if s.rec == nil || s.rec.Workout == nil {
			continue
		}
		minutes += s.rec.Workout.TotalMinutes()
		sessions += len(s.rec.Workout.Sessions)
	}
	return minutes, sessions
}

func highlights(d domain.Domain, recent []daySample, logged, metDays int) map[string]float64 {
	h := map[string]float64{
		"daysLogged":  float64(logged),
		"goalMetDays": float64(metDays),
	}
	avg := func(sum float64) float64 {
		if logged == 0 {
			return 0
		}
		return round2(sum / float64(logged))
	}

	switch d {
	case domain.DomainSleep:
		var quality, mood, energy, wakeUps, fellAsleep float64
		for _, s := range recent {
			if !s.logged {
				continue
			}
			quality += float64(s.rec.Sleep.Quality)
			mood += float64(s.rec.Sleep.Mood)
			energy += float64(s.rec.Sleep.EnergyLevel)
			wakeUps += float64(s.rec.Sleep.TimesToWakeUp)
			fellAsleep += float64(s.rec.Sleep.FellAsleepMinute)
		}
		h["averageQuality"] = avg(quality)
		h["averageMood"] = avg(mood)
		h["averageEnergy"] = avg(energy)
		h["averageWakeUps"] = avg(wakeUps)
		h["averageFellAsleepMinutes"] = avg(fellAsleep)

	case domain.DomainSteps:
		var steps, distance, calories, active, best float64
		for _, s := range recent {
			if !s.logged {
				continue
			}
			steps += s.value
			distance += s.rec.Steps.DistanceKm
			calories += s.rec.Steps.CaloriesBurned
			active += float64(s.rec.Steps.ActiveMinutes)
			best = max(best, s.value)
		}
		h["totalSteps"] = steps
		h["totalDistanceKm"] = round2(distance)
		h["totalCalories"] = round1(calories)
		h["averageActiveMinutes"] = avg(active)
		h["bestDaySteps"] = best

	case domain.DomainWater:
		var total, plain float64
		for _, s := range recent {
			if !s.logged {
				continue
			}
			for _, e := range s.rec.Water.Entries {
				total += e.Amount
				if e.Type == domain.DrinkWater || e.Type == "" {
					plain += e.Amount
				}
			}
		}
		h["totalGlasses"] = round2(total)
		h["plainWaterShare"] = 0
		if total > 0 {
			h["plainWaterShare"] = round1(plain / total * 100)
		}
		h["hydrationBenefit"] = round1(float64(metDays) / float64(len(recent)) * 100)

	case domain.DomainWorkout:
		minutes, sessions := weekTotals(recent)
		var calories float64
		for _, s := range recent {
			if s.logged {
				calories += s.rec.Workout.TotalCalories()
			}
		}
		h["weeklyMinutes"] = float64(minutes)
		h["weeklySessions"] = float64(sessions)
		h["weeklyCalories"] = round1(calories)
	}
	return h
}

// DaySummary reduces one stored day to its headline value and 0-100 score
// for domain d. Meals report total calories and no score. logged is false
// when rec holds nothing for d.
func DaySummary(d domain.Domain, rec *domain.DailyRecord, goals domain.Goals) (value, score float64, logged bool) {
	if d == domain.DomainMeals {
		if rec == nil || rec.Meals == nil || len(rec.Meals.Items) == 0 {
			return 0, 0, false
		}
		cal, _, _, _ := rec.Meals.Totals()
		return round1(cal), 0, true
	}
	s := sampleDay(d, "", rec, goals.WithDefaults())
	return s.value, round1(s.score), s.logged
}

package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Samandarcodee/Yurlo-sub000/internal/domain"
	"github.com/Samandarcodee/Yurlo-sub000/internal/engine"
)

// ErrUnsupportedDomain is returned when insights are requested for a domain
// that has no scoring.
var ErrUnsupportedDomain = errors.New("insights are not available for this domain")

// WeeklySummary bundles the insights of every scored domain with an overall
// score.
type WeeklySummary struct {
	From     string                            `json:"from"`
	To       string                            `json:"to"`
	Overall  domain.Score                      `json:"overall"`
	Domains  map[domain.Domain]domain.Insights `json:"domains"`
	Achieved int                               `json:"goalsAchieved"`
}

// InsightsService computes derived insights from stored records. Nothing it
// produces is persisted.
type InsightsService struct {
	store  domain.DailyLogStore
	goals  *GoalService
	window int
	now    func() time.Time
}

// NewInsightsService creates an InsightsService. window <= 0 uses the engine
// default.
func NewInsightsService(store domain.DailyLogStore, goals domain.GoalRepository, window int) *InsightsService {
	if window <= 0 {
		window = engine.DefaultInsightsWindow
	}
	return &InsightsService{store: store, goals: NewGoalService(goals), window: window, now: time.Now}
}

// Compute returns the insights for one domain as of today.
func (s *InsightsService) Compute(ctx context.Context, userID int64, d domain.Domain) (domain.Insights, error) {
	goals, err := s.goals.Get(ctx, userID)
	if err != nil {
		return domain.Insights{}, err
	}
	return s.compute(ctx, userID, d, goals, s.now())
}

// Weekly computes every scored domain and averages their scores. Workout
// contributes its weekly score; the other domains contribute the mean of
// their logged days.
func (s *InsightsService) Weekly(ctx context.Context, userID int64) (WeeklySummary, error) {
	goals, err := s.goals.Get(ctx, userID)
	if err != nil {
		return WeeklySummary{}, err
	}
	today := s.now()
	out := WeeklySummary{Domains: make(map[domain.Domain]domain.Insights, len(domain.InsightDomains))}

	var sum float64
	for _, d := range domain.InsightDomains {
		in, err := s.compute(ctx, userID, d, goals, today)
		if err != nil {
			return WeeklySummary{}, err
		}
		out.Domains[d] = in
		out.From, out.To = in.From, in.To

		score := in.AverageScore
		if d == domain.DomainWorkout {
			score = in.Today.Value
		}
		sum += score
		if in.ConsistencyScore >= 100 {
			out.Achieved++
		}
	}
	overall := math.Round(sum/float64(len(domain.InsightDomains))*10) / 10
	out.Overall = domain.Score{Value: overall, Label: engine.Label(overall)}
	return out, nil
}

func (s *InsightsService) compute(ctx context.Context, userID int64, d domain.Domain, goals domain.Goals, today time.Time) (domain.Insights, error) {
	if d == domain.DomainMeals {
		return domain.Insights{}, ErrUnsupportedDomain
	}
	if _, err := domain.ParseDomain(string(d)); err != nil {
		return domain.Insights{}, ErrUnsupportedDomain
	}

	history := max(engine.DefaultHistoryDays, 2*s.window)
	from := today.AddDate(0, 0, -(history - 1)).Format(domain.DayLayout)
	recs, err := s.store.GetRecords(ctx, userID, d, from, today.Format(domain.DayLayout))
	if err != nil {
		return domain.Insights{}, fmt.Errorf("load %s history: %w", d, err)
	}

	return engine.ComputeInsights(engine.InsightsInput{
		Domain:      d,
		Today:       today,
		Records:     recs,
		Goals:       goals,
		Window:      s.window,
		HistoryDays: history,
	}), nil
}

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Samandarcodee/Yurlo-sub000/internal/domain"
	"github.com/Samandarcodee/Yurlo-sub000/internal/engine"
)

// HistoryService builds per-day chart series from stored records.
type HistoryService struct {
	store domain.DailyLogStore
	goals *GoalService
	now   func() time.Time
}

// NewHistoryService creates a HistoryService backed by the given repositories.
func NewHistoryService(store domain.DailyLogStore, goals domain.GoalRepository) *HistoryService {
	return &HistoryService{store: store, goals: NewGoalService(goals), now: time.Now}
}

// DayPoint is a single data point returned by Daily. Score is nil on days
// with nothing logged and for unscored domains.
type DayPoint struct {
	Day    string   `json:"day"`
	Value  float64  `json:"value"`
	Score  *float64 `json:"score"`
	Logged bool     `json:"logged"`
}

// Daily returns one point per day for the last days days, oldest first,
// including days with nothing logged.
func (s *HistoryService) Daily(ctx context.Context, userID int64, d domain.Domain, days int) ([]DayPoint, error) {
	days = clampDays(days)
	goals, err := s.goals.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := s.now()
	from := today.AddDate(0, 0, -(days - 1))
	recs, err := s.store.GetRecords(ctx, userID, d, from.Format(domain.DayLayout), today.Format(domain.DayLayout))
	if err != nil {
		return nil, fmt.Errorf("load %s history: %w", d, err)
	}
	byDay := make(map[string]*domain.DailyRecord, len(recs))
	for i := range recs {
		byDay[recs[i].Day] = &recs[i]
	}

	points := make([]DayPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		dayStr := today.AddDate(0, 0, -i).Format(domain.DayLayout)
		value, score, logged := engine.DaySummary(d, byDay[dayStr], goals)
		p := DayPoint{Day: dayStr, Value: value, Logged: logged}
		if logged && d != domain.DomainMeals {
			p.Score = &score
		}
		points = append(points, p)
	}
	return points, nil
}

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Samandarcodee/Yurlo-sub000/internal/domain"
	"github.com/Samandarcodee/Yurlo-sub000/internal/engine"

	"github.com/charmbracelet/log"
)

// achievementLookbackDays bounds the history scanned for cumulative metrics.
const achievementLookbackDays = 3660

// AchievementList is a user's earned achievements with their point total.
type AchievementList struct {
	Earned      []domain.EarnedAchievement `json:"earned"`
	TotalPoints int                        `json:"totalPoints"`
	Available   int                        `json:"available"`
}

// AchievementService unlocks achievements from record history.
type AchievementService struct {
	store    domain.DailyLogStore
	goals    *GoalService
	repo     domain.AchievementRepository
	notifier domain.Notifier
	logger   *log.Logger
	now      func() time.Time
}

// NewAchievementService creates an AchievementService. notifier may be nil.
func NewAchievementService(store domain.DailyLogStore, goals domain.GoalRepository, repo domain.AchievementRepository, notifier domain.Notifier, logger *log.Logger) *AchievementService {
	if logger == nil {
		logger = log.Default()
	}
	return &AchievementService{
		store:    store,
		goals:    NewGoalService(goals),
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Check evaluates the catalog against the user's history and returns only the
// achievements unlocked by this call. Earned achievements keep their original
// unlock time.
func (s *AchievementService) Check(ctx context.Context, userID int64) ([]domain.EarnedAchievement, error) {
	now := s.now()
	goals, err := s.goals.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	from := now.AddDate(0, 0, -(achievementLookbackDays - 1)).Format(domain.DayLayout)
	to := now.Format(domain.DayLayout)
	var records []domain.DailyRecord
	for _, d := range []domain.Domain{domain.DomainSleep, domain.DomainSteps, domain.DomainWater, domain.DomainWorkout, domain.DomainMeals} {
		recs, err := s.store.GetRecords(ctx, userID, d, from, to)
		if err != nil {
			return nil, fmt.Errorf("load %s history: %w", d, err)
		}
		records = append(records, recs...)
	}

	earned, err := s.repo.ListEarned(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list earned achievements: %w", err)
	}

	metrics := engine.BuildAchievementMetrics(records, goals, now)
	unlocked := []domain.EarnedAchievement{}
	for _, a := range engine.EvaluateAchievements(engine.Catalog, metrics, earned, now.UTC()) {
		inserted, err := s.repo.MarkEarned(ctx, userID, a.ID, a.EarnedAt)
		if err != nil {
			return nil, fmt.Errorf("mark %s earned: %w", a.ID, err)
		}
		if !inserted {
			// A concurrent check recorded it first.
			continue
		}
		unlocked = append(unlocked, a)
		s.logger.Info("achievement unlocked", "user", userID, "id", a.ID)
		deliver(ctx, s.notifier, s.logger, domain.Event{
			Kind:    domain.EventAchievementUnlocked,
			UserID:  userID,
			Message: fmt.Sprintf("Achievement unlocked: %s", a.Title),
		}, now)
	}
	return unlocked, nil
}

// List returns the user's earned achievements in catalog order.
func (s *AchievementService) List(ctx context.Context, userID int64) (AchievementList, error) {
	earned, err := s.repo.ListEarned(ctx, userID)
	if err != nil {
		return AchievementList{}, fmt.Errorf("list earned achievements: %w", err)
	}
	list := engine.EarnedList(engine.Catalog, earned)
	return AchievementList{
		Earned:      list,
		TotalPoints: engine.TotalPoints(list),
		Available:   len(engine.Catalog),
	}, nil
}

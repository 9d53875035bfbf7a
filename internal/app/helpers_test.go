package app

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/Samandarcodee/Yurlo-sub000/internal/domain"

	"github.com/charmbracelet/log"
)

var testNow = time.Date(2024, 3, 14, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func quietLogger() *log.Logger { return log.New(io.Discard) }

type recordingNotifier struct {
	mu     sync.Mutex
	events []domain.Event
	err    error
}

func (n *recordingNotifier) Notify(_ context.Context, e domain.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
	return n.err
}

type mockProfileRepo struct {
	getFn  func(ctx context.Context, userID int64) (*domain.UserProfile, error)
	saveFn func(ctx context.Context, p domain.UserProfile) error
}

func (m *mockProfileRepo) GetProfile(ctx context.Context, userID int64) (*domain.UserProfile, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockProfileRepo) SaveProfile(ctx context.Context, p domain.UserProfile) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, p)
	}
	return nil
}

type mockGoalRepo struct {
	getFn  func(ctx context.Context, userID int64) (*domain.Goals, error)
	saveFn func(ctx context.Context, userID int64, g domain.Goals) error
}

func (m *mockGoalRepo) GetGoals(ctx context.Context, userID int64) (*domain.Goals, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockGoalRepo) SaveGoals(ctx context.Context, userID int64, g domain.Goals) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, userID, g)
	}
	return nil
}

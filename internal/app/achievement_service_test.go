package app

import (
	"context"
	"sync"
	"testing"

	"github.com/Samandarcodee/Yurlo-sub000/internal/adapter/memory"
	"github.com/Samandarcodee/Yurlo-sub000/internal/domain"
	"github.com/Samandarcodee/Yurlo-sub000/internal/engine"
)

func TestAchievementService_Check(t *testing.T) {
	db := memory.New()
	ctx := context.Background()
	notifier := &recordingNotifier{}
	svc := NewAchievementService(db, db, db, notifier, quietLogger())
	svc.now = fixedClock

	_ = db.SaveRecord(ctx, domain.DailyRecord{
		UserID: 1, Day: "2024-03-14", Domain: domain.DomainSteps,
		Steps: &domain.StepRecord{Steps: 1500},
	})

	unlocked, err := svc.Check(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(unlocked) != 1 || unlocked[0].ID != "first-steps" {
		t.Fatalf("expected first-steps, got %+v", unlocked)
	}
	if len(notifier.events) != 1 || notifier.events[0].Kind != domain.EventAchievementUnlocked {
		t.Errorf("expected one unlock event, got %+v", notifier.events)
	}

	again, err := svc.Check(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again == nil || len(again) != 0 {
		t.Errorf("expected empty, non-nil result on repeat, got %#v", again)
	}

	list, err := svc.List(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list.Earned) != 1 || list.TotalPoints != 10 || list.Available != len(engine.Catalog) {
		t.Errorf("got %+v", list)
	}
	if !list.Earned[0].EarnedAt.Equal(testNow) {
		t.Errorf("earnedAt: got %v", list.Earned[0].EarnedAt)
	}
}

func TestAchievementService_CheckConcurrent(t *testing.T) {
	db := memory.New()
	ctx := context.Background()
	notifier := &recordingNotifier{}
	svc := NewAchievementService(db, db, db, notifier, quietLogger())
	svc.now = fixedClock

	_ = db.SaveRecord(ctx, domain.DailyRecord{
		UserID: 1, Day: "2024-03-14", Domain: domain.DomainSteps,
		Steps: &domain.StepRecord{Steps: 1500},
	})

	const checks = 20
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		total int
	)
	for range checks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlocked, err := svc.Check(ctx, 1)
			if err != nil {
				t.Errorf("Check: %v", err)
				return
			}
			mu.Lock()
			total += len(unlocked)
			mu.Unlock()
		}()
	}
	wg.Wait()

	if total != 1 {
		t.Errorf("expected first-steps reported once, got %d", total)
	}
	if len(notifier.events) != 1 {
		t.Errorf("expected one unlock event, got %d", len(notifier.events))
	}
}

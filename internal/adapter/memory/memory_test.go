package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Samandarcodee/Yurlo-sub000/internal/domain"
)

func TestDailyLogStore(t *testing.T) {
	db := New()
	ctx := context.Background()
	userID := int64(1)

	for _, day := range []string{"2024-03-12", "2024-03-10", "2024-03-11"} {
		err := db.SaveRecord(ctx, domain.DailyRecord{
			UserID: userID,
			Day:    day,
			Domain: domain.DomainWater,
			Water:  &domain.WaterRecord{Entries: []domain.WaterEntry{{Amount: 1}}, TotalIntake: 1},
		})
		if err != nil {
			t.Fatalf("SaveRecord: %v", err)
		}
	}

	recs, err := db.GetRecords(ctx, userID, domain.DomainWater, "2024-03-10", "2024-03-11")
	if err != nil {
		t.Fatalf("GetRecords: %v", err)
	}
	if len(recs) != 2 || recs[0].Day != "2024-03-10" || recs[1].Day != "2024-03-11" {
		t.Fatalf("expected two records in day order, got %+v", recs)
	}

	// Other user and other domain see nothing
	if recs, _ := db.GetRecords(ctx, 999, domain.DomainWater, "2024-01-01", "2024-12-31"); len(recs) != 0 {
		t.Error("expected 0 records for other user")
	}
	if rec, _ := db.GetRecord(ctx, userID, domain.DomainSteps, "2024-03-10"); rec != nil {
		t.Error("expected nil for other domain")
	}

	// Returned records do not alias the store
	rec, err := db.GetRecord(ctx, userID, domain.DomainWater, "2024-03-10")
	if err != nil || rec == nil {
		t.Fatalf("GetRecord: %v %v", rec, err)
	}
	rec.Water.Entries = append(rec.Water.Entries, domain.WaterEntry{Amount: 5})
	rec.Water.Entries[0].Amount = 9
	again, _ := db.GetRecord(ctx, userID, domain.DomainWater, "2024-03-10")
	if len(again.Water.Entries) != 1 || again.Water.Entries[0].Amount != 1 {
		t.Errorf("store mutated through returned record: %+v", again.Water.Entries)
	}

	// Save replaces
	rec.Water.TotalIntake = 14
	_ = db.SaveRecord(ctx, *rec)
	again, _ = db.GetRecord(ctx, userID, domain.DomainWater, "2024-03-10")
	if again.Water.TotalIntake != 14 {
		t.Errorf("expected replaced record, got %v", again.Water.TotalIntake)
	}
}

func TestProfileAndGoals(t *testing.T) {
	db := New()
	ctx := context.Background()

	if p, _ := db.GetProfile(ctx, 1); p != nil {
		t.Fatal("expected nil profile before save")
	}
	_ = db.SaveProfile(ctx, domain.UserProfile{UserID: 1, HeightCm: 180})
	p, err := db.GetProfile(ctx, 1)
	if err != nil || p == nil || p.HeightCm != 180 {
		t.Fatalf("GetProfile: %+v %v", p, err)
	}

	if g, _ := db.GetGoals(ctx, 1); g != nil {
		t.Fatal("expected nil goals before save")
	}
	_ = db.SaveGoals(ctx, 1, domain.Goals{Steps: domain.StepGoals{DailySteps: 6000}})
	g, _ := db.GetGoals(ctx, 1)
	if g == nil || g.Steps.DailySteps != 6000 {
		t.Fatalf("GetGoals: %+v", g)
	}
}

func TestAchievementRepository_KeepsFirstUnlock(t *testing.T) {
	db := New()
	ctx := context.Background()
	first := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	if ok, err := db.MarkEarned(ctx, 1, "hydrated", first); err != nil || !ok {
		t.Fatalf("MarkEarned: ok=%v err=%v", ok, err)
	}
	if ok, _ := db.MarkEarned(ctx, 1, "hydrated", first.Add(48*time.Hour)); ok {
		t.Error("repeat unlock reported as new")
	}

	earned, err := db.ListEarned(ctx, 1)
	if err != nil {
		t.Fatalf("ListEarned: %v", err)
	}
	if !earned["hydrated"].Equal(first) {
		t.Errorf("earnedAt overwritten: got %v", earned["hydrated"])
	}
	if other, _ := db.ListEarned(ctx, 2); len(other) != 0 {
		t.Error("expected no achievements for other user")
	}
}

func TestUserRepository(t *testing.T) {
	db := New()
	ctx := context.Background()

	u, err := db.Create(ctx, "bob", "hash")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.Username != "bob" {
		t.Errorf("expected bob, got %s", u.Username)
	}

	u2, err := db.GetByUsername(ctx, "bob")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if u2 == nil || u2.ID != u.ID {
		t.Error("failed to retrieve user")
	}

	if _, err := db.Create(ctx, "bob", "other"); !errors.Is(err, domain.ErrUserExists) {
		t.Errorf("expected ErrUserExists, got %v", err)
	}

	count, _ := db.Count(ctx)
	if count != 1 {
		t.Errorf("expected 1 user, got %d", count)
	}
}

func TestSessionRepository(t *testing.T) {
	db := New()
	repo := db.NewSessionRepo()
	ctx := context.Background()

	err := repo.Create(ctx, 1, "token123", "agent", "127.0.0.1", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	_ = repo.Create(ctx, 1, "stale", "agent", "127.0.0.1", time.Now().Add(-time.Hour))

	sess, err := repo.GetByToken(ctx, "token123")
	if err != nil {
		t.Fatalf("GetByToken: %v", err)
	}
	if sess == nil || sess.UserAgent != "agent" {
		t.Fatalf("expected session with client, got %+v", sess)
	}

	_ = repo.DeleteExpired(ctx)
	if s, _ := repo.GetByToken(ctx, "stale"); s != nil {
		t.Error("expected expired session to be purged")
	}

	_ = repo.Delete(ctx, "token123")
	sess, _ = repo.GetByToken(ctx, "token123")
	if sess != nil {
		t.Error("expected nil (deleted)")
	}
}

func TestUpdateRecord(t *testing.T) {
	db := New()
	ctx := context.Background()

	const writers = 50
	var wg sync.WaitGroup
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := db.UpdateRecord(ctx, 1, domain.DomainMeals, "2024-03-14", func(r *domain.DailyRecord) error {
				if r.Meals == nil {
					r.Meals = &domain.MealRecord{}
				}
				r.Meals.Items = append(r.Meals.Items, domain.MealItem{Name: "item", Calories: float64(i)})
				return nil
			})
			if err != nil {
				t.Errorf("UpdateRecord: %v", err)
			}
		}()
	}
	wg.Wait()

	rec, _ := db.GetRecord(ctx, 1, domain.DomainMeals, "2024-03-14")
	if rec == nil || len(rec.Meals.Items) != writers {
		t.Fatalf("expected %d items, got %+v", writers, rec)
	}

	boom := errors.New("boom")
	_, err := db.UpdateRecord(ctx, 1, domain.DomainMeals, "2024-03-14", func(r *domain.DailyRecord) error {
		r.Meals.Items = nil
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fn error, got %v", err)
	}
	rec, _ = db.GetRecord(ctx, 1, domain.DomainMeals, "2024-03-14")
	if len(rec.Meals.Items) != writers {
		t.Errorf("aborted update was applied: %d items", len(rec.Meals.Items))
	}
}

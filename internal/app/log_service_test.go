package app

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Samandarcodee/Yurlo-sub000/internal/adapter/memory"
	"github.com/Samandarcodee/Yurlo-sub000/internal/domain"
)

func newTestLogService(db *memory.DB, n domain.Notifier) *LogService {
	svc := NewLogService(db, db, db, n, quietLogger())
	svc.now = fixedClock
	return svc
}

func TestLogService_AddWater_GoalCrossing(t *testing.T) {
	db := memory.New()
	notifier := &recordingNotifier{}
	svc := newTestLogService(db, notifier)
	ctx := context.Background()

	if _, err := svc.AddWater(ctx, 1, WaterInput{Amount: 4}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notifier.events) != 0 {
		t.Fatalf("no event expected before goal, got %d", len(notifier.events))
	}

	rec, err := svc.AddWater(ctx, 1, WaterInput{Amount: 4, Type: domain.DrinkTea})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Water.TotalIntake != 8 || !rec.Water.GoalReached {
		t.Errorf("got total=%v reached=%v", rec.Water.TotalIntake, rec.Water.GoalReached)
	}
	if rec.Day != "2024-03-14" {
		t.Errorf("expected today's day, got %s", rec.Day)
	}

	rec, _ = svc.AddWater(ctx, 1, WaterInput{Amount: 1})
	if rec.Water.TotalIntake != 9 || len(rec.Water.Entries) != 3 {
		t.Errorf("entries not merged: %+v", rec.Water)
	}

	if len(notifier.events) != 1 {
		t.Fatalf("expected exactly one event, got %d", len(notifier.events))
	}
	e := notifier.events[0]
	if e.Kind != domain.EventWaterGoalReached || e.ID == "" || e.UserID != 1 || !e.OccurredAt.Equal(testNow) {
		t.Errorf("unexpected event %+v", e)
	}
}

func TestLogService_NotifierFailureIgnored(t *testing.T) {
	db := memory.New()
	svc := newTestLogService(db, &recordingNotifier{err: errors.New("webhook down")})

	rec, err := svc.AddWater(context.Background(), 1, WaterInput{Amount: 8})
	if err != nil {
		t.Fatalf("notifier failure must not fail the write: %v", err)
	}
	if !rec.Water.GoalReached {
		t.Error("expected goal reached")
	}
}

func TestLogService_AddWater_Invalid(t *testing.T) {
	svc := newTestLogService(memory.New(), nil)
	tests := []struct {
		name string
		in   WaterInput
	}{
		{"zero amount", WaterInput{Amount: 0}},
		{"too much", WaterInput{Amount: 11}},
		{"unknown drink", WaterInput{Amount: 1, Type: "soda"}},
		{"future day", WaterInput{Amount: 1, Day: "2024-03-15"}},
		{"bad day", WaterInput{Amount: 1, Day: "14/03/2024"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.AddWater(context.Background(), 1, tc.in); !errors.Is(err, domain.ErrInvalidRecord) {
				t.Errorf("expected ErrInvalidRecord, got %v", err)
			}
		})
	}
}

func TestLogService_RecordSteps(t *testing.T) {
	db := memory.New()
	ctx := context.Background()
	_ = db.SaveProfile(ctx, domain.UserProfile{UserID: 1, HeightCm: 180, WeightKg: 80})
	notifier := &recordingNotifier{}
	svc := newTestLogService(db, notifier)

	rec, err := svc.RecordSteps(ctx, 1, StepsInput{Steps: 10000, ActiveMinutes: 45})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Steps.DistanceKm != 7.47 || rec.Steps.CaloriesBurned != 400 {
		t.Errorf("derived fields: got %+v", rec.Steps)
	}

	// Raising an already-met total does not notify again.
	rec, _ = svc.RecordSteps(ctx, 1, StepsInput{Steps: 12000})
	if rec.Steps.Steps != 12000 {
		t.Errorf("expected total replaced, got %d", rec.Steps.Steps)
	}
	if len(notifier.events) != 1 || notifier.events[0].Kind != domain.EventStepGoalReached {
		t.Errorf("expected one step event, got %+v", notifier.events)
	}

	if _, err := svc.RecordSteps(ctx, 1, StepsInput{Steps: -1}); !errors.Is(err, domain.ErrInvalidRecord) {
		t.Errorf("expected ErrInvalidRecord, got %v", err)
	}
}

func TestLogService_RecordSleep(t *testing.T) {
	svc := newTestLogService(memory.New(), nil)
	ctx := context.Background()

	rec, err := svc.RecordSleep(ctx, 1, SleepInput{
		Day:         "2024-03-13",
		SleepRecord: domain.SleepRecord{BedTime: "23:00", WakeTime: "07:00", Quality: 4},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Sleep.DurationHours != 8 || rec.Day != "2024-03-13" {
		t.Errorf("got %+v on %s", rec.Sleep, rec.Day)
	}

	bad := []domain.SleepRecord{
		{BedTime: "23:00", WakeTime: "07:00", Quality: 0},
		{BedTime: "23:00", WakeTime: "07:00", Quality: 6},
		{BedTime: "late", WakeTime: "07:00", Quality: 3},
		{BedTime: "23:00", WakeTime: "07:00", Quality: 3, Mood: 9},
		{BedTime: "23:00", WakeTime: "07:00", Quality: 3, TimesToWakeUp: -1},
	}
	for _, r := range bad {
		if _, err := svc.RecordSleep(ctx, 1, SleepInput{SleepRecord: r}); !errors.Is(err, domain.ErrInvalidRecord) {
			t.Errorf("%+v: expected ErrInvalidRecord, got %v", r, err)
		}
	}
}

func TestLogService_AddWorkout(t *testing.T) {
	db := memory.New()
	svc := newTestLogService(db, nil)
	ctx := context.Background()

	rec, err := svc.AddWorkout(ctx, 1, WorkoutInput{Type: "run", DurationMinutes: 30, Intensity: domain.IntensityHigh})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Workout.Sessions[0].CaloriesBurned != 280 {
		t.Errorf("estimated calories: got %v, want 280", rec.Workout.Sessions[0].CaloriesBurned)
	}

	rec, _ = svc.AddWorkout(ctx, 1, WorkoutInput{Type: "yoga", DurationMinutes: 45, CaloriesBurned: 120})
	if len(rec.Workout.Sessions) != 2 || rec.Workout.TotalMinutes() != 75 {
		t.Errorf("sessions not merged: %+v", rec.Workout)
	}
	if rec.Workout.Sessions[1].Intensity != domain.IntensityModerate || rec.Workout.Sessions[1].CaloriesBurned != 120 {
		t.Errorf("defaults: got %+v", rec.Workout.Sessions[1])
	}

	if _, err := svc.AddWorkout(ctx, 1, WorkoutInput{Type: "run", DurationMinutes: 30, Intensity: "insane"}); !errors.Is(err, domain.ErrInvalidRecord) {
		t.Errorf("expected ErrInvalidRecord, got %v", err)
	}
}

func TestLogService_AddMealItem(t *testing.T) {
	svc := newTestLogService(memory.New(), nil)
	ctx := context.Background()

	rec, err := svc.AddMealItem(ctx, 1, MealInput{MealItem: domain.MealItem{Name: "apple", Calories: 95}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Meals.Items[0].MealType != domain.MealSnack || !rec.Meals.Items[0].Timestamp.Equal(testNow) {
		t.Errorf("defaults: got %+v", rec.Meals.Items[0])
	}

	if _, err := svc.AddMealItem(ctx, 1, MealInput{MealItem: domain.MealItem{Name: "", Calories: 10}}); !errors.Is(err, domain.ErrInvalidRecord) {
		t.Errorf("expected ErrInvalidRecord, got %v", err)
	}
}

func TestLogService_Records(t *testing.T) {
	db := memory.New()
	svc := newTestLogService(db, nil)
	ctx := context.Background()

	for _, day := range []string{"2024-03-14", "2024-03-12", "2024-02-01"} {
		if _, err := svc.AddWater(ctx, 1, WaterInput{Day: day, Amount: 2}); err != nil {
			t.Fatalf("AddWater %s: %v", day, err)
		}
	}
	recs, err := svc.Records(ctx, 1, domain.DomainWater, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 2 || recs[0].Day != "2024-03-12" {
		t.Errorf("got %+v", recs)
	}
}

func TestLogService_AddWater_Concurrent(t *testing.T) {
	db := memory.New()
	notifier := &recordingNotifier{}
	svc := newTestLogService(db, notifier)
	ctx := context.Background()

	const writers = 200
	var wg sync.WaitGroup
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.AddWater(ctx, 1, WaterInput{Amount: 1}); err != nil {
				t.Errorf("AddWater: %v", err)
			}
		}()
	}
	wg.Wait()

	rec, err := db.GetRecord(ctx, 1, domain.DomainWater, "2024-03-14")
	if err != nil || rec == nil {
		t.Fatalf("GetRecord: %v %v", rec, err)
	}
	if len(rec.Water.Entries) != writers || rec.Water.TotalIntake != writers {
		t.Errorf("lost writes: %d entries, total %v", len(rec.Water.Entries), rec.Water.TotalIntake)
	}
	if len(notifier.events) != 1 {
		t.Errorf("expected one goal event, got %d", len(notifier.events))
	}
}

func TestLogService_AddWater_RaisedGoal(t *testing.T) {
	db := memory.New()
	notifier := &recordingNotifier{}
	svc := newTestLogService(db, notifier)
	ctx := context.Background()

	if _, err := svc.AddWater(ctx, 1, WaterInput{Amount: 8}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notifier.events) != 1 {
		t.Fatalf("expected event at default goal, got %d", len(notifier.events))
	}

	goals := domain.DefaultGoals()
	goals.Water.DailyGlasses = 10
	if err := db.SaveGoals(ctx, 1, goals); err != nil {
		t.Fatalf("SaveGoals: %v", err)
	}

	rec, err := svc.AddWater(ctx, 1, WaterInput{Amount: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Water.TotalIntake != 10 || !rec.Water.GoalReached {
		t.Errorf("got total=%v reached=%v", rec.Water.TotalIntake, rec.Water.GoalReached)
	}
	if len(notifier.events) != 2 {
		t.Errorf("expected a second event for the raised goal, got %d", len(notifier.events))
	}
}

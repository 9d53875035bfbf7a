package domain

import (
	"context"
	"time"
)

// EventKind names a notification-worthy moment.
type EventKind string

const (
	EventWaterGoalReached    EventKind = "water_goal_reached"
	EventStepGoalReached     EventKind = "step_goal_reached"
	EventAchievementUnlocked EventKind = "achievement_unlocked"
)

// Event is a best-effort notification emitted after a write.
type Event struct {
	ID         string    `json:"id"`
	Kind       EventKind `json:"kind"`
	UserID     int64     `json:"userId"`
	Day        string    `json:"day,omitempty"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Notifier delivers events. Callers treat failures as non-fatal.
type Notifier interface {
	Notify(ctx context.Context, e Event) error
}

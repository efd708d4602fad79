// ABOUTME: Change events published by the workout store to subscribers.
// ABOUTME: Consumers re-render or react (banners, sync) when these arrive.
package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fitleast/internal/models"
)

// EventType names what changed.
type EventType string

const (
	EventLoaded           EventType = "loaded"
	EventExerciseToggled  EventType = "exercise_toggled"
	EventWorkoutCompleted EventType = "workout_completed"
	EventWorkoutReset     EventType = "workout_reset"
	EventHistoryCleared   EventType = "history_cleared"
	EventStreakDismissed  EventType = "streak_dismissed"
)

// Event describes a single state change. Fields not relevant to Type are zero.
type Event struct {
	Type       EventType
	WorkoutID  uuid.UUID
	ExerciseID uuid.UUID
	Completed  bool // exercise state after a toggle
	Streak     int
	Entry      *models.WorkoutHistoryEntry // set on EventWorkoutCompleted
	At         time.Time
}

type subscriber struct {
	id int
	fn func(Event)
}

// Subscribe registers fn to be called after every state change.
// fn runs synchronously on the mutating goroutine once the store lock is released,
// so it may call read methods. The returned func removes the subscription.
func (s *WorkoutStore) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	s.nextSubID++
	id := s.nextSubID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *WorkoutStore) publish(events ...Event) {
	if len(events) == 0 {
		return
	}

	s.subMu.Lock()
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.subMu.Unlock()

	for _, ev := range events {
		for _, sub := range subs {
			sub.fn(ev)
		}
	}
}

// ABOUTME: WorkoutStore owns workouts, history and streak, and mediates persistence.
// ABOUTME: Loads from a KV on Initialize and writes back after every mutation.
package store

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fitleast/internal/models"
	"github.com/harperreed/fitleast/internal/storage"
	"github.com/sirupsen/logrus"
)

// WorkoutStore is the canonical in-memory state of the tracker.
// All mutations go through its methods; readers get copies.
//
// Failures never surface to callers: unreadable persisted data loads as empty,
// unknown IDs are no-ops, and write errors are logged.
type WorkoutStore struct {
	kv  storage.KV
	now func() time.Time
	log logrus.FieldLogger

	mu           sync.RWMutex
	workouts     []models.Workout
	history      []models.WorkoutHistoryEntry // most recent first
	streak       int
	streakGained bool

	subMu     sync.Mutex
	subs      []subscriber
	nextSubID int
}

// Option configures a WorkoutStore.
type Option func(*WorkoutStore)

// WithClock overrides the time source used for history timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *WorkoutStore) { s.now = now }
}

// WithLogger sets the logger. Defaults to the logrus standard logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *WorkoutStore) { s.log = log }
}

// New creates a store over kv. Call Initialize before use.
func New(kv storage.KV, opts ...Option) *WorkoutStore {
	s := &WorkoutStore{
		kv:  kv,
		now: time.Now,
		log: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithField("component", "store")
	return s
}

// Initialize loads persisted state, falling back per key to empty/zero.
// If no workouts were loaded, the default split is seeded and persisted.
func (s *WorkoutStore) Initialize() {
	s.mu.Lock()

	s.workouts = s.loadWorkouts()
	s.history = s.loadHistory()
	s.streak = s.loadStreak()
	s.streakGained = false

	if len(s.workouts) == 0 {
		s.log.Info("no saved workouts, seeding default split")
		s.workouts = models.DefaultWorkouts()
		s.persistWorkouts()
	}

	ev := Event{Type: EventLoaded, Streak: s.streak, At: s.now()}
	s.mu.Unlock()

	s.publish(ev)
}

// ToggleExerciseCompletion flips one exercise and recomputes its workout.
// It returns true only when this call moved the workout from incomplete to
// complete; that transition also bumps the streak and records history.
// Unknown IDs leave state untouched and return false.
func (s *WorkoutStore) ToggleExerciseCompletion(workoutID, exerciseID uuid.UUID) bool {
	s.mu.Lock()

	wi := s.workoutIndex(workoutID)
	if wi < 0 {
		s.mu.Unlock()
		s.log.WithField("workout_id", workoutID).Debug("toggle: workout not found")
		return false
	}
	w := &s.workouts[wi]

	ei := w.ExerciseIndex(exerciseID)
	if ei < 0 {
		s.mu.Unlock()
		s.log.WithFields(logrus.Fields{"workout_id": workoutID, "exercise_id": exerciseID}).Debug("toggle: exercise not found")
		return false
	}

	wasCompleted := w.IsCompleted
	w.Exercises[ei].IsCompleted = !w.Exercises[ei].IsCompleted
	allDone := w.RecomputeCompletion()
	justCompleted := !wasCompleted && allDone

	at := s.now()
	events := []Event{{
		Type:       EventExerciseToggled,
		WorkoutID:  workoutID,
		ExerciseID: exerciseID,
		Completed:  w.Exercises[ei].IsCompleted,
		Streak:     s.streak,
		At:         at,
	}}

	if justCompleted {
		s.streak++
		s.streakGained = true
		entry := models.NewHistoryEntry(*w, at)
		s.history = append([]models.WorkoutHistoryEntry{entry}, s.history...)

		events = append(events, Event{
			Type:      EventWorkoutCompleted,
			WorkoutID: workoutID,
			Streak:    s.streak,
			Entry:     &entry,
			At:        at,
		})
		s.log.WithFields(logrus.Fields{"workout": w.Name, "streak": s.streak}).Info("workout completed")
	}

	s.persistWorkouts()
	if justCompleted {
		s.persistHistory()
		s.persistStreak()
	}
	s.mu.Unlock()

	s.publish(events...)
	return justCompleted
}

// ResetWorkout marks every exercise and the workout itself incomplete.
// History and streak are left alone; past completions stay recorded.
func (s *WorkoutStore) ResetWorkout(workoutID uuid.UUID) {
	s.mu.Lock()

	wi := s.workoutIndex(workoutID)
	if wi < 0 {
		s.mu.Unlock()
		s.log.WithField("workout_id", workoutID).Debug("reset: workout not found")
		return
	}

	w := &s.workouts[wi]
	for i := range w.Exercises {
		w.Exercises[i].IsCompleted = false
	}
	w.IsCompleted = false
	s.persistWorkouts()

	ev := Event{Type: EventWorkoutReset, WorkoutID: workoutID, Streak: s.streak, At: s.now()}
	s.mu.Unlock()

	s.publish(ev)
}

// ClearWorkoutHistory drops every history entry. Streak and workouts are unchanged.
func (s *WorkoutStore) ClearWorkoutHistory() {
	s.mu.Lock()
	s.history = []models.WorkoutHistoryEntry{}
	s.persistHistory()
	ev := Event{Type: EventHistoryCleared, Streak: s.streak, At: s.now()}
	s.mu.Unlock()

	s.publish(ev)
}

// DismissStreakGained clears the transient "streak gained" flag.
// Consumers decide when; the store never schedules it.
func (s *WorkoutStore) DismissStreakGained() {
	s.mu.Lock()
	if !s.streakGained {
		s.mu.Unlock()
		return
	}
	s.streakGained = false
	ev := Event{Type: EventStreakDismissed, Streak: s.streak, At: s.now()}
	s.mu.Unlock()

	s.publish(ev)
}

// Workouts returns a copy of the split in day order.
func (s *WorkoutStore) Workouts() []models.Workout {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.CloneWorkouts(s.workouts)
}

// Workout returns a copy of one workout.
func (s *WorkoutStore) Workout(id uuid.UUID) (models.Workout, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.workoutIndex(id); i >= 0 {
		return s.workouts[i].Clone(), true
	}
	return models.Workout{}, false
}

// WorkoutHistory returns a copy of the history, most recent first.
func (s *WorkoutStore) WorkoutHistory() []models.WorkoutHistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.WorkoutHistoryEntry, len(s.history))
	copy(out, s.history)
	return out
}

// CurrentStreak returns the number of completion events recorded.
func (s *WorkoutStore) CurrentStreak() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.streak
}

// StreakGained reports whether a completion happened since the last dismiss.
func (s *WorkoutStore) StreakGained() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.streakGained
}

// workoutIndex must be called with mu held.
func (s *WorkoutStore) workoutIndex(id uuid.UUID) int {
	for i := range s.workouts {
		if s.workouts[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *WorkoutStore) read(key string) ([]byte, bool) {
	data, err := s.kv.Get(key)
	if errors.Is(err, storage.ErrNotFound) {
		s.log.WithField("key", key).Debug("no saved value")
		return nil, false
	}
	if err != nil {
		s.log.WithError(err).WithField("key", key).Warn("read failed, using empty value")
		return nil, false
	}
	return data, true
}

func (s *WorkoutStore) loadWorkouts() []models.Workout {
	data, ok := s.read(storage.KeyWorkouts)
	if !ok {
		return nil
	}
	var workouts []models.Workout
	if err := json.Unmarshal(data, &workouts); err != nil {
		s.log.WithError(err).Warn("saved workouts unreadable, ignoring")
		return nil
	}
	// Saved completion flags are not trusted; the exercises are.
	for i := range workouts {
		workouts[i].RecomputeCompletion()
	}
	return workouts
}

func (s *WorkoutStore) loadHistory() []models.WorkoutHistoryEntry {
	data, ok := s.read(storage.KeyHistory)
	if !ok {
		return []models.WorkoutHistoryEntry{}
	}
	var history []models.WorkoutHistoryEntry
	if err := json.Unmarshal(data, &history); err != nil {
		s.log.WithError(err).Warn("saved history unreadable, ignoring")
		return []models.WorkoutHistoryEntry{}
	}
	if history == nil {
		history = []models.WorkoutHistoryEntry{}
	}
	return history
}

func (s *WorkoutStore) loadStreak() int {
	data, ok := s.read(storage.KeyStreak)
	if !ok {
		return 0
	}
	n, err := decodeStreak(data)
	if err != nil {
		s.log.WithError(err).Warn("saved streak unreadable, ignoring")
		return 0
	}
	return n
}

func (s *WorkoutStore) persistWorkouts() {
	s.write(storage.KeyWorkouts, s.workouts)
}

func (s *WorkoutStore) persistHistory() {
	s.write(storage.KeyHistory, s.history)
}

func (s *WorkoutStore) persistStreak() {
	if err := s.kv.Set(storage.KeyStreak, encodeStreak(s.streak)); err != nil {
		s.log.WithError(err).WithField("key", storage.KeyStreak).Error("persist failed")
	}
}

func (s *WorkoutStore) write(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.log.WithError(err).WithField("key", key).Error("encode failed")
		return
	}
	if err := s.kv.Set(key, data); err != nil {
		s.log.WithError(err).WithField("key", key).Error("persist failed")
	}
}

func encodeStreak(n int) []byte {
	return []byte(strconv.Itoa(n))
}

func decodeStreak(data []byte) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errors.New("negative streak")
	}
	return n, nil
}

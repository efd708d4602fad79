// ABOUTME: Tests for WorkoutStore load, toggle, reset, clear and streak rules.
// ABOUTME: Uses an in-memory KV and a fixed clock.
package store

import (
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fitleast/internal/models"
	"github.com/harperreed/fitleast/internal/storage"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 4, 15, 18, 30, 0, 0, time.UTC)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestStore(t *testing.T, kv storage.KV) *WorkoutStore {
	t.Helper()
	s := New(kv, WithClock(func() time.Time { return fixedNow }), WithLogger(quietLogger()))
	s.Initialize()
	return s
}

// completeAll toggles every exercise of w in order and returns each call's result.
func completeAll(s *WorkoutStore, w models.Workout) []bool {
	results := make([]bool, 0, len(w.Exercises))
	for _, e := range w.Exercises {
		results = append(results, s.ToggleExerciseCompletion(w.ID, e.ID))
	}
	return results
}

func assertDerivedCompletion(t *testing.T, s *WorkoutStore) {
	t.Helper()
	for _, w := range s.Workouts() {
		assert.Equal(t, models.AllExercisesCompleted(w.Exercises), w.IsCompleted, "workout %s", w.Name)
	}
}

type flakyKV struct {
	*storage.MemoryKV
	failGet map[string]bool
	failSet bool
}

func (f *flakyKV) Get(key string) ([]byte, error) {
	if f.failGet[key] {
		return nil, errors.New("io error")
	}
	return f.MemoryKV.Get(key)
}

func (f *flakyKV) Set(key string, value []byte) error {
	if f.failSet {
		return errors.New("disk full")
	}
	return f.MemoryKV.Set(key, value)
}

func TestInitializeSeedsDefaults(t *testing.T) {
	kv := storage.NewMemoryKV()
	s := newTestStore(t, kv)

	workouts := s.Workouts()
	require.Len(t, workouts, 3)
	assert.Equal(t, "Chest - Triceps - Cardio", workouts[0].Name)
	assert.Equal(t, "Back - Biceps - Abs", workouts[1].Name)
	assert.Equal(t, "Legs - Shoulders - Cardio", workouts[2].Name)
	for i, w := range workouts {
		assert.Equal(t, i+1, w.Day)
		assert.False(t, w.IsCompleted)
		for _, e := range w.Exercises {
			assert.False(t, e.IsCompleted)
		}
	}

	assert.Empty(t, s.WorkoutHistory())
	assert.Equal(t, 0, s.CurrentStreak())
	assert.False(t, s.StreakGained())

	// Seed is persisted immediately.
	assert.Equal(t, 1, kv.Writes(storage.KeyWorkouts))
	data, err := kv.Get(storage.KeyWorkouts)
	require.NoError(t, err)
	var saved []models.Workout
	require.NoError(t, json.Unmarshal(data, &saved))
	assert.Equal(t, workouts[0].ID, saved[0].ID)
}

func TestInitializeLoadsPersistedState(t *testing.T) {
	kv := storage.NewMemoryKV()
	first := newTestStore(t, kv)
	w := first.Workouts()[0]
	completeAll(first, w)

	second := newTestStore(t, kv)

	assert.Equal(t, first.Workouts(), second.Workouts())
	assert.Equal(t, 1, second.CurrentStreak())
	require.Len(t, second.WorkoutHistory(), 1)
	assert.Equal(t, w.Name, second.WorkoutHistory()[0].WorkoutName)
	assert.False(t, second.StreakGained(), "transient flag must not survive a restart")
}

func TestInitializeCorruptKeysAreIndependent(t *testing.T) {
	kv := storage.NewMemoryKV()
	_ = kv.Set(storage.KeyWorkouts, []byte("{not json"))
	_ = kv.Set(storage.KeyHistory, []byte(`[{"workoutName":"Old","day":2,"exercisesCompleted":6,"totalExercises":6}]`))
	_ = kv.Set(storage.KeyStreak, []byte("4"))

	s := newTestStore(t, kv)

	assert.Len(t, s.Workouts(), 3, "corrupt workouts fall back to seed")
	require.Len(t, s.WorkoutHistory(), 1)
	assert.Equal(t, "Old", s.WorkoutHistory()[0].WorkoutName)
	assert.Equal(t, 4, s.CurrentStreak())
}

func TestInitializeCorruptHistoryAndStreak(t *testing.T) {
	kv := storage.NewMemoryKV()
	seeded := newTestStore(t, kv)
	_ = kv.Set(storage.KeyHistory, []byte("garbage"))
	_ = kv.Set(storage.KeyStreak, []byte("lots"))

	s := newTestStore(t, kv)

	assert.Equal(t, seeded.Workouts(), s.Workouts(), "valid workouts still load")
	assert.NotNil(t, s.WorkoutHistory())
	assert.Empty(t, s.WorkoutHistory())
	assert.Equal(t, 0, s.CurrentStreak())
}

func TestInitializeReadErrorsFallBack(t *testing.T) {
	kv := &flakyKV{
		MemoryKV: storage.NewMemoryKV(),
		failGet:  map[string]bool{storage.KeyHistory: true, storage.KeyStreak: true},
	}

	s := newTestStore(t, kv)

	assert.Len(t, s.Workouts(), 3)
	assert.Empty(t, s.WorkoutHistory())
	assert.Equal(t, 0, s.CurrentStreak())
}

func TestInitializeNegativeStreakIsZero(t *testing.T) {
	kv := storage.NewMemoryKV()
	_ = kv.Set(storage.KeyStreak, []byte("-3"))

	s := newTestStore(t, kv)
	assert.Equal(t, 0, s.CurrentStreak())
}

func TestInitializeRecomputesSavedCompletion(t *testing.T) {
	kv := storage.NewMemoryKV()
	w := models.NewWorkout("Stale", 1, models.NewExercise("A", 1, "1"))
	w.IsCompleted = true // lies: the exercise is open
	data, _ := json.Marshal([]models.Workout{w})
	_ = kv.Set(storage.KeyWorkouts, data)

	s := newTestStore(t, kv)

	got := s.Workouts()
	require.Len(t, got, 1)
	assert.False(t, got[0].IsCompleted)
	assert.True(t, s.ToggleExerciseCompletion(w.ID, w.Exercises[0].ID), "first real completion must count")
}

func TestCompleteWorkoutOneScenario(t *testing.T) {
	kv := storage.NewMemoryKV()
	s := newTestStore(t, kv)
	w := s.Workouts()[0]
	require.Len(t, w.Exercises, 5)

	results := completeAll(s, w)

	assert.Equal(t, []bool{false, false, false, false, true}, results)
	assert.Equal(t, 1, s.CurrentStreak())
	assert.True(t, s.StreakGained())

	history := s.WorkoutHistory()
	require.Len(t, history, 1)
	assert.Equal(t, "Chest - Triceps - Cardio", history[0].WorkoutName)
	assert.Equal(t, 1, history[0].Day)
	assert.Equal(t, 5, history[0].ExercisesCompleted)
	assert.Equal(t, 5, history[0].TotalExercises)
	assert.True(t, history[0].Date.Equal(fixedNow))

	got, ok := s.Workout(w.ID)
	require.True(t, ok)
	assert.True(t, got.IsCompleted)
}

func TestToggleDerivedCompletionInvariant(t *testing.T) {
	s := newTestStore(t, storage.NewMemoryKV())

	for _, w := range s.Workouts() {
		for _, e := range w.Exercises {
			s.ToggleExerciseCompletion(w.ID, e.ID)
			assertDerivedCompletion(t, s)
		}
		// Toggle the middle one back off.
		s.ToggleExerciseCompletion(w.ID, w.Exercises[len(w.Exercises)/2].ID)
		assertDerivedCompletion(t, s)
	}
}

func TestToggleTwiceRestoresState(t *testing.T) {
	s := newTestStore(t, storage.NewMemoryKV())
	w := s.Workouts()[1]
	e := w.Exercises[2]

	before, _ := s.Workout(w.ID)
	assert.False(t, s.ToggleExerciseCompletion(w.ID, e.ID))
	assert.False(t, s.ToggleExerciseCompletion(w.ID, e.ID))
	after, _ := s.Workout(w.ID)

	assert.Equal(t, before, after)
}

func TestToggleReturnsTrueOncePerTransition(t *testing.T) {
	s := newTestStore(t, storage.NewMemoryKV())
	w := s.Workouts()[2]
	last := w.Exercises[len(w.Exercises)-1]

	completeAll(s, w)
	require.Equal(t, 1, s.CurrentStreak())

	// Uncheck then re-check: a fresh transition to complete.
	assert.False(t, s.ToggleExerciseCompletion(w.ID, last.ID))
	assert.Equal(t, 1, s.CurrentStreak(), "unchecking must not decrement the streak")
	assert.True(t, s.ToggleExerciseCompletion(w.ID, last.ID))
	assert.Equal(t, 2, s.CurrentStreak())
	assert.Len(t, s.WorkoutHistory(), 2)

	// Unchecking a different exercise never returns true.
	assert.False(t, s.ToggleExerciseCompletion(w.ID, w.Exercises[0].ID))
	assert.Equal(t, 2, s.CurrentStreak())
}

func TestUncheckCompletedWorkoutClearsFlag(t *testing.T) {
	kv := storage.NewMemoryKV()
	s := newTestStore(t, kv)
	w := s.Workouts()[0]
	first := w.Exercises[0]

	completeAll(s, w)
	assert.False(t, s.ToggleExerciseCompletion(w.ID, first.ID))

	got, _ := s.Workout(w.ID)
	assert.False(t, got.Exercises[0].IsCompleted)
	assert.False(t, got.IsCompleted)

	var saved []models.Workout
	data, err := kv.Get(storage.KeyWorkouts)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &saved))
	assert.False(t, saved[0].IsCompleted, "persisted flag follows the exercises")

	assert.True(t, s.ToggleExerciseCompletion(w.ID, first.ID))
	assert.Equal(t, 2, s.CurrentStreak())
	assert.Len(t, s.WorkoutHistory(), 2)
}

func TestHistoryIsMostRecentFirst(t *testing.T) {
	clock := fixedNow
	s := New(storage.NewMemoryKV(), WithClock(func() time.Time { return clock }), WithLogger(quietLogger()))
	s.Initialize()
	ws := s.Workouts()

	completeAll(s, ws[0])
	clock = clock.Add(24 * time.Hour)
	completeAll(s, ws[1])

	history := s.WorkoutHistory()
	require.Len(t, history, 2)
	assert.Equal(t, ws[1].Name, history[0].WorkoutName)
	assert.Equal(t, ws[0].Name, history[1].WorkoutName)
	assert.True(t, history[0].Date.After(history[1].Date))
}

func TestTogglePersistence(t *testing.T) {
	kv := storage.NewMemoryKV()
	s := newTestStore(t, kv)
	w := s.Workouts()[0]

	s.ToggleExerciseCompletion(w.ID, w.Exercises[0].ID)
	assert.Equal(t, 2, kv.Writes(storage.KeyWorkouts), "seed + toggle")
	assert.Equal(t, 0, kv.Writes(storage.KeyHistory), "history unchanged")
	assert.Equal(t, 0, kv.Writes(storage.KeyStreak), "streak unchanged")

	for _, e := range w.Exercises[1:] {
		s.ToggleExerciseCompletion(w.ID, e.ID)
	}
	assert.Equal(t, 1, kv.Writes(storage.KeyHistory))
	assert.Equal(t, 1, kv.Writes(storage.KeyStreak))

	streak, err := kv.Get(storage.KeyStreak)
	require.NoError(t, err)
	assert.Equal(t, "1", string(streak))
}

func TestToggleUnknownIDsAreNoOps(t *testing.T) {
	kv := storage.NewMemoryKV()
	s := newTestStore(t, kv)
	w := s.Workouts()[0]
	before := s.Workouts()
	writes := kv.Writes(storage.KeyWorkouts)

	assert.False(t, s.ToggleExerciseCompletion(uuid.New(), w.Exercises[0].ID))
	assert.False(t, s.ToggleExerciseCompletion(w.ID, uuid.New()))
	// Exercise from a different workout doesn't match.
	assert.False(t, s.ToggleExerciseCompletion(w.ID, s.Workouts()[1].Exercises[0].ID))

	assert.Equal(t, before, s.Workouts())
	assert.Empty(t, s.WorkoutHistory())
	assert.Equal(t, 0, s.CurrentStreak())
	assert.Equal(t, writes, kv.Writes(storage.KeyWorkouts))
}

func TestResetWorkout(t *testing.T) {
	kv := storage.NewMemoryKV()
	s := newTestStore(t, kv)
	w := s.Workouts()[0]
	completeAll(s, w)
	history := s.WorkoutHistory()

	s.ResetWorkout(w.ID)

	got, _ := s.Workout(w.ID)
	assert.False(t, got.IsCompleted)
	for _, e := range got.Exercises {
		assert.False(t, e.IsCompleted)
	}
	assert.Equal(t, history, s.WorkoutHistory())
	assert.Equal(t, 1, s.CurrentStreak())

	// Persisted, and a restart sees the reset.
	reloaded := newTestStore(t, kv)
	got, _ = reloaded.Workout(w.ID)
	assert.Equal(t, 0, got.CompletedCount())
}

func TestResetThenCompleteCountsAgain(t *testing.T) {
	s := newTestStore(t, storage.NewMemoryKV())
	w := s.Workouts()[0]

	completeAll(s, w)
	s.ResetWorkout(w.ID)
	results := completeAll(s, w)

	assert.True(t, results[len(results)-1])
	assert.Equal(t, 2, s.CurrentStreak())
	assert.Len(t, s.WorkoutHistory(), 2)
}

func TestResetUnknownWorkout(t *testing.T) {
	kv := storage.NewMemoryKV()
	s := newTestStore(t, kv)
	w := s.Workouts()[0]
	s.ToggleExerciseCompletion(w.ID, w.Exercises[0].ID)
	before := s.Workouts()
	writes := kv.Writes(storage.KeyWorkouts)

	s.ResetWorkout(uuid.New())

	assert.Equal(t, before, s.Workouts())
	assert.Equal(t, writes, kv.Writes(storage.KeyWorkouts))
}

func TestClearWorkoutHistory(t *testing.T) {
	kv := storage.NewMemoryKV()
	s := newTestStore(t, kv)
	w := s.Workouts()[1]
	completeAll(s, w)
	workouts := s.Workouts()

	s.ClearWorkoutHistory()

	assert.Empty(t, s.WorkoutHistory())
	assert.Equal(t, 1, s.CurrentStreak())
	assert.Equal(t, workouts, s.Workouts())

	data, err := kv.Get(storage.KeyHistory)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestClearEmptyHistoryStillPersists(t *testing.T) {
	kv := storage.NewMemoryKV()
	s := newTestStore(t, kv)

	s.ClearWorkoutHistory()
	assert.Equal(t, 1, kv.Writes(storage.KeyHistory))
}

func TestWriteFailuresAreSilent(t *testing.T) {
	kv := &flakyKV{MemoryKV: storage.NewMemoryKV()}
	s := newTestStore(t, kv)
	w := s.Workouts()[0]
	kv.failSet = true

	results := completeAll(s, w)

	assert.True(t, results[len(results)-1], "in-memory state stays authoritative")
	assert.Equal(t, 1, s.CurrentStreak())
}

func TestDismissStreakGained(t *testing.T) {
	s := newTestStore(t, storage.NewMemoryKV())
	var events []EventType
	s.Subscribe(func(ev Event) { events = append(events, ev.Type) })

	s.DismissStreakGained()
	assert.Empty(t, events, "dismiss with nothing to dismiss is silent")

	completeAll(s, s.Workouts()[0])
	require.True(t, s.StreakGained())
	s.DismissStreakGained()

	assert.False(t, s.StreakGained())
	assert.Equal(t, 1, s.CurrentStreak())
	assert.Equal(t, EventStreakDismissed, events[len(events)-1])
}

func TestReadersGetCopies(t *testing.T) {
	s := newTestStore(t, storage.NewMemoryKV())

	ws := s.Workouts()
	ws[0].Exercises[0].IsCompleted = true
	ws[0].Name = "changed"

	fresh := s.Workouts()
	assert.False(t, fresh[0].Exercises[0].IsCompleted)
	assert.Equal(t, "Chest - Triceps - Cardio", fresh[0].Name)
}

func TestSubscribeEvents(t *testing.T) {
	s := New(storage.NewMemoryKV(), WithClock(func() time.Time { return fixedNow }), WithLogger(quietLogger()))
	var events []Event
	unsubscribe := s.Subscribe(func(ev Event) { events = append(events, ev) })

	s.Initialize()
	w := s.Workouts()[0]
	completeAll(s, w)
	s.ResetWorkout(w.ID)
	s.ClearWorkoutHistory()

	var types []EventType
	for _, ev := range events {
		types = append(types, ev.Type)
	}
	assert.Equal(t, []EventType{
		EventLoaded,
		EventExerciseToggled, EventExerciseToggled, EventExerciseToggled, EventExerciseToggled,
		EventExerciseToggled, EventWorkoutCompleted,
		EventWorkoutReset,
		EventHistoryCleared,
	}, types)

	completed := events[6]
	assert.Equal(t, w.ID, completed.WorkoutID)
	assert.Equal(t, 1, completed.Streak)
	require.NotNil(t, completed.Entry)
	assert.Equal(t, 5, completed.Entry.TotalExercises)

	unsubscribe()
	s.ClearWorkoutHistory()
	assert.Len(t, events, len(types), "no events after unsubscribe")
}

func TestSubscriberCanReadStore(t *testing.T) {
	s := newTestStore(t, storage.NewMemoryKV())
	var streakSeen int
	s.Subscribe(func(ev Event) {
		if ev.Type == EventWorkoutCompleted {
			streakSeen = s.CurrentStreak()
		}
	})

	completeAll(s, s.Workouts()[0])
	assert.Equal(t, 1, streakSeen)
}

func TestEmptyWorkoutIsVacuouslyComplete(t *testing.T) {
	kv := storage.NewMemoryKV()
	empty := models.NewWorkout("Rest Day", 4)
	data, _ := json.Marshal([]models.Workout{empty})
	_ = kv.Set(storage.KeyWorkouts, data)

	s := newTestStore(t, kv)

	got := s.Workouts()
	require.Len(t, got, 1)
	assert.True(t, got[0].IsCompleted)
	assert.Equal(t, 0, s.CurrentStreak(), "loading never counts as a completion")
}

func TestResetEmptyWorkoutClearsFlag(t *testing.T) {
	kv := storage.NewMemoryKV()
	empty := models.NewWorkout("Rest Day", 4)
	data, _ := json.Marshal([]models.Workout{empty})
	_ = kv.Set(storage.KeyWorkouts, data)
	s := newTestStore(t, kv)

	s.ResetWorkout(empty.ID)

	got, ok := s.Workout(empty.ID)
	require.True(t, ok)
	assert.False(t, got.IsCompleted)
	assert.Equal(t, 0, s.CurrentStreak())
}

func TestStreakCodec(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"0", 0, false},
		{"12", 12, false},
		{" 3\n", 3, false},
		{"-1", 0, true},
		{"", 0, true},
		{"three", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := decodeStreak([]byte(tt.in))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "42", string(encodeStreak(42)))
}

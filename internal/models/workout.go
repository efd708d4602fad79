// ABOUTME: Workout and Exercise models for the 3-day split tracker.
// ABOUTME: Workout completion is derived from its exercises, never set directly.
package models

import (
	"strings"

	"github.com/google/uuid"
)

// Exercise is a single trackable movement with target sets and reps.
type Exercise struct {
	ID          uuid.UUID `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Sets        int       `json:"sets" yaml:"sets"`
	Reps        string    `json:"reps" yaml:"reps"` // free-form: "8-10", "10-15 min"
	IsCompleted bool      `json:"isCompleted" yaml:"is_completed"`
}

// NewExercise creates an incomplete Exercise with a generated UUID.
// Negative set counts are clamped to zero.
func NewExercise(name string, sets int, reps string) Exercise {
	if sets < 0 {
		sets = 0
	}
	return Exercise{
		ID:   uuid.New(),
		Name: name,
		Sets: sets,
		Reps: reps,
	}
}

// Workout is a named, ordered list of exercises assigned to a day of the split.
type Workout struct {
	ID          uuid.UUID  `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Day         int        `json:"day" yaml:"day"`
	Exercises   []Exercise `json:"exercises" yaml:"exercises"`
	IsCompleted bool       `json:"isCompleted" yaml:"is_completed"`
}

// NewWorkout creates a Workout for the given split day.
func NewWorkout(name string, day int, exercises ...Exercise) Workout {
	w := Workout{
		ID:        uuid.New(),
		Name:      name,
		Day:       day,
		Exercises: exercises,
	}
	w.RecomputeCompletion()
	return w
}

// AllExercisesCompleted reports whether every exercise is complete.
// An empty list is vacuously complete.
func AllExercisesCompleted(exercises []Exercise) bool {
	for _, e := range exercises {
		if !e.IsCompleted {
			return false
		}
	}
	return true
}

// RecomputeCompletion refreshes the derived IsCompleted field and returns it.
func (w *Workout) RecomputeCompletion() bool {
	w.IsCompleted = AllExercisesCompleted(w.Exercises)
	return w.IsCompleted
}

// CompletedCount returns how many exercises are checked off.
func (w Workout) CompletedCount() int {
	n := 0
	for _, e := range w.Exercises {
		if e.IsCompleted {
			n++
		}
	}
	return n
}

// Progress returns the completed fraction in [0, 1]. Zero for an empty workout.
func (w Workout) Progress() float64 {
	if len(w.Exercises) == 0 {
		return 0
	}
	return float64(w.CompletedCount()) / float64(len(w.Exercises))
}

// ExerciseIndex returns the position of the exercise with the given ID, or -1.
func (w Workout) ExerciseIndex(id uuid.UUID) int {
	for i, e := range w.Exercises {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// FindExercise looks an exercise up by ID.
func (w Workout) FindExercise(id uuid.UUID) (Exercise, bool) {
	if i := w.ExerciseIndex(id); i >= 0 {
		return w.Exercises[i], true
	}
	return Exercise{}, false
}

// FindExerciseByName does a case-insensitive name match.
func (w Workout) FindExerciseByName(name string) (Exercise, bool) {
	for _, e := range w.Exercises {
		if strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return Exercise{}, false
}

// Clone returns a deep copy so callers can't alias the exercise slice.
func (w Workout) Clone() Workout {
	c := w
	if w.Exercises != nil {
		c.Exercises = make([]Exercise, len(w.Exercises))
		copy(c.Exercises, w.Exercises)
	}
	return c
}

// CloneWorkouts deep-copies a workout list.
func CloneWorkouts(ws []Workout) []Workout {
	out := make([]Workout, len(ws))
	for i, w := range ws {
		out[i] = w.Clone()
	}
	return out
}

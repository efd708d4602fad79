// ABOUTME: Lookup helpers that turn human input into workout and exercise IDs.
// ABOUTME: Used by the CLI and MCP surfaces; the store's mutators only take IDs.
package store

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/fitleast/internal/models"
)

var (
	ErrWorkoutNotFound  = errors.New("workout not found")
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrAmbiguous        = errors.New("ambiguous reference")

	errNoMatch = errors.New("no match")
)

// ResolveWorkout finds a workout by split day ("2"), full UUID, UUID prefix,
// or case-insensitive name.
func (s *WorkoutStore) ResolveWorkout(ref string) (models.Workout, error) {
	ref = strings.TrimSpace(ref)
	workouts := s.Workouts()

	if day, err := strconv.Atoi(ref); err == nil {
		for _, w := range workouts {
			if w.Day == day {
				return w, nil
			}
		}
	}

	if id, err := uuid.Parse(ref); err == nil {
		for _, w := range workouts {
			if w.ID == id {
				return w, nil
			}
		}
		return models.Workout{}, fmt.Errorf("%w: %s", ErrWorkoutNotFound, ref)
	}

	ids := make([]uuid.UUID, len(workouts))
	for i, w := range workouts {
		ids[i] = w.ID
	}
	i, err := matchPrefix(ids, ref)
	if err == nil {
		return workouts[i], nil
	}
	if errors.Is(err, ErrAmbiguous) {
		return models.Workout{}, err
	}

	for _, w := range workouts {
		if strings.EqualFold(w.Name, ref) {
			return w, nil
		}
	}

	return models.Workout{}, fmt.Errorf("%w: %s", ErrWorkoutNotFound, ref)
}

// ResolveExercise finds an exercise in w by 1-based position, full UUID,
// UUID prefix, or case-insensitive name.
func ResolveExercise(w models.Workout, ref string) (models.Exercise, error) {
	ref = strings.TrimSpace(ref)

	if pos, err := strconv.Atoi(ref); err == nil {
		if pos >= 1 && pos <= len(w.Exercises) {
			return w.Exercises[pos-1], nil
		}
	}

	if id, err := uuid.Parse(ref); err == nil {
		if e, ok := w.FindExercise(id); ok {
			return e, nil
		}
		return models.Exercise{}, fmt.Errorf("%w: %s", ErrExerciseNotFound, ref)
	}

	ids := make([]uuid.UUID, len(w.Exercises))
	for i, e := range w.Exercises {
		ids[i] = e.ID
	}
	i, err := matchPrefix(ids, ref)
	if err == nil {
		return w.Exercises[i], nil
	}
	if errors.Is(err, ErrAmbiguous) {
		return models.Exercise{}, err
	}

	if e, ok := w.FindExerciseByName(ref); ok {
		return e, nil
	}

	return models.Exercise{}, fmt.Errorf("%w: %s", ErrExerciseNotFound, ref)
}

// matchPrefix returns the index of the single ID starting with prefix.
// Prefixes shorter than 4 characters never match.
func matchPrefix(ids []uuid.UUID, prefix string) (int, error) {
	prefix = strings.ToLower(prefix)
	if len(prefix) < 4 {
		return -1, errNoMatch
	}

	found := -1
	for i, id := range ids {
		if strings.HasPrefix(id.String(), prefix) {
			if found >= 0 {
				return -1, fmt.Errorf("%w: prefix %s matches multiple records", ErrAmbiguous, prefix)
			}
			found = i
		}
	}
	if found < 0 {
		return -1, errNoMatch
	}
	return found, nil
}

// ABOUTME: WorkoutHistoryEntry model recording a completed workout.
// ABOUTME: Entries are snapshots taken at completion time and never edited.
package models

import (
	"time"

	"github.com/google/uuid"
)

// WorkoutHistoryEntry is an immutable record of one full workout completion.
// Name and day are copied, not referenced, so later edits don't rewrite history.
type WorkoutHistoryEntry struct {
	ID                 uuid.UUID `json:"id" yaml:"id"`
	WorkoutName        string    `json:"workoutName" yaml:"workout_name"`
	Day                int       `json:"day" yaml:"day"`
	Date               time.Time `json:"date" yaml:"date"`
	ExercisesCompleted int       `json:"exercisesCompleted" yaml:"exercises_completed"`
	TotalExercises     int       `json:"totalExercises" yaml:"total_exercises"`
}

// NewHistoryEntry snapshots a workout at the given time.
func NewHistoryEntry(w Workout, at time.Time) WorkoutHistoryEntry {
	return WorkoutHistoryEntry{
		ID:                 uuid.New(),
		WorkoutName:        w.Name,
		Day:                w.Day,
		Date:               at,
		ExercisesCompleted: w.CompletedCount(),
		TotalExercises:     len(w.Exercises),
	}
}

// FilterHistorySince keeps entries dated at or after since. A zero since keeps everything.
func FilterHistorySince(entries []WorkoutHistoryEntry, since time.Time) []WorkoutHistoryEntry {
	if since.IsZero() {
		return entries
	}
	var out []WorkoutHistoryEntry
	for _, e := range entries {
		if !e.Date.Before(since) {
			out = append(out, e)
		}
	}
	return out
}

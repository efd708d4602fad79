// ABOUTME: Export functionality for workout data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/fitleast/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is bumped when the export layout changes.
const ExportVersion = "1.0"

// ExportData represents the full export format for workout data.
type ExportData struct {
	Version       string                       `json:"version" yaml:"version"`
	ExportedAt    time.Time                    `json:"exported_at" yaml:"exported_at"`
	Tool          string                       `json:"tool" yaml:"tool"`
	CurrentStreak int                          `json:"current_streak" yaml:"current_streak"`
	Workouts      []models.Workout             `json:"workouts" yaml:"workouts"`
	History       []models.WorkoutHistoryEntry `json:"history" yaml:"history"`
}

// NewExportData bundles a snapshot of the store for export.
func NewExportData(workouts []models.Workout, history []models.WorkoutHistoryEntry, streak int) *ExportData {
	if workouts == nil {
		workouts = []models.Workout{}
	}
	if history == nil {
		history = []models.WorkoutHistoryEntry{}
	}
	return &ExportData{
		Version:       ExportVersion,
		ExportedAt:    time.Now(),
		Tool:          "fitleast",
		CurrentStreak: streak,
		Workouts:      workouts,
		History:       history,
	}
}

// ExportJSON exports all data as indented JSON.
func (e *ExportData) ExportJSON() ([]byte, error) {
	return json.MarshalIndent(e, "", "  ")
}

// ExportYAML exports all data as YAML.
func (e *ExportData) ExportYAML() ([]byte, error) {
	data, err := yaml.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}
	return data, nil
}

// ExportMarkdown renders the split and the history as Markdown tables.
// History entries older than since are dropped when since is non-nil.
func (e *ExportData) ExportMarkdown(since *time.Time) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# fitleast Export - %s\n\n", e.ExportedAt.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", e.ExportedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Current streak: %d\n\n", e.CurrentStreak))

	for _, w := range e.Workouts {
		status := fmt.Sprintf("%d/%d", w.CompletedCount(), len(w.Exercises))
		if w.IsCompleted {
			status += " ✓"
		}
		sb.WriteString(fmt.Sprintf("## Day %d: %s (%s)\n\n", w.Day, w.Name, status))
		sb.WriteString("| # | Exercise | Sets | Reps | Done |\n")
		sb.WriteString("|---|----------|------|------|------|\n")
		for i, ex := range w.Exercises {
			done := ""
			if ex.IsCompleted {
				done = "x"
			}
			sb.WriteString(fmt.Sprintf("| %d | %s | %d | %s | %s |\n", i+1, ex.Name, ex.Sets, ex.Reps, done))
		}
		sb.WriteString("\n")
	}

	history := e.History
	if since != nil {
		history = models.FilterHistorySince(history, *since)
	}

	if len(history) > 0 {
		sb.WriteString("## History\n\n")
		sb.WriteString("| Date | Workout | Day | Completed |\n")
		sb.WriteString("|------|---------|-----|-----------|\n")
		for _, h := range history {
			sb.WriteString(fmt.Sprintf("| %s | %s | %d | %d/%d |\n",
				h.Date.Format("2006-01-02 15:04"),
				h.WorkoutName, h.Day, h.ExercisesCompleted, h.TotalExercises))
		}
	}

	return sb.String()
}

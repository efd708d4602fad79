// ABOUTME: MCP tool implementations for the workout split, history and streak.
// ABOUTME: Workouts and exercises are addressed by day/position, ID, ID prefix or name.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/harperreed/fitleast/internal/models"
	"github.com/harperreed/fitleast/internal/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List the workout split with per-workout progress",
	}, s.handleListWorkouts)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_workout",
		Description: "Get one workout with all its exercises",
	}, s.handleGetWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "toggle_exercise",
		Description: "Toggle an exercise done/undone; completing the last one records history and bumps the streak",
	}, s.handleToggleExercise)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "reset_workout",
		Description: "Mark every exercise in a workout as not done",
	}, s.handleResetWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_history",
		Description: "List completed workouts, most recent first",
	}, s.handleListHistory)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "clear_history",
		Description: "Delete all workout history (the streak is kept)",
	}, s.handleClearHistory)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_streak",
		Description: "Get the current streak and whether it was just gained",
	}, s.handleGetStreak)
}

// Tool input/output types

type workoutRefInput struct {
	Workout string `json:"workout" jsonschema:"Workout day number, ID, ID prefix or name"`
}

type toggleExerciseInput struct {
	Workout  string `json:"workout" jsonschema:"Workout day number, ID, ID prefix or name"`
	Exercise string `json:"exercise" jsonschema:"Exercise position (1-based), ID, ID prefix or name"`
}

type listHistoryInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type emptyInput struct{}

type workoutSummary struct {
	ID          string `json:"id"`
	Day         int    `json:"day"`
	Name        string `json:"name"`
	Completed   int    `json:"completed"`
	Total       int    `json:"total"`
	IsCompleted bool   `json:"is_completed"`
}

type exerciseDetail struct {
	ID          string `json:"id"`
	Position    int    `json:"position"`
	Name        string `json:"name"`
	Sets        int    `json:"sets"`
	Reps        string `json:"reps"`
	IsCompleted bool   `json:"is_completed"`
}

type workoutDetail struct {
	ID          string           `json:"id"`
	Day         int              `json:"day"`
	Name        string           `json:"name"`
	IsCompleted bool             `json:"is_completed"`
	Exercises   []exerciseDetail `json:"exercises"`
}

type historyEntry struct {
	ID                 string `json:"id"`
	WorkoutName        string `json:"workout_name"`
	Day                int    `json:"day"`
	Date               string `json:"date"`
	ExercisesCompleted int    `json:"exercises_completed"`
	TotalExercises     int    `json:"total_exercises"`
}

type listWorkoutsOutput struct {
	Workouts []workoutSummary `json:"workouts"`
}

type toggleOutput struct {
	Exercise         string `json:"exercise"`
	Done             bool   `json:"done"`
	WorkoutCompleted bool   `json:"workout_completed"`
	Streak           int    `json:"streak"`
	Message          string `json:"message"`
}

type historyOutput struct {
	Entries []historyEntry `json:"entries"`
	Total   int            `json:"total"`
}

type streakOutput struct {
	Streak       int  `json:"streak"`
	StreakGained bool `json:"streak_gained"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

func summarize(w models.Workout) workoutSummary {
	return workoutSummary{
		ID:          w.ID.String(),
		Day:         w.Day,
		Name:        w.Name,
		Completed:   w.CompletedCount(),
		Total:       len(w.Exercises),
		IsCompleted: w.IsCompleted,
	}
}

func detail(w models.Workout) workoutDetail {
	d := workoutDetail{
		ID:          w.ID.String(),
		Day:         w.Day,
		Name:        w.Name,
		IsCompleted: w.IsCompleted,
		Exercises:   make([]exerciseDetail, 0, len(w.Exercises)),
	}
	for i, e := range w.Exercises {
		d.Exercises = append(d.Exercises, exerciseDetail{
			ID:          e.ID.String(),
			Position:    i + 1,
			Name:        e.Name,
			Sets:        e.Sets,
			Reps:        e.Reps,
			IsCompleted: e.IsCompleted,
		})
	}
	return d
}

func toHistoryEntry(h models.WorkoutHistoryEntry) historyEntry {
	return historyEntry{
		ID:                 h.ID.String(),
		WorkoutName:        h.WorkoutName,
		Day:                h.Day,
		Date:               h.Date.Format(time.RFC3339),
		ExercisesCompleted: h.ExercisesCompleted,
		TotalExercises:     h.TotalExercises,
	}
}

// Tool handlers

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, listWorkoutsOutput, error) {
	workouts := s.store.Workouts()
	out := listWorkoutsOutput{Workouts: make([]workoutSummary, 0, len(workouts))}
	for _, w := range workouts {
		out.Workouts = append(out.Workouts, summarize(w))
	}
	return nil, out, nil
}

func (s *Server) handleGetWorkout(ctx context.Context, req *mcp.CallToolRequest, input workoutRefInput) (*mcp.CallToolResult, workoutDetail, error) {
	w, err := s.store.ResolveWorkout(input.Workout)
	if err != nil {
		return nil, workoutDetail{}, err
	}
	return nil, detail(w), nil
}

func (s *Server) handleToggleExercise(ctx context.Context, req *mcp.CallToolRequest, input toggleExerciseInput) (*mcp.CallToolResult, toggleOutput, error) {
	w, err := s.store.ResolveWorkout(input.Workout)
	if err != nil {
		return nil, toggleOutput{}, err
	}
	e, err := store.ResolveExercise(w, input.Exercise)
	if err != nil {
		return nil, toggleOutput{}, fmt.Errorf("%s: %w", w.Name, err)
	}

	completed := s.store.ToggleExerciseCompletion(w.ID, e.ID)

	updated, _ := s.store.Workout(w.ID)
	after, _ := updated.FindExercise(e.ID)
	out := toggleOutput{
		Exercise:         e.Name,
		Done:             after.IsCompleted,
		WorkoutCompleted: completed,
		Streak:           s.store.CurrentStreak(),
	}

	switch {
	case completed:
		out.Message = fmt.Sprintf("Completed %s! Streak is now %d.", w.Name, out.Streak)
	case after.IsCompleted:
		out.Message = fmt.Sprintf("Checked off %s (%d/%d)", e.Name, updated.CompletedCount(), len(updated.Exercises))
	default:
		out.Message = fmt.Sprintf("Unchecked %s (%d/%d)", e.Name, updated.CompletedCount(), len(updated.Exercises))
	}
	return nil, out, nil
}

func (s *Server) handleResetWorkout(ctx context.Context, req *mcp.CallToolRequest, input workoutRefInput) (*mcp.CallToolResult, simpleOutput, error) {
	w, err := s.store.ResolveWorkout(input.Workout)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	s.store.ResetWorkout(w.ID)
	return nil, simpleOutput{Message: fmt.Sprintf("Reset %s", w.Name)}, nil
}

func (s *Server) handleListHistory(ctx context.Context, req *mcp.CallToolRequest, input listHistoryInput) (*mcp.CallToolResult, historyOutput, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}
	history := s.store.WorkoutHistory()
	out := historyOutput{Entries: []historyEntry{}, Total: len(history)}
	for i, h := range history {
		if i == input.Limit {
			break
		}
		out.Entries = append(out.Entries, toHistoryEntry(h))
	}
	return nil, out, nil
}

func (s *Server) handleClearHistory(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, simpleOutput, error) {
	n := len(s.store.WorkoutHistory())
	s.store.ClearWorkoutHistory()
	return nil, simpleOutput{Message: fmt.Sprintf("Cleared %d history entries", n)}, nil
}

func (s *Server) handleGetStreak(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, streakOutput, error) {
	return nil, streakOutput{
		Streak:       s.store.CurrentStreak(),
		StreakGained: s.store.StreakGained(),
	}, nil
}

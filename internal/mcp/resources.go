// ABOUTME: MCP resource implementations for the workout tracker.
// ABOUTME: Provides fitleast://workouts, fitleast://history, and fitleast://summary resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	workoutsURI = "fitleast://workouts"
	historyURI  = "fitleast://history"
	summaryURI  = "fitleast://summary"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         workoutsURI,
		Name:        "Workout Split",
		Description: "Every workout in the split with its exercises and completion state",
		MIMEType:    "application/json",
	}, s.handleWorkoutsResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         historyURI,
		Name:        "Workout History",
		Description: "Completed workouts, most recent first",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)

	// Dashboard: streak, progress per day, and the last few completions.
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         summaryURI,
		Name:        "Training Summary",
		Description: "Current streak, progress through the split, and recent completions",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// Resource handlers

func (s *Server) handleWorkoutsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	workouts := s.store.Workouts()
	details := make([]workoutDetail, 0, len(workouts))
	for _, w := range workouts {
		details = append(details, detail(w))
	}
	return jsonResource(workoutsURI, map[string]any{"workouts": details})
}

func (s *Server) handleHistoryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	history := s.store.WorkoutHistory()
	entries := make([]historyEntry, 0, len(history))
	for _, h := range history {
		entries = append(entries, toHistoryEntry(h))
	}
	return jsonResource(historyURI, map[string]any{
		"entries": entries,
		"count":   len(entries),
	})
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	workouts := s.store.Workouts()
	history := s.store.WorkoutHistory()

	days := make([]workoutSummary, 0, len(workouts))
	completedWorkouts := 0
	doneExercises, totalExercises := 0, 0
	for _, w := range workouts {
		days = append(days, summarize(w))
		if w.IsCompleted {
			completedWorkouts++
		}
		doneExercises += w.CompletedCount()
		totalExercises += len(w.Exercises)
	}

	recent := make([]historyEntry, 0, 5)
	for i, h := range history {
		if i == 5 {
			break
		}
		recent = append(recent, toHistoryEntry(h))
	}

	result := map[string]any{
		"generated_at":   time.Now().Format(time.RFC3339),
		"current_streak": s.store.CurrentStreak(),
		"streak_gained":  s.store.StreakGained(),
		"split":          days,
		"recent_history": recent,
		"summary": map[string]int{
			"workouts":           len(workouts),
			"completed_workouts": completedWorkouts,
			"exercises_done":     doneExercises,
			"exercises_total":    totalExercises,
			"history_entries":    len(history),
		},
	}
	return jsonResource(summaryURI, result)
}

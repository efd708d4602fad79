// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/fitleast/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout and works on whichever backend
fitleast is configured to use.

DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "fitleast": {
        "command": "fitleast",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  list_workouts     The split with per-workout progress
  get_workout       One workout with its exercises
  toggle_exercise   Tick an exercise on or off
  reset_workout     Uncheck every exercise in a workout
  list_history      Completed workouts, newest first
  clear_history     Delete all history
  get_streak        Current streak and whether it was just gained

AVAILABLE RESOURCES:

  fitleast://workouts   The full split
  fitleast://history    Completion history
  fitleast://summary    Streak and progress dashboard`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(workoutStore)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		logger.WithField("backend", cfg.GetBackend()).Info("mcp server starting")
		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

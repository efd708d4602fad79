// ABOUTME: CLI commands for the rest countdown and workout stopwatch.
// ABOUTME: Both redraw a single terminal line and stop on Ctrl-C.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/fitleast/internal/timer"
	"github.com/spf13/cobra"
)

var timerCmd = &cobra.Command{
	Use:   "timer",
	Short: "Rest countdown and workout stopwatch",
	Long: `Timers for use during a workout.

COMMANDS:

  rest [30|60|90]   Count down a rest period (default 60 seconds)
  stopwatch         Time the whole workout until Ctrl-C`,
}

var timerRestCmd = &cobra.Command{
	Use:       "rest [seconds]",
	Short:     "Count down a rest period",
	Long:      `Count down a rest period. Presets are 30, 60 and 90 seconds; any whole number of seconds works.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"30", "60", "90"},
	Annotations: map[string]string{
		skipStore: "true",
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		rest, err := parseRest(args)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		countdown := timer.NewCountdown()
		countdown.Set(rest)
		fmt.Printf("\rRest %s", timer.FormatRemaining(rest))
		err = countdown.Run(ctx, func(remaining time.Duration) {
			fmt.Printf("\rRest %s", timer.FormatRemaining(remaining))
		})
		fmt.Println()

		if errors.Is(err, context.Canceled) {
			color.Yellow("⚠ Rest skipped with %s left", timer.FormatRemaining(countdown.Remaining()))
			return nil
		}
		if err != nil {
			return err
		}
		color.Green("✓ Rest over. Next set!")
		return nil
	},
}

var timerStopwatchCmd = &cobra.Command{
	Use:   "stopwatch",
	Short: "Time a workout until Ctrl-C",
	Args:  cobra.NoArgs,
	Annotations: map[string]string{
		skipStore: "true",
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		sw := timer.NewStopwatch(nil)
		sw.Start()

		ticker := time.NewTicker(10 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				sw.Pause()
				fmt.Println()
				color.Green("✓ Workout time: %s", timer.FormatElapsed(sw.Elapsed()))
				return nil
			case <-ticker.C:
				fmt.Printf("\r%s", timer.FormatElapsed(sw.Elapsed()))
			}
		}
	},
}

func parseRest(args []string) (time.Duration, error) {
	if len(args) == 0 {
		return timer.DefaultRest, nil
	}
	secs, err := strconv.Atoi(args[0])
	if err != nil || secs <= 0 {
		return 0, fmt.Errorf("invalid rest length: %s (use seconds, e.g. 30, 60 or 90)", args[0])
	}
	return time.Duration(secs) * time.Second, nil
}

func init() {
	timerCmd.AddCommand(timerRestCmd)
	timerCmd.AddCommand(timerStopwatchCmd)
	rootCmd.AddCommand(timerCmd)
}

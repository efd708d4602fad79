// ABOUTME: CLI commands for checking off exercises and resetting workouts.
// ABOUTME: Completing a workout prints the streak banner once.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/fitleast/internal/store"
	"github.com/spf13/cobra"
)

var toggleCmd = &cobra.Command{
	Use:     "toggle <workout> <exercise>...",
	Aliases: []string{"check", "t"},
	Short:   "Toggle exercises done/undone",
	Long: `Flip one or more exercises between done and not done.

Exercises are given by position (as shown by 'fitleast show'), ID, ID
prefix, or name. Checking off the last open exercise completes the
workout: it is added to your history and your streak goes up by one.

EXAMPLES:

  fitleast check 1 1                 # First exercise of day 1
  fitleast check 1 "incline bench press"
  fitleast check 2 1 2 3 4 5 6       # Finish day 2 in one go`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := workoutStore.ResolveWorkout(args[0])
		if err != nil {
			return err
		}

		for _, ref := range args[1:] {
			e, err := store.ResolveExercise(w, ref)
			if err != nil {
				return fmt.Errorf("%s: %w", w.Name, err)
			}

			completed := workoutStore.ToggleExerciseCompletion(w.ID, e.ID)

			updated, _ := workoutStore.Workout(w.ID)
			after, _ := updated.FindExercise(e.ID)
			progress := fmt.Sprintf("(%d/%d)", updated.CompletedCount(), len(updated.Exercises))
			if after.IsCompleted {
				color.Green("✓ %s %s", e.Name, progress)
			} else {
				color.Yellow("○ %s %s", e.Name, progress)
			}

			if completed {
				printStreakBanner(w.Name)
			}
		}
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset <workout>",
	Short: "Uncheck every exercise in a workout",
	Long: `Mark every exercise in a workout as not done, ready for next time.

History and streak are not affected.

EXAMPLES:

  fitleast reset 1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := workoutStore.ResolveWorkout(args[0])
		if err != nil {
			return err
		}

		workoutStore.ResetWorkout(w.ID)
		color.Green("✓ Reset %s", w.Name)
		return nil
	},
}

// printStreakBanner shows the streak-gained banner and dismisses it.
// A CLI run ends right after, so there is nothing left to time out.
func printStreakBanner(name string) {
	if !workoutStore.StreakGained() {
		return
	}
	fmt.Println()
	color.New(color.FgHiYellow, color.Bold).Printf("🔥 %s complete! Streak: %d\n", name, workoutStore.CurrentStreak())
	workoutStore.DismissStreakGained()
}

func init() {
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(resetCmd)
}

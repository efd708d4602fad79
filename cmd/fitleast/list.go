// ABOUTME: CLI commands for listing the split and showing one workout.
// ABOUTME: Also holds the column helpers shared by other commands.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/fitleast/internal/models"
	"github.com/spf13/cobra"
)

var listAll bool

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List the workout split",
	Long: `List every workout in the split with its progress.

OUTPUT FORMAT:

  Each line shows: DAY  NAME  DONE/TOTAL  ID

  The ID is an 8-character prefix you can use anywhere a workout is
  expected. Day numbers and names work too.

EXAMPLES:

  fitleast list          # One line per workout
  fitleast list --all    # Include every exercise`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		workouts := workoutStore.Workouts()
		if len(workouts) == 0 {
			fmt.Println("No workouts found.")
			return nil
		}

		for _, w := range workouts {
			fmt.Println(workoutLine(w))
			if listAll {
				printExercises(w, "    ")
			}
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <workout>",
	Short: "Show a workout's exercises",
	Long: `Show every exercise of one workout.

The workout can be given as a day number (1-3), an ID or ID prefix, or
its full name. Exercise positions in the first column can be passed to
'fitleast check'.

EXAMPLES:

  fitleast show 2
  fitleast show "legs - shoulders - cardio"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := workoutStore.ResolveWorkout(args[0])
		if err != nil {
			return err
		}

		fmt.Println(workoutLine(w))
		fmt.Println()
		printExercises(w, "  ")
		return nil
	},
}

func workoutLine(w models.Workout) string {
	faint := color.New(color.Faint)
	progress := fmt.Sprintf("%d/%d", w.CompletedCount(), len(w.Exercises))
	if w.IsCompleted {
		progress = color.GreenString("%s ✓", progress)
	}
	return fmt.Sprintf("%s %s %s %s",
		color.New(color.Bold).Sprintf("Day %d", w.Day),
		padRight(truncate(w.Name, 32), 32),
		padRight(progress, 6),
		faint.Sprint(w.ID.String()[:8]))
}

func printExercises(w models.Workout, indent string) {
	faint := color.New(color.Faint)
	for i, e := range w.Exercises {
		box := "[ ]"
		if e.IsCompleted {
			box = color.GreenString("[✓]")
		}
		fmt.Printf("%s%s %d. %s %s\n",
			indent,
			box,
			i+1,
			padRight(truncate(e.Name, 28), 28),
			faint.Sprint(setsReps(e)))
	}
}

func setsReps(e models.Exercise) string {
	return fmt.Sprintf("%d × %s", e.Sets, e.Reps)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "include exercises")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
}

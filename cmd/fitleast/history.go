// ABOUTME: CLI commands for workout history and the streak counter.
// ABOUTME: History is listed newest first; clearing it keeps the streak.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyYes   bool
)

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"h"},
	Short:   "List completed workouts",
	Long: `List completed workouts, most recent first.

OUTPUT FORMAT:

  Each line shows: DATE  DAY  NAME  EXERCISES

EXAMPLES:

  fitleast history          # Last 20 completions
  fitleast history -n 100   # Last 100
  fitleast history clear    # Delete all history (asks first)`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		history := workoutStore.WorkoutHistory()
		if len(history) == 0 {
			fmt.Println("No workouts completed yet.")
			return nil
		}

		faint := color.New(color.Faint)
		for i, h := range history {
			if historyLimit > 0 && i == historyLimit {
				faint.Printf("… %d more\n", len(history)-historyLimit)
				break
			}
			fmt.Printf("%s Day %d %s %s\n",
				faint.Sprint(h.Date.Local().Format("2006-01-02 15:04")),
				h.Day,
				padRight(truncate(h.WorkoutName, 32), 32),
				faint.Sprintf("%d/%d", h.ExercisesCompleted, h.TotalExercises))
		}
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all workout history",
	Long: `Delete every history entry. Workouts and the streak are kept.

Use -y to skip the confirmation prompt.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n := len(workoutStore.WorkoutHistory())
		if n == 0 {
			fmt.Println("History is already empty.")
			return nil
		}

		if !historyYes && !confirm(os.Stdin, fmt.Sprintf("Delete %d history entries? [y/N]: ", n)) {
			fmt.Println("Canceled.")
			return nil
		}

		workoutStore.ClearWorkoutHistory()
		color.Yellow("✗ Cleared %d history entries", n)
		return nil
	},
}

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show the current streak",
	Long: `Show how many workouts you have completed in your current streak.

The streak goes up by one each time a workout goes from incomplete to
complete. Unchecking exercises or resetting a workout never lowers it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		streak := workoutStore.CurrentStreak()
		if streak == 0 {
			fmt.Println("No streak yet. Finish a workout to start one.")
			return nil
		}
		color.New(color.FgHiYellow, color.Bold).Printf("🔥 %d\n", streak)
		fmt.Printf("%d workout%s completed\n", streak, plural(streak))
		return nil
	},
}

// confirm prints prompt and reports whether the answer was y or yes.
func confirm(in io.Reader, prompt string) bool {
	fmt.Print(prompt)
	var answer string
	_, _ = fmt.Fscanln(in, &answer)
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "max number of results (0 for all)")
	historyClearCmd.Flags().BoolVarP(&historyYes, "yes", "y", false, "skip confirmation")
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(streakCmd)
}

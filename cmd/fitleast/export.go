// ABOUTME: CLI command for exporting workout data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/fitleast/internal/models"
	"github.com/harperreed/fitleast/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportSince  string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export workout data",
	Long: `Export the split, history and streak in various formats.

FORMATS:

  json       Full JSON export (suitable for backup)
  yaml       YAML export (human-readable)
  markdown   Markdown tables (for sharing)

OPTIONS:

  --output, -o   Write to file instead of stdout
  --since        Only include history since this date (YYYY-MM-DD)

EXAMPLES:

  fitleast export json                         # Export all data as JSON
  fitleast export json -o backup.json          # Save to file
  fitleast export yaml                         # Export as YAML
  fitleast export markdown --since 2025-01-01  # History from 2025 onward`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]

		var since *time.Time
		if exportSince != "" {
			t, err := time.ParseInLocation("2006-01-02", exportSince, time.Local)
			if err != nil {
				return fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", exportSince)
			}
			since = &t
		}

		history := workoutStore.WorkoutHistory()
		if since != nil {
			history = models.FilterHistorySince(history, *since)
		}
		export := storage.NewExportData(workoutStore.Workouts(), history, workoutStore.CurrentStreak())

		var data []byte
		var err error

		switch format {
		case "json":
			data, err = export.ExportJSON()
		case "yaml":
			data, err = export.ExportYAML()
		case "markdown":
			data = []byte(export.ExportMarkdown(since))
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", format)
		}

		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
		} else {
			fmt.Println(string(data))
		}

		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only include history since date (YYYY-MM-DD)")

	rootCmd.AddCommand(exportCmd)
}

// ABOUTME: CLI command for moving workout data between storage backends.
// ABOUTME: Copies the raw stored values so nothing is re-seeded or re-encoded.
package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/fitleast/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateFrom   string
	migrateTo     string
	migrateDryRun bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate --from <backend> --to <backend>",
	Short: "Copy data between storage backends",
	Long: `Copy workouts, history and streak from one backend to another.

Backends: sqlite, badger, charm, redis. Both use the current data
directory and Redis settings. Values missing from the source are skipped,
everything else in the destination is overwritten.

EXAMPLES:

  fitleast migrate --from sqlite --to charm --dry-run   # Preview
  fitleast migrate --from sqlite --to charm             # Move to Charm Cloud
  fitleast migrate --from badger --to sqlite

Afterwards, point fitleast at the new backend with --backend or in
~/.config/fitleast/config.json.`,
	Args: cobra.NoArgs,
	Annotations: map[string]string{
		skipStore: "true",
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to := strings.ToLower(migrateFrom), strings.ToLower(migrateTo)
		if from == "" || to == "" {
			return errors.New("both --from and --to are required")
		}
		if from == to {
			return fmt.Errorf("source and destination are both %s", from)
		}
		if from == "memory" || to == "memory" {
			return errors.New("the memory backend holds nothing to migrate")
		}

		src, err := cfg.OpenBackend(from)
		if err != nil {
			return fmt.Errorf("failed to open source %s: %w", from, err)
		}
		defer src.Close()

		if migrateDryRun {
			color.Yellow("Dry run mode - no changes will be made")
			fmt.Println()
			for _, key := range storage.StoreKeys {
				value, err := src.Get(key)
				switch {
				case errors.Is(err, storage.ErrNotFound):
					fmt.Printf("  %s skip (not in %s)\n", padRight(key, 16), from)
				case err != nil:
					return fmt.Errorf("read %s: %w", key, err)
				default:
					fmt.Printf("  %s copy (%d bytes)\n", padRight(key, 16), len(value))
				}
			}
			return nil
		}

		dst, err := cfg.OpenBackend(to)
		if err != nil {
			return fmt.Errorf("failed to open destination %s: %w", to, err)
		}
		defer dst.Close()

		summary, err := storage.MigrateData(src, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		color.Green("✓ Migrated %s → %s", from, to)
		for _, key := range summary.Copied {
			fmt.Printf("  copied  %s\n", key)
		}
		for _, key := range summary.Skipped {
			fmt.Printf("  skipped %s\n", key)
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "", "source backend")
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "destination backend")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	rootCmd.AddCommand(migrateCmd)
}

// ABOUTME: Root Cobra command for fitleast CLI.
// ABOUTME: Loads config, sets up logging, and manages the storage/store lifecycle via PersistentPre/PostRunE.
package main

import (
	"fmt"
	"io"

	"github.com/harperreed/fitleast/internal/config"
	"github.com/harperreed/fitleast/internal/logging"
	"github.com/harperreed/fitleast/internal/storage"
	"github.com/harperreed/fitleast/internal/store"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// skipStore marks commands that manage storage themselves (or need none).
const skipStore = "skip-store"

var (
	flagBackend   string
	flagDataDir   string
	flagEphemeral bool
	flagLogLevel  string

	cfg          *config.Config
	logger       *logrus.Logger
	logCloser    io.Closer
	kvStore      storage.KV
	workoutStore *store.WorkoutStore
)

var rootCmd = &cobra.Command{
	Use:   "fitleast",
	Short: "Minimal 3-day split workout tracker",
	Long: `Fitleast tracks a fixed 3-day training split, one exercise at a time.

THE SPLIT:

  Day 1  Chest - Triceps - Cardio
  Day 2  Back - Biceps - Abs
  Day 3  Legs - Shoulders - Cardio

QUICK START:

  $ fitleast list                    # See the split and progress
  $ fitleast show 1                  # Exercises for day 1
  $ fitleast check 1 "bench press"   # Tick off an exercise (by name or position)
  $ fitleast check 1 2 3 4 5         # Tick off several at once
  $ fitleast history                 # Completed workouts, newest first
  $ fitleast streak                  # Current streak

Checking off the last exercise of a workout records it in history and
bumps your streak. Unchecking never takes the streak away.

TIMERS:

  $ fitleast timer rest 90           # Rest countdown (30, 60 or 90 seconds)
  $ fitleast timer stopwatch         # Workout stopwatch, Ctrl-C to stop

STORAGE:

  --backend selects sqlite (default), badger, charm, redis or memory.
  Data lives in ~/.local/share/fitleast unless --data-dir says otherwise.
  Settings can be saved in ~/.config/fitleast/config.json or passed as
  FITLEAST_BACKEND, FITLEAST_DATA_DIR, FITLEAST_REDIS_ADDR, FITLEAST_LOG_LEVEL.

MCP INTEGRATION:

  Run 'fitleast mcp' to start the Model Context Protocol server:

  {
    "mcpServers": {
      "fitleast": { "command": "fitleast", "args": ["mcp"] }
    }
  }`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch cmd.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd:
			return nil
		}

		// A failed RunE skips PostRunE; release anything left from it.
		_ = closeStore()

		var err error
		cfg, err = loadConfig(cmd)
		if err != nil {
			return err
		}

		level := cfg.GetLogLevel()
		if cfg.LogLevel == "" && !cfg.LogFile {
			// Keep stderr quiet around command output unless asked.
			level = "warn"
		}
		logger, logCloser = logging.Setup(logging.LoggerSetupParams{
			LogFileName: cfg.LogFilePath(),
			LogLevel:    level,
		})

		if cmd.Annotations[skipStore] != "" {
			return nil
		}
		return openStore()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeStore()
	},
}

// loadConfig reads the config file and applies any root flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	c, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		c.Backend = flagBackend
	}
	if flags.Changed("data-dir") {
		c.DataDir = flagDataDir
	}
	if flags.Changed("log-level") {
		c.LogLevel = flagLogLevel
	}
	if flagEphemeral {
		c.Backend = "memory"
	}
	return c, nil
}

func openStore() error {
	var err error
	kvStore, err = cfg.OpenStorage()
	if err != nil {
		kvStore = nil
		return fmt.Errorf("failed to open %s storage: %w", cfg.GetBackend(), err)
	}

	workoutStore = store.New(kvStore, store.WithLogger(logger))
	workoutStore.Initialize()
	return nil
}

func closeStore() error {
	var err error
	if kvStore != nil {
		err = kvStore.Close()
		kvStore = nil
	}
	workoutStore = nil
	if logCloser != nil {
		_ = logCloser.Close()
		logCloser = nil
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "storage backend: sqlite, badger, charm, redis, memory")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: ~/.local/share/fitleast)")
	rootCmd.PersistentFlags().BoolVar(&flagEphemeral, "ephemeral", false, "keep state in memory only; nothing is saved")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
}

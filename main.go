// shatter is a deterministic arcade combat simulation on a toroidal arena.
//
// Usage:
//
//	shatter play               - Play in a raylib window
//	shatter run                - Run headless autopilot matches
//	shatter serve              - Stream autopilot matches to websocket spectators
//	shatter scores             - Show stored high scores
//	shatter config dump PATH   - Write the effective configuration
//
// Global flags:
//
//	--config <path>  - YAML overlay on the embedded defaults
//	--seed <value>   - RNG seed (0 = time-based)
//	--db <path>      - Scores database (default: storage.path from config)
//	--log-json       - JSON logs on stdout
//	--log-level      - debug, info, warn or error
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pthm-cable/shatter/config"
)

var (
	flagConfig   string
	flagSeed     int64
	flagDBPath   string
	flagLogJSON  bool
	flagLogLevel string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "shatter",
	Short: "Shatter - a deterministic arcade combat simulation",
	Long: `Shatter simulates an agent fighting splitting targets on a wrap-around
arena with a fixed-timestep, seed-deterministic core.

Examples:
  shatter play
  shatter run --seed 42 --ticks 30000 --out runs/42
  shatter serve --addr :8080
  shatter scores --limit 20`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(flagLogJSON, flagLogLevel); err != nil {
			return err
		}
		if err := config.Init(flagConfig); err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config.yaml (empty = use defaults)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = time-based)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (empty = use config)")
	rootCmd.PersistentFlags().BoolVar(&flagLogJSON, "log-json", false, "Write JSON logs to stdout")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// resolveSeed returns the --seed flag, or a time-based seed when unset.
func resolveSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// dbPath returns the --db flag, or the configured storage path.
func dbPath() string {
	if flagDBPath != "" {
		return flagDBPath
	}
	return config.Cfg().Storage.Path
}

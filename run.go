package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/pthm-cable/shatter/config"
	"github.com/pthm-cable/shatter/game"
	"github.com/pthm-cable/shatter/storage"
	"github.com/pthm-cable/shatter/telemetry"
)

var (
	flagRunMatches     int
	flagRunTicks       int
	flagRunOut         string
	flagRunPerf        bool
	flagRunLogStats    bool
	flagRunSnapshotDir string
	flagRunNoDB        bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run headless autopilot matches",
	Long: `Run matches without a window, with the agent driven by the autopilot.
Match i uses seed+i, so a run is reproducible from its seed.

Examples:
  shatter run --seed 42
  shatter run --seed 42 --matches 20 --out runs/42 --perf`,
	Args: cobra.NoArgs,
	RunE: runHeadless,
}

func init() {
	runCmd.Flags().IntVar(&flagRunMatches, "matches", 1, "Number of matches to run")
	runCmd.Flags().IntVar(&flagRunTicks, "ticks", 90000, "Stop a match after N ticks (0 = until destroyed)")
	runCmd.Flags().StringVar(&flagRunOut, "out", "", "Output directory for CSV logs and config snapshot")
	runCmd.Flags().BoolVar(&flagRunPerf, "perf", false, "Record per-phase tick timings")
	runCmd.Flags().BoolVar(&flagRunLogStats, "log-stats", false, "Log window stats")
	runCmd.Flags().StringVar(&flagRunSnapshotDir, "snapshot-dir", "", "Save the final snapshot of each match here")
	runCmd.Flags().BoolVar(&flagRunNoDB, "no-db", false, "Do not record results in the scores database")
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg := config.Cfg()
	ctx := cmd.Context()
	seed := resolveSeed()

	output, err := telemetry.NewOutputManager(flagRunOut)
	if err != nil {
		return err
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		return fmt.Errorf("writing config snapshot: %w", err)
	}

	var store *storage.Store
	if !flagRunNoDB {
		store, err = storage.Open(dbPath())
		if err != nil {
			return err
		}
		defer store.Close()
	}

	g := game.NewGame(cfg, game.GameOptions{
		Seed:     seed,
		LogStats: flagRunLogStats,
		Output:   output,
		Perf:     flagRunPerf,
	})
	defer g.Close()

	slog.Info("starting headless run",
		"seed", seed,
		"matches", flagRunMatches,
		"max_ticks", flagRunTicks,
		"out", flagRunOut,
	)

	start := time.Now()
	var totalTicks int64
	best := int32(-1)
	for i := 0; i < flagRunMatches; i++ {
		if err := ctx.Err(); err != nil {
			slog.Warn("run interrupted", "completed", i)
			break
		}

		matchSeed := seed + int64(i)
		if i > 0 {
			g.StartNewGame(matchSeed)
		}
		summary := playAutopilot(g, matchSeed, flagRunTicks, func() bool { return ctx.Err() != nil })
		totalTicks += int64(summary.Ticks)
		best = max(best, summary.Score)
		if n := len(g.Bookmarks()); n > 0 {
			slog.Debug("match bookmarks", "seed", matchSeed, "count", n)
		}

		if flagRunSnapshotDir != "" {
			reason := "end"
			if summary.Destroyed {
				reason = "destroyed"
			}
			path, err := telemetry.SaveSnapshot(g.Dump(reason), flagRunSnapshotDir)
			if err != nil {
				slog.Error("failed to save snapshot", "error", err)
			} else {
				slog.Info("snapshot saved", "path", path)
			}
		}
		if store != nil {
			if _, err := store.SaveMatch(ctx, "run", "", summary); err != nil {
				return err
			}
		}
	}

	elapsed := time.Since(start)
	slog.Info("run complete",
		"ticks", totalTicks,
		"best_score", best,
		"elapsed", elapsed.Round(time.Millisecond),
		"ticks_per_sec", int(float64(totalTicks)/max(elapsed.Seconds(), 1e-9)),
	)
	return nil
}

// playAutopilot steps the current match under autopilot until the agent
// is destroyed, maxTicks is reached (0 = no limit) or stop returns true.
// The match is ended and its summary returned.
func playAutopilot(g *game.Game, seed int64, maxTicks int, stop func() bool) telemetry.MatchSummary {
	pilot := game.NewAutopilot(seed)
	for !g.Over() {
		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			break
		}
		if g.Tick()%1024 == 0 && stop() {
			break
		}
		g.SetInput(pilot.Decide(g))
		g.Step()
	}
	g.End()
	return g.Summary()
}

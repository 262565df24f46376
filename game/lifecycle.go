package game

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/shatter/components"
	"github.com/pthm-cable/shatter/telemetry"
)

// StartNewGame resets all match state and reseeds the random stream.
func (g *Game) StartNewGame(seed int64) {
	cfg := g.config()

	g.seed = seed
	g.rng = rand.New(rand.NewSource(seed))
	g.targets.Clear()
	g.projectiles.Clear()
	g.spawner.Reset()

	radius := float32(cfg.Agent.Radius)
	g.agent = components.Agent{
		Radius:       radius,
		AimDirection: components.Vec2{X: 0, Y: 1},
		FireCooldown: float32(cfg.Agent.FireCooldown),
	}
	g.counters.Health = int32(cfg.Agent.MaxHealth)
	g.counters.Score = 0
	g.input = Input{}
	g.explosions = g.explosions[:0]

	g.tick = 0
	g.destroyed = false
	g.over = false
	g.accumulator = 0
	g.shots = 0
	g.spawns = 0
	g.collector.Reset(0)
	g.bookmarks.Reset()
	g.highlights = nil

	slog.Info("match_start", "seed", seed, "health", g.counters.Health)
	g.publishSnapshot()
}

// Summary describes the current match so far.
func (g *Game) Summary() telemetry.MatchSummary {
	return telemetry.MatchSummary{
		Seed:        g.seed,
		Ticks:       g.tick,
		DurationSec: float64(g.tick) * g.config().Physics.DT,
		Score:       g.counters.Score,
		Health:      g.counters.Health,
		Destroyed:   g.destroyed,
		Spawns:      g.spawns,
		Shots:       g.shots,
		EndedAt:     time.Now().UTC(),
	}
}

// End stops the match without the agent being destroyed.
func (g *Game) End() {
	if g.over {
		return
	}
	g.over = true
	g.finishMatch()
}

// finishMatch logs the result and records it in the run output.
func (g *Game) finishMatch() {
	summary := g.Summary()
	slog.Info("match_end", "match", summary)
	if err := g.output.WriteMatch(summary); err != nil {
		slog.Error("failed to write match", "error", err)
	}
}

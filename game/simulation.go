package game

import (
	"log/slog"

	"github.com/pthm-cable/shatter/components"
	"github.com/pthm-cable/shatter/systems"
	"github.com/pthm-cable/shatter/telemetry"
)

// Step runs one fixed tick. Phases run in a fixed order and each completes
// before the next starts:
//
//	sweep -> agent -> integrate (targets || projectiles) -> hits -> collide -> spawn -> commit
//
// A started tick always runs to completion. Step is a no-op once the match is over.
func (g *Game) Step() {
	if g.over {
		return
	}
	dt := g.config().Derived.DT32

	g.perf.StartTick()
	g.explosions = g.explosions[:0]

	// The destroyed signal is raised by the first tick that starts without health.
	if g.counters.Health <= 0 {
		g.destroyed = true
		g.over = true
		slog.Info("agent_destroyed", "tick", g.tick, "score", g.counters.Score)
		g.publishSnapshot()
		g.perf.EndTick()
		g.finishMatch()
		return
	}

	g.perf.StartPhase(telemetry.PhaseSweep)
	g.sweepProjectiles()

	g.perf.StartPhase(telemetry.PhaseAgent)
	systems.MoveAgent(&g.agent, g.input.Target, g.input.FreeAim, g.agentParams, dt)
	shots := systems.FireAgent(&g.agent, g.input.Firing, g.agentParams, g.rng, g.projectiles, dt)
	g.shots += shots
	g.collector.RecordShots(shots)
	g.spawner.Advance(dt)

	g.perf.StartPhase(telemetry.PhaseIntegrate)
	g.integrate(dt)

	g.perf.StartPhase(telemetry.PhaseHits)
	var hits systems.HitResult
	hits, g.explosions = systems.DetectHits(
		g.targets, g.projectiles, &g.agent, &g.counters,
		g.arena, g.hitParams, g.explosions,
	)
	g.collector.RecordHits(hits.ProjectileHits, hits.AgentHits, hits.Fragments)
	if hits.AgentHits > 0 {
		slog.Debug("agent_hit", "tick", g.tick, "health", g.counters.Health)
	}

	g.perf.StartPhase(telemetry.PhaseCollide)
	contacts := systems.ResolveCollisions(
		g.targets.Items(), g.arena,
		float32(g.config().Targets.BounceStrength), g.config().Derived.Epsilon32, dt,
	)
	g.collector.RecordContacts(contacts)

	g.perf.StartPhase(telemetry.PhaseSpawn)
	if g.spawner.Ready() && g.spawner.TrySpawn(g.rng, g.arena, g.agent.Position, g.targets) {
		g.spawns++
		g.collector.RecordSpawn()
		slog.Debug("target_spawned", "tick", g.tick, "cooldown", g.spawner.Duration)
	}

	g.perf.StartPhase(telemetry.PhaseCommit)
	g.commit()
	g.tick++
	g.publishSnapshot()
	g.perf.EndTick()

	g.flushTelemetry()
}

// sweepProjectiles removes projectiles that timed out or exploded last tick.
// Exploded projectiles stay in the store for exactly one committed snapshot.
func (g *Game) sweepProjectiles() {
	g.projectiles.RemoveFunc(func(p *components.Projectile) bool {
		return !p.Alive()
	})
}

// commit swap-removes targets killed this tick.
func (g *Game) commit() {
	g.targets.RemoveFunc(func(t *components.Target) bool {
		return !t.Alive
	})
}

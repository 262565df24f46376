package game

import (
	"github.com/pthm-cable/shatter/components"
	"github.com/pthm-cable/shatter/telemetry"
)

// publishSnapshot copies the committed state into a fresh snapshot.
// Published snapshots are never mutated again.
func (g *Game) publishSnapshot() {
	s := components.Snapshot{
		Tick:           g.tick,
		Health:         g.counters.Health,
		MaxHealth:      int32(g.config().Agent.MaxHealth),
		Score:          g.counters.Score,
		AgentDestroyed: g.destroyed,
		Agent: components.AgentView{
			Position:         g.agent.Position,
			PreviousPosition: g.agent.PreviousPosition,
			AimDirection:     g.agent.AimDirection,
			Radius:           g.agent.Radius,
		},
		Targets:     make([]components.TargetView, 0, g.targets.Len()),
		Projectiles: make([]components.ProjectileView, 0, g.projectiles.Len()),
	}

	for _, t := range g.targets.Items() {
		s.Targets = append(s.Targets, components.TargetView{
			Position:     t.Position,
			Velocity:     t.Velocity,
			Radius:       t.Radius,
			TargetRadius: t.TargetRadius,
			Stage:        t.Stage,
			Archetype:    t.Archetype,
			Alive:        t.Alive,
		})
	}
	for _, p := range g.projectiles.Items() {
		// Timed-out projectiles await the sweep and are not shown.
		if !p.Alive() && !p.Exploded {
			continue
		}
		s.Projectiles = append(s.Projectiles, components.ProjectileView{
			Position: p.Position,
			Velocity: p.Velocity,
			Exploded: p.Exploded,
		})
	}
	if len(g.explosions) > 0 {
		s.Explosions = append([]components.Explosion(nil), g.explosions...)
	}

	g.snapMu.Lock()
	g.snapshot = s
	g.snapMu.Unlock()
}

// Snapshot returns the latest committed snapshot. It is safe to call from any
// goroutine. The returned slices must be treated as read-only.
func (g *Game) Snapshot() components.Snapshot {
	g.snapMu.RLock()
	defer g.snapMu.RUnlock()
	return g.snapshot
}

// Dump wraps the latest snapshot with the match context for saving.
func (g *Game) Dump(reason string) *telemetry.Dump {
	return &telemetry.Dump{
		Version:    telemetry.SnapshotVersion,
		Seed:       g.seed,
		Reason:     reason,
		HalfWidth:  g.arena.Extents.X,
		HalfHeight: g.arena.Extents.Y,
		State:      g.Snapshot(),
		Bookmarks:  append([]telemetry.Bookmark(nil), g.highlights...),
	}
}

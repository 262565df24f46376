package systems

import "github.com/pthm-cable/shatter/components"

// IntegrateProjectiles advances projectiles by dt. It only touches the given
// slice, so disjoint chunks may run concurrently.
func IntegrateProjectiles(projectiles []components.Projectile, arena Arena, dt float32) {
	for i := range projectiles {
		p := &projectiles[i]
		if !p.Alive() {
			continue
		}
		p.TimeRemaining -= dt
		p.Position = arena.Wrap(p.Position.Add(p.Velocity.Scale(dt)))
	}
}

// IntegrateTargets clamps speed, advances position and grows the radius
// toward its target at one unit per second.
func IntegrateTargets(targets []components.Target, arena Arena, maxSpeed, dt float32) {
	maxSpeedSq := maxSpeed * maxSpeed
	for i := range targets {
		t := &targets[i]
		if !t.Alive {
			continue
		}
		if speedSq := t.Velocity.LenSq(); speedSq > maxSpeedSq {
			t.Velocity = t.Velocity.Scale(maxSpeed / sqrt32(speedSq))
		}
		t.Position = arena.Wrap(t.Position.Add(t.Velocity.Scale(dt)))
		t.Radius = min(t.TargetRadius, t.Radius+dt)
	}
}

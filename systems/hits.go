package systems

import "github.com/pthm-cable/shatter/components"

// Counters are the per-match scalars written only by DetectHits.
type Counters struct {
	Health int32
	Score  int32
}

// StageTable holds the per-stage mass and radius tables. Stage 0 is terminal.
type StageTable struct {
	Masses []float32
	Radii  []float32
}

// HitParams configures hit detection and fragmentation.
type HitParams struct {
	Stages                StageTable
	ProjectileRadius      float32
	ExplosionStrength     float32
	FragmentSeparation    float32
	FragmentStartFraction float32
	Epsilon               float32
}

// HitResult summarizes one hit-detection pass.
type HitResult struct {
	ProjectileHits int
	AgentHits      int
	Fragments      int
}

// Kills returns the number of targets killed in the pass.
func (r HitResult) Kills() int { return r.ProjectileHits + r.AgentHits }

// DetectHits tests every target present at the start of the call against
// the projectiles and then the agent. Each target takes at most one hit,
// from the first overlapping projectile in index order. Fragments are
// appended to targets but are not tested until the next call.
// Explosion events are appended to events and the extended slice returned.
func DetectHits(
	targets *components.Dense[components.Target],
	projectiles *components.Dense[components.Projectile],
	agent *components.Agent,
	counters *Counters,
	arena Arena,
	params HitParams,
	events []components.Explosion,
) (HitResult, []components.Explosion) {
	var result HitResult

	n := targets.Len()
	for i := 0; i < n; i++ {
		t := targets.At(i)
		if !t.Alive {
			continue
		}

		hit, impact := false, components.Vec2{}
		for j := 0; j < projectiles.Len(); j++ {
			p := projectiles.At(j)
			if !p.Alive() {
				continue
			}
			delta := arena.WrapDelta(t.Position, p.Position)
			r := t.Radius + params.ProjectileRadius
			if delta.LenSq() < r*r {
				p.Explode()
				events = append(events, components.Explosion{Position: p.Position})
				hit, impact = true, delta
				result.ProjectileHits++
				break
			}
		}

		if !hit && counters.Health > 0 {
			delta := arena.WrapDelta(t.Position, agent.Position)
			r := t.Radius + agent.Radius
			if delta.LenSq() < r*r {
				counters.Health--
				hit, impact = true, delta
				result.AgentHits++
			}
		}

		if !hit {
			continue
		}
		t.Kill()
		counters.Score++

		if t.Stage > 0 {
			// Copy the parent: Push may reallocate and invalidate t.
			parent := *t
			a, b := fragment(parent, impact, arena, params)
			targets.Push(a)
			targets.Push(b)
			result.Fragments += 2
		}
	}

	return result, events
}

// fragment splits parent into two children one stage down. impact points
// from the parent toward whatever hit it. The children are offset along the
// perpendicular of the impact direction and kicked away from the impact.
func fragment(parent components.Target, impact components.Vec2, arena Arena, params HitParams) (components.Target, components.Target) {
	dir := impact.Scale(1 / safeLen(impact, params.Epsilon))
	offset := dir.Perp().Scale(params.FragmentSeparation * parent.Radius)

	stage := parent.Stage - 1
	mass := params.Stages.Masses[stage]
	radius := params.Stages.Radii[stage]
	velocity := parent.Velocity.Sub(dir.Scale(params.ExplosionStrength / mass))

	child := components.Target{
		Velocity:     velocity,
		Mass:         mass,
		Radius:       params.FragmentStartFraction * radius,
		TargetRadius: radius,
		Stage:        stage,
		Archetype:    parent.Archetype,
		Alive:        true,
	}
	a, b := child, child
	a.Position = arena.Wrap(parent.Position.Add(offset))
	b.Position = arena.Wrap(parent.Position.Sub(offset))
	return a, b
}

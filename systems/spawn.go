package systems

import (
	"math/rand"

	"github.com/pthm-cable/shatter/components"
)

// SpawnParams configures target spawning.
type SpawnParams struct {
	Stages          StageTable
	InitialStage    uint32
	Archetypes      int
	MaxStartSpeed   float32
	StartFraction   float32 // Initial radius as a fraction of the stage radius
	AvoidRadius     float32
	InitialCooldown float32
	Persistence     float32
	MinCooldown     float32
}

// Spawner holds the spawn cooldown. The cooldown persists across ticks and
// its duration decays geometrically after every successful spawn.
type Spawner struct {
	Params   SpawnParams
	Cooldown float32
	Duration float32
}

// NewSpawner returns a spawner whose first attempt happens after the initial cooldown.
func NewSpawner(params SpawnParams) *Spawner {
	s := &Spawner{Params: params}
	s.Reset()
	return s
}

// Reset restores the initial cooldown schedule.
func (s *Spawner) Reset() {
	s.Cooldown = s.Params.InitialCooldown
	s.Duration = s.Params.InitialCooldown
}

// Advance decrements the cooldown by dt.
func (s *Spawner) Advance(dt float32) {
	s.Cooldown -= dt
}

// Ready reports whether a spawn attempt is due.
func (s *Spawner) Ready() bool {
	return s.Cooldown <= 0
}

// SpawnRadius returns the full radius of a freshly spawned target.
func (s *Spawner) SpawnRadius() float32 {
	return s.Params.Stages.Radii[s.Params.InitialStage]
}

// ValidSpawn reports whether a target of the given radius may appear at
// candidate. Touching counts as overlap.
func ValidSpawn(candidate, avoid components.Vec2, avoidRadius, radius float32, targets []components.Target, arena Arena) bool {
	p := arena.WrapDelta(avoid, candidate)
	r := avoidRadius + radius
	if p.LenSq() <= r*r {
		return false
	}
	for i := range targets {
		t := &targets[i]
		if !t.Alive {
			continue
		}
		p = arena.WrapDelta(t.Position, candidate)
		r = t.Radius + radius
		if p.LenSq() <= r*r {
			return false
		}
	}
	return true
}

// TrySpawn samples one candidate point and commits a new target if it is valid.
// A rejected candidate is not retried; the next call draws a fresh one.
// Returns false without drawing when the cooldown has not elapsed.
func (s *Spawner) TrySpawn(
	rng *rand.Rand,
	arena Arena,
	avoid components.Vec2,
	targets *components.Dense[components.Target],
) bool {
	if !s.Ready() {
		return false
	}

	candidate := arena.RandomPoint(rng)
	if !ValidSpawn(candidate, avoid, s.Params.AvoidRadius, s.SpawnRadius(), targets.Items(), arena) {
		return false
	}

	s.Cooldown += s.Duration
	s.Duration = max(s.Duration*s.Params.Persistence, s.Params.MinCooldown)

	stage := s.Params.InitialStage
	radius := s.Params.Stages.Radii[stage]
	targets.Push(components.Target{
		Position:     candidate,
		Velocity:     RandomInUnitDisc(rng).Scale(s.Params.MaxStartSpeed),
		Mass:         s.Params.Stages.Masses[stage],
		Radius:       s.Params.StartFraction * radius,
		TargetRadius: radius,
		Stage:        stage,
		Archetype:    uint32(rng.Intn(s.Params.Archetypes)),
		Alive:        true,
	})
	return true
}

package game

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/shatter/components"
)

// Autopilot drives the agent in headless runs. It keeps the nearest target
// behind the agent, so the agent retreats from it while shooting at it, and
// otherwise orbits the arena centre.
type Autopilot struct {
	rng       *rand.Rand
	angle     float64
	orbitRate float64 // radians per second
	jitter    float32
	evadeDist float32
}

// NewAutopilot returns an autopilot with its own random stream so the
// simulation's stream is unaffected by how inputs are produced.
func NewAutopilot(seed int64) *Autopilot {
	rng := rand.New(rand.NewSource(seed ^ 0x5eed))
	return &Autopilot{
		rng:       rng,
		angle:     rng.Float64() * 2 * math.Pi,
		orbitRate: 0.6,
		jitter:    0.5,
		evadeDist: 3,
	}
}

// Decide returns the input for the next tick.
func (a *Autopilot) Decide(g *Game) Input {
	dt := g.config().Physics.DT
	ext := g.arena.Extents
	a.angle += a.orbitRate * dt

	agentPos := g.agent.Position
	nearest, found := a.nearestTarget(g)
	if !found {
		r := 0.5 * min(ext.X, ext.Y)
		s, c := math.Sincos(a.angle)
		return Input{
			Target:  components.Vec2{X: float32(c) * r, Y: float32(s) * r},
			FreeAim: true,
		}
	}

	// Put the cursor on the far side of the agent from the target: the agent
	// fires away from the cursor, straight at the target.
	away := g.arena.WrapDelta(nearest, agentPos).Normalize()
	if away == (components.Vec2{}) {
		away = components.Vec2{X: 1}
	}
	target := agentPos.Add(away.Scale(a.evadeDist))
	target.X += (a.rng.Float32()*2 - 1) * a.jitter
	target.Y += (a.rng.Float32()*2 - 1) * a.jitter

	// Stay clear of the seam so the agent never has to cross it.
	margin := float32(0.9)
	target.X = clampFloat(target.X, -ext.X*margin, ext.X*margin)
	target.Y = clampFloat(target.Y, -ext.Y*margin, ext.Y*margin)

	return Input{Target: target, Firing: true, FreeAim: true}
}

func (a *Autopilot) nearestTarget(g *Game) (components.Vec2, bool) {
	best := float32(math.MaxFloat32)
	var pos components.Vec2
	found := false
	for _, t := range g.targets.Items() {
		if !t.Alive {
			continue
		}
		if d := g.arena.WrapDelta(g.agent.Position, t.Position).LenSq(); d < best {
			best, pos, found = d, t.Position, true
		}
	}
	return pos, found
}

func clampFloat(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package game

import (
	"math"

	"github.com/pthm-cable/shatter/components"
)

// Advance adds frameDt seconds of wall-clock time and runs as many whole
// ticks as fit, at most physics.max_steps_per_frame. Debt beyond the cap is
// dropped, keeping only the fractional remainder. Returns the ticks run.
func (g *Game) Advance(frameDt float64) int {
	if g.over {
		g.accumulator = 0
		g.frameExplosions = g.frameExplosions[:0]
		return 0
	}

	dt := g.config().Physics.DT
	maxSteps := g.config().Physics.MaxStepsPerFrame

	g.frameExplosions = g.frameExplosions[:0]
	g.accumulator += frameDt
	steps := 0
	for g.accumulator >= dt && steps < maxSteps && !g.over {
		g.Step()
		g.frameExplosions = append(g.frameExplosions, g.explosions...)
		g.accumulator -= dt
		steps++
	}
	if g.accumulator >= dt {
		g.accumulator = math.Mod(g.accumulator, dt)
	}
	return steps
}

// Interpolation returns the fraction of a tick accumulated but not yet
// simulated, in [0, 1). Renderers extrapolate by Interpolation()*dt seconds.
func (g *Game) Interpolation() float32 {
	return float32(g.accumulator / g.config().Physics.DT)
}

// FrameExplosions returns the explosion events of every tick run by the last
// Advance call. The slice is reused by the next call.
func (g *Game) FrameExplosions() []components.Explosion {
	return g.frameExplosions
}

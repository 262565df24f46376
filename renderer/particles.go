package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/shatter/camera"
	"github.com/pthm-cable/shatter/components"
)

const (
	flashLife   = 0.35 // seconds
	flashRadius = 0.9  // world units at full size
)

type flash struct {
	pos  components.Vec2
	life float32
}

// ExplosionRenderer draws a short expanding flash for each explosion event.
// Flashes age on wall-clock time, independent of the tick rate.
type ExplosionRenderer struct {
	flashes []flash
}

// NewExplosionRenderer creates a new explosion renderer.
func NewExplosionRenderer() *ExplosionRenderer {
	return &ExplosionRenderer{}
}

// Add starts a flash for each event.
func (r *ExplosionRenderer) Add(events []components.Explosion) {
	for _, e := range events {
		r.flashes = append(r.flashes, flash{pos: e.Position, life: flashLife})
	}
}

// Update ages flashes by frameDt seconds and drops expired ones.
func (r *ExplosionRenderer) Update(frameDt float32) {
	kept := r.flashes[:0]
	for _, f := range r.flashes {
		f.life -= frameDt
		if f.life > 0 {
			kept = append(kept, f)
		}
	}
	r.flashes = kept
}

// Clear drops all flashes.
func (r *ExplosionRenderer) Clear() {
	r.flashes = r.flashes[:0]
}

// Draw renders all live flashes.
func (r *ExplosionRenderer) Draw(cam *camera.Camera) {
	for _, f := range r.flashes {
		lifeRatio := f.life / flashLife
		size := flashRadius * (1 - lifeRatio*lifeRatio) * cam.Zoom
		size = max(size, 1)

		color := rl.Color{R: 255, G: 190, B: 80, A: uint8(lifeRatio * 220)}
		s := cam.WorldToScreen(f.pos)
		rl.DrawCircleV(rl.NewVector2(s.X, s.Y), size, color)
		rl.DrawCircleLinesV(rl.NewVector2(s.X, s.Y), size*1.2, rl.Fade(rl.White, lifeRatio))
	}
}

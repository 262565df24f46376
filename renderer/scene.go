// Package renderer draws committed snapshots with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/shatter/camera"
	"github.com/pthm-cable/shatter/components"
)

// archetypeColors is indexed by target archetype modulo its length.
var archetypeColors = []rl.Color{
	{R: 120, G: 170, B: 230, A: 255},
	{R: 230, G: 120, B: 150, A: 255},
	{R: 140, G: 210, B: 130, A: 255},
	{R: 220, G: 190, B: 100, A: 255},
	{R: 180, G: 140, B: 230, A: 255},
}

var (
	projectileColor = rl.Color{R: 255, G: 240, B: 200, A: 255}
	agentColor      = rl.Color{R: 240, G: 240, B: 255, A: 255}
	aimColor        = rl.Color{R: 255, G: 120, B: 80, A: 255}
	borderColor     = rl.Color{R: 50, G: 60, B: 70, A: 255}
)

// SceneOptions selects optional debug drawing.
type SceneOptions struct {
	Ghosts     bool
	Velocities bool
	Hitboxes   bool
}

// Scene draws targets, projectiles and the agent from a snapshot.
type Scene struct {
	cam              *camera.Camera
	projectileRadius float32
}

// NewScene creates a scene renderer for the given camera.
func NewScene(cam *camera.Camera, projectileRadius float32) *Scene {
	return &Scene{cam: cam, projectileRadius: projectileRadius}
}

// Draw renders snap. Moving objects are extrapolated by lead seconds, the
// time accumulated since the snapshot's tick; the agent is interpolated
// between its previous and current position by alpha.
func (s *Scene) Draw(snap components.Snapshot, alpha, lead float32, opts SceneOptions) {
	s.drawBorder()

	for _, t := range snap.Targets {
		if !t.Alive {
			continue
		}
		pos := s.cam.Arena.Wrap(t.Position.Add(t.Velocity.Scale(lead)))
		color := archetypeColors[int(t.Archetype)%len(archetypeColors)]

		s.circle(pos, t.Radius, color, opts.Ghosts)
		if opts.Hitboxes {
			sp := s.cam.WorldToScreen(pos)
			rl.DrawCircleLinesV(rl.NewVector2(sp.X, sp.Y), t.TargetRadius*s.cam.Zoom, rl.Fade(color, 0.5))
		}
		if opts.Velocities {
			s.line(pos, pos.Add(t.Velocity.Scale(0.25)), rl.Yellow)
		}
	}

	for _, p := range snap.Projectiles {
		if p.Exploded {
			continue
		}
		pos := s.cam.Arena.Wrap(p.Position.Add(p.Velocity.Scale(lead)))
		s.circle(pos, s.projectileRadius, projectileColor, opts.Ghosts)
	}

	a := snap.Agent
	delta := s.cam.Arena.WrapDelta(a.PreviousPosition, a.Position)
	pos := s.cam.Arena.Wrap(a.PreviousPosition.Add(delta.Scale(alpha)))
	agent := agentColor
	if snap.AgentDestroyed {
		agent = rl.Gray
	}
	s.circle(pos, a.Radius, agent, opts.Ghosts)
	s.line(pos, pos.Add(a.AimDirection.Scale(a.Radius*1.6)), aimColor)
	s.line(pos, pos.Sub(a.AimDirection.Scale(a.Radius)), rl.Fade(aimColor, 0.4))
}

func (s *Scene) circle(pos components.Vec2, radius float32, color rl.Color, ghosts bool) {
	r := radius * s.cam.Zoom
	if s.cam.IsVisible(pos, radius) {
		sp := s.cam.WorldToScreen(pos)
		rl.DrawCircleV(rl.NewVector2(sp.X, sp.Y), r, color)
	}
	if !ghosts {
		return
	}
	for _, g := range s.cam.GhostPositions(pos, radius) {
		rl.DrawCircleV(rl.NewVector2(g.X, g.Y), r, color)
	}
}

// line draws a short segment from a; b is taken relative to a so segments
// crossing the seam are not stretched across the screen.
func (s *Scene) line(a, b components.Vec2, color rl.Color) {
	sa := s.cam.WorldToScreen(a)
	d := s.cam.Arena.WrapDelta(a, b).Scale(s.cam.Zoom)
	rl.DrawLineEx(rl.NewVector2(sa.X, sa.Y), rl.NewVector2(sa.X+d.X, sa.Y-d.Y), 2, color)
}

func (s *Scene) drawBorder() {
	ext := s.cam.Arena.Extents
	tl := s.cam.WorldToScreen(components.Vec2{X: -ext.X, Y: ext.Y})
	w := s.cam.Arena.Width() * s.cam.Zoom
	h := s.cam.Arena.Height() * s.cam.Zoom
	rl.DrawRectangleLinesEx(rl.Rectangle{X: tl.X, Y: tl.Y, Width: w, Height: h}, 1, borderColor)
}

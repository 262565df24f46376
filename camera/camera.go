// Package camera maps the arena onto the viewer window.
package camera

import (
	"github.com/pthm-cable/shatter/components"
	"github.com/pthm-cable/shatter/systems"
)

// Camera controls the viewport into the arena. World space is centred on
// the origin with y up; screen space has its origin top-left with y down.
type Camera struct {
	// Center is the world point shown at the middle of the viewport
	Center components.Vec2

	// Zoom in pixels per world unit
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	Arena systems.Arena

	// Zoom constraints
	MinZoom, MaxZoom float32

	defaultZoom float32
}

// New creates a camera centred on the arena at the given zoom.
func New(viewportW, viewportH float32, arena systems.Arena, zoom float32) *Camera {
	c := &Camera{
		Zoom:        zoom,
		ViewportW:   viewportW,
		ViewportH:   viewportH,
		Arena:       arena,
		MaxZoom:     zoom * 4,
		defaultZoom: zoom,
	}
	c.updateMinZoom()
	c.SetZoom(zoom)
	return c
}

// updateMinZoom keeps the visible area within one copy of the arena.
func (c *Camera) updateMinZoom() {
	c.MinZoom = max(c.ViewportW/c.Arena.Width(), c.ViewportH/c.Arena.Height())
	if c.MaxZoom < c.MinZoom {
		c.MaxZoom = c.MinZoom
	}
}

// WorldToScreen converts a world point to screen coordinates, using the
// copy of the point nearest the camera centre.
func (c *Camera) WorldToScreen(p components.Vec2) components.Vec2 {
	return c.deltaToScreen(c.Arena.WrapDelta(c.Center, p))
}

func (c *Camera) deltaToScreen(d components.Vec2) components.Vec2 {
	return components.Vec2{
		X: c.ViewportW/2 + d.X*c.Zoom,
		Y: c.ViewportH/2 - d.Y*c.Zoom,
	}
}

// ScreenToWorld converts screen coordinates to a wrapped world point.
func (c *Camera) ScreenToWorld(s components.Vec2) components.Vec2 {
	d := components.Vec2{
		X: (s.X - c.ViewportW/2) / c.Zoom,
		Y: -(s.Y - c.ViewportH/2) / c.Zoom,
	}
	return c.Arena.Wrap(c.Center.Add(d))
}

// IsVisible reports whether a circle could overlap the viewport.
func (c *Camera) IsVisible(p components.Vec2, radius float32) bool {
	return c.visibleDelta(c.Arena.WrapDelta(c.Center, p), radius)
}

func (c *Camera) visibleDelta(d components.Vec2, radius float32) bool {
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return abs(d.X) <= halfW && abs(d.Y) <= halfH
}

// GhostPositions returns the screen positions of the other arena copies of
// a circle that are visible, so objects crossing the seam draw on both sides.
func (c *Camera) GhostPositions(p components.Vec2, radius float32) []components.Vec2 {
	d := c.Arena.WrapDelta(c.Center, p)
	w, h := c.Arena.Width(), c.Arena.Height()

	var ghosts []components.Vec2
	for _, ox := range [3]float32{-w, 0, w} {
		for _, oy := range [3]float32{-h, 0, h} {
			if ox == 0 && oy == 0 {
				continue
			}
			g := components.Vec2{X: d.X + ox, Y: d.Y + oy}
			if c.visibleDelta(g, radius) {
				ghosts = append(ghosts, c.deltaToScreen(g))
			}
		}
	}
	return ghosts
}

// Resize updates viewport dimensions and recalculates zoom constraints.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.updateMinZoom()
	c.SetZoom(c.Zoom)
}

// Pan moves the camera by a delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	c.Center = c.Arena.Wrap(c.Center.Add(components.Vec2{X: dx / c.Zoom, Y: -dy / c.Zoom}))
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = max(c.MinZoom, min(zoom, c.MaxZoom))
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset recentres the camera at its initial zoom.
func (c *Camera) Reset() {
	c.Center = components.Vec2{}
	c.SetZoom(c.defaultZoom)
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

package camera

import (
	"math"
	"testing"

	"github.com/pthm-cable/shatter/components"
	"github.com/pthm-cable/shatter/systems"
)

func newTestCamera() *Camera {
	return New(1280, 720, systems.NewArena(20, 11.25), 32)
}

func near(a, b components.Vec2) bool {
	return math.Abs(float64(a.X-b.X)) < 0.01 && math.Abs(float64(a.Y-b.Y)) < 0.01
}

func TestWorldToScreen(t *testing.T) {
	cam := newTestCamera()

	tests := []struct {
		name  string
		world components.Vec2
		want  components.Vec2
	}{
		{"origin at centre", components.Vec2{}, components.Vec2{X: 640, Y: 360}},
		{"y up", components.Vec2{X: 0, Y: 1}, components.Vec2{X: 640, Y: 328}},
		{"x right", components.Vec2{X: 2, Y: 0}, components.Vec2{X: 704, Y: 360}},
		{"top left corner", components.Vec2{X: -20, Y: 11.25}, components.Vec2{X: 0, Y: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cam.WorldToScreen(tt.world); !near(got, tt.want) {
				t.Errorf("WorldToScreen(%v) = %v, want %v", tt.world, got, tt.want)
			}
		})
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := newTestCamera()
	cam.Center = components.Vec2{X: 3, Y: -2}

	for _, s := range []components.Vec2{{X: 640, Y: 360}, {X: 100, Y: 100}, {X: 1200, Y: 600}} {
		w := cam.ScreenToWorld(s)
		if !cam.Arena.Contains(w) {
			t.Errorf("ScreenToWorld(%v) = %v outside the arena", s, w)
		}
		if back := cam.WorldToScreen(w); !near(back, s) {
			t.Errorf("roundtrip failed: %v -> %v -> %v", s, w, back)
		}
	}
}

func TestWorldToScreenUsesNearestCopy(t *testing.T) {
	cam := newTestCamera()
	cam.Center = components.Vec2{X: -18, Y: 0}

	// A point just inside the right edge is closer through the seam.
	s := cam.WorldToScreen(components.Vec2{X: 19, Y: 0})
	if s.X >= 640 {
		t.Errorf("expected point left of centre, got x=%f", s.X)
	}
}

func TestGhostPositions(t *testing.T) {
	cam := newTestCamera()

	tests := []struct {
		name  string
		pos   components.Vec2
		count int
	}{
		{"interior", components.Vec2{X: 0, Y: 0}, 0},
		{"right seam", components.Vec2{X: 19.8, Y: 0}, 1},
		{"top seam", components.Vec2{X: 0, Y: 11}, 1},
		{"corner", components.Vec2{X: 19.8, Y: 11}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ghosts := cam.GhostPositions(tt.pos, 0.5)
			if len(ghosts) != tt.count {
				t.Fatalf("got %d ghosts %v, want %d", len(ghosts), ghosts, tt.count)
			}
		})
	}

	ghosts := cam.GhostPositions(components.Vec2{X: 19.8, Y: 0}, 0.5)
	want := components.Vec2{X: (19.8 - 40 + 20) * 32, Y: 360}
	if !near(ghosts[0], want) {
		t.Errorf("ghost = %v, want %v", ghosts[0], want)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := newTestCamera()

	if cam.MinZoom != 32 {
		t.Errorf("expected MinZoom 32, got %f", cam.MinZoom)
	}

	cam.SetZoom(1)
	if cam.Zoom != 32 {
		t.Errorf("expected zoom clamped to 32, got %f", cam.Zoom)
	}

	cam.SetZoom(1000)
	if cam.Zoom != 128 {
		t.Errorf("expected zoom clamped to 128, got %f", cam.Zoom)
	}
}

func TestPanWraps(t *testing.T) {
	cam := newTestCamera()
	cam.Center = components.Vec2{X: -19, Y: 0}

	// 64 pixels left is two world units.
	cam.Pan(-64, 0)
	if math.Abs(float64(cam.Center.X-19)) > 0.01 {
		t.Errorf("expected X to wrap to 19, got %f", cam.Center.X)
	}

	cam.Pan(0, -32)
	if math.Abs(float64(cam.Center.Y-1)) > 0.01 {
		t.Errorf("panning up should raise Y to 1, got %f", cam.Center.Y)
	}
}

func TestIsVisible(t *testing.T) {
	cam := newTestCamera()
	cam.ZoomBy(2)

	if !cam.IsVisible(components.Vec2{}, 0.5) {
		t.Error("centre should be visible")
	}
	if cam.IsVisible(components.Vec2{X: 15, Y: 0}, 0.5) {
		t.Error("far point should not be visible")
	}
	if !cam.IsVisible(components.Vec2{X: 10.3, Y: 0}, 0.5) {
		t.Error("edge point overlapping the viewport should be visible")
	}
}

func TestReset(t *testing.T) {
	cam := newTestCamera()
	cam.Center = components.Vec2{X: 5, Y: 5}
	cam.ZoomBy(2.5)

	cam.Reset()

	if cam.Center != (components.Vec2{}) {
		t.Errorf("expected centre at origin, got %v", cam.Center)
	}
	if cam.Zoom != 32 {
		t.Errorf("expected zoom 32, got %f", cam.Zoom)
	}
}

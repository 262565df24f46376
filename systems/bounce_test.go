package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/shatter/components"
)

func TestResolveCollisionsMomentum(t *testing.T) {
	arena := NewArena(10, 10)

	tests := []struct {
		name string
		a, b components.Target
	}{
		{
			name: "equal mass head on",
			a:    components.Target{Position: components.Vec2{X: -0.5}, Velocity: components.Vec2{X: 1}, Mass: 1, Radius: 1, Alive: true},
			b:    components.Target{Position: components.Vec2{X: 0.5}, Velocity: components.Vec2{X: -1}, Mass: 1, Radius: 1, Alive: true},
		},
		{
			name: "unequal mass",
			a:    components.Target{Position: components.Vec2{X: 0, Y: 0}, Mass: 1, Radius: 1, Alive: true},
			b:    components.Target{Position: components.Vec2{X: 0.3, Y: 0.4}, Velocity: components.Vec2{X: 2, Y: -1}, Mass: 0.25, Radius: 0.5, Alive: true},
		},
		{
			name: "across the seam",
			a:    components.Target{Position: components.Vec2{X: 9.8}, Mass: 0.5, Radius: 0.7, Alive: true},
			b:    components.Target{Position: components.Vec2{X: -9.7}, Mass: 1, Radius: 1, Alive: true},
		},
		{
			name: "coincident centers",
			a:    components.Target{Mass: 0.5, Radius: 0.7, Alive: true},
			b:    components.Target{Mass: 1, Radius: 1, Alive: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := []components.Target{tt.a, tt.b}
			ResolveCollisions(ts, arena, 100, 0.01, 0.02)

			dA := ts[0].Velocity.Sub(tt.a.Velocity)
			dB := ts[1].Velocity.Sub(tt.b.Velocity)
			px := float64(tt.a.Mass*dA.X + tt.b.Mass*dB.X)
			py := float64(tt.a.Mass*dA.Y + tt.b.Mass*dB.Y)
			if math.Abs(px) > 1e-4 || math.Abs(py) > 1e-4 {
				t.Errorf("momentum change = (%v, %v), want 0", px, py)
			}
		})
	}
}

func TestResolveCollisionsPushesApart(t *testing.T) {
	arena := NewArena(10, 10)
	ts := []components.Target{
		{Position: components.Vec2{X: -0.5}, Mass: 1, Radius: 1, Alive: true},
		{Position: components.Vec2{X: 0.5}, Mass: 1, Radius: 1, Alive: true},
	}

	if n := ResolveCollisions(ts, arena, 100, 0.01, 0.02); n != 1 {
		t.Fatalf("contacts = %d, want 1", n)
	}
	if ts[0].Velocity.X >= 0 || ts[1].Velocity.X <= 0 {
		t.Errorf("velocities = %+v, %+v, want a pushed left and b pushed right", ts[0].Velocity, ts[1].Velocity)
	}
}

func TestResolveCollisionsSkipsDeadAndSeparated(t *testing.T) {
	arena := NewArena(10, 10)
	ts := []components.Target{
		{Position: components.Vec2{X: 0}, Mass: 1, Radius: 1, Alive: true},
		{Position: components.Vec2{X: 0.5}, Mass: 1, Radius: 1, Alive: false},
		{Position: components.Vec2{X: 5}, Mass: 1, Radius: 1, Alive: true},
	}

	if n := ResolveCollisions(ts, arena, 100, 0.01, 0.02); n != 0 {
		t.Errorf("contacts = %d, want 0", n)
	}
	for i := range ts {
		if ts[i].Velocity != (components.Vec2{}) {
			t.Errorf("target %d velocity changed to %+v", i, ts[i].Velocity)
		}
	}
}

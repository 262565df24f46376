package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/shatter/components"
)

func TestIntegrateProjectiles(t *testing.T) {
	arena := NewArena(10, 10)
	ps := []components.Projectile{
		{Position: components.Vec2{X: 9.9, Y: 0}, Velocity: components.Vec2{X: 10, Y: 0}, TimeRemaining: 1},
		{Position: components.Vec2{X: 0, Y: 0}, Velocity: components.Vec2{X: 10, Y: 0}, TimeRemaining: 0},
	}

	IntegrateProjectiles(ps, arena, 0.1)

	if got := ps[0].TimeRemaining; math.Abs(float64(got-0.9)) > 1e-6 {
		t.Errorf("TimeRemaining = %v, want 0.9", got)
	}
	if got := ps[0].Position.X; math.Abs(float64(got-(-9.1))) > 1e-5 {
		t.Errorf("wrapped X = %v, want -9.1", got)
	}
	if ps[1].Position.X != 0 {
		t.Error("dead projectile was moved")
	}
}

func TestIntegrateTargets(t *testing.T) {
	arena := NewArena(10, 10)

	tests := []struct {
		name       string
		target     components.Target
		wantSpeed  float32
		wantRadius float32
	}{
		{
			name:       "clamped speed",
			target:     components.Target{Velocity: components.Vec2{X: 30, Y: 40}, Radius: 1, TargetRadius: 1, Alive: true},
			wantSpeed:  12.5,
			wantRadius: 1,
		},
		{
			name:       "growing",
			target:     components.Target{Velocity: components.Vec2{X: 1, Y: 0}, Radius: 0.2, TargetRadius: 1, Alive: true},
			wantSpeed:  1,
			wantRadius: 0.3,
		},
		{
			name:       "growth stops at target radius",
			target:     components.Target{Radius: 0.95, TargetRadius: 1, Alive: true},
			wantSpeed:  0,
			wantRadius: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := []components.Target{tt.target}
			IntegrateTargets(ts, arena, 12.5, 0.1)

			if got := ts[0].Velocity.Len(); math.Abs(float64(got-tt.wantSpeed)) > 1e-4 {
				t.Errorf("speed = %v, want %v", got, tt.wantSpeed)
			}
			if got := ts[0].Radius; math.Abs(float64(got-tt.wantRadius)) > 1e-6 {
				t.Errorf("radius = %v, want %v", got, tt.wantRadius)
			}
		})
	}
}

package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/shatter/components"
)

func testSpawnParams() SpawnParams {
	return SpawnParams{
		Stages:          testStages(),
		InitialStage:    2,
		Archetypes:      3,
		MaxStartSpeed:   4,
		StartFraction:   0.05,
		AvoidRadius:     2,
		InitialCooldown: 4,
		Persistence:     0.5,
		MinCooldown:     1.5,
	}
}

func TestValidSpawn(t *testing.T) {
	arena := NewArena(10, 10)
	avoid := components.Vec2{}
	targets := []components.Target{
		{Position: components.Vec2{X: 5, Y: 5}, Radius: 0.5, Alive: true},
		{Position: components.Vec2{X: -5, Y: -5}, Radius: 1, Alive: false},
		{Position: components.Vec2{X: -5, Y: 9.5}, Radius: 0.5, Alive: true},
	}

	tests := []struct {
		name      string
		candidate components.Vec2
		want      bool
	}{
		{"inside avoid radius", components.Vec2{X: 2.5, Y: 0}, false},
		{"touching avoid radius", components.Vec2{X: 3, Y: 0}, false},
		{"just outside avoid radius", components.Vec2{X: 3.01, Y: 0}, true},
		{"overlaps live target", components.Vec2{X: 6, Y: 5}, false},
		{"touching live target", components.Vec2{X: 6.5, Y: 5}, false},
		{"clear of live target", components.Vec2{X: 6.6, Y: 5}, true},
		{"dead target ignored", components.Vec2{X: -5, Y: -5}, true},
		{"far side of the arena", components.Vec2{X: -9.5, Y: 0}, true},
		{"overlaps target across the seam", components.Vec2{X: -5, Y: -9.5}, false},
		{"clear of target across the seam", components.Vec2{X: -5, Y: -8}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidSpawn(tt.candidate, avoid, 2, 1, targets, arena); got != tt.want {
				t.Errorf("ValidSpawn(%+v) = %v, want %v", tt.candidate, got, tt.want)
			}
		})
	}
}

func TestSpawnerCooldown(t *testing.T) {
	arena := NewArena(50, 50)
	rng := rand.New(rand.NewSource(11))
	targets := components.NewDense[components.Target](4)
	s := NewSpawner(testSpawnParams())
	far := components.Vec2{X: 1000, Y: 1000}

	s.Advance(3.9)
	if s.TrySpawn(rng, arena, far, targets) {
		t.Fatal("spawned before cooldown elapsed")
	}

	s.Advance(0.2)
	if !s.TrySpawn(rng, arena, far, targets) {
		t.Fatal("spawn in an empty arena was rejected")
	}
	if targets.Len() != 1 {
		t.Fatalf("targets.Len() = %d, want 1", targets.Len())
	}
	if s.Duration != 2 {
		t.Errorf("Duration = %v, want 2", s.Duration)
	}
	if s.Cooldown < 3.8 || s.Cooldown > 3.9 {
		t.Errorf("Cooldown = %v, want about 3.9", s.Cooldown)
	}

	tg := targets.At(0)
	if !tg.Alive || tg.Stage != 2 || !tg.Growing() || tg.Mass != 1 {
		t.Errorf("spawned target = %+v", *tg)
	}
	if tg.Velocity.Len() > 4+1e-5 {
		t.Errorf("start speed %v exceeds max", tg.Velocity.Len())
	}
	if tg.Archetype >= 3 {
		t.Errorf("archetype %d out of range", tg.Archetype)
	}

	// Duration decays toward the floor and stops there.
	s.Cooldown = 0
	s.TrySpawn(rng, arena, far, targets)
	s.Cooldown = 0
	s.TrySpawn(rng, arena, far, targets)
	if s.Duration != 1.5 {
		t.Errorf("Duration = %v, want floor 1.5", s.Duration)
	}
}

func TestSpawnerRejectionDefers(t *testing.T) {
	// Every candidate in a tiny arena overlaps the avoid point.
	arena := NewArena(1, 1)
	rng := rand.New(rand.NewSource(5))
	targets := components.NewDense[components.Target](1)
	s := NewSpawner(testSpawnParams())
	s.Cooldown = 0

	if s.TrySpawn(rng, arena, components.Vec2{}, targets) {
		t.Fatal("spawn accepted inside avoid radius")
	}
	if s.Cooldown != 0 || s.Duration != 4 || targets.Len() != 0 {
		t.Errorf("rejected spawn changed state: cooldown %v duration %v len %d", s.Cooldown, s.Duration, targets.Len())
	}
}

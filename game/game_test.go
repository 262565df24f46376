package game

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"math"
	"reflect"
	"testing"

	"github.com/pthm-cable/shatter/components"
	"github.com/pthm-cable/shatter/config"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Arena.HalfWidth = 10
	cfg.Arena.HalfHeight = 10
	cfg.Projectile.Radius = 0.1
	cfg.Recompute()
	return cfg
}

func newTestGame(t *testing.T, cfg *config.Config, seed int64) *Game {
	t.Helper()
	g := NewGame(cfg, GameOptions{Seed: seed})
	t.Cleanup(g.Close)
	return g
}

// parkAgent moves the agent out of the way and holds it still.
func parkAgent(g *Game, x, y float32) {
	pos := components.Vec2{X: x, Y: y}
	g.agent.Position = pos
	g.agent.PreviousPosition = pos
	g.SetInput(Input{Target: pos})
}

func pushTarget(g *Game, x, y float32, stage uint32) {
	cfg := g.config()
	g.targets.Push(components.Target{
		Position:     components.Vec2{X: x, Y: y},
		Mass:         cfg.Derived.Masses32[stage],
		Radius:       cfg.Derived.Radii32[stage],
		TargetRadius: cfg.Derived.Radii32[stage],
		Stage:        stage,
		Alive:        true,
	})
}

func TestStepProjectileHit(t *testing.T) {
	g := newTestGame(t, testConfig(), 1)
	parkAgent(g, 8, 8)
	pushTarget(g, 0, 0, 2)
	g.projectiles.Push(components.Projectile{
		Position:      components.Vec2{X: -0.5, Y: 0},
		Velocity:      components.Vec2{X: 5, Y: 0},
		TimeRemaining: 1,
	})

	g.Step()

	snap := g.Snapshot()
	if snap.Tick != 1 {
		t.Errorf("Tick = %d, want 1", snap.Tick)
	}
	if snap.Score != 1 {
		t.Errorf("Score = %d, want 1", snap.Score)
	}
	if len(snap.Targets) != 2 {
		t.Fatalf("len(Targets) = %d, want 2 fragments", len(snap.Targets))
	}
	for i, tv := range snap.Targets {
		if tv.Stage != 1 || !tv.Alive {
			t.Errorf("target %d = %+v, want alive stage 1", i, tv)
		}
	}
	if len(snap.Projectiles) != 1 || !snap.Projectiles[0].Exploded {
		t.Fatalf("Projectiles = %+v, want one exploded projectile", snap.Projectiles)
	}
	want := components.Vec2{X: -0.4, Y: 0}
	if got := snap.Explosions; len(got) != 1 || math.Abs(float64(got[0].Position.X-want.X)) > 1e-5 {
		t.Errorf("Explosions = %+v, want one at %v", got, want)
	}

	g.Step()

	snap = g.Snapshot()
	if len(snap.Projectiles) != 0 {
		t.Errorf("exploded projectile still present after next tick: %+v", snap.Projectiles)
	}
	if len(snap.Explosions) != 0 {
		t.Errorf("Explosions = %+v, want none", snap.Explosions)
	}
}

func TestStepAgentContact(t *testing.T) {
	g := newTestGame(t, testConfig(), 1)
	parkAgent(g, 0, 0)
	pushTarget(g, 1, 0, 2)

	g.Step()

	if got, want := g.Health(), int32(g.config().Agent.MaxHealth-1); got != want {
		t.Errorf("Health = %d, want %d", got, want)
	}
	if g.Score() != 1 {
		t.Errorf("Score = %d, want 1", g.Score())
	}

	snap := g.Snapshot()
	if len(snap.Targets) != 2 {
		t.Fatalf("len(Targets) = %d, want 2", len(snap.Targets))
	}
	a, b := snap.Targets[0].Position, snap.Targets[1].Position
	if math.Abs(float64(a.X-b.X)) > 1e-4 {
		t.Errorf("fragment x differ: %v vs %v", a, b)
	}
	if math.Abs(float64(a.Y+b.Y)) > 1e-4 {
		t.Errorf("fragments not mirrored across the impact line: %v vs %v", a, b)
	}
}

func TestStepIdleTick(t *testing.T) {
	g := newTestGame(t, testConfig(), 1)
	parkAgent(g, 0, 0)

	before := g.Snapshot()
	g.Step()
	after := g.Snapshot()

	if after.Tick != before.Tick+1 {
		t.Errorf("Tick = %d, want %d", after.Tick, before.Tick+1)
	}
	after.Tick = before.Tick
	if !reflect.DeepEqual(before, after) {
		t.Errorf("idle tick changed state:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestAgentDestroyedSignal(t *testing.T) {
	g := newTestGame(t, testConfig(), 1)
	parkAgent(g, 0, 0)
	g.counters.Health = 1
	pushTarget(g, 0.5, 0, 2)

	g.Step()
	if g.AgentDestroyed() {
		t.Fatal("signal raised by the tick that removed the last health")
	}
	if g.Health() != 0 {
		t.Fatalf("Health = %d, want 0", g.Health())
	}

	tick := g.Tick()
	g.Step()
	if !g.AgentDestroyed() || !g.Over() {
		t.Fatal("signal not raised by the next tick")
	}
	if g.Tick() != tick {
		t.Errorf("Tick advanced to %d on the signalling tick", g.Tick())
	}
	if !g.Snapshot().AgentDestroyed {
		t.Error("snapshot does not carry the signal")
	}

	g.Step()
	if g.Tick() != tick {
		t.Errorf("Step after game over advanced tick to %d", g.Tick())
	}

	g.StartNewGame(2)
	if g.Over() || g.AgentDestroyed() || g.Tick() != 0 {
		t.Errorf("StartNewGame did not reset: over=%v destroyed=%v tick=%d", g.Over(), g.AgentDestroyed(), g.Tick())
	}
	if g.Health() != int32(g.config().Agent.MaxHealth) || g.Score() != 0 {
		t.Errorf("counters = %+v, want full health and zero score", g.counters)
	}
}

func TestAdvance(t *testing.T) {
	tests := []struct {
		name      string
		frames    []float64
		wantTicks int
		wantAlpha float64 // negative skips the check
	}{
		{"partial", []float64{0.07}, 3, 0.5},
		{"short frames accumulate", []float64{0.01, 0.01, 0.01}, 1, 0.5},
		{"capped", []float64{1.0}, 8, -1},
		{"nothing", []float64{0.005}, 0, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, testConfig(), 1)
			parkAgent(g, 0, 0)

			ticks := 0
			for _, f := range tt.frames {
				ticks += g.Advance(f)
			}
			if ticks != tt.wantTicks {
				t.Errorf("ticks = %d, want %d", ticks, tt.wantTicks)
			}
			if int(g.Tick()) != tt.wantTicks {
				t.Errorf("Tick() = %d, want %d", g.Tick(), tt.wantTicks)
			}
			alpha := float64(g.Interpolation())
			if alpha < 0 || alpha >= 1 {
				t.Errorf("Interpolation() = %v, want [0, 1)", alpha)
			}
			if tt.wantAlpha >= 0 && math.Abs(alpha-tt.wantAlpha) > 1e-3 {
				t.Errorf("Interpolation() = %v, want %v", alpha, tt.wantAlpha)
			}
		})
	}
}

func TestAdvanceCollectsFrameExplosions(t *testing.T) {
	g := newTestGame(t, testConfig(), 1)
	parkAgent(g, 8, 8)
	pushTarget(g, 0, 0, 0)
	pushTarget(g, 5, 0, 0)
	g.projectiles.Push(components.Projectile{
		Position:      components.Vec2{X: -0.5, Y: 0},
		Velocity:      components.Vec2{X: 5, Y: 0},
		TimeRemaining: 1,
	})
	g.projectiles.Push(components.Projectile{
		Position:      components.Vec2{X: 4.35, Y: 0},
		Velocity:      components.Vec2{X: 2, Y: 0},
		TimeRemaining: 1,
	})

	if n := g.Advance(0.05); n != 2 {
		t.Fatalf("Advance ran %d ticks, want 2", n)
	}
	if got := len(g.FrameExplosions()); got != 2 {
		t.Errorf("len(FrameExplosions()) = %d, want 2", got)
	}
	if g.Score() != 2 {
		t.Errorf("Score = %d, want 2", g.Score())
	}
}

// hashRun steps a match under autopilot and hashes every published snapshot.
func hashRun(t *testing.T, cfg *config.Config, seed int64, ticks int) string {
	t.Helper()
	g := newTestGame(t, cfg, seed)
	pilot := NewAutopilot(seed)
	h := sha256.New()
	for i := 0; i < ticks && !g.Over(); i++ {
		g.SetInput(pilot.Decide(g))
		g.Step()
		data, err := json.Marshal(g.Snapshot())
		if err != nil {
			t.Fatalf("marshal snapshot: %v", err)
		}
		h.Write(data)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func TestDeterministicReplay(t *testing.T) {
	cfg := config.Default()
	const ticks = 1500

	first := hashRun(t, cfg, 42, ticks)
	second := hashRun(t, cfg, 42, ticks)
	if first != second {
		t.Fatalf("same seed produced different runs: %s vs %s", first, second)
	}

	other := hashRun(t, cfg, 43, ticks)
	if other == first {
		t.Error("different seeds produced identical runs")
	}
}

func TestParallelIntegrationMatchesSequential(t *testing.T) {
	seq := config.Default()
	seq.Parallel.Threshold = math.MaxInt32
	par := config.Default()
	par.Parallel.Threshold = 1

	const ticks = 1500
	if a, b := hashRun(t, seq, 7, ticks), hashRun(t, par, 7, ticks); a != b {
		t.Fatalf("parallel run diverged: %s vs %s", a, b)
	}
}

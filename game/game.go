// Package game owns the simulation state and runs the fixed-timestep tick.
package game

import (
	"math/rand"
	"sync"

	"github.com/pthm-cable/shatter/components"
	"github.com/pthm-cable/shatter/config"
	"github.com/pthm-cable/shatter/systems"
	"github.com/pthm-cable/shatter/telemetry"
)

// Input is supplied once per frame by the input collaborator.
type Input struct {
	Target  components.Vec2 // Point the agent follows, in arena coordinates
	Firing  bool
	FreeAim bool // Aim follows the target; otherwise the aim stays fixed
}

// Game holds the complete simulation state for one match at a time.
// All methods except Snapshot must be called from a single goroutine.
type Game struct {
	cfg   *config.Config
	arena systems.Arena
	rng   *rand.Rand
	seed  int64

	targets     *components.Dense[components.Target]
	projectiles *components.Dense[components.Projectile]
	agent       components.Agent
	counters    systems.Counters
	spawner     *systems.Spawner

	hitParams   systems.HitParams
	agentParams systems.AgentParams

	input           Input
	explosions      []components.Explosion // emitted by the last tick only
	frameExplosions []components.Explosion // emitted by the last Advance call

	// State
	tick        int32
	destroyed   bool // agent destroyed signal raised
	over        bool // no further ticks run
	accumulator float64
	shots       int
	spawns      int

	parallel *parallelState

	// Telemetry
	collector     *telemetry.Collector
	bookmarks     *telemetry.BookmarkDetector
	highlights    []telemetry.Bookmark
	perf          *telemetry.PerfCollector
	output        *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)

	// Latest committed snapshot, read by other goroutines
	snapMu   sync.RWMutex
	snapshot components.Snapshot
}

// GameOptions configures optional game features.
type GameOptions struct {
	Seed          int64
	LogStats      bool                        // Log window stats through slog
	StatsCallback func(telemetry.WindowStats) // Called on every stats flush
	Output        *telemetry.OutputManager    // CSV output, may be nil
	Perf          bool                        // Record per-phase timings
}

// NewGame creates a game and starts its first match.
func NewGame(cfg *config.Config, opts GameOptions) *Game {
	stages := systems.StageTable{
		Masses: cfg.Derived.Masses32,
		Radii:  cfg.Derived.Radii32,
	}

	g := &Game{
		cfg:         cfg,
		arena:       systems.NewArena(cfg.Derived.HalfWidth32, cfg.Derived.HalfHeight32),
		targets:     components.NewDense[components.Target](128),
		projectiles: components.NewDense[components.Projectile](128),
		hitParams: systems.HitParams{
			Stages:                stages,
			ProjectileRadius:      float32(cfg.Projectile.Radius),
			ExplosionStrength:     float32(cfg.Targets.ExplosionStrength),
			FragmentSeparation:    float32(cfg.Targets.FragmentSeparation),
			FragmentStartFraction: float32(cfg.Targets.FragmentStartFraction),
			Epsilon:               cfg.Derived.Epsilon32,
		},
		agentParams: systems.AgentParams{
			FollowSpeed:        float32(cfg.Agent.FollowSpeed),
			SnapDuration:       float32(cfg.Agent.SnapDuration),
			FireCooldown:       float32(cfg.Agent.FireCooldown),
			FireSpread:         cfg.Derived.FireSpreadRad,
			ProjectileSpeed:    float32(cfg.Projectile.Speed),
			ProjectileLifetime: float32(cfg.Projectile.Lifetime),
		},
		spawner: systems.NewSpawner(systems.SpawnParams{
			Stages:          stages,
			InitialStage:    cfg.Derived.InitialStage,
			Archetypes:      cfg.Targets.Archetypes,
			MaxStartSpeed:   float32(cfg.Targets.MaxStartSpeed),
			StartFraction:   float32(cfg.Targets.SpawnStartFraction),
			AvoidRadius:     float32(cfg.Spawn.AvoidRadius),
			InitialCooldown: float32(cfg.Spawn.InitialCooldown),
			Persistence:     float32(cfg.Spawn.Persistence),
			MinCooldown:     float32(cfg.Spawn.MinCooldown),
		}),
		parallel:      newParallelState(cfg.Parallel.Threshold),
		collector:     telemetry.NewCollector(cfg.Telemetry.WindowSec, cfg.Derived.DT32),
		bookmarks:     telemetry.NewBookmarkDetector(10),
		output:        opts.Output,
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
	}
	if opts.Perf {
		g.perf = telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)
	}

	g.StartNewGame(opts.Seed)
	return g
}

func (g *Game) config() *config.Config { return g.cfg }

// Arena returns the match arena.
func (g *Game) Arena() systems.Arena { return g.arena }

// Seed returns the seed of the current match.
func (g *Game) Seed() int64 { return g.seed }

// Tick returns the number of ticks run in the current match.
func (g *Game) Tick() int32 { return g.tick }

// Health returns the agent's remaining health.
func (g *Game) Health() int32 { return g.counters.Health }

// Score returns the current score.
func (g *Game) Score() int32 { return g.counters.Score }

// AgentDestroyed reports whether the agent-destroyed signal has been raised.
func (g *Game) AgentDestroyed() bool { return g.destroyed }

// Over reports whether the match has ended.
func (g *Game) Over() bool { return g.over }

// Explosions returns the explosion events of the last tick. The slice is
// reused by the next tick; consumers must copy what they keep.
func (g *Game) Explosions() []components.Explosion { return g.explosions }

// SetInput sets the input used by subsequent ticks.
func (g *Game) SetInput(in Input) { g.input = in }

// Bookmarks returns the notable moments of the current match so far.
func (g *Game) Bookmarks() []telemetry.Bookmark { return g.highlights }

// Perf returns the perf collector, or nil when perf timing is off.
func (g *Game) Perf() *telemetry.PerfCollector { return g.perf }

// Close stops the worker pool. The game must not be stepped afterward.
func (g *Game) Close() {
	g.parallel.stopWorkers()
}

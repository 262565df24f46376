// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Arena      ArenaConfig      `yaml:"arena"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Targets    TargetsConfig    `yaml:"targets"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Projectile ProjectileConfig `yaml:"projectile"`
	Agent      AgentConfig      `yaml:"agent"`
	Parallel   ParallelConfig   `yaml:"parallel"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Storage    StorageConfig    `yaml:"storage"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds viewer window settings.
type ScreenConfig struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	PixelsPerUnit float64 `yaml:"pixels_per_unit"` // Initial camera zoom
	TargetFPS     int     `yaml:"target_fps"`
}

// ArenaConfig holds the toroidal arena half-extents.
type ArenaConfig struct {
	HalfWidth  float64 `yaml:"half_width"`
	HalfHeight float64 `yaml:"half_height"`
}

// PhysicsConfig holds timestep parameters.
type PhysicsConfig struct {
	DT               float64 `yaml:"dt"`                  // Fixed tick duration in seconds
	MaxStepsPerFrame int     `yaml:"max_steps_per_frame"` // Excess accumulated time is dropped
	Epsilon          float64 `yaml:"epsilon"`             // Distance floor for impulse normalization
}

// TargetsConfig holds the per-stage tables and target dynamics.
type TargetsConfig struct {
	Masses                []float64 `yaml:"masses"`                  // Indexed by stage, 0 is terminal
	Radii                 []float64 `yaml:"radii"`                   // Indexed by stage, 0 is terminal
	InitialStage          int       `yaml:"initial_stage"`           // Stage of freshly spawned targets
	Archetypes            int       `yaml:"archetypes"`              // Number of visual variants
	MaxSpeed              float64   `yaml:"max_speed"`               // Speed clamp applied every tick
	MaxStartSpeed         float64   `yaml:"max_start_speed"`         // Spawn velocity magnitude bound
	BounceStrength        float64   `yaml:"bounce_strength"`         // Penalty impulse stiffness
	ExplosionStrength     float64   `yaml:"explosion_strength"`      // Fragment kick, divided by fragment mass
	FragmentSeparation    float64   `yaml:"fragment_separation"`     // Offset factor times parent radius
	SpawnStartFraction    float64   `yaml:"spawn_start_fraction"`    // Initial radius as a fraction of target radius
	FragmentStartFraction float64   `yaml:"fragment_start_fraction"` // Fragment radius as a fraction of target radius
}

// SpawnConfig holds the spawn cooldown schedule.
type SpawnConfig struct {
	InitialCooldown float64 `yaml:"initial_cooldown"` // First cooldown duration in seconds
	Persistence     float64 `yaml:"persistence"`      // Cooldown duration multiplier after each spawn
	MinCooldown     float64 `yaml:"min_cooldown"`     // Floor for the cooldown duration
	AvoidRadius     float64 `yaml:"avoid_radius"`     // Keep-out radius around the agent
}

// ProjectileConfig holds projectile parameters.
type ProjectileConfig struct {
	Speed    float64 `yaml:"speed"`
	Lifetime float64 `yaml:"lifetime"`
	Radius   float64 `yaml:"radius"`
}

// AgentConfig holds agent parameters.
type AgentConfig struct {
	Radius        float64 `yaml:"radius"`
	MaxHealth     int     `yaml:"max_health"`
	FollowSpeed   float64 `yaml:"follow_speed"`    // Max speed while following the cursor
	SnapDuration  float64 `yaml:"snap_duration"`   // Smoothing time constant
	FireCooldown  float64 `yaml:"fire_cooldown"`   // Seconds between shots
	FireSpreadDeg float64 `yaml:"fire_spread_deg"` // Half-angle of random fire spread
}

// ParallelConfig holds worker pool settings.
type ParallelConfig struct {
	Threshold int `yaml:"threshold"` // Minimum entity count for chunked integration
}

// TelemetryConfig holds telemetry settings.
type TelemetryConfig struct {
	WindowSec  float64 `yaml:"window_sec"`  // Stats window duration in seconds
	PerfWindow int     `yaml:"perf_window"` // Ticks kept in the perf ring buffer
}

// StorageConfig holds match result storage settings.
type StorageConfig struct {
	Path string `yaml:"path"` // SQLite database path, ~ is expanded
}

// DerivedConfig holds values computed from other config values.
type DerivedConfig struct {
	DT32          float32
	Epsilon32     float32
	MaxStage      uint32
	InitialStage  uint32
	SpawnRadius   float32 // Target radius of the initial stage
	FireSpreadRad float32
	HalfWidth32   float32
	HalfHeight32  float32
	Masses32      []float32
	Radii32       []float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	cfg.computeDerived()

	return cfg, nil
}

// Default returns the embedded defaults. Panics if they are invalid.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Clone returns a deep copy with derived values recomputed.
func (c *Config) Clone() *Config {
	out := *c
	out.Targets.Masses = append([]float64(nil), c.Targets.Masses...)
	out.Targets.Radii = append([]float64(nil), c.Targets.Radii...)
	out.computeDerived()
	return &out
}

// Recompute refreshes derived values after fields were changed in place.
func (c *Config) Recompute() {
	c.computeDerived()
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.Epsilon32 = float32(c.Physics.Epsilon)
	c.Derived.HalfWidth32 = float32(c.Arena.HalfWidth)
	c.Derived.HalfHeight32 = float32(c.Arena.HalfHeight)

	c.Derived.Masses32 = make([]float32, len(c.Targets.Masses))
	for i, m := range c.Targets.Masses {
		c.Derived.Masses32[i] = float32(m)
	}
	c.Derived.Radii32 = make([]float32, len(c.Targets.Radii))
	for i, r := range c.Targets.Radii {
		c.Derived.Radii32[i] = float32(r)
	}

	if n := len(c.Targets.Radii); n > 0 {
		c.Derived.MaxStage = uint32(n - 1)
	}
	c.Derived.InitialStage = uint32(c.Targets.InitialStage)
	if int(c.Derived.InitialStage) < len(c.Derived.Radii32) {
		c.Derived.SpawnRadius = c.Derived.Radii32[c.Derived.InitialStage]
	}
	c.Derived.FireSpreadRad = float32(c.Agent.FireSpreadDeg * math.Pi / 180)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

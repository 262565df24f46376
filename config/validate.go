package config

import (
	"errors"
	"fmt"
)

// Validate reports every configuration violation the simulation cannot run with.
// Stage tables are checked here once so the tick loop never has to.
func (c *Config) Validate() error {
	var errs []error

	if c.Arena.HalfWidth < 0 || c.Arena.HalfHeight < 0 {
		errs = append(errs, fmt.Errorf("arena: extents must be non-negative, got (%g, %g)",
			c.Arena.HalfWidth, c.Arena.HalfHeight))
	}
	if c.Physics.DT <= 0 {
		errs = append(errs, fmt.Errorf("physics.dt: must be positive, got %g", c.Physics.DT))
	}
	if c.Physics.MaxStepsPerFrame < 1 {
		errs = append(errs, fmt.Errorf("physics.max_steps_per_frame: must be at least 1, got %d",
			c.Physics.MaxStepsPerFrame))
	}
	if c.Physics.Epsilon <= 0 {
		errs = append(errs, fmt.Errorf("physics.epsilon: must be positive, got %g", c.Physics.Epsilon))
	}

	t := &c.Targets
	if len(t.Masses) == 0 {
		errs = append(errs, errors.New("targets.masses: table is empty"))
	}
	if len(t.Masses) != len(t.Radii) {
		errs = append(errs, fmt.Errorf("targets: masses has %d stages, radii has %d",
			len(t.Masses), len(t.Radii)))
	}
	for i, m := range t.Masses {
		if m <= 0 {
			errs = append(errs, fmt.Errorf("targets.masses[%d]: must be positive, got %g", i, m))
		}
		if i > 0 && m < t.Masses[i-1] {
			errs = append(errs, fmt.Errorf("targets.masses[%d]: %g is smaller than stage %d", i, m, i-1))
		}
	}
	for i, r := range t.Radii {
		if r <= 0 {
			errs = append(errs, fmt.Errorf("targets.radii[%d]: must be positive, got %g", i, r))
		}
		if i > 0 && r < t.Radii[i-1] {
			errs = append(errs, fmt.Errorf("targets.radii[%d]: %g is smaller than stage %d", i, r, i-1))
		}
	}
	if t.InitialStage < 0 || t.InitialStage >= len(t.Radii) {
		errs = append(errs, fmt.Errorf("targets.initial_stage: %d outside [0, %d)", t.InitialStage, len(t.Radii)))
	}
	if t.Archetypes < 1 {
		errs = append(errs, fmt.Errorf("targets.archetypes: must be at least 1, got %d", t.Archetypes))
	}
	if t.MaxSpeed <= 0 {
		errs = append(errs, fmt.Errorf("targets.max_speed: must be positive, got %g", t.MaxSpeed))
	}
	if f := t.SpawnStartFraction; f <= 0 || f >= 1 {
		errs = append(errs, fmt.Errorf("targets.spawn_start_fraction: must be in (0, 1), got %g", f))
	}
	if f := t.FragmentStartFraction; f <= 0 || f >= 1 {
		errs = append(errs, fmt.Errorf("targets.fragment_start_fraction: must be in (0, 1), got %g", f))
	}

	if c.Spawn.Persistence <= 0 || c.Spawn.Persistence > 1 {
		errs = append(errs, fmt.Errorf("spawn.persistence: must be in (0, 1], got %g", c.Spawn.Persistence))
	}
	if c.Spawn.MinCooldown < 0 {
		errs = append(errs, fmt.Errorf("spawn.min_cooldown: must be non-negative, got %g", c.Spawn.MinCooldown))
	}
	if c.Projectile.Radius <= 0 {
		errs = append(errs, fmt.Errorf("projectile.radius: must be positive, got %g", c.Projectile.Radius))
	}
	if c.Agent.Radius <= 0 {
		errs = append(errs, fmt.Errorf("agent.radius: must be positive, got %g", c.Agent.Radius))
	}
	if c.Agent.MaxHealth < 1 {
		errs = append(errs, fmt.Errorf("agent.max_health: must be at least 1, got %d", c.Agent.MaxHealth))
	}

	return errors.Join(errs...)
}

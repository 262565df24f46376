// Package components defines the entity records of the simulation.
package components

// Target is a breakable ball. Stage indexes the per-stage mass and radius
// tables; stage 0 is the terminal fragment.
type Target struct {
	Position     Vec2
	Velocity     Vec2
	Mass         float32
	Radius       float32
	TargetRadius float32
	Stage        uint32
	Archetype    uint32
	Alive        bool
}

// Growing reports whether the target is still growing toward its full radius.
func (t *Target) Growing() bool {
	return t.Radius < t.TargetRadius
}

// Kill marks the target dead. It stays addressable until the end-of-tick commit.
func (t *Target) Kill() {
	t.Alive = false
}

// Projectile is fired by the agent. It is alive while TimeRemaining > 0.
type Projectile struct {
	Position      Vec2
	Velocity      Vec2
	TimeRemaining float32
	Exploded      bool
}

// Alive reports whether the projectile has time left.
func (p *Projectile) Alive() bool {
	return p.TimeRemaining > 0
}

// Explode ends the projectile on impact.
func (p *Projectile) Explode() {
	p.Exploded = true
	p.TimeRemaining = 0
}

// Agent is the player-controlled point. It is a singleton owned by the game.
type Agent struct {
	Position         Vec2
	PreviousPosition Vec2 // Position before the last tick, for interpolation
	Velocity         Vec2 // SmoothDamp state
	Radius           float32
	AimDirection     Vec2
	FireCooldown     float32
}

// Explosion is a one-shot event emitted when a projectile strikes a target.
type Explosion struct {
	Position Vec2 `json:"position"`
}

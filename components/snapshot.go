package components

// TargetView is the read-only part of a target exposed to presentation layers.
type TargetView struct {
	Position     Vec2    `json:"position"`
	Velocity     Vec2    `json:"velocity"`
	Radius       float32 `json:"radius"`
	TargetRadius float32 `json:"target_radius"`
	Stage        uint32  `json:"stage"`
	Archetype    uint32  `json:"archetype"`
	Alive        bool    `json:"alive"`
}

// ProjectileView is the read-only part of a projectile.
type ProjectileView struct {
	Position Vec2 `json:"position"`
	Velocity Vec2 `json:"velocity"`
	Exploded bool `json:"exploded"`
}

// AgentView is the read-only part of the agent.
type AgentView struct {
	Position         Vec2    `json:"position"`
	PreviousPosition Vec2    `json:"previous_position"`
	AimDirection     Vec2    `json:"aim_direction"`
	Radius           float32 `json:"radius"`
}

// Snapshot is a deep copy of the simulation state taken after a tick commits.
type Snapshot struct {
	Tick           int32            `json:"tick"`
	Health         int32            `json:"health"`
	MaxHealth      int32            `json:"max_health"`
	Score          int32            `json:"score"`
	AgentDestroyed bool             `json:"agent_destroyed"`
	Agent          AgentView        `json:"agent"`
	Targets        []TargetView     `json:"targets"`
	Projectiles    []ProjectileView `json:"projectiles"`
	Explosions     []Explosion      `json:"explosions,omitempty"`
}

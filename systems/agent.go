package systems

import (
	"math/rand"

	"github.com/pthm-cable/shatter/components"
)

// AgentParams configures agent movement and firing.
type AgentParams struct {
	FollowSpeed        float32
	SnapDuration       float32
	FireCooldown       float32
	FireSpread         float32 // Half-angle in radians
	ProjectileSpeed    float32
	ProjectileLifetime float32
}

// minAimDistSq is the squared distance below which the agent keeps its
// current position and aim.
const minAimDistSq = 0.0001

// MoveAgent moves the agent toward target with critically damped smoothing.
// With freeAim the aim direction follows the target; otherwise it is left as is.
func MoveAgent(agent *components.Agent, target components.Vec2, freeAim bool, params AgentParams, dt float32) {
	agent.PreviousPosition = agent.Position

	toTarget := target.Sub(agent.Position)
	distSq := toTarget.LenSq()
	if distSq <= minAimDistSq {
		return
	}

	agent.Position, agent.Velocity = SmoothDamp(
		agent.Position, target, agent.Velocity,
		params.SnapDuration, params.FollowSpeed, dt,
	)
	if freeAim {
		agent.AimDirection = toTarget.Scale(1 / sqrt32(distSq))
	}
}

// SmoothDamp moves current toward target like a critically damped spring
// with time constant smoothTime, limited to maxSpeed. It never overshoots.
func SmoothDamp(current, target, velocity components.Vec2, smoothTime, maxSpeed, dt float32) (components.Vec2, components.Vec2) {
	smoothTime = max(smoothTime, 0.0001)
	omega := 2 / smoothTime
	x := omega * dt
	decay := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	original := target
	change := current.Sub(target)
	maxChange := maxSpeed * smoothTime
	if lsq := change.LenSq(); lsq > maxChange*maxChange {
		change = change.Scale(maxChange / sqrt32(lsq))
	}
	target = current.Sub(change)

	temp := velocity.Add(change.Scale(omega)).Scale(dt)
	velocity = velocity.Sub(temp.Scale(omega)).Scale(decay)
	out := target.Add(change.Add(temp).Scale(decay))

	if original.Sub(current).Dot(out.Sub(original)) > 0 {
		out = original
		velocity = components.Vec2{}
	}
	return out, velocity
}

// FireAgent counts down the fire cooldown and, while firing, pushes one
// projectile each time it elapses. Projectiles leave from the back of the
// agent and travel away from the aim direction with a random spread.
// Returns the number of projectiles fired.
func FireAgent(
	agent *components.Agent,
	firing bool,
	params AgentParams,
	rng *rand.Rand,
	projectiles *components.Dense[components.Projectile],
	dt float32,
) int {
	agent.FireCooldown -= dt
	if !firing {
		agent.FireCooldown = max(agent.FireCooldown, 0)
		return 0
	}
	if agent.FireCooldown > 0 {
		return 0
	}
	agent.FireCooldown += params.FireCooldown

	spread := RandomRange(rng, -params.FireSpread, params.FireSpread)
	dir := agent.AimDirection.Scale(-1).Rotate(spread)
	projectiles.Push(components.Projectile{
		Position:      agent.Position.Sub(agent.AimDirection.Scale(agent.Radius)),
		Velocity:      dir.Scale(params.ProjectileSpeed),
		TimeRemaining: params.ProjectileLifetime,
	})
	return 1
}

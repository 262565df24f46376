package telemetry

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	windowStartTick int32

	// Event counters for current window
	spawns         int
	shots          int
	projectileHits int
	agentHits      int
	fragments      int
	contacts       int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordSpawn records a committed target spawn.
func (c *Collector) RecordSpawn() {
	c.spawns++
}

// RecordShots records projectiles fired by the agent.
func (c *Collector) RecordShots(n int) {
	c.shots += n
}

// RecordHits records the outcome of one hit-detection pass.
func (c *Collector) RecordHits(projectileHits, agentHits, fragments int) {
	c.projectileHits += projectileHits
	c.agentHits += agentHits
	c.fragments += fragments
}

// RecordContacts records overlapping target pairs from the collision pass.
func (c *Collector) RecordContacts(n int) {
	c.contacts += n
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Reset discards the current window and restarts it at tick.
func (c *Collector) Reset(tick int32) {
	*c = Collector{
		windowDurationSec:   c.windowDurationSec,
		windowDurationTicks: c.windowDurationTicks,
		dt:                  c.dt,
		windowStartTick:     tick,
	}
}

// Population is the state sampled at the end of a window.
type Population struct {
	Targets      int
	Projectiles  int
	Health       int32
	Score        int32
	TargetSpeeds []float64
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, pop Population) WindowStats {
	var accuracy float64
	if c.shots > 0 {
		accuracy = float64(c.projectileHits) / float64(c.shots)
	}

	speed := ComputeSpeedStats(pop.TargetSpeeds)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		Targets:     pop.Targets,
		Projectiles: pop.Projectiles,
		Health:      int(pop.Health),
		Score:       int(pop.Score),

		Spawns:         c.spawns,
		Shots:          c.shots,
		ProjectileHits: c.projectileHits,
		AgentHits:      c.agentHits,
		Fragments:      c.fragments,
		Contacts:       c.contacts,
		Accuracy:       accuracy,

		SpeedMean: speed.Mean,
		SpeedStd:  speed.Std,
		SpeedP50:  speed.P50,
		SpeedP90:  speed.P90,
	}

	c.Reset(currentTick)
	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}

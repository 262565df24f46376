package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Sampled at window end
	Targets     int `csv:"targets"`
	Projectiles int `csv:"projectiles"`
	Health      int `csv:"health"`
	Score       int `csv:"score"`

	// Events during window
	Spawns         int     `csv:"spawns"`
	Shots          int     `csv:"shots"`
	ProjectileHits int     `csv:"projectile_hits"`
	AgentHits      int     `csv:"agent_hits"`
	Fragments      int     `csv:"fragments"`
	Contacts       int     `csv:"contacts"`
	Accuracy       float64 `csv:"accuracy"` // projectile hits per shot

	// Target speed distribution
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
}

// SpeedStats summarizes a speed sample.
type SpeedStats struct {
	Mean, Std, P50, P90 float64
}

// ComputeSpeedStats calculates mean, standard deviation and percentiles.
// Returns zeros for an empty sample.
func ComputeSpeedStats(values []float64) SpeedStats {
	if len(values) == 0 {
		return SpeedStats{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean, std := stat.PopMeanStdDev(sorted, nil)
	return SpeedStats{
		Mean: mean,
		Std:  std,
		P50:  stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.9, stat.Empirical, sorted, nil),
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("targets", s.Targets),
		slog.Int("projectiles", s.Projectiles),
		slog.Int("health", s.Health),
		slog.Int("score", s.Score),
		slog.Int("spawns", s.Spawns),
		slog.Int("shots", s.Shots),
		slog.Int("projectile_hits", s.ProjectileHits),
		slog.Int("agent_hits", s.AgentHits),
		slog.Int("fragments", s.Fragments),
		slog.Int("contacts", s.Contacts),
		slog.Float64("accuracy", s.Accuracy),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}

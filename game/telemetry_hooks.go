package game

import (
	"log/slog"

	"github.com/pthm-cable/shatter/telemetry"
)

// flushTelemetry flushes the stats window when it is due.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.samplePopulation())

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}
	if g.logStats {
		stats.LogStats()
	}
	for _, b := range g.bookmarks.Check(stats) {
		g.highlights = append(g.highlights, b)
		if g.logStats {
			b.LogBookmark()
		}
	}

	var perfStats telemetry.PerfStats
	if g.perf != nil {
		perfStats = g.perf.Stats()
		if g.logStats {
			perfStats.LogStats()
		}
	}

	if err := g.output.WriteStats(stats); err != nil {
		slog.Error("failed to write stats", "error", err)
	}
	if g.perf != nil {
		if err := g.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// samplePopulation collects the end-of-window population sample.
func (g *Game) samplePopulation() telemetry.Population {
	speeds := make([]float64, 0, g.targets.Len())
	for _, t := range g.targets.Items() {
		speeds = append(speeds, float64(t.Velocity.Len()))
	}
	return telemetry.Population{
		Targets:      g.targets.Len(),
		Projectiles:  g.projectiles.Len(),
		Health:       g.counters.Health,
		Score:        g.counters.Score,
		TargetSpeeds: speeds,
	}
}

package telemetry

import (
	"log/slog"
	"time"
)

// MatchSummary describes one finished match.
type MatchSummary struct {
	Seed        int64     `csv:"seed" json:"seed"`
	Ticks       int32     `csv:"ticks" json:"ticks"`
	DurationSec float64   `csv:"duration_sec" json:"duration_sec"`
	Score       int32     `csv:"score" json:"score"`
	Health      int32     `csv:"health" json:"health"`
	Destroyed   bool      `csv:"destroyed" json:"destroyed"`
	Spawns      int       `csv:"spawns" json:"spawns"`
	Shots       int       `csv:"shots" json:"shots"`
	EndedAt     time.Time `csv:"ended_at" json:"ended_at"`
}

// LogValue implements slog.LogValuer for structured logging.
func (m MatchSummary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("seed", m.Seed),
		slog.Int("ticks", int(m.Ticks)),
		slog.Float64("duration_sec", m.DurationSec),
		slog.Int("score", int(m.Score)),
		slog.Int("health", int(m.Health)),
		slog.Bool("destroyed", m.Destroyed),
		slog.Int("spawns", m.Spawns),
		slog.Int("shots", m.Shots),
	)
}

package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for the simulation tick.
const (
	PhaseSweep     = "sweep"
	PhaseAgent     = "agent"
	PhaseIntegrate = "integrate"
	PhaseHits      = "hits"
	PhaseCollide   = "collide"
	PhaseSpawn     = "spawn"
	PhaseCommit    = "commit"
)

// Phases lists the tick phases in execution order.
var Phases = []string{
	PhaseSweep, PhaseAgent, PhaseIntegrate, PhaseHits,
	PhaseCollide, PhaseSpawn, PhaseCommit,
}

// PerfSample holds timing data for a single tick.
type PerfSample struct {
	TickDuration time.Duration
	Phases       map[string]time.Duration
}

// PerfCollector tracks tick timings over a rolling window.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	tickStart     time.Time
	phaseStart    time.Time
	lastPhase     string

	// Frame timing (viewer only)
	lastFrameTime time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartTick begins timing a new simulation tick.
func (p *PerfCollector) StartTick() {
	if p == nil {
		return
	}
	p.tickStart = time.Now()
	p.currentPhases = make(map[string]time.Duration, len(Phases))
	p.lastPhase = ""
}

// StartPhase ends the running phase, if any, and starts timing the next one.
func (p *PerfCollector) StartPhase(phase string) {
	if p == nil {
		return
	}
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndTick finishes timing the current tick and records the sample.
func (p *PerfCollector) EndTick() {
	if p == nil {
		return
	}
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		TickDuration: now.Sub(p.tickStart),
		Phases:       p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordFrame records frame timing for the viewer.
func (p *PerfCollector) RecordFrame() {
	if p == nil {
		return
	}
	now := time.Now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	// Average duration and share of tick time per phase
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	TicksPerSecond float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	var fps float64
	if p.frameDuration > 0 {
		fps = float64(time.Second) / float64(p.frameDuration)
	}

	out := PerfStats{
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frameDuration,
		FPS:           fps,
	}
	if p.sampleCount == 0 {
		return out
	}

	var total time.Duration
	phaseSum := make(map[string]time.Duration)
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.TickDuration
		if i == 0 || s.TickDuration < out.MinTickDuration {
			out.MinTickDuration = s.TickDuration
		}
		out.MaxTickDuration = max(out.MaxTickDuration, s.TickDuration)
		for phase, d := range s.Phases {
			phaseSum[phase] += d
		}
	}

	out.AvgTickDuration = total / time.Duration(p.sampleCount)
	for phase, sum := range phaseSum {
		avg := sum / time.Duration(p.sampleCount)
		out.PhaseAvg[phase] = avg
		if out.AvgTickDuration > 0 {
			out.PhasePct[phase] = float64(avg) / float64(out.AvgTickDuration) * 100
		}
	}
	if out.AvgTickDuration > 0 {
		out.TicksPerSecond = float64(time.Second) / float64(out.AvgTickDuration)
	}
	return out
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	slog.Info("perf", "perf", s)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd    int32   `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	FPS          float64 `csv:"fps"`
	SweepPct     float64 `csv:"sweep_pct"`
	AgentPct     float64 `csv:"agent_pct"`
	IntegratePct float64 `csv:"integrate_pct"`
	HitsPct      float64 `csv:"hits_pct"`
	CollidePct   float64 `csv:"collide_pct"`
	SpawnPct     float64 `csv:"spawn_pct"`
	CommitPct    float64 `csv:"commit_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTickDuration.Microseconds(),
		MinTickUS:    s.MinTickDuration.Microseconds(),
		MaxTickUS:    s.MaxTickDuration.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		FPS:          s.FPS,
		SweepPct:     s.PhasePct[PhaseSweep],
		AgentPct:     s.PhasePct[PhaseAgent],
		IntegratePct: s.PhasePct[PhaseIntegrate],
		HitsPct:      s.PhasePct[PhaseHits],
		CollidePct:   s.PhasePct[PhaseCollide],
		SpawnPct:     s.PhasePct[PhaseSpawn],
		CommitPct:    s.PhasePct[PhaseCommit],
	}
}

package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/shatter/config"
	"github.com/pthm-cable/shatter/game"
	"github.com/pthm-cable/shatter/telemetry"
)

// Loss weights.
const (
	weightLength      = 1.0  // squared relative error of the mean match length
	weightConsistency = 0.5  // squared coefficient of variation across seeds
	weightPressure    = 0.25 // share of windows outside the busy band
)

// Busy band: a window counts as pressured when this many targets are alive.
const (
	pressureMinTargets = 3
	pressureMaxTargets = 40
)

// FitnessEvaluator runs autopilot matches and scores a parameter vector.
type FitnessEvaluator struct {
	params     *ParamVector
	baseConfig *config.Config
	seeds      []int64
	targetSec  float64
	maxTicks   int32

	mu       sync.Mutex
	lastMean float64
	lastCV   float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, baseCfg *config.Config, seeds []int64, targetSec float64, maxTicks int32) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		baseConfig: baseCfg,
		seeds:      seeds,
		targetSec:  targetSec,
		maxTicks:   maxTicks,
	}
}

// LastStats returns the mean match length and its coefficient of variation
// from the most recent evaluation.
func (fe *FitnessEvaluator) LastStats() (meanSec, cv float64) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastMean, fe.lastCV
}

type matchResult struct {
	durationSec float64
	pressure    float64 // share of windows inside the busy band
}

// Evaluate computes the loss for raw parameter values (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)

	results := make([]matchResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runMatch(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	durations := make([]float64, len(results))
	var pressure float64
	for i, r := range results {
		durations[i] = r.durationSec
		pressure += r.pressure
	}
	pressure /= float64(len(results))

	mean, std := stat.PopMeanStdDev(durations, nil)
	cv := 0.0
	if mean > 0 {
		cv = std / mean
	}

	fe.mu.Lock()
	fe.lastMean, fe.lastCV = mean, cv
	fe.mu.Unlock()

	return computeLoss(mean, cv, pressure, fe.targetSec)
}

// computeLoss combines match length error, spread and pressure.
func computeLoss(meanSec, cv, pressure, targetSec float64) float64 {
	relErr := (meanSec - targetSec) / targetSec
	return weightLength*relErr*relErr +
		weightConsistency*cv*cv +
		weightPressure*(1-clamp01(pressure))
}

// runMatch plays one autopilot match to destruction or maxTicks.
func (fe *FitnessEvaluator) runMatch(cfg *config.Config, seed int64) matchResult {
	var windows, busy int
	g := game.NewGame(cfg, game.GameOptions{
		Seed: seed,
		StatsCallback: func(s telemetry.WindowStats) {
			windows++
			if s.Targets >= pressureMinTargets && s.Targets <= pressureMaxTargets {
				busy++
			}
		},
	})
	defer g.Close()

	pilot := game.NewAutopilot(seed)
	for !g.Over() && g.Tick() < fe.maxTicks {
		g.SetInput(pilot.Decide(g))
		g.Step()
	}

	r := matchResult{durationSec: float64(g.Tick()) * cfg.Physics.DT}
	if windows > 0 {
		r.pressure = float64(busy) / float64(windows)
	}
	return r
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

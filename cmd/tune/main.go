// Package main tunes difficulty parameters with CMA-ES so autopilot
// matches last a chosen length.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/shatter/config"
)

// formatDuration formats a duration as 1h02m03s or 2m03s.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	targetSec := flag.Float64("target-sec", 120, "Desired mean match length in simulated seconds")
	maxTicks := flag.Int("max-ticks", 36000, "Tick cap per match")
	seeds := flag.Int("seeds", 4, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 150, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	// Match lifecycle logs would drown the progress lines.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if *targetSec <= 0 {
		log.Fatal("--target-sec must be positive")
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	params := NewParamVector()

	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	evaluator := NewFitnessEvaluator(params, baseCfg, evalSeeds, *targetSec, int32(*maxTicks))

	dim := params.Dim()
	initX := params.Normalize(params.DefaultVector())

	popSize := *population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(dim)/2.0)
	}

	logPath := filepath.Join(*outputDir, "tune_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	logWriter := csv.NewWriter(logFile)
	defer logWriter.Flush()

	header := []string{"eval", "loss", "mean_sec", "cv"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	logWriter.Write(header)

	evalCount := 0
	bestLoss := 1e9
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			clamped := params.Clamp(params.Denormalize(x))
			loss := evaluator.Evaluate(clamped)
			evalCount++

			if loss < bestLoss {
				bestLoss = loss
				bestParams = append([]float64(nil), clamped...)
			}

			meanSec, cv := evaluator.LastStats()
			row := []string{
				strconv.Itoa(evalCount),
				fmt.Sprintf("%.6f", loss),
				fmt.Sprintf("%.2f", meanSec),
				fmt.Sprintf("%.4f", cv),
			}
			for _, v := range clamped {
				row = append(row, fmt.Sprintf("%.6f", v))
			}
			logWriter.Write(row)
			logWriter.Flush()

			elapsed := time.Since(startTime)
			avgPerEval := elapsed / time.Duration(evalCount)
			remaining := time.Duration(*maxEvals-evalCount) * avgPerEval

			fmt.Printf("Eval %d/%d: mean=%.0fs cv=%.2f loss=%.4f (best=%.4f) | elapsed: %s, ETA: %s\n",
				evalCount, *maxEvals, meanSec, cv, loss, bestLoss,
				formatDuration(elapsed), formatDuration(remaining))

			return loss
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0,
	}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}

	fmt.Printf("Starting CMA-ES with %d parameters, population=%d, max_evals=%d\n", dim, popSize, *maxEvals)
	fmt.Printf("Seeds per evaluation: %d, target length: %.0fs, tick cap: %d\n", *seeds, *targetSec, *maxTicks)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}

	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		log.Fatal("no evaluations completed")
	}

	fmt.Printf("\nTuning complete after %d evaluations in %s\n", evalCount, formatDuration(time.Since(startTime)))
	fmt.Printf("Best loss: %.4f\n", bestLoss)

	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.6f\n", spec.Path, bestParams[i])
	}

	bestCfg := baseCfg.Clone()
	params.ApplyToConfig(bestCfg, bestParams)
	if err := bestCfg.Validate(); err != nil {
		log.Fatalf("best parameters do not validate: %v", err)
	}

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}

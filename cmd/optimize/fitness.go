package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/flap/config"
	"github.com/pthm-cable/flap/game"
	"github.com/pthm-cable/flap/telemetry"
)

// FitnessEvaluator runs headless evolutions and scores how far the
// population learns to fly.
type FitnessEvaluator struct {
	params          *ParamVector
	generations     int
	generationTicks int // tick cap per generation when the base config has none
	seeds           []int64
	baseConfig      *config.Config

	mu          sync.Mutex
	bestFitness float64
	lastScore   int // best score from the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator. Each run evolves for the
// given number of generations; generationTicks bounds a generation whose
// agents never die.
func NewFitnessEvaluator(params *ParamVector, generations, generationTicks int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:          params,
		generations:     generations,
		generationTicks: generationTicks,
		seeds:           seeds,
		baseConfig:      baseCfg,
		bestFitness:     math.Inf(1),
	}
}

// LastScore returns the best score reached in the most recent evaluation.
func (fe *FitnessEvaluator) LastScore() int {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastScore
}

// runResult holds the results from a single evolution run.
type runResult struct {
	generations []telemetry.GenerationStats
}

// tailWindow is how many final generations are averaged.
const tailWindow = 5

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]*runResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runEvolution(x, s)
		}(i, seed)
	}
	wg.Wait()

	var total float64
	best := 0
	for _, r := range results {
		total += computeFitness(r.generations)
		for _, g := range r.generations {
			best = max(best, g.AllTimeBest)
		}
	}
	avg := total / float64(len(fe.seeds))

	fe.mu.Lock()
	if avg < fe.bestFitness {
		fe.bestFitness = avg
	}
	fe.lastScore = best
	fe.mu.Unlock()

	return avg
}

// runEvolution executes one headless run for the configured number of
// generations.
func (fe *FitnessEvaluator) runEvolution(x []float64, seed int64) *runResult {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)
	if cfg.Evolution.MaxGenerationTicks == 0 {
		cfg.Evolution.MaxGenerationTicks = fe.generationTicks
	}

	result := &runResult{}
	g, err := game.NewGameWithOptions(game.Options{
		Seed:           seed,
		Headless:       true,
		Config:         cfg,
		StepsPerUpdate: game.MaxStepsPerUpdate,
		MaxGenerations: fe.generations,
		StatsCallback: func(stats telemetry.GenerationStats) {
			result.generations = append(result.generations, stats)
		},
	})
	if err != nil {
		// Out-of-range vectors are clamped, so this is a broken base config
		panic(err)
	}
	defer g.Unload()

	for !g.Done() {
		g.UpdateHeadless()
	}
	return result
}

// computeFitness is the negated mean of the best distance over the last
// generations, so populations that keep flying far score lowest.
func computeFitness(gens []telemetry.GenerationStats) float64 {
	if len(gens) == 0 {
		return 0
	}
	tail := gens[max(len(gens)-tailWindow, 0):]
	var sum float64
	for _, g := range tail {
		sum += g.DistanceMax
	}
	return -sum / float64(len(tail))
}

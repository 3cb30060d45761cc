package main

import (
	"math"
	"sync"

	"github.com/s-lawrence/autopoiesis/config"
	"github.com/s-lawrence/autopoiesis/game"
	"github.com/s-lawrence/autopoiesis/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int
	seeds       []int64
	baseConfig  *config.Config
	statsWindow float64

	// Best run tracking
	mu          sync.Mutex
	bestFitness float64
	bestReport  telemetry.Report
	lastQuality float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 5.0,
		bestFitness: math.Inf(1),
	}
}

// BestReport returns the lineage report from the best evaluation.
func (fe *FitnessEvaluator) BestReport() telemetry.Report {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestReport
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalTicks int32                   // ticks before extinction (or maxTicks if survived)
	windowStats   []telemetry.WindowStats // collected via StatsCallback each window
	report        telemetry.Report
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness float64
	quality float64
	report  telemetry.Report
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is negative survival ticks: longer survival = lower (better) fitness.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	// Run all seeds in parallel
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			result := fe.runSimulation(x, s)
			quality := fe.computeQuality(result.windowStats)
			results[idx] = seedResult{
				fitness: fe.computeFitness(result, quality),
				quality: quality,
				report:  result.report,
			}
		}(i, seed)
	}
	wg.Wait()

	// Aggregate results
	var totalFitness, totalQuality float64
	var bestSeedFitness float64 = math.Inf(1)
	var bestSeedReport telemetry.Report

	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
		if r.fitness < bestSeedFitness {
			bestSeedFitness = r.fitness
			bestSeedReport = r.report
		}
	}

	n := float64(len(fe.seeds))
	avgFitness := totalFitness / n

	// Update best tracking
	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
		fe.bestReport = bestSeedReport
	}
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return avgFitness
}

// runSimulation executes a single headless simulation run.
// Runs until extinction or maxTicks, whichever comes first.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) *runResult {
	// Create a fresh config copy and apply parameters
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	result := &runResult{}

	g, err := game.NewGameWithOptions(game.Options{
		Seed:           seed,
		Headless:       true,
		StatsWindowSec: fe.statsWindow,
		StepsPerUpdate: 1,
		MaxTicks:       fe.maxTicks,
		Config:         cfg,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	if err != nil {
		// A config this broken scores as instant extinction
		return result
	}

	// Agent counts only mean something once the seeding drip has ended
	warmupTicks := int32(cfg.Seeding.DripEndTick)

	for !g.Finished() {
		g.UpdateHeadless()

		tick := g.Tick()
		if tick <= warmupTicks {
			continue
		}

		// Extinction: every agent gone
		if g.World().AgentCount() == 0 {
			result.survivalTicks = tick
			result.report = g.Report()
			return result
		}
	}

	// Survived the full run
	result.survivalTicks = int32(fe.maxTicks)
	result.report = g.Report()
	return result
}

// copyConfig creates a deep copy of the base config.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	// Load fresh defaults and copy base values
	cfg, _ := config.Load("")

	cfg.Screen = fe.baseConfig.Screen
	cfg.World = fe.baseConfig.World
	cfg.Forces = fe.baseConfig.Forces
	cfg.Agent = fe.baseConfig.Agent
	cfg.Unity = fe.baseConfig.Unity
	cfg.Resource = fe.baseConfig.Resource
	cfg.Physics = fe.baseConfig.Physics
	cfg.Seeding = fe.baseConfig.Seeding
	cfg.Run = fe.baseConfig.Run
	cfg.Telemetry = fe.baseConfig.Telemetry

	cfg.Recompute()
	return cfg
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(survivalTicks × (1.0 + 0.2 × quality))
// Survival dominates; quality adds up to 20% bonus to differentiate
// configs with similar survival.
func (fe *FitnessEvaluator) computeFitness(r *runResult, quality float64) float64 {
	survival := float64(r.survivalTicks)
	return -(survival * (1.0 + 0.2*quality))
}

// Quality component weights.
const (
	qualityWeightStability = 0.30
	qualityWeightGrowth    = 0.30
	qualityWeightHealth    = 0.25
	qualityWeightForage    = 0.15

	qualityWarmupWindows = 2 // skip first N windows (seeding)
	qualityMinAgents     = 3 // exclude windows with fewer agents
)

// computeQuality computes ecology quality in [0, 1] from window stats.
func (fe *FitnessEvaluator) computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}

	// Collect valid windows (past warmup, population present)
	valid := windows[qualityWarmupWindows:]

	var growthSum, healthSum, forageSum float64
	var growthCount, healthCount, forageCount int

	agentCounts := make([]float64, 0, len(valid))

	maxHealth := float64(fe.baseConfig.Agent.MaxHealth)

	for _, w := range valid {
		if w.AgentCount < qualityMinAgents {
			continue
		}

		agentCounts = append(agentCounts, float64(w.AgentCount))

		// 1. Growth score: splits and metabolism show a living ecology
		events := float64(w.Splits + w.Metabolised)
		growthSum += 1.0 - math.Exp(-events/2.0)
		growthCount++

		// 2. Health score: median health should sit mid-range, far from
		// both the death floor and the spawn ceiling
		healthSum += math.Exp(-math.Pow((w.HealthP50/maxHealth-0.5)/0.25, 2))
		healthCount++

		// 3. Foraging score (only when the resource pool is cycling)
		if w.Metabolised > 0 || w.ResourceSpawns > 0 {
			forageSum += 1.0 - math.Exp(-float64(w.Metabolised))
			forageCount++
		}
	}

	// No valid windows → zero quality
	if growthCount == 0 {
		return 0
	}

	growthScore := growthSum / float64(growthCount)

	// Population stability (CV across all valid windows)
	stabilityScore := 0.0
	if len(agentCounts) >= 2 {
		c := cv(agentCounts)
		stabilityScore = math.Exp(-c * c)
	}

	healthScore := healthSum / float64(healthCount)

	forageScore := 0.0
	if forageCount > 0 {
		forageScore = forageSum / float64(forageCount)
	}

	quality := qualityWeightStability*stabilityScore +
		qualityWeightGrowth*growthScore +
		qualityWeightHealth*healthScore +
		qualityWeightForage*forageScore

	return clamp01(quality)
}

// cv computes the coefficient of variation (std/mean) for a slice of values.
func cv(values []float64) float64 {
	n := float64(len(values))
	if n == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / n
	if mean == 0 {
		return 0
	}
	var sqDiff float64
	for _, v := range values {
		d := v - mean
		sqDiff += d * d
	}
	return math.Sqrt(sqDiff/n) / mean
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

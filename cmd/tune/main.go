// Package main provides CMA-ES search for simulation parameters that keep
// the unity ecology alive instead of collapsing or stalling.
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/s-lawrence/autopoiesis/config"
)

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d >= time.Hour {
		return fmt.Sprintf("%dh%02dm%02ds", int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
}

// evalLogger records every evaluation to CSV and tracks the best
// parameter set seen so far.
type evalLogger struct {
	w         *csv.Writer
	params    *ParamVector
	evaluator *FitnessEvaluator
	maxEvals  int
	started   time.Time

	count       int
	bestFitness float64
	bestParams  []float64
}

func newEvalLogger(file *os.File, params *ParamVector, evaluator *FitnessEvaluator, maxEvals int) *evalLogger {
	w := csv.NewWriter(file)
	header := []string{"eval", "fitness"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	w.Write(header)

	return &evalLogger{
		w:           w,
		params:      params,
		evaluator:   evaluator,
		maxEvals:    maxEvals,
		started:     time.Now(),
		bestFitness: math.Inf(1),
	}
}

// record logs one evaluation. x is the normalized vector the optimizer
// proposed; the CSV gets the clamped raw values the run actually used.
func (l *evalLogger) record(x []float64, fitness float64) {
	l.count++
	clamped := l.params.Clamp(l.params.Denormalize(x))
	if fitness < l.bestFitness {
		l.bestFitness = fitness
		l.bestParams = append([]float64(nil), clamped...)
	}

	row := make([]string, 0, len(clamped)+2)
	row = append(row, strconv.Itoa(l.count), fmt.Sprintf("%.6f", fitness))
	for _, v := range clamped {
		row = append(row, fmt.Sprintf("%.6f", v))
	}
	l.w.Write(row)
	l.w.Flush()

	elapsed := time.Since(l.started)
	eta := time.Duration(l.maxEvals-l.count) * (elapsed / time.Duration(l.count))

	// fitness = -(survival * (1 + 0.2*quality)); recover the survival estimate
	quality := l.evaluator.LastQuality()
	survived := -fitness / (1.0 + 0.2*quality)
	fmt.Printf("Eval %d/%d: survived=%.0f ticks quality=%.2f (best=%.0f) | elapsed: %s, ETA: %s\n",
		l.count, l.maxEvals, survived, quality, l.bestFitness,
		formatDuration(elapsed), formatDuration(eta))
}

// writeBestArtifacts saves the winning config and its run report.
func writeBestArtifacts(dir, configPath string, params *ParamVector, best []float64, evaluator *FitnessEvaluator) {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("failed to reload config: %v", err)
		return
	}
	params.ApplyToConfig(cfg, best)

	configOut := filepath.Join(dir, "best_config.yaml")
	if err := cfg.WriteYAML(configOut); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOut)
	}

	reportOut := filepath.Join(dir, "best_report.json")
	data, err := json.MarshalIndent(evaluator.BestReport(), "", "  ")
	if err != nil {
		log.Printf("failed to marshal report: %v", err)
		return
	}
	if err := os.WriteFile(reportOut, data, 0644); err != nil {
		log.Printf("failed to write report: %v", err)
		return
	}
	fmt.Printf("Best run report saved to: %s\n", reportOut)
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxTicks := flag.Int("max-ticks", 50000, "Maximum simulation duration in ticks (cap)")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}
	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	params := NewParamVector()

	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}
	evaluator := NewFitnessEvaluator(params, *maxTicks, evalSeeds, config.Cfg())

	logFile, err := os.Create(filepath.Join(*outputDir, "tune_log.csv"))
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()
	logger := newEvalLogger(logFile, params, evaluator, *maxEvals)

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			fitness := evaluator.Evaluate(params.Denormalize(x))
			logger.record(x, fitness)
			return fitness
		},
	}

	popSize := *population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(params.Dim())/2.0)
	}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}
	settings := &optimize.Settings{FuncEvaluations: *maxEvals}

	fmt.Printf("CMA-ES over %d parameters, population=%d, max evals=%d\n",
		params.Dim(), popSize, *maxEvals)
	fmt.Printf("%d seeds per evaluation, up to %d ticks per run\n", *seeds, *maxTicks)

	result, err := optimize.Minimize(problem, params.Normalize(params.DefaultVector()), settings, method)
	if err != nil {
		log.Printf("search ended: %v", err)
	}

	// The best set can come from any evaluation, not just the final one
	best := logger.bestParams
	if best == nil {
		best = params.Denormalize(result.X)
	}

	fmt.Printf("\nSearch complete after %d evaluations in %s\n",
		logger.count, formatDuration(time.Since(logger.started)))
	fmt.Printf("Best fitness: %.0f\n", logger.bestFitness)
	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.6f\n", spec.Name, best[i])
	}

	writeBestArtifacts(*outputDir, *configPath, params, best, evaluator)
}

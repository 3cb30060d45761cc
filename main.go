package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/s-lawrence/autopoiesis/config"
	"github.com/s-lawrence/autopoiesis/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster headless runs)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Use config stats window if not overridden by CLI
	statsWindowSec := cfg.Telemetry.StatsWindow
	if *statsWindow > 0 {
		statsWindowSec = *statsWindow
	}

	// Build game options
	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: statsWindowSec,
		OutputDir:      *outputDir,
		Headless:       *headless,
		StepsPerUpdate: *stepsPerUpdate,
		MaxTicks:       *maxTicks,
	}

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to start game", "error", err)
		os.Exit(1)
	}

	// Wall-clock deadline from config (0 = unlimited)
	var deadline time.Duration
	if cfg.Run.DeadlineMinutes > 0 {
		deadline = time.Duration(cfg.Run.DeadlineMinutes) * time.Minute
	}
	start := time.Now()

	if *headless {
		// Headless mode - pure CPU simulation, no raylib needed
		slog.Info("starting headless simulation",
			"seed", rngSeed,
			"stats_window", statsWindowSec,
			"max_ticks", *maxTicks,
			"steps_per_update", *stepsPerUpdate,
		)

		for !g.Finished() {
			g.UpdateHeadless()

			if deadline > 0 && time.Since(start) > deadline {
				slog.Info("deadline reached", "tick", g.Tick())
				break
			}
		}
		if g.Finished() {
			slog.Info("max ticks reached", "tick", g.Tick())
		}
	} else {
		// Graphical mode
		rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Autopoiesis")
		rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

		for !rl.WindowShouldClose() {
			g.Update()
			g.Draw()

			if g.Finished() {
				break
			}
			if deadline > 0 && time.Since(start) > deadline {
				break
			}
		}
		rl.CloseWindow()
	}

	if err := g.Finish(); err != nil {
		slog.Error("failed to finalize run", "error", err)
		os.Exit(1)
	}
}

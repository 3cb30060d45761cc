package game

import (
	"fmt"
	"math/rand"

	"github.com/s-lawrence/autopoiesis/camera"
	"github.com/s-lawrence/autopoiesis/config"
	"github.com/s-lawrence/autopoiesis/systems"
	"github.com/s-lawrence/autopoiesis/telemetry"
	"github.com/s-lawrence/autopoiesis/ui"
)

// Options configures a game instance.
type Options struct {
	Seed           int64
	Headless       bool
	LogStats       bool
	StatsWindowSec float64 // 0 = use config value
	OutputDir      string  // empty = no CSV output
	StepsPerUpdate int
	MaxTicks       int            // 0 = unlimited
	Config         *config.Config // nil = global config

	// StatsCallback receives each flushed stats window, e.g. for fitness
	// evaluation without file output.
	StatsCallback func(telemetry.WindowStats)
}

// Game wraps the simulation world with run control and presentation.
type Game struct {
	w   *World
	cfg *config.Config

	// Rendering (nil in headless mode)
	camera    *camera.Camera
	hud       *ui.HUD
	perfPanel *ui.PerfPanel
	renderer  *ui.Renderer

	outputManager *telemetry.OutputManager
	statsCallback func(telemetry.WindowStats)
	logStats      bool
	perfLog       bool

	paused         bool
	stepsPerUpdate int
	maxTicks       int
	headless       bool
	showTuner      bool

	hasSelection  bool
	selectedUnity uint32

	// Render and sampling scratch
	resources []*systems.Resource
	healths   []float64
}

// NewGameWithOptions creates a game instance from the given options.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	rng := rand.New(rand.NewSource(opts.Seed))

	g := &Game{
		w:              NewWorld(cfg, rng, statsWindow),
		cfg:            cfg,
		logStats:       opts.LogStats,
		statsCallback:  opts.StatsCallback,
		stepsPerUpdate: steps,
		maxTicks:       opts.MaxTicks,
		headless:       opts.Headless,
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("initializing output: %w", err)
	}
	g.outputManager = om
	if err := g.outputManager.WriteConfig(cfg); err != nil {
		g.outputManager.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	if !opts.Headless {
		g.camera = camera.New(cfg.Derived.ScreenW32, cfg.Derived.ScreenH32, cfg.Derived.WorldW32, cfg.Derived.WorldH32)
		g.hud = ui.NewHUD()
		g.perfPanel = ui.NewPerfPanel(int32(cfg.Screen.Width)-280, 10)
		g.renderer = ui.NewRenderer()
	}

	return g, nil
}

// step runs one simulation tick plus its telemetry hooks.
func (g *Game) step() {
	g.w.Advance()
	g.flushTelemetry()
}

// Update handles input and runs simulation steps for one frame.
func (g *Game) Update() {
	g.w.perf.RecordFrame()
	g.handleInput()

	if g.paused {
		return
	}

	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
}

// UpdateHeadless runs simulation steps without graphics or input.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
}

// Finished reports whether the configured tick limit has been reached.
func (g *Game) Finished() bool {
	return g.maxTicks > 0 && int(g.w.tick) >= g.maxTicks
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.w.tick
}

// World returns the underlying simulation world.
func (g *Game) World() *World {
	return g.w
}

// SetStatsCallback registers a hook invoked with each flushed stats window.
func (g *Game) SetStatsCallback(cb func(telemetry.WindowStats)) {
	g.statsCallback = cb
}

// Report builds the end-of-run report for the current state.
func (g *Game) Report() telemetry.Report {
	return telemetry.BuildReport(g.w.tracker, g.w.tick, g.w.dt)
}

// Finish logs the run report, writes the unity history, and closes output
// files.
func (g *Game) Finish() error {
	report := g.Report()
	report.LogSummary()

	if err := g.outputManager.WriteUnities(report.Rows); err != nil {
		g.outputManager.Close()
		return fmt.Errorf("writing unity history: %w", err)
	}
	return g.outputManager.Close()
}

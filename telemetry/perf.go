package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for the simulation tick, in execution order. Lifecycle
// runs twice per tick (death sweep, then splits and births); both
// stretches accumulate into the same bucket.
const (
	PhaseLifecycle   = "lifecycle"
	PhaseSnapshot    = "snapshot"
	PhaseSpatialGrid = "spatial_grid"
	PhaseForces      = "forces"
	PhaseCommit      = "commit"
	PhaseReplenish   = "replenish"
	PhaseTelemetry   = "telemetry"
)

// tickPhases fixes the bucket order for the per-tick timing arrays.
var tickPhases = [...]string{
	PhaseLifecycle,
	PhaseSnapshot,
	PhaseSpatialGrid,
	PhaseForces,
	PhaseCommit,
	PhaseReplenish,
	PhaseTelemetry,
}

const numPhases = len(tickPhases)

func phaseIndex(phase string) int {
	for i, name := range tickPhases {
		if name == phase {
			return i
		}
	}
	return -1
}

// perfSample holds timing for one completed tick.
type perfSample struct {
	tick   time.Duration
	phases [numPhases]time.Duration
}

// PerfCollector times tick phases over a rolling window.
type PerfCollector struct {
	window []perfSample
	next   int
	filled int

	current    [numPhases]time.Duration
	tickStart  time.Time
	phaseStart time.Time
	phase      int

	// Frame timing (graphics mode)
	lastFrame time.Time
	frameDur  time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		window: make([]perfSample, windowSize),
		phase:  -1,
	}
}

// StartTick begins timing a new simulation tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.current = [numPhases]time.Duration{}
	p.phase = -1
}

// StartPhase closes the running phase and starts the named one. Entering
// the same phase again later in the tick accumulates into its bucket.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = phaseIndex(phase)
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase >= 0 {
		p.current[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndTick closes the running phase and records the tick sample.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)

	p.window[p.next] = perfSample{tick: now.Sub(p.tickStart), phases: p.current}
	p.next = (p.next + 1) % len(p.window)
	if p.filled < len(p.window) {
		p.filled++
	}
	p.phase = -1
}

// RecordFrame records frame-to-frame time for graphics mode.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frameDur = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats holds aggregated performance statistics. PhaseAvg and
// PhasePct only carry phases that actually ran in the window.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	TicksPerSecond float64

	// Frame timing (graphics mode)
	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	var fps float64
	if p.frameDur > 0 {
		fps = float64(time.Second) / float64(p.frameDur)
	}

	stats := PerfStats{
		PhaseAvg:      make(map[string]time.Duration, numPhases),
		PhasePct:      make(map[string]float64, numPhases),
		FrameDuration: p.frameDur,
		FPS:           fps,
	}
	if p.filled == 0 {
		return stats
	}

	var total, minTick, maxTick time.Duration
	var phaseTotal [numPhases]time.Duration
	for i := 0; i < p.filled; i++ {
		s := p.window[i]
		total += s.tick
		if i == 0 || s.tick < minTick {
			minTick = s.tick
		}
		if s.tick > maxTick {
			maxTick = s.tick
		}
		for j, d := range s.phases {
			phaseTotal[j] += d
		}
	}

	n := time.Duration(p.filled)
	stats.AvgTickDuration = total / n
	stats.MinTickDuration = minTick
	stats.MaxTickDuration = maxTick
	if stats.AvgTickDuration > 0 {
		stats.TicksPerSecond = float64(time.Second) / float64(stats.AvgTickDuration)
	}

	for j, name := range tickPhases {
		avg := phaseTotal[j] / n
		if avg == 0 {
			continue
		}
		stats.PhaseAvg[name] = avg
		if stats.AvgTickDuration > 0 {
			stats.PhasePct[name] = float64(avg) / float64(stats.AvgTickDuration) * 100
		}
	}
	return stats
}

// LogStats logs a perf summary via slog.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"min_tick_us", s.MinTickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, phase := range tickPhases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", float64(int(pct*10))/10)
		}
	}
	slog.Info("perf", attrs...)
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
	for _, phase := range tickPhases {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat record for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd      int32   `csv:"window_end"`
	AvgTickUS      int64   `csv:"avg_tick_us"`
	MinTickUS      int64   `csv:"min_tick_us"`
	MaxTickUS      int64   `csv:"max_tick_us"`
	TicksPerSec    float64 `csv:"ticks_per_sec"`
	FPS            float64 `csv:"fps"`
	LifecyclePct   float64 `csv:"lifecycle_pct"`
	SnapshotPct    float64 `csv:"snapshot_pct"`
	SpatialGridPct float64 `csv:"spatial_grid_pct"`
	ForcesPct      float64 `csv:"forces_pct"`
	CommitPct      float64 `csv:"commit_pct"`
	ReplenishPct   float64 `csv:"replenish_pct"`
	TelemetryPct   float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats for one telemetry window.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:      windowEnd,
		AvgTickUS:      s.AvgTickDuration.Microseconds(),
		MinTickUS:      s.MinTickDuration.Microseconds(),
		MaxTickUS:      s.MaxTickDuration.Microseconds(),
		TicksPerSec:    s.TicksPerSecond,
		FPS:            s.FPS,
		LifecyclePct:   s.PhasePct[PhaseLifecycle],
		SnapshotPct:    s.PhasePct[PhaseSnapshot],
		SpatialGridPct: s.PhasePct[PhaseSpatialGrid],
		ForcesPct:      s.PhasePct[PhaseForces],
		CommitPct:      s.PhasePct[PhaseCommit],
		ReplenishPct:   s.PhasePct[PhaseReplenish],
		TelemetryPct:   s.PhasePct[PhaseTelemetry],
	}
}

package telemetry

import (
	"testing"
	"time"
)

func TestPhaseIndex(t *testing.T) {
	for _, phase := range tickPhases {
		if phaseIndex(phase) < 0 {
			t.Errorf("phaseIndex(%q) = -1, want a bucket", phase)
		}
	}
	if got := phaseIndex("warp"); got != -1 {
		t.Errorf("phaseIndex for unknown phase = %d, want -1", got)
	}
}

func TestPerfCollectorTracksPhases(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 4; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseSpatialGrid)
		time.Sleep(time.Millisecond)
		pc.StartPhase(PhaseForces)
		time.Sleep(5 * time.Millisecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.AvgTickDuration <= 0 {
		t.Fatal("expected positive average tick duration")
	}

	spatial, ok := stats.PhaseAvg[PhaseSpatialGrid]
	if !ok {
		t.Fatal("spatial_grid phase missing from averages")
	}
	forces, ok := stats.PhaseAvg[PhaseForces]
	if !ok {
		t.Fatal("forces phase missing from averages")
	}
	if forces <= spatial {
		t.Errorf("forces avg %v should exceed spatial_grid avg %v", forces, spatial)
	}

	if stats.PhasePct[PhaseForces] <= stats.PhasePct[PhaseSpatialGrid] {
		t.Errorf("forces pct %.1f should exceed spatial_grid pct %.1f",
			stats.PhasePct[PhaseForces], stats.PhasePct[PhaseSpatialGrid])
	}
}

func TestPerfCollectorRepeatedPhaseAccumulates(t *testing.T) {
	pc := NewPerfCollector(10)

	// Lifecycle runs at both ends of a tick
	pc.StartTick()
	pc.StartPhase(PhaseLifecycle)
	time.Sleep(2 * time.Millisecond)
	pc.StartPhase(PhaseCommit)
	time.Sleep(2 * time.Millisecond)
	pc.StartPhase(PhaseLifecycle)
	time.Sleep(2 * time.Millisecond)
	pc.EndTick()

	stats := pc.Stats()
	if lc, cm := stats.PhaseAvg[PhaseLifecycle], stats.PhaseAvg[PhaseCommit]; lc <= cm {
		t.Errorf("accumulated lifecycle %v should exceed commit %v", lc, cm)
	}
}

func TestPerfCollectorWindowWraps(t *testing.T) {
	pc := NewPerfCollector(4)

	for i := 0; i < 10; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseCommit)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average after the window wrapped")
	}
	if stats.TicksPerSecond <= 0 {
		t.Error("expected positive ticks per second")
	}
}

func TestPerfCollectorEmpty(t *testing.T) {
	stats := NewPerfCollector(10).Stats()

	if stats.AvgTickDuration != 0 {
		t.Errorf("empty collector avg = %v, want 0", stats.AvgTickDuration)
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Fatal("phase maps should be allocated even with no samples")
	}
	if len(stats.PhaseAvg) != 0 {
		t.Errorf("phases that never ran should not appear, got %v", stats.PhaseAvg)
	}
}

func TestPerfCollectorFrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	if stats.FrameDuration < 15*time.Millisecond {
		t.Errorf("frame duration = %v, want >= 15ms", stats.FrameDuration)
	}
	if stats.FPS < 10 || stats.FPS > 80 {
		t.Errorf("FPS = %.1f, want within 10-80 for a 16ms frame", stats.FPS)
	}
}

package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/s-lawrence/autopoiesis/telemetry"
)

// HUDData is the per-frame snapshot the HUD draws from.
type HUDData struct {
	Title         string
	UnityCount    int
	AgentCount    int
	ResourceCount int
	Tick          int32
	Speed         int
	FPS           int32
	Paused        bool
	Pursue        bool
}

// HUD draws the top-left status block.
type HUD struct{}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{}
}

// Draw renders the status block.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	counts := fmt.Sprintf("Unities: %d | Agents: %d | Resources: %d",
		data.UnityCount, data.AgentCount, data.ResourceCount)
	rl.DrawText(counts, 10, 35, 16, rl.LightGray)

	clock := fmt.Sprintf("Tick: %d | Speed: %dx | FPS: %d", data.Tick, data.Speed, data.FPS)
	rl.DrawText(clock, 10, 55, 16, rl.LightGray)

	status := "Running (drift)"
	switch {
	case data.Paused:
		status = "PAUSED"
	case data.Pursue:
		status = "Running (pursuit)"
	}
	rl.DrawText(status, 10, 75, 16, rl.Yellow)
}

// DrawControls renders the key legend along the bottom edge.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// perfPhaseOrder is the display order for tick phases.
var perfPhaseOrder = []string{
	telemetry.PhaseLifecycle,
	telemetry.PhaseSnapshot,
	telemetry.PhaseSpatialGrid,
	telemetry.PhaseForces,
	telemetry.PhaseCommit,
	telemetry.PhaseReplenish,
	telemetry.PhaseTelemetry,
}

// PerfPanel draws the tick timing breakdown.
type PerfPanel struct {
	x, y int32
}

// NewPerfPanel creates a panel anchored at (x, y).
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{x: x, y: y}
}

// Draw renders the timing panel from the current rolling window.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x, y := p.x, p.y

	rl.DrawText("Tick Performance", x, y, 16, rl.White)
	y += 20

	summary := fmt.Sprintf("Avg: %s | %.0f tps",
		stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond)
	rl.DrawText(summary, x, y, 14, rl.Yellow)
	y += 16

	for _, phase := range perfPhaseOrder {
		avg, ok := stats.PhaseAvg[phase]
		if !ok {
			continue
		}
		pct := stats.PhasePct[phase]

		color := rl.LightGray
		switch {
		case pct > 20:
			color = rl.Red
		case pct > 10:
			color = rl.Orange
		}

		line := fmt.Sprintf("%-12s %8s %5.1f%%", phase, avg.Round(time.Microsecond), pct)
		rl.DrawText(line, x, y, 12, color)
		y += 14
	}

	if stats.FPS > 0 {
		frame := fmt.Sprintf("Frame: %s | %.0f fps",
			stats.FrameDuration.Round(time.Microsecond), stats.FPS)
		rl.DrawText(frame, x, y, 12, rl.Gray)
	}
}

package game

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Tuner panel geometry
const (
	tunerWidth  = 260
	tunerHeight = 360
	tunerMargin = 10
)

// tunerBounds returns the panel rectangle in screen coordinates.
func (g *Game) tunerBounds() rl.Rectangle {
	x := g.cfg.Derived.ScreenW32 - tunerWidth - tunerMargin
	return rl.Rectangle{X: x, Y: tunerMargin, Width: tunerWidth, Height: tunerHeight}
}

// tunerContains reports whether a screen point lies inside the tuner panel.
func (g *Game) tunerContains(x, y float32) bool {
	b := g.tunerBounds()
	return x >= b.X && x <= b.X+b.Width && y >= b.Y && y <= b.Y+b.Height
}

// tunerSlider draws one labelled slider row and returns the new value and
// the next row's Y position.
func tunerSlider(x, y, width float32, label, format string, value, min, max float32) (float32, float32) {
	rl.DrawText(label, int32(x), int32(y), 14, rl.Gray)
	y += 18
	v := gui.SliderBar(rl.Rectangle{X: x, Y: y, Width: width, Height: 20}, "", "", value, min, max)
	rl.DrawText(fmt.Sprintf(format, v), int32(x+width+8), int32(y+2), 16, rl.LightGray)
	return v, y + 30
}

// drawTuner draws the live parameter panel. Slider changes write through to
// the active config so the next tick picks them up.
func (g *Game) drawTuner() {
	cfg := g.cfg
	b := g.tunerBounds()

	g.renderer.DrawPanel(int32(b.X), int32(b.Y), int32(b.Width), int32(b.Height))

	x := b.X + 10
	y := b.Y + 10
	sliderW := b.Width - 90

	rl.DrawText("Parameters", int32(x), int32(y), 16, rl.White)
	y += 28

	var v float32

	v, y = tunerSlider(x, y, sliderW, "Cohesion divisor", "%.0f", cfg.Derived.CohesionDiv32, 20, 400)
	if v != cfg.Derived.CohesionDiv32 {
		cfg.Forces.CohesionDivisor = float64(v)
		cfg.Derived.CohesionDiv32 = v
	}

	v, y = tunerSlider(x, y, sliderW, "Pursuit divisor", "%.0f", cfg.Derived.PursuitDiv32, 10, 200)
	if v != cfg.Derived.PursuitDiv32 {
		cfg.Forces.PursuitDivisor = float64(v)
		cfg.Derived.PursuitDiv32 = v
	}

	v, y = tunerSlider(x, y, sliderW, "Separation range", "%.0f", cfg.Derived.Space32, 5, 100)
	if v != cfg.Derived.Space32 {
		cfg.Forces.Space = float64(v)
		cfg.Derived.Space32 = v
	}

	v, y = tunerSlider(x, y, sliderW, "Max velocity", "%.1f", cfg.Derived.MaxVel32, 0.5, 8)
	if v != cfg.Derived.MaxVel32 {
		cfg.Forces.MaxVel = float64(v)
		cfg.Derived.MaxVel32 = v
	}

	v, y = tunerSlider(x, y, sliderW, "Split threshold", "%.0f", float32(cfg.Unity.SplitThreshold), 4, 60)
	if int(v) != cfg.Unity.SplitThreshold {
		cfg.Unity.SplitThreshold = int(v)
	}

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 110, Height: 28}, toggleText(g.paused, "Resume", "Pause")) {
		g.paused = !g.paused
	}
	if gui.Button(rl.Rectangle{X: x + 120, Y: y, Width: 110, Height: 28}, "Spawn Resource") {
		g.w.pool.Spawn(g.w.rng)
		g.w.collector.RecordResourceSpawn()
	}
	y += 38

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 110, Height: 28}, "Reset Camera") {
		g.camera.Reset()
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

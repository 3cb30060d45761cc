package game

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/s-lawrence/autopoiesis/components"
	"github.com/s-lawrence/autopoiesis/ui"
)

// Draw renders the world through the camera plus the UI overlays.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	g.drawResources()
	g.drawUnities()
	g.drawSelectionIndicator()
	g.drawUI()

	// Info panel when selected, tooltip when hovering
	if g.hasSelection {
		g.drawInfoPanel()
	} else {
		g.drawTooltip()
	}

	if g.showTuner {
		g.drawTuner()
	}

	rl.EndDrawing()
}

// drawResources draws every pool resource as a filled circle whose color
// fades as the resource is exhausted.
func (g *Game) drawResources() {
	g.resources = g.w.pool.All(g.resources[:0])
	for _, res := range g.resources {
		x := float32(res.X)
		y := float32(res.Y)
		radius := float32(res.Radius)
		if !g.camera.IsVisible(x, y, radius) {
			continue
		}

		cr, cg, cb := res.Intensity()
		color := rl.Color{R: colorClamp(cr), G: colorClamp(cg), B: colorClamp(cb), A: 255}

		sx, sy := g.camera.WorldToScreen(x, y)
		sr := radius * g.camera.Zoom
		rl.DrawCircle(int32(sx), int32(sy), sr, color)
		rl.DrawCircleLines(int32(sx), int32(sy), sr, rl.Color{R: 60, G: 70, B: 80, A: 255})
	}
}

// drawUnities draws each unity's boundary ring and its member agents.
func (g *Game) drawUnities() {
	for _, u := range g.w.unities {
		if len(u.members) == 0 {
			continue
		}

		// Boundary ring at the barycenter, sized by membership
		bx, by := u.Barycenter()
		ringRadius := float32(len(u.members))
		if g.camera.IsVisible(bx, by, ringRadius+u.radius+20) {
			sx, sy := g.camera.WorldToScreen(bx, by)
			rl.DrawCircleLines(int32(sx), int32(sy), ringRadius*g.camera.Zoom, rl.Color{R: 80, G: 90, B: 110, A: 180})
		}

		for _, e := range u.members {
			pos := g.w.posMap.Get(e)
			mot := g.w.motMap.Get(e)
			vit := g.w.vitMap.Get(e)
			if pos == nil || mot == nil || vit == nil {
				continue
			}
			g.drawAgent(pos, mot, vit, u.radius)
		}
	}
}

// drawAgent draws one agent as an oriented triangle. The agent orbits its
// anchor position at the unity radius, pointing along its heading.
func (g *Game) drawAgent(pos *components.Position, mot *components.Motion, vit *components.Vitals, orbit float32) {
	cos := float32(math.Cos(float64(mot.Heading)))
	sin := float32(math.Sin(float64(mot.Heading)))

	wx := pos.X + cos*orbit
	wy := pos.Y + sin*orbit

	radius := float32(g.cfg.Agent.Width) / 2
	if !g.camera.IsVisible(wx, wy, radius*2) {
		return
	}

	// Color shifts from green to red as health runs down
	ratio := vit.Health / float32(g.cfg.Agent.MaxHealth)
	if ratio > 1 {
		ratio = 1
	}
	if ratio < 0 {
		ratio = 0
	}
	color := rl.Color{
		R: uint8(200 - 100*ratio),
		G: uint8(60 + 140*ratio),
		B: 80,
		A: 255,
	}

	sx, sy := g.camera.WorldToScreen(wx, wy)
	drawOrientedTriangle(sx, sy, mot.Heading, radius*g.camera.Zoom, color)
}

// drawOrientedTriangle draws a triangle pointing in the heading direction.
func drawOrientedTriangle(x, y, heading, radius float32, color rl.Color) {
	cos := float32(math.Cos(float64(heading)))
	sin := float32(math.Sin(float64(heading)))

	// Front point
	frontX := x + cos*radius*1.5
	frontY := y + sin*radius*1.5

	// Back left
	backAngle := heading + math.Pi*0.8
	backLeftX := x + float32(math.Cos(float64(backAngle)))*radius
	backLeftY := y + float32(math.Sin(float64(backAngle)))*radius

	// Back right
	backAngle = heading - math.Pi*0.8
	backRightX := x + float32(math.Cos(float64(backAngle)))*radius
	backRightY := y + float32(math.Sin(float64(backAngle)))*radius

	v1 := rl.Vector2{X: frontX, Y: frontY}
	v2 := rl.Vector2{X: backLeftX, Y: backLeftY}
	v3 := rl.Vector2{X: backRightX, Y: backRightY}

	// DrawTriangle requires counter-clockwise winding (v1, v3, v2)
	rl.DrawTriangle(v1, v3, v2, color)
	rl.DrawTriangleLines(v1, v2, v3, rl.White)
}

// drawSelectionIndicator draws a pulsing circle around the selected unity.
func (g *Game) drawSelectionIndicator() {
	if !g.hasSelection {
		return
	}

	u := g.findUnity(g.selectedUnity)
	if u == nil || len(u.members) == 0 {
		g.hasSelection = false
		return
	}

	bx, by := u.Barycenter()
	radius := (float32(len(u.members)) + u.radius + 8) * g.camera.Zoom
	sx, sy := g.camera.WorldToScreen(bx, by)

	// Pulsing glow effect
	pulse := float32(math.Sin(float64(g.w.tick)*0.1))*0.3 + 0.7
	alpha := uint8(255 * pulse)

	rl.DrawCircleLines(int32(sx), int32(sy), radius, rl.Color{R: 255, G: 255, B: 255, A: alpha})
	rl.DrawCircleLines(int32(sx), int32(sy), radius+1, rl.Color{R: 255, G: 255, B: 255, A: alpha / 2})
}

// drawUI draws the HUD, the performance panel and the control legend.
func (g *Game) drawUI() {
	w := g.w

	g.hud.Draw(ui.HUDData{
		Title:         "Autopoiesis",
		UnityCount:    len(w.unities),
		AgentCount:    w.agentCount,
		ResourceCount: w.pool.Count(),
		Tick:          w.tick,
		Speed:         g.stepsPerUpdate,
		FPS:           rl.GetFPS(),
		Paused:        g.paused,
		Pursue:        w.pursue,
	})

	if g.perfLog {
		g.perfPanel.Draw(w.perf.Stats())
	}

	g.hud.DrawControls(int32(g.cfg.Screen.Height),
		"SPACE: Pause | < >: Speed | Click: Select | TAB: Tuner | P: Perf | L: Log | Arrows/Drag: Pan | Wheel: Zoom | Home: Reset")
}

// drawInfoPanel draws the detailed info panel for the selected unity.
func (g *Game) drawInfoPanel() {
	u := g.findUnity(g.selectedUnity)
	if u == nil || len(u.members) == 0 {
		g.hasSelection = false
		return
	}

	const panelWidth = 240
	const panelHeight = 192
	panelX := int32(10)
	panelY := int32(110)

	// Aggregate member health
	var sum float32
	minHealth := float32(math.MaxFloat32)
	maxHealth := float32(0)
	for _, e := range u.members {
		vit := g.w.vitMap.Get(e)
		if vit == nil {
			continue
		}
		sum += vit.Health
		if vit.Health < minHealth {
			minHealth = vit.Health
		}
		if vit.Health > maxHealth {
			maxHealth = vit.Health
		}
	}
	avg := sum / float32(len(u.members))

	r := g.renderer
	r.DrawPanel(panelX, panelY, panelWidth, panelHeight)

	x := panelX + r.Theme.Padding
	y := panelY + r.Theme.Padding
	contentWidth := panelWidth - r.Theme.Padding*2

	y = r.DrawSectionHeader(x, y, fmt.Sprintf("Unity #%d", u.id))
	y = r.DrawLabelValue(x, y, "Generation", fmt.Sprintf("%d", u.generation), contentWidth)
	y = r.DrawLabelValue(x, y, "Members", fmt.Sprintf("%d", len(u.members)), contentWidth)
	y = r.DrawLabelValue(x, y, "Radius", fmt.Sprintf("%.1f", u.radius), contentWidth)

	bx, by := u.Barycenter()
	y = r.DrawLabelValue(x, y, "Center", fmt.Sprintf("(%.0f, %.0f)", bx, by), contentWidth)
	y = r.DrawLabelValue(x, y, "Splits", fmt.Sprintf("%d", u.splits), contentWidth)
	y = r.DrawLabelValue(x, y, "Metabolised", fmt.Sprintf("%d", u.metabolised), contentWidth)

	target := "none"
	if u.hasTarget {
		if res, ok := g.w.pool.Lookup(u.target); ok {
			target = fmt.Sprintf("#%d (%d, %d)", res.ID, res.X, res.Y)
		}
	}
	y = r.DrawLabelValue(x, y, "Target", target, contentWidth)

	y = r.DrawHealthBar(x, y, "Health", avg, float32(g.cfg.Agent.MaxHealth), contentWidth)
	r.DrawLabelValue(x, y, "Range", fmt.Sprintf("%.0f to %.0f", minHealth, maxHealth), contentWidth)
}

// drawTooltip draws a hover tooltip for the unity under the mouse.
func (g *Game) drawTooltip() {
	mousePos := rl.GetMousePosition()
	if g.showTuner && g.tunerContains(mousePos.X, mousePos.Y) {
		return
	}

	wx, wy := g.camera.ScreenToWorld(mousePos.X, mousePos.Y)
	hovered := g.findUnityAt(wx, wy)
	if hovered == nil {
		return
	}

	// Build tooltip content
	var lines []string
	lines = append(lines, fmt.Sprintf("Unity #%d", hovered.id))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("Members: %d", len(hovered.members)))
	lines = append(lines, fmt.Sprintf("Generation: %d", hovered.generation))
	lines = append(lines, fmt.Sprintf("Splits: %d", hovered.splits))
	if hovered.hasTarget {
		lines = append(lines, fmt.Sprintf("Target: #%d", hovered.target))
	}

	// Calculate tooltip dimensions
	const fontSize = 14
	const padding = 8
	const lineHeight = 16

	maxWidth := int32(0)
	for _, line := range lines {
		width := rl.MeasureText(line, fontSize)
		if width > maxWidth {
			maxWidth = width
		}
	}

	tooltipWidth := maxWidth + padding*2
	tooltipHeight := int32(len(lines)*lineHeight + padding*2)

	// Position tooltip (offset from cursor, keep on screen)
	tooltipX := int32(mousePos.X) + 15
	tooltipY := int32(mousePos.Y) + 15

	if tooltipX+tooltipWidth > int32(g.cfg.Screen.Width)-10 {
		tooltipX = int32(mousePos.X) - tooltipWidth - 10
	}
	if tooltipY+tooltipHeight > int32(g.cfg.Screen.Height)-10 {
		tooltipY = int32(mousePos.Y) - tooltipHeight - 10
	}

	// Draw background
	rl.DrawRectangle(tooltipX, tooltipY, tooltipWidth, tooltipHeight, rl.Color{R: 20, G: 25, B: 30, A: 230})
	rl.DrawRectangleLines(tooltipX, tooltipY, tooltipWidth, tooltipHeight, rl.Color{R: 60, G: 70, B: 80, A: 255})

	// Draw text
	for i, line := range lines {
		y := tooltipY + padding + int32(i*lineHeight)
		color := rl.LightGray
		if i == 0 {
			color = rl.White
		}
		rl.DrawText(line, tooltipX+padding, y, fontSize, color)
	}
}

func colorClamp(v float32) uint8 {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return uint8(v)
}

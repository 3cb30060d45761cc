package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	// Tuner panel toggle
	if rl.IsKeyPressed(rl.KeyTab) {
		g.showTuner = !g.showTuner
	}

	// Perf panel toggle
	if rl.IsKeyPressed(rl.KeyP) {
		g.perfLog = !g.perfLog
	}

	// World state dump
	if rl.IsKeyPressed(rl.KeyL) {
		g.logWorldState()
	}

	g.handleCameraInput()
	g.handleSelection()
}

// handleCameraInput processes camera pan/zoom controls.
func (g *Game) handleCameraInput() {
	if g.camera == nil {
		return
	}

	// Pan speed scales inversely with zoom for natural feel
	panSpeed := float32(8.0) / g.camera.Zoom

	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, -panSpeed)
	}

	// Right mouse drag pans against the drag direction. Pan takes screen
	// pixels, so the world tracks the cursor at any zoom.
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		delta := rl.GetMouseDelta()
		g.camera.Pan(-delta.X, -delta.Y)
	}

	// Zoom controls: mouse wheel or +/- keys
	wheelMove := rl.GetMouseWheelMove()
	if wheelMove != 0 {
		g.camera.ZoomBy(1.0 + wheelMove*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}

	// Home key to reset camera
	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}

// handleSelection processes unity selection clicks.
func (g *Game) handleSelection() {
	if g.camera == nil {
		return
	}

	if rl.IsKeyPressed(rl.KeyEscape) {
		g.hasSelection = false
		return
	}

	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}

	mouse := rl.GetMousePosition()
	if g.showTuner && g.tunerContains(mouse.X, mouse.Y) {
		return
	}

	wx, wy := g.camera.ScreenToWorld(mouse.X, mouse.Y)

	if u := g.findUnityAt(wx, wy); u != nil {
		g.selectedUnity = u.id
		g.hasSelection = true
	} else {
		g.hasSelection = false
	}
}

// findUnityAt returns the closest unity whose hit circle contains the world
// point, or nil when the point hits nothing.
func (g *Game) findUnityAt(wx, wy float32) *Unity {
	var closest *Unity
	closestDist := float32(1e12)

	for _, u := range g.w.unities {
		if len(u.members) == 0 {
			continue
		}
		bx, by := u.Barycenter()
		hitRadius := float32(len(u.members)) + 10
		dx := wx - bx
		dy := wy - by
		dist := dx*dx + dy*dy
		if dist < hitRadius*hitRadius && dist < closestDist {
			closest = u
			closestDist = dist
		}
	}
	return closest
}

// findUnity returns the live unity with the given id, or nil.
func (g *Game) findUnity(id uint32) *Unity {
	for _, u := range g.w.unities {
		if u.id == id {
			return u
		}
	}
	return nil
}

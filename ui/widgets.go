package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer draws the shared widget set. Panels route their rows through
// it so spacing and colors stay consistent with the Theme.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section title and returns the next row's Y.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

// DrawLabelValue draws a label on the left and a right-aligned value on
// the same row, then returns the next row's Y.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string, width int32) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)

	valueX := x + width - rl.MeasureText(value, r.Theme.FontSize)
	if minX := x + r.Theme.LabelWidth; valueX < minX {
		valueX = minX
	}
	rl.DrawText(value, valueX, y, r.Theme.FontSize, r.Theme.ValueColor)

	return y + r.Theme.LineHeight
}

// DrawHealthBar draws a labelled current/max bar. The fill color steps
// from red through yellow to green as the ratio rises.
func (r *Renderer) DrawHealthBar(x, y int32, label string, current, max float32, width int32) int32 {
	var ratio float32
	if max > 0 {
		ratio = clamp01(current / max)
	}

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)

	text := fmt.Sprintf("%.0f/%.0f", current, max)
	textWidth := rl.MeasureText(text, r.Theme.FontSize)
	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - textWidth - 6

	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)
	rl.DrawRectangle(barX, y+2, int32(float32(barWidth)*ratio), r.Theme.BarHeight, r.fillColor(ratio))
	rl.DrawText(text, barX+barWidth+6, y, r.Theme.FontSize, r.Theme.ValueColor)

	return y + r.Theme.LineHeight + 2
}

// fillColor picks the bar fill for a [0,1] ratio.
func (r *Renderer) fillColor(ratio float32) rl.Color {
	switch {
	case ratio < 0.3:
		return r.Theme.BarFillLow
	case ratio < 0.6:
		return r.Theme.BarFillMedium
	default:
		return r.Theme.BarFillHigh
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

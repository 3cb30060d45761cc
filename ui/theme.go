// Package ui draws the HUD, overlay panels and shared widgets for the
// simulation. All styling constants live in a Theme so panels stay
// visually consistent.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFillLow     rl.Color
	BarFillMedium  rl.Color
	BarFillHigh    rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 16, G: 21, B: 27, A: 235},
		PanelBorder:    rl.Color{R: 72, G: 82, B: 94, A: 255},
		SectionHeader:  rl.Gold,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.White,
		BarBg:          rl.Color{R: 34, G: 38, B: 44, A: 255},
		BarFillLow:     rl.Color{R: 209, G: 92, B: 92, A: 255},
		BarFillMedium:  rl.Color{R: 206, G: 177, B: 94, A: 255},
		BarFillHigh:    rl.Color{R: 94, G: 196, B: 112, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     80,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}

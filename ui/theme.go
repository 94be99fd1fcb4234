// Package ui draws the HUD and control panel over the board and reads
// keyboard input.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	ReachedColor   rl.Color
	StuckColor     rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 220},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.RayWhite,
		ReachedColor:   rl.Color{R: 100, G: 200, B: 100, A: 255},
		StuckColor:     rl.Color{R: 200, G: 100, B: 100, A: 255},
		Padding:        8,
		LineHeight:     16,
		LabelWidth:     80,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}

// DrawPanel draws a panel background with border.
func (t Theme) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, t.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, t.PanelBorder)
}

// DrawLabelValue draws a label and value on the same line and returns the next Y.
func (t Theme) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, t.FontSize, t.LabelColor)
	rl.DrawText(value, x+t.LabelWidth, y, t.FontSize, t.ValueColor)
	return y + t.LineHeight
}

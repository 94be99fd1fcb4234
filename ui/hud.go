package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pathwalker/game"
	"github.com/pthm-cable/pathwalker/systems"
)

// HUDData holds all the data needed to render the HUD.
type HUDData struct {
	Title      string
	Run        int
	Seed       int64
	Status     systems.Status
	Steps      int
	Backtracks int
	TrailLen   int
	RawLen     int
	Revealed   int
	FPS        int32
}

// HUDDataFrom collects HUD values from a session.
func HUDDataFrom(title string, s *game.Session) HUDData {
	nav := s.Navigator()
	return HUDData{
		Title:      title,
		Run:        s.Run(),
		Seed:       s.Seed(),
		Status:     nav.Status(),
		Steps:      nav.Steps(),
		Backtracks: nav.Backtracks(),
		TrailLen:   nav.PathLen(),
		RawLen:     nav.RawPathLen(),
		Revealed:   s.RevealCount(),
		FPS:        rl.GetFPS(),
	}
}

// HUD renders the stats panel in the top-left corner.
type HUD struct {
	theme Theme
	x, y  int32
	width int32
}

// NewHUD creates a new HUD renderer.
func NewHUD(theme Theme) *HUD {
	return &HUD{theme: theme, x: 14, y: 14, width: 180}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	t := h.theme
	height := t.LineHeight*8 + t.Padding*2
	t.DrawPanel(h.x, h.y, h.width, height)

	x := h.x + t.Padding
	y := h.y + t.Padding

	rl.DrawText(data.Title, x, y, t.HeaderFontSize, t.SectionHeader)
	y += t.LineHeight + 2

	y = t.DrawLabelValue(x, y, "Run", fmt.Sprintf("%d (seed %d)", data.Run, data.Seed))

	statusColor := t.ValueColor
	switch data.Status {
	case systems.StatusReached:
		statusColor = t.ReachedColor
	case systems.StatusStuck:
		statusColor = t.StuckColor
	}
	rl.DrawText("Status:", x, y, t.FontSize, t.LabelColor)
	rl.DrawText(data.Status.String(), x+t.LabelWidth, y, t.FontSize, statusColor)
	y += t.LineHeight

	y = t.DrawLabelValue(x, y, "Steps", fmt.Sprintf("%d", data.Steps))
	y = t.DrawLabelValue(x, y, "Backtracks", fmt.Sprintf("%d", data.Backtracks))
	y = t.DrawLabelValue(x, y, "Trail", fmt.Sprintf("%d / %d", data.TrailLen, data.RawLen))
	y = t.DrawLabelValue(x, y, "Revealed", fmt.Sprintf("%d", data.Revealed))
	t.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%d", data.FPS))
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32) {
	rl.DrawText("Q/Esc quit | R restart | T grid | B blocked | H panel", 14, screenHeight-22, 12, rl.Gray)
}

// Package renderer draws the walker board with raylib.
package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pathwalker/components"
	"github.com/pthm-cable/pathwalker/config"
	"github.com/pthm-cable/pathwalker/game"
)

// BoardRenderer draws grid lines and occupants. Must be used after the
// raylib window is created.
type BoardRenderer struct {
	background rl.Color
	lineColor  rl.Color
	lineWidth  float32
	radius     float32
	lines      []game.Line
}

// NewBoardRenderer precomputes the grid lines for cfg.
func NewBoardRenderer(cfg *config.Config) *BoardRenderer {
	return &BoardRenderer{
		background: toColor(cfg.Colors.Background.RGBA()),
		lineColor:  toColor(cfg.Colors.GridLines.RGBA()),
		lineWidth:  float32(cfg.View.GridLineWidth),
		radius:     float32(cfg.Derived.CellRadius),
		lines:      game.GridLines(cfg),
	}
}

// Draw clears the frame and renders the session's board.
func (b *BoardRenderer) Draw(s *game.Session) {
	rl.ClearBackground(b.background)

	if s.ShowGrid() {
		b.drawLines()
	}

	grid := s.Grid()
	s.EachOccupant(func(c components.Cell, m components.Marker) {
		x, y := grid.CellToScreen(c)
		rl.DrawCircle(int32(x), int32(y), b.radius, toColor(m.Color))
	})
}

func (b *BoardRenderer) drawLines() {
	for _, l := range b.lines {
		start := rl.Vector2{X: float32(l.X1), Y: float32(l.Y1)}
		end := rl.Vector2{X: float32(l.X2), Y: float32(l.Y2)}
		rl.DrawLineEx(start, end, b.lineWidth, b.lineColor)
	}
}

func toColor(c color.RGBA) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

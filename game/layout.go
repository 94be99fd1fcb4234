package game

import "github.com/pthm-cable/pathwalker/config"

// Line is a screen-space segment in pixels.
type Line struct {
	X1, Y1, X2, Y2 int
}

// GridLines returns the board's grid lines: a vertical line at every cell
// boundary from the border to the screen edge, spanning one cell in from the
// top and bottom, then the horizontal lines likewise.
func GridLines(cfg *config.Config) []Line {
	size := cfg.Grid.CellSize
	w, h := cfg.Derived.WidthCells, cfg.Derived.HeightCells
	lines := make([]Line, 0, w+h)

	for i := cfg.Grid.Border; i < w; i++ {
		x := i * size
		lines = append(lines, Line{X1: x, Y1: size, X2: x, Y2: cfg.Screen.Height - size})
	}
	for i := cfg.Grid.Border; i < h; i++ {
		y := i * size
		lines = append(lines, Line{X1: size, Y1: y, X2: cfg.Screen.Width - size, Y2: y})
	}
	return lines
}

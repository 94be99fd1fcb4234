package systems

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/pthm-cable/pathwalker/components"
	"github.com/pthm-cable/pathwalker/config"
)

// Construction errors. Callers match them with errors.Is.
var (
	ErrInvalidDimensions = errors.New("grid dimensions must be positive")
	ErrTooManyBlocks     = errors.New("block count exceeds available cells")
	ErrSamplingExhausted = errors.New("block sampling exhausted its attempts")
	ErrNoStartCell       = errors.New("no open start cell")
	ErrBlockOutOfBounds  = errors.New("blocked cell outside grid")
)

// Grid stores the static obstacle map the walker navigates.
// It is never mutated after construction and may be shared freely.
type Grid struct {
	blocked map[components.Cell]struct{}
	order   []components.Cell // blocked cells in insertion order

	maxCol   int // largest usable column
	maxRow   int // largest usable row
	cellSize int // pixels per cell
	border   int // cells of render offset
}

// NewGrid samples a grid from configuration.
// Blocks are drawn uniformly from [0,MaxCol) x [0,MaxRow), skipping the
// reserved corner near the target and any cell already blocked.
func NewGrid(cfg *config.Config, rng *rand.Rand) (*Grid, error) {
	d := cfg.Derived
	if d.MaxCol < 1 || d.MaxRow < 1 {
		return nil, fmt.Errorf("%w: interior %dx%d", ErrInvalidDimensions, d.MaxCol, d.MaxRow)
	}

	want := cfg.Grid.BlockCount
	if avail := cfg.SampleRegionCells(); want > avail {
		return nil, fmt.Errorf("%w: requested %d, available %d", ErrTooManyBlocks, want, avail)
	}

	g := &Grid{
		blocked:  make(map[components.Cell]struct{}, want),
		order:    make([]components.Cell, 0, want),
		maxCol:   d.MaxCol,
		maxRow:   d.MaxRow,
		cellSize: cfg.Grid.CellSize,
		border:   cfg.Grid.Border,
	}

	for attempt := 0; len(g.order) < want; attempt++ {
		if attempt >= cfg.Grid.MaxSampleAttempts {
			return nil, fmt.Errorf("%w: placed %d of %d after %d draws",
				ErrSamplingExhausted, len(g.order), want, attempt)
		}
		c := components.Cell{Col: rng.Intn(d.MaxCol), Row: rng.Intn(d.MaxRow)}
		if cfg.IsReserved(c.Col, c.Row) {
			continue
		}
		if _, dup := g.blocked[c]; dup {
			continue
		}
		g.add(c)
	}

	return g, nil
}

// NewGridFromCells builds a cols x rows interior (MaxCol = cols-1) with the
// given blocked cells. Cell size is 1 and there is no border.
func NewGridFromCells(cols, rows int, blocked []components.Cell) (*Grid, error) {
	if cols < 1 || rows < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, cols, rows)
	}
	g := &Grid{
		blocked:  make(map[components.Cell]struct{}, len(blocked)),
		order:    make([]components.Cell, 0, len(blocked)),
		maxCol:   cols - 1,
		maxRow:   rows - 1,
		cellSize: 1,
	}
	for _, c := range blocked {
		if !g.InBounds(c) {
			return nil, fmt.Errorf("%w: %v", ErrBlockOutOfBounds, c)
		}
		if _, dup := g.blocked[c]; dup {
			continue
		}
		g.add(c)
	}
	return g, nil
}

func (g *Grid) add(c components.Cell) {
	g.blocked[c] = struct{}{}
	g.order = append(g.order, c)
}

// InBounds reports whether c lies within [0,MaxCol] x [0,MaxRow].
func (g *Grid) InBounds(c components.Cell) bool {
	return c.Col >= 0 && c.Col <= g.maxCol && c.Row >= 0 && c.Row <= g.maxRow
}

// IsBlocked reports whether c is an obstacle.
func (g *Grid) IsBlocked(c components.Cell) bool {
	_, ok := g.blocked[c]
	return ok
}

// IsOpen reports whether the walker may stand on c.
func (g *Grid) IsOpen(c components.Cell) bool {
	return g.InBounds(c) && !g.IsBlocked(c)
}

// MaxCol returns the largest usable column.
func (g *Grid) MaxCol() int { return g.maxCol }

// MaxRow returns the largest usable row.
func (g *Grid) MaxRow() int { return g.maxRow }

// CellCount returns the number of in-bounds cells.
func (g *Grid) CellCount() int { return (g.maxCol + 1) * (g.maxRow + 1) }

// BlockedCount returns the number of obstacles.
func (g *Grid) BlockedCount() int { return len(g.order) }

// Blocked returns the obstacles in placement order.
func (g *Grid) Blocked() []components.Cell {
	out := make([]components.Cell, len(g.order))
	copy(out, g.order)
	return out
}

// Target returns the walker's goal: the rightmost usable column of row 0.
func (g *Grid) Target() components.Cell {
	return components.Cell{Col: g.maxCol, Row: 0}
}

// RandomOpenCell draws a start cell from the block sampling region.
// Gives up with ErrNoStartCell after maxAttempts blocked draws.
func (g *Grid) RandomOpenCell(rng *rand.Rand, maxAttempts int) (components.Cell, error) {
	cols, rows := g.maxCol, g.maxRow
	// Degenerate one-wide interiors still have a column/row to draw from
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	for i := 0; i < maxAttempts; i++ {
		c := components.Cell{Col: rng.Intn(cols), Row: rng.Intn(rows)}
		if g.IsOpen(c) {
			return c, nil
		}
	}
	return components.Cell{}, fmt.Errorf("%w after %d draws", ErrNoStartCell, maxAttempts)
}

// CellSize returns pixels per cell.
func (g *Grid) CellSize() int { return g.cellSize }

// CellToScreen converts a cell to the pixel center used for drawing:
// cellSize*(c+border) + cellSize/2 on each axis.
func (g *Grid) CellToScreen(c components.Cell) (x, y int) {
	half := g.cellSize / 2
	x = g.cellSize*(c.Col+g.border) + half
	y = g.cellSize*(c.Row+g.border) + half
	return
}

// ScreenToCell converts a pixel position back to the cell containing it.
func (g *Grid) ScreenToCell(x, y int) components.Cell {
	return components.Cell{
		Col: floorDiv(x, g.cellSize) - g.border,
		Row: floorDiv(y, g.cellSize) - g.border,
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

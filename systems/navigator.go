package systems

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/pathwalker/components"
)

// ErrInvalidStart is returned when the walker would start off-grid or on an obstacle.
var ErrInvalidStart = errors.New("start cell is not open")

// Status is the navigator's search state.
type Status uint8

const (
	StatusSearching Status = iota // Still stepping toward the target
	StatusReached                 // Standing on the target
	StatusStuck                   // Trail exhausted with no candidate; target unreachable
)

// String returns the display name for a Status.
func (s Status) String() string {
	switch s {
	case StatusSearching:
		return "searching"
	case StatusReached:
		return "reached"
	case StatusStuck:
		return "stuck"
	}
	return "unknown"
}

// Navigator walks a Grid greedily toward its target, one cell per Update.
//
// Each step moves to the in-bounds, unblocked, unvisited, unrejected cardinal
// neighbor closest to the target (Euclidean), ties going to the earlier
// neighbor in components.Steps. A cell with no candidate is popped off the
// trail and rejected for good. Once the target is reached the next Update
// runs SimplifyTrail exactly once.
type Navigator struct {
	grid *Grid

	start   components.Cell
	current components.Cell
	target  components.Cell
	goal    r2.Vec

	path     []components.Cell             // trail; excludes start
	closed   map[components.Cell]struct{}  // trail ∪ rejected
	rejected map[components.Cell]struct{}
	rejOrder []components.Cell

	status     Status
	simplified bool

	steps      int // forward moves
	backtracks int // pops
	rawLen     int // trail length before simplification
}

// NewNavigator creates a navigator at start heading for grid.Target().
func NewNavigator(grid *Grid, start components.Cell) (*Navigator, error) {
	if !grid.IsOpen(start) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStart, start)
	}
	target := grid.Target()
	return &Navigator{
		grid:     grid,
		start:    start,
		current:  start,
		target:   target,
		goal:     cellVec(target),
		closed:   make(map[components.Cell]struct{}, 256),
		rejected: make(map[components.Cell]struct{}, 64),
	}, nil
}

// Update advances one tick: a step while searching, the one-time trail
// simplification after arrival, nothing once stuck or simplified.
func (n *Navigator) Update() {
	switch n.status {
	case StatusStuck:
		return
	case StatusReached:
		if !n.simplified {
			n.rawLen = len(n.path)
			n.path = SimplifyTrail(n.path)
			n.simplified = true
		}
		return
	}

	if n.current == n.target {
		n.status = StatusReached
		return
	}

	n.step()

	if n.current == n.target {
		n.status = StatusReached
	}
}

// step performs one greedy move or one backtrack.
func (n *Navigator) step() {
	if next, ok := n.bestCandidate(); ok {
		n.path = append(n.path, next)
		n.closed[next] = struct{}{}
		n.current = next
		n.steps++
		return
	}

	if len(n.path) == 0 {
		n.status = StatusStuck
		return
	}

	// Dead end: the walker always stands on the last trail cell
	last := n.path[len(n.path)-1]
	n.path = n.path[:len(n.path)-1]
	n.rejected[last] = struct{}{}
	n.rejOrder = append(n.rejOrder, last)
	n.backtracks++

	if len(n.path) > 0 {
		n.current = n.path[len(n.path)-1]
	} else {
		n.current = n.start
	}
}

// bestCandidate returns the neighbor with strictly smallest distance to the target.
func (n *Navigator) bestCandidate() (components.Cell, bool) {
	var best components.Cell
	bestH := 0.0
	found := false

	for _, s := range components.Steps {
		c := n.current.Add(s)
		// Bounds first so off-grid cells never reach a set lookup
		if !n.grid.InBounds(c) || n.grid.IsBlocked(c) {
			continue
		}
		if _, seen := n.closed[c]; seen {
			continue
		}
		h := n.heuristic(c)
		if !found || h < bestH {
			best, bestH, found = c, h, true
		}
	}
	return best, found
}

// heuristic computes the Euclidean distance from c to the target.
func (n *Navigator) heuristic(c components.Cell) float64 {
	return r2.Norm(r2.Sub(cellVec(c), n.goal))
}

func cellVec(c components.Cell) r2.Vec {
	return r2.Vec{X: float64(c.Col), Y: float64(c.Row)}
}

// Status returns the current search state.
func (n *Navigator) Status() Status { return n.status }

// ReachedTarget reports whether the walker stands on the target.
func (n *Navigator) ReachedTarget() bool { return n.status == StatusReached }

// Stuck reports whether the target was found unreachable.
func (n *Navigator) Stuck() bool { return n.status == StatusStuck }

// Simplified reports whether the trail simplification has run.
func (n *Navigator) Simplified() bool { return n.simplified }

// Current returns the walker's cell.
func (n *Navigator) Current() components.Cell { return n.current }

// Start returns the walker's initial cell.
func (n *Navigator) Start() components.Cell { return n.start }

// Target returns the goal cell.
func (n *Navigator) Target() components.Cell { return n.target }

// Path returns a copy of the trail.
func (n *Navigator) Path() []components.Cell {
	out := make([]components.Cell, len(n.path))
	copy(out, n.path)
	return out
}

// PathLen returns the trail length without copying.
func (n *Navigator) PathLen() int { return len(n.path) }

// PathAt returns the i-th trail cell.
func (n *Navigator) PathAt(i int) components.Cell { return n.path[i] }

// Rejected returns the dead-end cells in rejection order.
func (n *Navigator) Rejected() []components.Cell {
	out := make([]components.Cell, len(n.rejOrder))
	copy(out, n.rejOrder)
	return out
}

// IsRejected reports whether c was abandoned as a dead end.
func (n *Navigator) IsRejected(c components.Cell) bool {
	_, ok := n.rejected[c]
	return ok
}

// Steps returns the number of forward moves.
func (n *Navigator) Steps() int { return n.steps }

// Backtracks returns the number of dead-end pops.
func (n *Navigator) Backtracks() int { return n.backtracks }

// RawPathLen returns the trail length before simplification,
// or the current length if simplification has not run.
func (n *Navigator) RawPathLen() int {
	if n.simplified {
		return n.rawLen
	}
	return len(n.path)
}

// MaxUpdates bounds the Update calls needed to reach a terminal state on g:
// every step closes a new cell and every backtrack rejects one, plus the
// arrival and simplification ticks.
func MaxUpdates(g *Grid) int {
	return 2*g.CellCount() + 2
}

package systems

import (
	"container/heap"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/pathwalker/components"
)

// AStarPlanner finds shortest 4-connected routes on a Grid. The walker never
// uses it; it is the baseline greedy trails are measured against.
type AStarPlanner struct {
	grid *Grid

	// Reusable data structures (cleared between searches)
	openHeap  *nodeHeap
	closedSet map[components.Cell]struct{}
	cameFrom  map[components.Cell]components.Cell
	gScore    map[components.Cell]int
}

// astarNode is a node in the A* search.
type astarNode struct {
	cell  components.Cell
	f     float64 // f = g + h (priority)
	g     int
	index int // Heap index
}

// nodeHeap implements heap.Interface for A* open set.
type nodeHeap []*astarNode

func (h nodeHeap) Len() int { return len(h) }

// Less orders by f, then prefers deeper nodes so ties resolve toward the goal.
func (h nodeHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	return h[i].g > h[j].g
}

func (h nodeHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *nodeHeap) Push(x any) {
	n := x.(*astarNode)
	n.index = len(*h)
	*h = append(*h, n)
}

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*h = old[0 : n-1]
	return node
}

// NewAStarPlanner creates a planner for grid.
func NewAStarPlanner(grid *Grid) *AStarPlanner {
	return &AStarPlanner{
		grid:      grid,
		openHeap:  &nodeHeap{},
		closedSet: make(map[components.Cell]struct{}, 256),
		cameFrom:  make(map[components.Cell]components.Cell, 256),
		gScore:    make(map[components.Cell]int, 256),
	}
}

// FindPath computes a shortest path from start to goal. The result excludes
// start and ends at goal, matching the walker's trail. Returns nil, false if
// either end is not open or no route exists.
func (a *AStarPlanner) FindPath(start, goal components.Cell) ([]components.Cell, bool) {
	if !a.grid.IsOpen(start) || !a.grid.IsOpen(goal) {
		return nil, false
	}

	// Same cell - no path needed
	if start == goal {
		return []components.Cell{}, true
	}

	// Clear reusable data structures
	*a.openHeap = (*a.openHeap)[:0]
	clear(a.closedSet)
	clear(a.cameFrom)
	clear(a.gScore)

	a.gScore[start] = 0
	heap.Push(a.openHeap, &astarNode{cell: start, f: cellDistance(start, goal)})

	for a.openHeap.Len() > 0 {
		current := heap.Pop(a.openHeap).(*astarNode)

		// Goal reached
		if current.cell == goal {
			return a.reconstructPath(start, goal), true
		}

		// Stale entry for a cell already expanded with a lower g
		if _, done := a.closedSet[current.cell]; done {
			continue
		}
		a.closedSet[current.cell] = struct{}{}

		for _, s := range components.Steps {
			next := current.cell.Add(s)
			if !a.grid.IsOpen(next) {
				continue
			}
			if _, ok := a.closedSet[next]; ok {
				continue
			}

			tentativeG := current.g + 1
			if existingG, exists := a.gScore[next]; exists && tentativeG >= existingG {
				continue
			}

			a.cameFrom[next] = current.cell
			a.gScore[next] = tentativeG
			heap.Push(a.openHeap, &astarNode{
				cell: next,
				g:    tentativeG,
				f:    float64(tentativeG) + cellDistance(next, goal),
			})
		}
	}

	// No path found
	return nil, false
}

// ShortestPathLen returns the optimal trail length from start to goal, or
// -1 when goal is unreachable.
func (a *AStarPlanner) ShortestPathLen(start, goal components.Cell) int {
	path, ok := a.FindPath(start, goal)
	if !ok {
		return -1
	}
	return len(path)
}

// reconstructPath builds the path from cameFrom map, excluding start.
func (a *AStarPlanner) reconstructPath(start, goal components.Cell) []components.Cell {
	// Build path in reverse
	var rev []components.Cell
	for c := goal; c != start; c = a.cameFrom[c] {
		rev = append(rev, c)
	}

	path := make([]components.Cell, len(rev))
	for i, c := range rev {
		path[len(rev)-1-i] = c
	}
	return path
}

// cellDistance computes the Euclidean distance between two cells. It never
// overestimates the 4-connected step count.
func cellDistance(a, b components.Cell) float64 {
	return r2.Norm(r2.Sub(cellVec(a), cellVec(b)))
}

package systems

import "github.com/pthm-cable/pathwalker/components"

// SimplifyTrail removes detours from a walker trail.
//
// Sweeping left to right, a cell whose grid neighbor sits later in the trail
// (but not next to it in trail order) closes a loop: everything between the
// two is dropped. With two such neighbors the later one wins. The trail is
// rebuilt into a fresh slice on every cut, and the sweep continues over the
// shortened trail. The first and last cells are always kept.
func SimplifyTrail(path []components.Cell) []components.Cell {
	out := make([]components.Cell, len(path))
	copy(out, path)
	index := indexTrail(out)

	for k := 0; k < len(out); k++ {
		m, ok := loopClosure(out, index, k)
		if !ok {
			continue
		}
		next := make([]components.Cell, 0, k+1+len(out)-m)
		next = append(next, out[:k+1]...)
		next = append(next, out[m:]...)
		out = next
		index = indexTrail(out)
	}

	return out
}

// loopClosure finds the trail index to jump to from k, if any.
func loopClosure(path []components.Cell, index map[components.Cell]int, k int) (int, bool) {
	var near [4]int
	n := 0
	for _, s := range components.Steps {
		i, ok := index[path[k].Add(s)]
		if !ok || i == k-1 || i == k+1 {
			continue
		}
		near[n] = i
		n++
	}
	if n == 0 {
		return 0, false
	}

	m := near[0]
	// Two neighbors keep the later index; three or more take the first found
	if n == 2 && near[0] < near[1] {
		m = near[1]
	}

	// A closure behind the cursor was already handled when the sweep passed it
	if m < k {
		return 0, false
	}
	return m, true
}

// indexTrail maps each trail cell to its position. Trails never repeat cells.
func indexTrail(path []components.Cell) map[components.Cell]int {
	index := make(map[components.Cell]int, len(path))
	for i, c := range path {
		index[c] = i
	}
	return index
}

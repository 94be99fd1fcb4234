package components

// Cell identifies a grid cell by column and row. Equality is structural, so
// Cell is usable as a map key.
type Cell struct {
	Col, Row int
}

// Add returns the cell offset by d.
func (c Cell) Add(d Cell) Cell {
	return Cell{Col: c.Col + d.Col, Row: c.Row + d.Row}
}

// Steps are the four cardinal offsets in neighbor priority order.
// Earlier entries win ties during greedy selection.
var Steps = [4]Cell{
	{Col: 1, Row: 0},
	{Col: 0, Row: 1},
	{Col: -1, Row: 0},
	{Col: 0, Row: -1},
}

// IsNeighbor reports whether a and b are 4-adjacent.
func IsNeighbor(a, b Cell) bool {
	dc := a.Col - b.Col
	dr := a.Row - b.Row
	return (dc == 0 && (dr == 1 || dr == -1)) || (dr == 0 && (dc == 1 || dc == -1))
}

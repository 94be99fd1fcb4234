package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/pathwalker/components"
	"github.com/pthm-cable/pathwalker/config"
	"github.com/pthm-cable/pathwalker/systems"
)

// Board holds every drawable occupant of one run as an ECS entity with a
// Cell and a Marker. Obstacles come first in placement order, then the
// target, the walker, and revealed path cells as they appear.
type Board struct {
	world *ecs.World

	// Entity mapper for creating occupants
	occupantMapper *ecs.Map2[components.Cell, components.Marker]

	// Filter for iterating occupants
	occupantFilter *ecs.Filter2[components.Cell, components.Marker]

	// Component maps for single-entity access
	cellMap   *ecs.Map1[components.Cell]
	markerMap *ecs.Map1[components.Marker]

	walker ecs.Entity
	target ecs.Entity

	counts    [4]int // by Kind
	pathColor components.Marker
}

// NewBoard populates a world from the grid's obstacles and the walker's start.
func NewBoard(grid *systems.Grid, colors config.ColorsConfig, start components.Cell) *Board {
	world := ecs.NewWorld()

	b := &Board{
		world:          world,
		occupantMapper: ecs.NewMap2[components.Cell, components.Marker](world),
		occupantFilter: ecs.NewFilter2[components.Cell, components.Marker](world),
		cellMap:        ecs.NewMap1[components.Cell](world),
		markerMap:      ecs.NewMap1[components.Marker](world),
		pathColor:      components.Marker{Kind: components.KindPath, Color: colors.Path.RGBA()},
	}

	for _, c := range grid.Blocked() {
		b.spawn(c, components.Marker{Kind: components.KindBlocked, Color: colors.Blocked.RGBA()})
	}
	b.target = b.spawn(grid.Target(), components.Marker{Kind: components.KindTarget, Color: colors.Target.RGBA()})
	b.walker = b.spawn(start, components.Marker{Kind: components.KindWalker, Color: colors.Walker.RGBA()})

	return b
}

func (b *Board) spawn(c components.Cell, m components.Marker) ecs.Entity {
	b.counts[m.Kind]++
	return b.occupantMapper.NewEntity(&c, &m)
}

// MoveWalker places the walker entity on c.
func (b *Board) MoveWalker(c components.Cell) {
	*b.cellMap.Get(b.walker) = c
}

// Walker returns the walker's drawn cell.
func (b *Board) Walker() components.Cell {
	return *b.cellMap.Get(b.walker)
}

// Target returns the target's drawn cell.
func (b *Board) Target() components.Cell {
	return *b.cellMap.Get(b.target)
}

// SetWalkerHidden shows or hides the walker marker.
func (b *Board) SetWalkerHidden(hidden bool) {
	b.markerMap.Get(b.walker).Hidden = hidden
}

// AddPath reveals one path cell.
func (b *Board) AddPath(c components.Cell) {
	b.spawn(c, b.pathColor)
}

// Count returns how many occupants of a kind exist.
func (b *Board) Count(k components.Kind) int {
	if int(k) >= len(b.counts) {
		return 0
	}
	return b.counts[k]
}

// Each calls fn for every visible occupant. Iteration must not create entities.
func (b *Board) Each(fn func(components.Cell, components.Marker)) {
	query := b.occupantFilter.Query()
	for query.Next() {
		cell, marker := query.Get()
		if marker.Hidden {
			continue
		}
		fn(*cell, *marker)
	}
}

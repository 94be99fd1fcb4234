// Package components defines ECS components for the walker board.
package components

import "image/color"

// Kind classifies a board occupant.
type Kind uint8

const (
	KindBlocked Kind = iota // Obstacle cell
	KindPath                // Revealed trail cell
	KindTarget              // Goal marker
	KindWalker              // The walker itself
)

// Marker is a positioned, colored occupant. Position lives in the Cell
// component of the same entity.
type Marker struct {
	Kind   Kind
	Color  color.RGBA
	Hidden bool // Skipped by renderers
}

// String returns the display name for a Kind.
func (k Kind) String() string {
	names := KindNames()
	if int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// KindNames returns the display names for all kinds.
// The order matches the Kind constants.
func KindNames() []string {
	return []string{"Blocked", "Path", "Target", "Walker"}
}

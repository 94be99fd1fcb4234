package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pathwalker/game"
)

// ReadCommand processes keyboard input for this frame. Panel visibility is
// handled here since it is not a session command.
func ReadCommand(panel *ControlsPanel) game.Command {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		return game.CommandQuit
	}
	if rl.IsKeyPressed(rl.KeyR) {
		return game.CommandRestart
	}
	if rl.IsKeyPressed(rl.KeyT) {
		return game.CommandToggleGrid
	}
	if rl.IsKeyPressed(rl.KeyB) {
		return game.CommandToggleBlocked
	}
	if rl.IsKeyPressed(rl.KeyH) {
		panel.Toggle()
	}
	return game.CommandNone
}

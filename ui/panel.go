package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pathwalker/game"
)

// ControlsPanel mirrors the keyboard toggles with raygui widgets.
type ControlsPanel struct {
	theme   Theme
	x, y    float32
	width   float32
	visible bool
}

// NewControlsPanel creates a panel anchored at the top-right corner of a
// screen screenWidth pixels wide.
func NewControlsPanel(theme Theme, screenWidth int32) *ControlsPanel {
	const width = 140
	return &ControlsPanel{
		theme: theme,
		x:     float32(screenWidth) - width - 14,
		y:     14,
		width: width,
	}
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Draw renders the panel and returns the command a widget requested.
func (c *ControlsPanel) Draw(s *game.Session) game.Command {
	if !c.visible {
		return game.CommandNone
	}

	t := c.theme
	pad := float32(t.Padding)
	c.theme.DrawPanel(int32(c.x), int32(c.y), int32(c.width), 110)

	x := c.x + pad
	y := c.y + pad
	rl.DrawText("Controls", int32(x), int32(y), t.HeaderFontSize, t.SectionHeader)
	y += float32(t.LineHeight) + 4

	cmd := game.CommandNone

	if gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: 14, Height: 14}, "Grid lines", s.ShowGrid()) != s.ShowGrid() {
		cmd = game.CommandToggleGrid
	}
	y += 22

	if gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: 14, Height: 14}, "Blocked cells", s.ShowBlocked()) != s.ShowBlocked() {
		cmd = game.CommandToggleBlocked
	}
	y += 24

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: c.width - 2*pad, Height: 24}, "Restart") {
		cmd = game.CommandRestart
	}

	return cmd
}

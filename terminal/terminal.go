// Package terminal plays the walker in a text terminal with tcell, one
// character per grid cell.
package terminal

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/pathwalker/components"
	"github.com/pthm-cable/pathwalker/game"
)

// Glyphs per occupant kind.
var glyphs = [...]rune{
	components.KindBlocked: '█',
	components.KindPath:    '•',
	components.KindTarget:  'X',
	components.KindWalker:  '@',
}

const gridGlyph = '·'

// Terminal draws a Runner's sessions onto a tcell screen.
type Terminal struct {
	screen tcell.Screen
	runner *game.Runner

	width, height int

	background tcell.Style
	gridStyle  tcell.Style
	textStyle  tcell.Style
}

// New wraps an initialized screen.
func New(screen tcell.Screen, runner *game.Runner) *Terminal {
	cfg := runner.Session().Config()
	bg := toColor(cfg.Colors.Background.RGBA())
	t := &Terminal{
		screen:     screen,
		runner:     runner,
		background: tcell.StyleDefault.Background(bg),
		gridStyle:  tcell.StyleDefault.Background(bg).Foreground(toColor(cfg.Colors.GridLines.RGBA())),
		textStyle:  tcell.StyleDefault.Background(bg).Foreground(tcell.ColorWhite),
	}
	t.width, t.height = screen.Size()
	return t
}

// Run ticks the runner at fps and handles key events until quit, ctx is
// cancelled, done reports true, or a run fails to start. done may be nil.
func (t *Terminal) Run(ctx context.Context, fps int, done func() bool) error {
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	stop := make(chan struct{})
	defer close(stop)
	go pollEvents(t.screen, eventChan, stop)

	t.Draw()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-eventChan:
			quit, err := t.HandleEvent(ev)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}

		case <-ticker.C:
			if err := t.runner.Update(); err != nil {
				return err
			}
			if done != nil && done() {
				return nil
			}
			t.Draw()
		}
	}
}

// pollEvents forwards screen events to out until the screen is finalized or
// stop is closed.
func pollEvents(screen tcell.Screen, out chan<- tcell.Event, stop <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			// Screen finalized
			return
		}
		select {
		case out <- ev:
		case <-stop:
			return
		}
	}
}

// HandleEvent applies one tcell event. It reports whether to quit.
func (t *Terminal) HandleEvent(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		cmd := CommandFor(ev)
		if cmd == game.CommandNone {
			return false, nil
		}
		quit, err := t.runner.Handle(cmd)
		if err == nil && !quit {
			t.Draw()
		}
		return quit, err

	case *tcell.EventResize:
		t.width, t.height = t.screen.Size()
		t.screen.Sync()
		t.Draw()
	}
	return false, nil
}

// CommandFor maps a key to a runner command.
func CommandFor(ev *tcell.EventKey) game.Command {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return game.CommandQuit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return game.CommandQuit
		case 'r', 'R':
			return game.CommandRestart
		case 't', 'T':
			return game.CommandToggleGrid
		case 'b', 'B':
			return game.CommandToggleBlocked
		}
	}
	return game.CommandNone
}

// Draw renders the current session, clipped to the screen size.
func (t *Terminal) Draw() {
	s := t.runner.Session()
	g := s.Grid()
	border := s.Config().Grid.Border

	t.screen.Fill(' ', t.background)

	if s.ShowGrid() {
		for row := 0; row <= g.MaxRow(); row++ {
			for col := 0; col <= g.MaxCol(); col++ {
				t.set(col+border, row+border, gridGlyph, t.gridStyle)
			}
		}
	}

	s.EachOccupant(func(c components.Cell, m components.Marker) {
		style := t.background.Foreground(toColor(m.Color))
		t.set(c.Col+border, c.Row+border, glyphs[m.Kind], style)
	})

	nav := s.Navigator()
	status := fmt.Sprintf(" run %d  %s  steps %d  backtracks %d  trail %d/%d ",
		s.Run(), nav.Status(), nav.Steps(), nav.Backtracks(), nav.PathLen(), nav.RawPathLen())
	t.text(0, t.height-1, status)

	t.screen.Show()
}

func (t *Terminal) set(x, y int, r rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= t.width || y >= t.height {
		return
	}
	t.screen.SetContent(x, y, r, nil, style)
}

func (t *Terminal) text(x, y int, s string) {
	for _, r := range s {
		t.set(x, y, r, t.textStyle)
		x++
	}
}

func toColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

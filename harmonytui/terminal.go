// Package harmonytui runs a game.Game in a terminal.
package harmonytui

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/oliverbestmann/harmony/game"
	"github.com/oliverbestmann/harmony/gm"
)

// Terminals only report key presses. A movement key counts as held for
// this long after its last press or repeat.
const DefaultHold = 120 * time.Millisecond

// upper bound for a single update after a stall
const maxDelta = 100 * time.Millisecond

const (
	holdUp = iota
	holdDown
	holdLeft
	holdRight
)

type Options struct {
	FrameRate int
	Hold      time.Duration
}

type item struct {
	Cell   gm.IVec
	Sprite game.Sprite
}

type Terminal struct {
	screen tcell.Screen
	game   *game.Game
	opts   Options

	heldUntil [4]time.Time
	pending   game.Input

	items []item
}

// Run takes over the terminal until the player quits or the game fails.
func Run(g *game.Game, opts Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}

	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}

	defer screen.Fini()

	return New(screen, g, opts).Run()
}

// New creates a Terminal drawing to an already initialized screen.
func New(screen tcell.Screen, g *game.Game, opts Options) *Terminal {
	if opts.FrameRate <= 0 {
		opts.FrameRate = 30
	}

	if opts.Hold <= 0 {
		opts.Hold = DefaultHold
	}

	return &Terminal{screen: screen, game: g, opts: opts}
}

func (t *Terminal) Run() error {
	ticker := time.NewTicker(time.Second / time.Duration(t.opts.FrameRate))
	defer ticker.Stop()

	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				// screen was finalized
				return
			}

			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	last := time.Now()

	for {
		select {
		case ev := <-events:
			t.HandleEvent(ev, time.Now())

		case now := <-ticker.C:
			delta := min(now.Sub(last), maxDelta)
			last = now

			quit, err := t.Step(now, delta)
			if err != nil || quit {
				return err
			}
		}
	}
}

// Step runs one frame: it updates the game with the input collected since
// the last frame and draws the result.
func (t *Terminal) Step(now time.Time, delta time.Duration) (quit bool, err error) {
	input := t.input(now)
	if input.Quit {
		slog.Info("Quit requested")
		return true, nil
	}

	if err := t.game.Update(delta, input); err != nil {
		return false, fmt.Errorf("update game: %w", err)
	}

	t.Draw()

	return false, nil
}

// HandleEvent records key presses for the next frame.
func (t *Terminal) HandleEvent(ev tcell.Event, now time.Time) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyUp:
			t.hold(holdUp, now)
		case tcell.KeyDown:
			t.hold(holdDown, now)
		case tcell.KeyLeft:
			t.hold(holdLeft, now)
		case tcell.KeyRight:
			t.hold(holdRight, now)
		case tcell.KeyEscape, tcell.KeyCtrlC:
			t.pending.Quit = true
		case tcell.KeyRune:
			t.handleRune(ev.Rune(), now)
		}

	case *tcell.EventResize:
		t.screen.Sync()
	}
}

func (t *Terminal) handleRune(r rune, now time.Time) {
	switch unicode.ToLower(r) {
	case 'w', 'k':
		t.hold(holdUp, now)
	case 's', 'j':
		t.hold(holdDown, now)
	case 'a', 'h':
		t.hold(holdLeft, now)
	case 'd', 'l':
		t.hold(holdRight, now)
	case ' ':
		t.pending.Loop = true
	case 'r':
		t.pending.Restart = true
	case 'n':
		t.pending.Skip = true
	case 'q':
		t.pending.Quit = true
	}
}

func (t *Terminal) hold(key int, now time.Time) {
	t.heldUntil[key] = now.Add(t.opts.Hold)
}

// input returns the input of the current frame and resets all one shot
// actions.
func (t *Terminal) input(now time.Time) game.Input {
	input := t.pending
	t.pending = game.Input{}

	input.Up = now.Before(t.heldUntil[holdUp])
	input.Down = now.Before(t.heldUntil[holdDown])
	input.Left = now.Before(t.heldUntil[holdLeft])
	input.Right = now.Before(t.heldUntil[holdRight])

	return input
}

// Draw renders the room the camera looks at. The first line shows the
// level, the room starts in the second line.
func (t *Terminal) Draw() {
	t.screen.Clear()

	if t.game.Finished() {
		drawText(t.screen, 0, 0, "You are awake. Thanks for playing!", tcell.StyleDefault)
		t.screen.Show()
		return
	}

	t.collect()

	for _, item := range t.items {
		g := glyphOf(item.Sprite)
		style := tcell.StyleDefault.Foreground(g.Color)

		x := item.Cell.X * cellWidth
		y := item.Cell.Y + 1

		t.screen.SetContent(x, y, g.Main, nil, style)
		t.screen.SetContent(x+1, y, g.Fill, nil, style)
	}

	title := fmt.Sprintf("%d: %s", t.game.Level()+1, t.game.LevelName())
	drawText(t.screen, 0, 0, title, tcell.StyleDefault.Bold(true))

	t.screen.Show()
}

// collect gathers the sprites of the visible room as cells relative to the
// room, ordered by layer.
func (t *Terminal) collect() {
	t.items = t.items[:0]

	camera := t.game.Camera()
	half := gm.VecSplat(game.TileSize / 2)

	t.game.Sprites(func(pos game.Position, sprite game.Sprite) {
		// round moving sprites to the closest cell
		cell := pos.Sub(camera).Add(half).Mul(1.0 / game.TileSize).Floor()
		if cell.X < 0 || cell.Y < 0 || cell.X >= game.RoomWidth || cell.Y >= game.RoomHeight {
			return
		}

		t.items = append(t.items, item{Cell: cell, Sprite: sprite})
	})

	slices.SortStableFunc(t.items, func(a, b item) int {
		return cmp.Compare(a.Sprite.Layer, b.Sprite.Layer)
	})
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

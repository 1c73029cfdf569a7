package harmonytui

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/oliverbestmann/harmony/game"
	"github.com/stretchr/testify/require"
)

var testOptions = game.Options{
	Tick:         20 * time.Millisecond,
	MoveDuration: 150 * time.Millisecond,
	MaxClones:    4,
}

func newTestTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)

	screen.SetSize(80, 25)

	levels, err := game.DefaultLevels()
	require.NoError(t, err)

	g, err := game.New(levels, testOptions)
	require.NoError(t, err)

	return New(screen, g, Options{}), screen
}

func runeAt(screen tcell.SimulationScreen, x, y int) rune {
	mainc, _, _, _ := screen.GetContent(x, y)
	return mainc
}

func TestTerminal_Draw(t *testing.T) {
	term, screen := newTestTerminal(t)
	term.Draw()

	// level title in the first line
	require.Equal(t, '1', runeAt(screen, 0, 0))
	require.Equal(t, 'a', runeAt(screen, 3, 0))

	// top left wall, two columns wide
	require.Equal(t, '█', runeAt(screen, 0, 1))
	require.Equal(t, '█', runeAt(screen, 1, 1))

	// the player spawns facing down at cell (2, 6)
	require.Equal(t, 'v', runeAt(screen, 4, 7))

	_, _, style, _ := screen.GetContent(4, 7)
	fg, _, _ := style.Decompose()
	require.Equal(t, tcell.ColorRed, fg)
}

func TestTerminal_Move(t *testing.T) {
	term, screen := newTestTerminal(t)
	now := time.Now()

	term.HandleEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), now)

	quit, err := term.Step(now, 0)
	require.NoError(t, err)
	require.False(t, quit)

	// the key is no longer held once the move is done
	quit, err = term.Step(now.Add(time.Second), testOptions.MoveDuration)
	require.NoError(t, err)
	require.False(t, quit)

	require.Equal(t, '>', runeAt(screen, 6, 7))
	require.Equal(t, '.', runeAt(screen, 4, 7))
}

func TestTerminal_Input(t *testing.T) {
	term, _ := newTestTerminal(t)
	now := time.Now()

	term.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'W', tcell.ModNone), now)
	term.HandleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), now)

	input := term.input(now.Add(DefaultHold / 2))
	require.True(t, input.Up)
	require.True(t, input.Loop)

	// one shot actions are consumed, held keys expire
	input = term.input(now.Add(DefaultHold / 2))
	require.True(t, input.Up)
	require.False(t, input.Loop)

	input = term.input(now.Add(DefaultHold))
	require.Equal(t, game.Input{}, input)
}

func TestTerminal_Quit(t *testing.T) {
	term, _ := newTestTerminal(t)
	now := time.Now()

	term.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), now)

	quit, err := term.Step(now, 0)
	require.NoError(t, err)
	require.True(t, quit)
}

func TestGlyphOf(t *testing.T) {
	require.Equal(t, '<', glyphOf(game.Sprite{Row: 2, Column: 6}).Main)
	require.Equal(t, palette[2], glyphOf(game.Sprite{Row: 2, Column: 6}).Color)

	goal := glyphOf(game.Sprite{Row: game.RowTiles, Column: game.ColumnGoal + 1})
	require.Equal(t, '(', goal.Main)
	require.Equal(t, palette[1], goal.Color)

	anyBox := glyphOf(game.Sprite{Row: game.RowBoxes, Column: game.ColumnAnyBox})
	require.Equal(t, tcell.ColorSilver, anyBox.Color)

	require.Equal(t, '-', glyphOf(game.Sprite{Row: game.RowWires, Column: 0}).Main)
	require.Equal(t, '=', glyphOf(game.Sprite{Row: game.RowWires, Column: 2}).Main)
	require.Equal(t, tcell.ColorYellow, glyphOf(game.Sprite{Row: game.RowWires, Column: game.WireStates}).Color)
}

package game

import (
	"strings"
	"testing"
	"time"

	"github.com/oliverbestmann/harmony"
	"github.com/oliverbestmann/harmony/gm"
	"github.com/stretchr/testify/require"
)

const testLevels = `
levels:
  - name: test
    tiles: |
      ########
      #......#
      #......#
      #......#
      ########
    spawns: [[1, 1], [1, 3]]
    boxes:
      - { cell: [3, 2], color: any }
    buttons:
      - cell: [5, 1]
        color: 0
        gates: [[6, 3]]
    goals:
      - { cell: [6, 3], color: 1 }

  - name: second
    tiles: |
      ....
    spawns: [[0, 0]]
`

var testOptions = Options{
	Tick:         20 * time.Millisecond,
	MoveDuration: 100 * time.Millisecond,
	MaxClones:    4,
}

func newTestGame(t *testing.T) *Game {
	levels, err := LoadLevels(strings.NewReader(testLevels))
	require.NoError(t, err)

	g, err := New(levels, testOptions)
	require.NoError(t, err)

	return g
}

// walk takes one step and waits until the movement is complete.
func walk(t *testing.T, g *Game, input Input) {
	require.NoError(t, g.Update(0, input))
	require.NoError(t, g.Update(testOptions.MoveDuration, Input{}))
}

func cellOf(g *Game, entity harmony.EntityId) gm.IVec {
	cell, _ := harmony.Get[Cell](g.World, entity)
	return cell.IVec
}

func count[C any](g *Game) int {
	var n int
	for range harmony.Iter1(g.World, harmony.Read[C]()) {
		n++
	}

	return n
}

func TestGame_Move(t *testing.T) {
	g := newTestGame(t)

	require.NoError(t, g.Update(0, Input{Right: true}))

	mv, _ := harmony.Get[Moveable](g.World, g.Player())
	require.True(t, mv.Moving)
	require.Equal(t, gm.IVec{X: 2, Y: 1}, cellOf(g, g.Player()))

	// half way there
	require.NoError(t, g.Update(50*time.Millisecond, Input{}))

	pos, _ := harmony.Get[Position](g.World, g.Player())
	require.InDelta(t, 1.5*TileSize, pos.X, 1e-9)

	require.NoError(t, g.Update(50*time.Millisecond, Input{}))

	pos, _ = harmony.Get[Position](g.World, g.Player())
	require.Equal(t, CellPosition(gm.IVec{X: 2, Y: 1}), pos.Vec)

	mv, _ = harmony.Get[Moveable](g.World, g.Player())
	require.False(t, mv.Moving)

	// walking into a wall does not move
	walk(t, g, Input{Up: true})
	require.Equal(t, gm.IVec{X: 2, Y: 1}, cellOf(g, g.Player()))

	player, _ := harmony.Get[Player](g.World, g.Player())
	require.Equal(t, []gm.IVec{gm.Right, gm.Up}, player.Steps)
}

func TestGame_PushBox(t *testing.T) {
	g := newTestGame(t)

	box, ok := g.Grid().Box(gm.IVec{X: 3, Y: 2})
	require.True(t, ok)

	walk(t, g, Input{Down: true})
	walk(t, g, Input{Right: true})
	walk(t, g, Input{Right: true})

	require.Equal(t, gm.IVec{X: 3, Y: 2}, cellOf(g, g.Player()))
	require.Equal(t, gm.IVec{X: 4, Y: 2}, cellOf(g, box))

	_, ok = g.Grid().Box(gm.IVec{X: 3, Y: 2})
	require.False(t, ok)

	moved, ok := g.Grid().Box(gm.IVec{X: 4, Y: 2})
	require.True(t, ok)
	require.Equal(t, box, moved)

	// push it against the wall, it does not move any further
	walk(t, g, Input{Right: true})
	walk(t, g, Input{Right: true})
	require.Equal(t, gm.IVec{X: 6, Y: 2}, cellOf(g, box))

	walk(t, g, Input{Right: true})
	require.Equal(t, gm.IVec{X: 6, Y: 2}, cellOf(g, box))
	require.Equal(t, gm.IVec{X: 5, Y: 2}, cellOf(g, g.Player()))

	// a new loop puts the box back
	require.NoError(t, g.Update(0, Input{Loop: true}))
	require.Equal(t, gm.IVec{X: 3, Y: 2}, cellOf(g, box))
}

func TestGame_LoopSpawnsClone(t *testing.T) {
	g := newTestGame(t)

	walk(t, g, Input{Right: true})
	walk(t, g, Input{Right: true})

	require.NoError(t, g.Update(0, Input{Loop: true}))

	clones := g.collectClones()
	require.Len(t, clones, 1)

	clone, _ := harmony.Get[Clone](g.World, clones[0])
	require.Equal(t, Color(0), clone.Color)
	require.Equal(t, []gm.IVec{gm.Right, gm.Right}, clone.Steps)
	require.Equal(t, gm.IVec{X: 1, Y: 1}, cellOf(g, clones[0]))

	player, _ := harmony.Get[Player](g.World, g.Player())
	require.Equal(t, Color(1), player.Color)
	require.Empty(t, player.Steps)
	require.Equal(t, gm.IVec{X: 1, Y: 3}, cellOf(g, g.Player()))

	collider, _ := harmony.Get[Collider](g.World, g.Player())
	require.Equal(t, Color(1), collider.Color)

	// the clone follows every step of the player
	walk(t, g, Input{Right: true})
	require.Equal(t, gm.IVec{X: 2, Y: 1}, cellOf(g, clones[0]))
	require.Equal(t, 0, count[Playback](g))

	walk(t, g, Input{Up: true})
	require.Equal(t, gm.IVec{X: 3, Y: 1}, cellOf(g, clones[0]))

	// recording is exhausted
	walk(t, g, Input{Down: true})
	require.Equal(t, gm.IVec{X: 3, Y: 1}, cellOf(g, clones[0]))
}

func TestGame_PathMarkers(t *testing.T) {
	g := newTestGame(t)

	for range 3 {
		walk(t, g, Input{Right: true})
	}

	require.NoError(t, g.Update(0, Input{Loop: true}))
	require.NoError(t, g.Update(testOptions.Tick, Input{}))

	clone, _ := harmony.Get[Clone](g.World, g.collectClones()[0])
	require.Len(t, clone.Paths, 3)
	require.Equal(t, 3, count[PathMarker](g))

	var cells []gm.IVec
	for _, marker := range clone.Paths {
		cells = append(cells, cellOf(g, marker))
	}

	require.Equal(t, []gm.IVec{{X: 2, Y: 1}, {X: 3, Y: 1}, {X: 4, Y: 1}}, cells)

	previous := clone.Paths[0]

	// after a step the markers are replaced
	walk(t, g, Input{Down: true})

	clone, _ = harmony.Get[Clone](g.World, g.collectClones()[0])
	require.Len(t, clone.Paths, 2)
	require.Equal(t, 2, count[PathMarker](g))
	require.False(t, g.World.IsAlive(previous))
}

func TestGame_ButtonOpensGate(t *testing.T) {
	g := newTestGame(t)

	gate := gm.IVec{X: 6, Y: 3}
	require.True(t, g.Grid().Solid(gate))

	// first loop: walk onto the button
	for range 4 {
		walk(t, g, Input{Right: true})
	}

	require.Equal(t, gm.IVec{X: 5, Y: 1}, cellOf(g, g.Player()))
	require.False(t, g.Grid().Solid(gate))

	// the gate closes once the button is released
	require.NoError(t, g.Update(0, Input{Loop: true}))
	require.NoError(t, g.Update(testOptions.Tick, Input{}))
	require.True(t, g.Grid().Solid(gate))

	// second loop: the clone holds the button while we walk to the goal
	for range 4 {
		walk(t, g, Input{Right: true})
	}

	require.False(t, g.Grid().Solid(gate))

	var hidden int
	harmony.Each2(g.World, harmony.Read[Gate](), harmony.Read[Sprite](), func(_ harmony.EntityId, gate *Gate, sprite *Sprite) {
		if gate.Open && sprite.Hidden {
			hidden++
		}
	})

	require.Equal(t, 1, hidden)

	walk(t, g, Input{Right: true})

	// goal reached, on to the next level
	require.Equal(t, 1, g.Level())
	require.Equal(t, 0, count[Clone](g))
	require.Equal(t, gm.Vec{X: 0, Y: RoomHeight * TileSize}, g.Camera())
}

func TestGame_Restart(t *testing.T) {
	g := newTestGame(t)

	walk(t, g, Input{Right: true})
	require.NoError(t, g.Update(0, Input{Loop: true}))
	require.NoError(t, g.Update(testOptions.Tick, Input{}))
	require.Equal(t, 1, count[Clone](g))
	require.Equal(t, 1, count[PathMarker](g))

	require.NoError(t, g.Update(0, Input{Restart: true}))

	require.Equal(t, 0, count[Clone](g))
	require.Equal(t, 0, count[PathMarker](g))

	player, _ := harmony.Get[Player](g.World, g.Player())
	require.Equal(t, Color(0), player.Color)
	require.Equal(t, gm.IVec{X: 1, Y: 1}, cellOf(g, g.Player()))
}

func TestGame_Skip(t *testing.T) {
	g := newTestGame(t)
	require.Equal(t, gm.Vec{}, g.Camera())
	require.Equal(t, "test", g.LevelName())

	require.NoError(t, g.Update(0, Input{Skip: true}))
	require.Equal(t, 1, g.Level())
	require.Equal(t, "second", g.LevelName())
	require.False(t, g.Finished())

	spawn := gm.IVec{X: 0, Y: RoomHeight}
	require.Equal(t, spawn, cellOf(g, g.Player()))

	require.NoError(t, g.Update(0, Input{Skip: true}))
	require.True(t, g.Finished())

	// nothing happens once finished
	require.NoError(t, g.Update(time.Second, Input{Right: true}))
	require.Equal(t, spawn, cellOf(g, g.Player()))
}

func TestGame_Sprites(t *testing.T) {
	g := newTestGame(t)

	var actors, gates int
	g.Sprites(func(pos Position, sprite Sprite) {
		switch {
		case sprite.Layer == LayerActors:
			actors++
			require.Equal(t, CellPosition(gm.IVec{X: 1, Y: 1}), pos.Vec)

		case sprite.Row == RowTiles && sprite.Column == ColumnGate:
			gates++
		}
	})

	require.Equal(t, 1, actors)
	require.Equal(t, 1, gates)
}

func TestGame_Animation(t *testing.T) {
	g := newTestGame(t)

	require.NoError(t, g.Update(0, Input{Right: true}))
	require.NoError(t, g.Update(80*time.Millisecond, Input{}))

	anim, _ := harmony.Get[Animator](g.World, g.Player())
	require.True(t, anim.Playing)
	require.Equal(t, 1, anim.Index)

	sprite, _ := harmony.Get[Sprite](g.World, g.Player())
	require.Equal(t, facingColumn(gm.Right), sprite.Column)
	require.Equal(t, 0, sprite.Frame)

	require.NoError(t, g.Update(20*time.Millisecond, Input{}))
	require.NoError(t, g.Update(0, Input{}))

	anim, _ = harmony.Get[Animator](g.World, g.Player())
	require.False(t, anim.Playing)
	require.Equal(t, 0, anim.Index)
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(nil, testOptions)
	require.Error(t, err)

	levels, _ := DefaultLevels()
	_, err = New(levels, Options{})
	require.Error(t, err)

	// levels built in code are validated too
	_, err = New([]Level{{Name: "raw", Tiles: "...."}}, testOptions)
	require.ErrorContains(t, err, "spawns")

	_, err = New([]Level{{Name: "raw", Tiles: "#...", Spawns: []Pos{{X: 0, Y: 0}}}}, testOptions)
	require.ErrorContains(t, err, "not on a floor tile")
}

func TestNew_LevelsFromCode(t *testing.T) {
	levels := []Level{
		{Name: "raw", Tiles: "....", Spawns: []Pos{{X: 1, Y: 0}}},
	}

	g, err := New(levels, testOptions)
	require.NoError(t, err)

	require.Equal(t, "raw", g.LevelName())
	require.Equal(t, gm.IVec{X: 1, Y: 0}, cellOf(g, g.Player()))
	require.False(t, g.Grid().Solid(gm.IVec{X: 3, Y: 0}))
	require.True(t, g.Grid().Solid(gm.IVec{X: 4, Y: 0}))

	walk(t, g, Input{Right: true})
	require.Equal(t, gm.IVec{X: 2, Y: 0}, cellOf(g, g.Player()))
}

const wireLevels = `
levels:
  - name: wires
    tiles: |
      ######
      #....#
      #....#
      ######
    spawns: [[1, 1], [1, 2]]
    buttons:
      - cell: [2, 1]
        color: any
        gates: [[4, 2]]
        slaves:
          - { cell: [3, 1], color: any }
        wires: [[3, 2]]
`

func wireColumns(g *Game) []int {
	var columns []int

	harmony.Each1(g.World, harmony.Read[Sprite](), func(_ harmony.EntityId, sprite *Sprite) {
		if sprite.Row == RowWires {
			columns = append(columns, sprite.Column)
		}
	})

	return columns
}

func TestGame_Wires(t *testing.T) {
	levels, err := LoadLevels(strings.NewReader(wireLevels))
	require.NoError(t, err)

	g, err := New(levels, testOptions)
	require.NoError(t, err)

	gate := gm.IVec{X: 4, Y: 2}

	require.Equal(t, []int{0}, wireColumns(g))

	// one of two buttons pressed
	walk(t, g, Input{Right: true})
	require.NoError(t, g.Update(testOptions.Tick, Input{}))
	require.Equal(t, []int{WireStates / 2}, wireColumns(g))
	require.True(t, g.Grid().Solid(gate))

	require.NoError(t, g.Update(0, Input{Loop: true}))
	require.NoError(t, g.Update(testOptions.Tick, Input{}))
	require.Equal(t, []int{0}, wireColumns(g))

	// the clone walks back onto the master button
	walk(t, g, Input{Right: true})
	require.NoError(t, g.Update(testOptions.Tick, Input{}))
	require.Equal(t, []int{WireStates / 2}, wireColumns(g))

	// and the player presses the slave
	walk(t, g, Input{Right: true})
	walk(t, g, Input{Up: true})
	require.NoError(t, g.Update(testOptions.Tick, Input{}))
	require.Equal(t, gm.IVec{X: 3, Y: 1}, cellOf(g, g.Player()))

	require.Equal(t, []int{WireStates}, wireColumns(g))
	require.False(t, g.Grid().Solid(gate))
}

func TestWireColumn(t *testing.T) {
	require.Equal(t, 0, wireColumn(0, 1))
	require.Equal(t, WireStates, wireColumn(1, 1))
	require.Equal(t, 1, wireColumn(1, 3))
	require.Equal(t, 2, wireColumn(2, 3))
	require.Equal(t, WireStates, wireColumn(3, 3))
	require.Equal(t, 0, wireColumn(0, 0))
}

// Package game implements the puzzle rules of Awaken on top of a
// harmony.World: a player walks a grid, loops back in time and is joined
// by clones replaying the previous loops.
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/oliverbestmann/harmony"
	"github.com/oliverbestmann/harmony/gm"
	"github.com/oliverbestmann/harmony/physics"
)

type Options struct {
	// Tick is the interval of the fixed update.
	Tick time.Duration

	// MoveDuration is the time an actor needs to move one cell.
	MoveDuration time.Duration

	// MaxClones limits the number of clones per level. It is also
	// limited by the number of spawns of a level.
	MaxClones int
}

// Game owns the world and all state of a running game.
type Game struct {
	World *harmony.World

	opts     Options
	grid     *Grid
	rooms    []room
	timestep FixedTimestep

	player   harmony.EntityId
	level    int
	finished bool

	// scratch buffers, reused every frame
	ids       []harmony.EntityId
	paths     pathBuffers
	occupants []occupant
	actors    []standing
}

// New places all levels below each other into a new world and spawns the
// player in the first level.
func New(levels []Level, opts Options) (*Game, error) {
	if len(levels) == 0 {
		return nil, errors.New("no levels")
	}

	if opts.Tick <= 0 || opts.MoveDuration <= 0 {
		return nil, errors.New("tick and move duration must be positive")
	}

	for idx := range levels {
		if err := levels[idx].prepare(); err != nil {
			return nil, fmt.Errorf("level %d (%q): %w", idx, levels[idx].Name, err)
		}
	}

	w := harmony.NewWorld()
	grid := NewGrid(RoomWidth, RoomHeight*len(levels))

	g := &Game{
		World:    w,
		opts:     opts,
		grid:     grid,
		timestep: FixedTimestep{Step: opts.Tick},
	}

	for idx := range levels {
		origin := gm.IVec{X: 0, Y: idx * RoomHeight}
		g.rooms = append(g.rooms, spawnLevel(w, grid, &levels[idx], idx, origin, opts.MoveDuration))
	}

	g.player = spawnPlayer(w, g.rooms[0].spawns[0], opts.MoveDuration)

	slog.Info(
		"Game created",
		slog.Int("levels", len(levels)),
		slog.Int("entities", w.EntityCount()),
		slog.Int("columns", w.ColumnCount()),
	)

	return g, nil
}

func (g *Game) Player() harmony.EntityId {
	return g.player
}

// Level returns the index of the current level.
func (g *Game) Level() int {
	return g.level
}

// LevelName returns the name of the current level.
func (g *Game) LevelName() string {
	return g.rooms[g.level].name
}

// Finished returns true once the last level is complete.
func (g *Game) Finished() bool {
	return g.finished
}

func (g *Game) Grid() *Grid {
	return g.grid
}

// Update runs the frame systems and then drains the fixed ticks covered
// by delta. A violated store contract ends the update with an error.
func (g *Game) Update(delta time.Duration, input Input) error {
	return harmony.Catch(func() {
		g.update(delta, input)
	})
}

func (g *Game) update(delta time.Duration, input Input) {
	if g.finished {
		return
	}

	switch {
	case input.Skip:
		g.advance()
		return

	case input.Restart:
		g.restart(g.level)
		return

	case input.Loop:
		g.loop()
	}

	playerInput(g.World, g.grid, g.player, input, &g.ids)
	playback(g.World, g.grid, &g.ids)
	moveEntities(g.World, delta)
	animate(g.World, delta)

	g.timestep.Advance(delta, g.fixedUpdate)
}

func (g *Game) fixedUpdate() {
	if g.finished {
		return
	}

	updatePaths(g.World, g.grid, &g.paths)
	updateButtons(g.World, g.grid, &g.occupants)

	if levelComplete(g.World, g.level, &g.actors) {
		g.advance()
	}
}

// Sprites calls fn for every visible sprite.
func (g *Game) Sprites(fn func(Position, Sprite)) {
	for pos, sprite := range harmony.Iter2(g.World, harmony.Read[Position](), harmony.Read[Sprite]()) {
		if !sprite.Hidden {
			fn(*pos, *sprite)
		}
	}
}

// Camera returns the top left pixel of the room the player is in.
func (g *Game) Camera() gm.Vec {
	pos, _ := harmony.Get[Position](g.World, g.player)
	center := pos.Add(gm.VecSplat(TileSize / 2))

	for _, r := range g.rooms {
		if bounds := r.bounds(); physics.Contains(bounds, center) {
			return bounds.Min
		}
	}

	return CellPosition(g.rooms[g.level].origin)
}

func (r room) bounds() gm.Rect {
	return gm.RectWithOriginAndSize(
		CellPosition(r.origin),
		gm.Vec{X: ScreenWidth, Y: ScreenHeight},
	)
}

// loop starts the next time loop: clones and boxes go back to the start,
// the recording of the player becomes a new clone and the player takes the
// next color.
func (g *Game) loop() {
	w := g.World
	r := g.rooms[g.level]

	player, _ := harmony.GetMut[Player](w, g.player)
	steps := player.Steps
	color := player.Color
	player.Steps = nil

	clones := g.resetClones()
	g.resetBoxes()

	next := color + 1
	if int(next) >= len(r.spawns) || len(clones) >= g.opts.MaxClones {
		// no room for another clone, replay the current loop
		g.placePlayer(color, r.spawns[color])
		slog.Debug("Loop restarted", slog.Int("color", int(color)))
		return
	}

	spawnClone(w, color, steps, r.spawns[color], g.opts.MoveDuration)
	g.placePlayer(next, r.spawns[next])

	slog.Debug(
		"Clone spawned",
		slog.Int("color", int(color)),
		slog.Int("steps", len(steps)),
	)
}

// resetClones moves every clone back to its spawn and returns their ids.
func (g *Game) resetClones() []harmony.EntityId {
	w := g.World
	r := g.rooms[g.level]

	clones := g.collectClones()

	for _, entity := range clones {
		harmony.Remove[Playback](w, entity)

		clone, _ := harmony.GetMut[Clone](w, entity)
		clone.CurrentMove = 0
		spawn := r.spawns[clone.Color]

		placeAt(w, entity, spawn)
	}

	return clones
}

func (g *Game) collectClones() []harmony.EntityId {
	clones := g.ids[:0]
	for clone := range harmony.Iter1(g.World, harmony.Read[Clone]()) {
		clones = append(clones, clone)
	}

	g.ids = clones

	return clones
}

func (g *Game) resetBoxes() {
	w := g.World
	r := g.rooms[g.level]

	for _, box := range r.boxes {
		cell, _ := harmony.Get[Cell](w, box)
		g.grid.RemoveBox(cell.IVec)
	}

	for _, box := range r.boxes {
		pushBox, _ := harmony.Get[PushBox](w, box)
		g.grid.PlaceBox(pushBox.Origin, box)
		placeAt(w, box, pushBox.Origin)
	}
}

func (g *Game) placePlayer(color Color, cell gm.IVec) {
	w := g.World

	player, _ := harmony.GetMut[Player](w, g.player)
	player.Color = color

	collider, _ := harmony.GetMut[Collider](w, g.player)
	collider.Color = color

	sprite, _ := harmony.GetMut[Sprite](w, g.player)
	sprite.Row = int(color)

	placeAt(w, g.player, cell)
}

// restart deletes all clones and starts the given level from scratch.
func (g *Game) restart(level int) {
	w := g.World

	for _, clone := range g.collectClones() {
		deletePaths(w, clone)
		w.Delete(clone)
	}

	g.level = level
	g.resetBoxes()

	player, _ := harmony.GetMut[Player](w, g.player)
	player.Steps = nil

	g.placePlayer(0, g.rooms[level].spawns[0])
}

// advance moves on to the next level.
func (g *Game) advance() {
	slog.Info("Level complete", slog.Int("level", g.level))

	if g.level+1 >= len(g.rooms) {
		g.finished = true
		slog.Info("Game finished")
		return
	}

	g.restart(g.level + 1)
}

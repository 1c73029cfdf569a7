package game

import (
	"time"

	"github.com/oliverbestmann/harmony"
	"github.com/oliverbestmann/harmony/gm"
)

// Position is the top left corner of an entity in pixels.
type Position struct {
	gm.Vec
}

// Cell is the grid cell an entity occupies. A moving entity occupies the
// cell it is moving to.
type Cell struct {
	gm.IVec
}

// CellPosition returns the pixel position of the top left corner of a cell.
func CellPosition(cell gm.IVec) gm.Vec {
	return cell.Mul(TileSize).ToVec()
}

// Sprite selects a tile of the sprite atlas. The drawn column is
// Column + Frame.
type Sprite struct {
	Column, Row int
	Frame       int
	Layer       Layer
	Hidden      bool
}

// Moveable entities slide from one cell to the next over Duration.
type Moveable struct {
	Start, End gm.IVec
	Duration   time.Duration
	Elapsed    time.Duration
	Moving     bool
}

// Player records every step it takes during a loop so that the step
// sequence can be handed to a new clone.
type Player struct {
	Color Color
	Steps []gm.IVec
}

// Clone replays the steps of a previous loop.
type Clone struct {
	Color       Color
	Steps       []gm.IVec
	CurrentMove int

	// markers showing the upcoming steps
	Paths []harmony.EntityId

	// state the markers were created for
	pathsFor pathKey
}

type pathKey struct {
	move  int
	end   gm.IVec
	valid bool
}

// Playback marks a clone that should take its next recorded step.
type Playback struct{}

// PushBox can be pushed by actors of a matching color.
type PushBox struct {
	Color  Color
	Origin gm.IVec
}

// Button is a pressure plate. If the button and all of its slaves are
// pressed, the gates are open.
type Button struct {
	Color   Color
	Pressed bool
	Slaves  []harmony.EntityId
	Gates   []harmony.EntityId

	// Wires show how many of the buttons are pressed.
	Wires []harmony.EntityId
}

type SlaveButton struct {
	Color   Color
	Pressed bool
}

type Gate struct {
	Open bool
}

// Goal must be occupied by an actor of its color to finish a level.
type Goal struct {
	Color Color
	Level int
}

type Frame struct {
	Offset int
	Length time.Duration
}

// Animator cycles the Frame of the entities Sprite while playing.
type Animator struct {
	Frames  []Frame
	Index   int
	Elapsed time.Duration
	Playing bool
}

// PathMarker shows an upcoming step of a clone.
type PathMarker struct {
	Owner harmony.EntityId
}

// Collider gives an entity a tile sized hit box that can press buttons.
type Collider struct {
	Color Color
	Inset float64
}

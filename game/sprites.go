package game

import "github.com/oliverbestmann/harmony/gm"

// TileSize is the size of a grid cell in pixels.
const TileSize = 16

// A room fills the whole screen.
const (
	RoomWidth  = 16
	RoomHeight = 14

	ScreenWidth  = RoomWidth * TileSize
	ScreenHeight = RoomHeight * TileSize
)

// Layout of the sprite atlas. Rows 0 to 3 hold the actors, one row
// per color. Each actor column pair is one facing direction with two
// walking frames.
const (
	AtlasColumns = 8
	AtlasRows    = 10

	RowPaths       = 4
	RowTiles       = 5
	RowBoxes       = 6
	RowButtonUp    = 7
	RowButtonDown  = 8
	RowWires       = 9 // column is the share of pressed buttons
	ColumnFloor    = 0
	ColumnWall     = 1
	ColumnGate     = 2
	ColumnAnyBox   = 4
	ColumnGoal     = 4 // plus the color
	ColumnAnyPlate = 4
)

type Layer int

const (
	LayerFloor Layer = iota
	LayerMarks
	LayerObjects
	LayerActors
)

func facingColumn(dir gm.IVec) int {
	switch dir {
	case gm.Up:
		return 0
	case gm.Down:
		return 2
	case gm.Right:
		return 4
	case gm.Left:
		return 6
	default:
		return 2
	}
}

func boxColumn(c Color) int {
	if c == AnyColor {
		return ColumnAnyBox
	}

	return int(c)
}

func buttonColumn(c Color) int {
	if c == AnyColor {
		return ColumnAnyPlate
	}

	return int(c)
}

// WireStates is the number of steps between no and all buttons pressed.
const WireStates = 4

// wireColumn returns the wire frame for the given number of pressed buttons.
func wireColumn(pressed, total int) int {
	if total <= 0 {
		return 0
	}

	return pressed * WireStates / total
}

func buttonRow(pressed bool) int {
	if pressed {
		return RowButtonDown
	}

	return RowButtonUp
}

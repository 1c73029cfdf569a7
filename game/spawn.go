package game

import (
	"time"

	"github.com/oliverbestmann/harmony"
	"github.com/oliverbestmann/harmony/gm"
)

const actorInset = 2

// room is a level placed into the world.
type room struct {
	name   string
	origin gm.IVec
	spawns []gm.IVec
	boxes  []harmony.EntityId
}

func walkAnimation() Animator {
	return Animator{
		Frames: []Frame{
			{Offset: 1, Length: 75 * time.Millisecond},
			{Offset: 0, Length: 75 * time.Millisecond},
		},
	}
}

func spawnAt(w *harmony.World, cell gm.IVec, sprite Sprite) harmony.EntityId {
	entity := w.NewEntity()

	harmony.Insert(w, entity, Cell{IVec: cell})
	harmony.Insert(w, entity, Position{Vec: CellPosition(cell)})
	harmony.Insert(w, entity, sprite)

	return entity
}

// spawnLevel creates the entities of a level with its top left corner at
// origin and marks walls and gates in the grid.
func spawnLevel(w *harmony.World, grid *Grid, level *Level, index int, origin gm.IVec, moveDuration time.Duration) room {
	r := room{name: level.Name, origin: origin}

	for y := range RoomHeight {
		for x := range RoomWidth {
			local := gm.IVec{X: x, Y: y}
			cell := origin.Add(local)

			switch level.TileAt(local) {
			case TileFloor:
				grid.SetSolid(cell, false)
				spawnAt(w, cell, Sprite{Row: RowTiles, Column: ColumnFloor, Layer: LayerFloor})

			case TileWall:
				spawnAt(w, cell, Sprite{Row: RowTiles, Column: ColumnWall, Layer: LayerFloor})
			}
		}
	}

	for _, spawn := range level.Spawns {
		r.spawns = append(r.spawns, origin.Add(spawn.IVec()))
	}

	for _, goal := range level.Goals {
		entity := spawnAt(w, origin.Add(goal.Cell.IVec()), Sprite{
			Row:    RowTiles,
			Column: ColumnGoal + int(goal.Color),
			Layer:  LayerMarks,
		})

		harmony.Insert(w, entity, Goal{Color: goal.Color, Level: index})
	}

	for _, spec := range level.Buttons {
		var button Button
		button.Color = spec.Color

		for _, pos := range spec.Gates {
			cell := origin.Add(pos.IVec())
			grid.SetSolid(cell, true)

			gate := spawnAt(w, cell, Sprite{Row: RowTiles, Column: ColumnGate, Layer: LayerObjects})
			harmony.Insert(w, gate, Gate{})

			button.Gates = append(button.Gates, gate)
		}

		for _, slaveSpec := range spec.Slaves {
			slave := spawnAt(w, origin.Add(slaveSpec.Cell.IVec()), Sprite{
				Row:    RowButtonUp,
				Column: buttonColumn(slaveSpec.Color),
				Layer:  LayerMarks,
			})

			harmony.Insert(w, slave, SlaveButton{Color: slaveSpec.Color})

			button.Slaves = append(button.Slaves, slave)
		}

		for _, pos := range spec.Wires {
			wire := spawnAt(w, origin.Add(pos.IVec()), Sprite{
				Row:    RowWires,
				Column: wireColumn(0, 1+len(spec.Slaves)),
				Layer:  LayerMarks,
			})

			button.Wires = append(button.Wires, wire)
		}

		entity := spawnAt(w, origin.Add(spec.Cell.IVec()), Sprite{
			Row:    RowButtonUp,
			Column: buttonColumn(spec.Color),
			Layer:  LayerMarks,
		})

		harmony.Insert(w, entity, button)
	}

	for _, spec := range level.Boxes {
		cell := origin.Add(spec.Cell.IVec())

		entity := spawnAt(w, cell, Sprite{Row: RowBoxes, Column: boxColumn(spec.Color), Layer: LayerObjects})
		harmony.Insert(w, entity, PushBox{Color: spec.Color, Origin: cell})
		harmony.Insert(w, entity, Moveable{Start: cell, End: cell, Duration: moveDuration})
		harmony.Insert(w, entity, Collider{Color: spec.Color, Inset: actorInset})

		grid.PlaceBox(cell, entity)

		r.boxes = append(r.boxes, entity)
	}

	return r
}

func spawnPlayer(w *harmony.World, cell gm.IVec, moveDuration time.Duration) harmony.EntityId {
	entity := spawnAt(w, cell, Sprite{Row: 0, Column: facingColumn(gm.Down), Layer: LayerActors})

	harmony.Insert(w, entity, Player{})
	harmony.Insert(w, entity, Moveable{Start: cell, End: cell, Duration: moveDuration})
	harmony.Insert(w, entity, walkAnimation())
	harmony.Insert(w, entity, Collider{Color: 0, Inset: actorInset})

	return entity
}

func spawnClone(w *harmony.World, color Color, steps []gm.IVec, cell gm.IVec, moveDuration time.Duration) harmony.EntityId {
	entity := spawnAt(w, cell, Sprite{Row: int(color), Column: facingColumn(gm.Down), Layer: LayerActors})

	harmony.Insert(w, entity, Clone{Color: color, Steps: steps})
	harmony.Insert(w, entity, Moveable{Start: cell, End: cell, Duration: moveDuration})
	harmony.Insert(w, entity, walkAnimation())
	harmony.Insert(w, entity, Collider{Color: color, Inset: actorInset})

	return entity
}

func spawnPathMarker(w *harmony.World, owner harmony.EntityId, color Color, cell gm.IVec) harmony.EntityId {
	entity := spawnAt(w, cell, Sprite{Row: RowPaths, Column: int(color), Layer: LayerMarks})
	harmony.Insert(w, entity, PathMarker{Owner: owner})
	return entity
}

// placeAt moves an entity to a cell instantly, stopping any movement.
func placeAt(w *harmony.World, entity harmony.EntityId, cell gm.IVec) {
	if c, ok := harmony.GetMut[Cell](w, entity); ok {
		c.IVec = cell
	}

	if pos, ok := harmony.GetMut[Position](w, entity); ok {
		pos.Vec = CellPosition(cell)
	}

	if mv, ok := harmony.GetMut[Moveable](w, entity); ok {
		*mv = Moveable{Start: cell, End: cell, Duration: mv.Duration}
	}
}

package game

import (
	"github.com/oliverbestmann/harmony"
	"github.com/oliverbestmann/harmony/gm"
	"github.com/oliverbestmann/harmony/physics"
)

// plateInset shrinks a buttons hit box, so that an actor needs to stand
// mostly on top of it.
const plateInset = 4

type occupant struct {
	box   gm.Rect
	color Color
}

func pressedBy(occupants []occupant, pos gm.Vec, color Color) bool {
	plate := physics.TileBox(pos, TileSize, plateInset)

	for _, occ := range occupants {
		if color.Presses(occ.color) && physics.Overlaps(plate, occ.box) {
			return true
		}
	}

	return false
}

// updateButtons presses every button that overlaps an actor or box of a
// matching color, then updates the wires and opens or closes the gates of
// each master button.
func updateButtons(w *harmony.World, grid *Grid, scratch *[]occupant) {
	occupants := (*scratch)[:0]

	harmony.Each2(w, harmony.Read[Position](), harmony.Read[Collider](), func(_ harmony.EntityId, pos *Position, col *Collider) {
		occupants = append(occupants, occupant{
			box:   physics.TileBox(pos.Vec, TileSize, col.Inset),
			color: col.Color,
		})
	})

	*scratch = occupants

	harmony.Each3(w, harmony.Read[Position](), harmony.Write[SlaveButton](), harmony.Write[Sprite](), func(_ harmony.EntityId, pos *Position, button *SlaveButton, sprite *Sprite) {
		button.Pressed = pressedBy(occupants, pos.Vec, button.Color)
		sprite.Row = buttonRow(button.Pressed)
	})

	harmony.Each3(w, harmony.Read[Position](), harmony.Write[Button](), harmony.Write[Sprite](), func(_ harmony.EntityId, pos *Position, button *Button, sprite *Sprite) {
		button.Pressed = pressedBy(occupants, pos.Vec, button.Color)
		sprite.Row = buttonRow(button.Pressed)
	})

	// gates, slaves and wires are other entities, but live in columns
	// this join does not borrow
	harmony.Each1(w, harmony.Read[Button](), func(_ harmony.EntityId, button *Button) {
		var pressed int
		if button.Pressed {
			pressed++
		}

		for _, slave := range button.Slaves {
			if state, _ := harmony.Get[SlaveButton](w, slave); state.Pressed {
				pressed++
			}
		}

		total := 1 + len(button.Slaves)

		for _, wire := range button.Wires {
			if sprite, ok := harmony.GetMut[Sprite](w, wire); ok {
				sprite.Column = wireColumn(pressed, total)
			}
		}

		open := pressed == total

		for _, gate := range button.Gates {
			setGate(w, grid, gate, open)
		}
	})
}

func setGate(w *harmony.World, grid *Grid, gate harmony.EntityId, open bool) {
	state, ok := harmony.GetMut[Gate](w, gate)
	if !ok || state.Open == open {
		return
	}

	cell, _ := harmony.Get[Cell](w, gate)

	// a gate can not close on top of a box
	if _, blocked := grid.Box(cell.IVec); blocked && !open {
		return
	}

	state.Open = open
	grid.SetSolid(cell.IVec, !open)

	if sprite, ok := harmony.GetMut[Sprite](w, gate); ok {
		sprite.Hidden = open
	}
}

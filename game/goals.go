package game

import (
	"github.com/oliverbestmann/harmony"
	"github.com/oliverbestmann/harmony/gm"
)

type standing struct {
	cell  gm.IVec
	color Color
}

// levelComplete returns true if every goal of the level is occupied by a
// resting actor of the goals color. A level without goals is never
// complete.
func levelComplete(w *harmony.World, level int, scratch *[]standing) bool {
	actors := (*scratch)[:0]

	collect := func(cell gm.IVec, color Color, mv *Moveable) {
		if !mv.Moving {
			actors = append(actors, standing{cell: cell, color: color})
		}
	}

	harmony.Each3(w, harmony.Read[Cell](), harmony.Read[Player](), harmony.Read[Moveable](), func(_ harmony.EntityId, cell *Cell, player *Player, mv *Moveable) {
		collect(cell.IVec, player.Color, mv)
	})

	harmony.Each3(w, harmony.Read[Cell](), harmony.Read[Clone](), harmony.Read[Moveable](), func(_ harmony.EntityId, cell *Cell, clone *Clone, mv *Moveable) {
		collect(cell.IVec, clone.Color, mv)
	})

	*scratch = actors

	var goals int
	complete := true

	harmony.Each2(w, harmony.Read[Goal](), harmony.Read[Cell](), func(_ harmony.EntityId, goal *Goal, cell *Cell) {
		if goal.Level != level {
			return
		}

		goals += 1

		for _, actor := range actors {
			if actor.color == goal.Color && actor.cell == cell.IVec {
				return
			}
		}

		complete = false
	})

	return goals > 0 && complete
}

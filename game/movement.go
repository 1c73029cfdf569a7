package game

import (
	"time"

	"github.com/oliverbestmann/harmony"
	"github.com/oliverbestmann/harmony/gm"
)

// step starts moving an actor one cell into dir. A box in the way is pushed
// if the actor may push it and the cell behind it is free. Returns false
// if the actor is blocked or still moving.
func step(w *harmony.World, grid *Grid, actor harmony.EntityId, color Color, dir gm.IVec) bool {
	mv, ok := harmony.Get[Moveable](w, actor)
	if !ok || mv.Moving {
		return false
	}

	if sprite, ok := harmony.GetMut[Sprite](w, actor); ok {
		sprite.Column = facingColumn(dir)
	}

	target := mv.End.Add(dir)
	if grid.Solid(target) {
		return false
	}

	if box, ok := grid.Box(target); ok {
		pushBox, _ := harmony.Get[PushBox](w, box)

		behind := target.Add(dir)
		if !pushBox.Color.Pushable(color) || !grid.Free(behind) {
			return false
		}

		grid.RemoveBox(target)
		grid.PlaceBox(behind, box)
		startMove(w, box, behind)
	}

	startMove(w, actor, target)

	return true
}

func startMove(w *harmony.World, entity harmony.EntityId, target gm.IVec) {
	mv, _ := harmony.GetMut[Moveable](w, entity)
	mv.Start = mv.End
	mv.End = target
	mv.Elapsed = 0
	mv.Moving = true

	cell, _ := harmony.GetMut[Cell](w, entity)
	cell.IVec = target
}

// playerInput starts a player step and lets every clone replay its next
// step at the same time. Returns true if the player took a step.
func playerInput(w *harmony.World, grid *Grid, player harmony.EntityId, input Input, scratch *[]harmony.EntityId) bool {
	dir := input.Direction()
	if dir.IsZero() {
		return false
	}

	if mv, ok := harmony.Get[Moveable](w, player); !ok || mv.Moving {
		return false
	}

	p, ok := harmony.GetMut[Player](w, player)
	if !ok {
		return false
	}

	// blocked steps are recorded too, clones need to stay in sync
	p.Steps = append(p.Steps, dir)

	step(w, grid, player, p.Color, dir)

	// collect first, the clone column can not grow while it is iterated
	clones := (*scratch)[:0]
	for clone := range harmony.Iter1(w, harmony.Read[Clone]()) {
		clones = append(clones, clone)
	}

	for _, clone := range clones {
		harmony.Insert(w, clone, Playback{})
	}

	*scratch = clones

	return true
}

// moveEntities interpolates the position of every moving entity.
func moveEntities(w *harmony.World, delta time.Duration) {
	harmony.Each2(w, harmony.Write[Moveable](), harmony.Write[Position](), func(_ harmony.EntityId, mv *Moveable, pos *Position) {
		if !mv.Moving {
			return
		}

		mv.Elapsed += delta

		if mv.Elapsed >= mv.Duration {
			pos.Vec = CellPosition(mv.End)
			mv.Start = mv.End
			mv.Elapsed = 0
			mv.Moving = false
			return
		}

		t := float64(mv.Elapsed) / float64(mv.Duration)
		pos.Vec = CellPosition(mv.Start).Lerp(CellPosition(mv.End), t)
	})
}

// animate plays the walk animation of moving entities.
func animate(w *harmony.World, delta time.Duration) {
	harmony.Each2(w, harmony.Read[Moveable](), harmony.Write[Animator](), func(_ harmony.EntityId, mv *Moveable, anim *Animator) {
		anim.Playing = mv.Moving
	})

	harmony.Each2(w, harmony.Write[Animator](), harmony.Write[Sprite](), func(_ harmony.EntityId, anim *Animator, sprite *Sprite) {
		if len(anim.Frames) == 0 {
			return
		}

		if !anim.Playing {
			anim.Index = 0
			anim.Elapsed = 0
			sprite.Frame = 0
			return
		}

		anim.Elapsed += delta

		for anim.Frames[anim.Index].Length > 0 && anim.Elapsed >= anim.Frames[anim.Index].Length {
			anim.Elapsed -= anim.Frames[anim.Index].Length
			anim.Index = (anim.Index + 1) % len(anim.Frames)
		}

		sprite.Frame = anim.Frames[anim.Index].Offset
	})
}

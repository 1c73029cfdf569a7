package game

import (
	"github.com/oliverbestmann/harmony"
	"github.com/oliverbestmann/harmony/gm"
)

// PathLength is the number of upcoming steps shown for every clone.
const PathLength = 10

// playback lets every clone marked with Playback take its next recorded
// step. Clones that are still moving keep their marker and try again in
// the next frame.
func playback(w *harmony.World, grid *Grid, scratch *[]harmony.EntityId) {
	marked := (*scratch)[:0]
	for clone := range harmony.Iter1(w, harmony.Read[Playback]()) {
		marked = append(marked, clone)
	}

	for _, entity := range marked {
		if mv, ok := harmony.Get[Moveable](w, entity); ok && mv.Moving {
			continue
		}

		clone, ok := harmony.GetMut[Clone](w, entity)
		if ok && clone.CurrentMove < len(clone.Steps) {
			dir := clone.Steps[clone.CurrentMove]
			clone.CurrentMove += 1

			step(w, grid, entity, clone.Color, dir)
		}

		harmony.Remove[Playback](w, entity)
	}

	*scratch = marked
}

type pathRequest struct {
	clone harmony.EntityId
	color Color
	start gm.IVec
	steps []gm.IVec
}

// pathBuffers are reused between ticks.
type pathBuffers struct {
	requests []pathRequest
	stale    []harmony.EntityId
}

// updatePaths replaces the path markers of every clone whose progress
// changed since the markers were created.
func updatePaths(w *harmony.World, grid *Grid, buf *pathBuffers) {
	requests := buf.requests[:0]
	stale := buf.stale[:0]

	harmony.Each2(w, harmony.Write[Clone](), harmony.Read[Moveable](), func(entity harmony.EntityId, clone *Clone, mv *Moveable) {
		key := pathKey{move: clone.CurrentMove, end: mv.End, valid: true}
		if clone.pathsFor == key {
			return
		}

		clone.pathsFor = key

		stale = append(stale, clone.Paths...)
		clone.Paths = clone.Paths[:0]

		upcoming := clone.Steps[clone.CurrentMove:]
		if len(upcoming) > PathLength {
			upcoming = upcoming[:PathLength]
		}

		requests = append(requests, pathRequest{
			clone: entity,
			color: clone.Color,
			start: mv.End,
			steps: upcoming,
		})
	})

	for _, req := range requests {
		cell := req.start

		for _, dir := range req.steps {
			if next := cell.Add(dir); !grid.Solid(next) {
				cell = next
			}

			marker := spawnPathMarker(w, req.clone, req.color, cell)

			clone, _ := harmony.GetMut[Clone](w, req.clone)
			clone.Paths = append(clone.Paths, marker)
		}
	}

	for _, marker := range stale {
		w.Delete(marker)
	}

	clear(requests)

	buf.requests = requests[:0]
	buf.stale = stale[:0]
}

// deletePaths removes the path markers of a clone.
func deletePaths(w *harmony.World, entity harmony.EntityId) {
	clone, ok := harmony.GetMut[Clone](w, entity)
	if !ok {
		return
	}

	paths := clone.Paths
	clone.Paths = nil
	clone.pathsFor = pathKey{}

	for _, marker := range paths {
		w.Delete(marker)
	}
}

// Package physics answers overlap questions between axis aligned boxes.
// Entities on the grid never rotate, so bounding boxes are all the
// collision detection the game needs.
package physics

import (
	"github.com/jakecoffman/cp/v2"
	"github.com/oliverbestmann/harmony/gm"
)

// BB converts the rectangle into a chipmunk bounding box.
func BB(r gm.Rect) cp.BB {
	return cp.NewBB(r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
}

// TileBox returns the box of a tile sized entity at the given top left
// position, shrunk by inset on every side. Use a positive inset so that
// entities on neighbouring tiles do not touch.
func TileBox(pos gm.Vec, tileSize, inset float64) gm.Rect {
	return gm.RectWithOriginAndSize(pos, gm.VecSplat(tileSize)).Inset(inset)
}

// Overlaps returns true if both rectangles intersect. Touching edges count
// as an intersection.
func Overlaps(a, b gm.Rect) bool {
	return BB(a).Intersects(BB(b))
}

// Contains returns true if the point lies within the rectangle.
func Contains(r gm.Rect, point gm.Vec) bool {
	return BB(r).ContainsVect(cp.Vector{X: point.X, Y: point.Y})
}

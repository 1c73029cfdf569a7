package harmonybiten

import (
	"cmp"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/oliverbestmann/harmony/game"
	"github.com/oliverbestmann/harmony/gm"
	"github.com/oliverbestmann/harmony/physics"
)

// indices are 16 bit, flush before running out of them
const maxBatchVertices = 1<<16 - 4

type renderItem struct {
	Position gm.Vec
	Sprite   game.Sprite
}

// renderer batches all visible sprites into as few draw calls as possible.
// All buffers are kept between frames.
type renderer struct {
	atlas    *ebiten.Image
	items    []renderItem
	vertices []ebiten.Vertex
	indices  []uint16
}

// collect gathers all sprites within view, relative to the views top
// left corner and ordered by layer.
func (r *renderer) collect(g *game.Game) {
	r.items = r.items[:0]

	camera := g.Camera()
	view := gm.RectWithOriginAndSize(camera, gm.Vec{X: game.ScreenWidth, Y: game.ScreenHeight})

	g.Sprites(func(pos game.Position, sprite game.Sprite) {
		bounds := physics.TileBox(pos.Vec, game.TileSize, 0)
		if !physics.Overlaps(view, bounds) {
			return
		}

		r.items = append(r.items, renderItem{
			Position: pos.Vec.Sub(camera),
			Sprite:   sprite,
		})
	})

	// keep entity order within a layer
	slices.SortStableFunc(r.items, func(a, b renderItem) int {
		return cmp.Compare(a.Sprite.Layer, b.Sprite.Layer)
	})
}

func (r *renderer) draw(screen *ebiten.Image) {
	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]

	for _, item := range r.items {
		if len(r.vertices)+4 > maxBatchVertices {
			r.flush(screen)
		}

		r.vertices, r.indices = appendQuad(r.vertices, r.indices, item)
	}

	r.flush(screen)
}

func (r *renderer) flush(screen *ebiten.Image) {
	if len(r.indices) == 0 {
		return
	}

	var op ebiten.DrawTrianglesOptions
	op.Filter = ebiten.FilterNearest
	screen.DrawTriangles(r.vertices, r.indices, r.atlas, &op)

	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
}

// appendQuad appends the two triangles of one sprite.
func appendQuad(vertices []ebiten.Vertex, indices []uint16, item renderItem) ([]ebiten.Vertex, []uint16) {
	src := tileRect(item.Sprite.Column+item.Sprite.Frame, item.Sprite.Row)

	sx0, sy0 := float32(src.Min.X), float32(src.Min.Y)
	sx1, sy1 := float32(src.Max.X), float32(src.Max.Y)

	dx0, dy0 := float32(item.Position.X), float32(item.Position.Y)
	dx1, dy1 := dx0+game.TileSize, dy0+game.TileSize

	base := uint16(len(vertices))

	vertices = append(vertices,
		vertex(dx0, dy0, sx0, sy0),
		vertex(dx1, dy0, sx1, sy0),
		vertex(dx0, dy1, sx0, sy1),
		vertex(dx1, dy1, sx1, sy1),
	)

	indices = append(indices,
		base+0, base+1, base+2,
		base+1, base+3, base+2,
	)

	return vertices, indices
}

func vertex(dx, dy, sx, sy float32) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   dx,
		DstY:   dy,
		SrcX:   sx,
		SrcY:   sy,
		ColorR: 1,
		ColorG: 1,
		ColorB: 1,
		ColorA: 1,
	}
}

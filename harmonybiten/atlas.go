package harmonybiten

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/oliverbestmann/harmony/game"
	"github.com/oliverbestmann/harmony/harmonybiten/color"
)

var (
	Background = color.RGB(0.07, 0.06, 0.09)
	floorColor = color.RGB(0.16, 0.15, 0.2)
	wallColor  = color.RGB(0.36, 0.33, 0.42)
	gateColor  = color.RGB(0.62, 0.52, 0.3)
	anyColor   = color.Gray(0.7)
)

var palette = [game.MaxColors]color.Color{
	color.RGB(0.9, 0.3, 0.3),
	color.RGB(0.3, 0.55, 0.95),
	color.RGB(0.35, 0.85, 0.4),
	color.RGB(0.95, 0.8, 0.3),
}

// ColorOf returns the display color of a game color.
func ColorOf(c game.Color) color.Color {
	if c < 0 || int(c) >= len(palette) {
		return anyColor
	}

	return palette[c]
}

// tileRect returns the source rectangle of the atlas tile in the given
// column and row.
func tileRect(column, row int) image.Rectangle {
	x0 := column * game.TileSize
	y0 := row * game.TileSize
	return image.Rect(x0, y0, x0+game.TileSize, y0+game.TileSize)
}

// NewAtlas paints the sprite atlas. The layout matches the rows and
// columns the game assigns to its sprites.
func NewAtlas() *ebiten.Image {
	atlas := ebiten.NewImage(game.AtlasColumns*game.TileSize, game.AtlasRows*game.TileSize)

	for c := range game.Color(game.MaxColors) {
		for facing := range 4 {
			for frame := range 2 {
				paintActor(tile(atlas, facing*2+frame, int(c)), ColorOf(c), facing, frame)
			}
		}

		paintPath(tile(atlas, int(c), game.RowPaths), ColorOf(c))
		paintBox(tile(atlas, int(c), game.RowBoxes), ColorOf(c))
		paintGoal(tile(atlas, game.ColumnGoal+int(c), game.RowTiles), ColorOf(c))
		paintPlate(tile(atlas, int(c), game.RowButtonUp), ColorOf(c), false)
		paintPlate(tile(atlas, int(c), game.RowButtonDown), ColorOf(c), true)
	}

	paintBox(tile(atlas, game.ColumnAnyBox, game.RowBoxes), anyColor)
	paintPlate(tile(atlas, game.ColumnAnyPlate, game.RowButtonUp), anyColor, false)
	paintPlate(tile(atlas, game.ColumnAnyPlate, game.RowButtonDown), anyColor, true)

	tile(atlas, game.ColumnFloor, game.RowTiles).Fill(floorColor)
	tile(atlas, game.ColumnWall, game.RowTiles).Fill(wallColor)
	paintGate(tile(atlas, game.ColumnGate, game.RowTiles))

	for state := range game.WireStates + 1 {
		paintWire(tile(atlas, state, game.RowWires), state)
	}

	return atlas
}

func tile(atlas *ebiten.Image, column, row int) *ebiten.Image {
	return atlas.SubImage(tileRect(column, row)).(*ebiten.Image)
}

// fill fills a rectangle relative to the tiles top left corner.
func fill(img *ebiten.Image, x, y, w, h int, c color.Color) {
	origin := img.Bounds().Min
	rect := image.Rect(origin.X+x, origin.Y+y, origin.X+x+w, origin.Y+y+h)
	img.SubImage(rect).(*ebiten.Image).Fill(c)
}

// paintActor draws a body with two eyes looking into the facing
// direction. Facing is ordered up, down, right, left.
func paintActor(img *ebiten.Image, c color.Color, facing, frame int) {
	bob := frame

	fill(img, 3, 3+bob, 10, 11-bob, c.Scale(0.6))
	fill(img, 4, 2+bob, 8, 11-bob, c)

	eyes := [4][2]int{{-1, -2}, {0, 1}, {2, 0}, {-2, 0}}[facing]
	if facing == 0 {
		// facing away, no eyes
		return
	}

	fill(img, 5+eyes[0], 6+bob+eyes[1], 2, 2, color.White)
	fill(img, 9+eyes[0], 6+bob+eyes[1], 2, 2, color.White)
}

func paintPath(img *ebiten.Image, c color.Color) {
	origin := img.Bounds().Min
	cx := float32(origin.X) + game.TileSize/2
	cy := float32(origin.Y) + game.TileSize/2
	vector.DrawFilledCircle(img, cx, cy, 2, c.WithAlpha(0.6), false)
}

func paintBox(img *ebiten.Image, c color.Color) {
	fill(img, 2, 2, 12, 12, c.Scale(0.5))
	fill(img, 3, 3, 10, 10, c.Scale(0.8))
	fill(img, 5, 5, 6, 6, c.Scale(0.5))
}

func paintGoal(img *ebiten.Image, c color.Color) {
	fill(img, 1, 1, 14, 14, c.Scale(0.4))
	fill(img, 3, 3, 10, 10, floorColor)
	fill(img, 6, 6, 4, 4, c.Scale(0.4))
}

func paintPlate(img *ebiten.Image, c color.Color, pressed bool) {
	if pressed {
		fill(img, 4, 5, 8, 7, c.Scale(0.5))
		return
	}

	fill(img, 4, 4, 8, 8, c.Scale(0.5))
	fill(img, 4, 4, 8, 6, c)
}

// paintWire draws a horizontal wire that lights up from left to right.
func paintWire(img *ebiten.Image, state int) {
	lit := state * game.TileSize / game.WireStates

	fill(img, 0, 7, game.TileSize, 2, gateColor.Scale(0.3))
	if lit > 0 {
		fill(img, 0, 7, lit, 2, gateColor.Mix(color.White, 0.3))
	}
}

func paintGate(img *ebiten.Image) {
	fill(img, 0, 0, game.TileSize, game.TileSize, gateColor.Scale(0.4))
	for x := 1; x < game.TileSize; x += 5 {
		fill(img, x, 0, 3, game.TileSize, gateColor)
	}
}

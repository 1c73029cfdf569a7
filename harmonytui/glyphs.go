package harmonytui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/oliverbestmann/harmony/game"
)

// A tile is two terminal columns wide so rooms keep roughly square cells.
const cellWidth = 2

type glyph struct {
	Main, Fill rune
	Color      tcell.Color
}

var palette = [game.MaxColors]tcell.Color{
	tcell.ColorRed,
	tcell.ColorRoyalBlue,
	tcell.ColorGreen,
	tcell.ColorYellow,
}

// actors by facing: up, down, right, left
var facingGlyphs = [4]rune{'^', 'v', '>', '<'}

func colorOf(column int) tcell.Color {
	if column >= 0 && column < len(palette) {
		return palette[column]
	}

	return tcell.ColorSilver
}

// glyphOf maps an atlas tile to terminal characters.
func glyphOf(sprite game.Sprite) glyph {
	switch {
	case sprite.Row >= 0 && sprite.Row < game.MaxColors:
		return glyph{
			Main:  facingGlyphs[(sprite.Column/2)%len(facingGlyphs)],
			Fill:  ' ',
			Color: colorOf(sprite.Row),
		}

	case sprite.Row == game.RowPaths:
		return glyph{Main: '·', Fill: ' ', Color: colorOf(sprite.Column)}

	case sprite.Row == game.RowTiles:
		switch {
		case sprite.Column == game.ColumnFloor:
			return glyph{Main: '.', Fill: ' ', Color: tcell.ColorDimGray}
		case sprite.Column == game.ColumnWall:
			return glyph{Main: '█', Fill: '█', Color: tcell.ColorGray}
		case sprite.Column == game.ColumnGate:
			return glyph{Main: '#', Fill: '#', Color: tcell.ColorOlive}
		case sprite.Column >= game.ColumnGoal:
			return glyph{Main: '(', Fill: ')', Color: colorOf(sprite.Column - game.ColumnGoal)}
		}

	case sprite.Row == game.RowBoxes:
		return glyph{Main: '[', Fill: ']', Color: colorOf(sprite.Column)}

	case sprite.Row == game.RowButtonUp:
		return glyph{Main: 'o', Fill: ' ', Color: colorOf(sprite.Column)}

	case sprite.Row == game.RowButtonDown:
		return glyph{Main: '_', Fill: ' ', Color: colorOf(sprite.Column)}

	case sprite.Row == game.RowWires:
		if sprite.Column >= game.WireStates {
			return glyph{Main: '=', Fill: '=', Color: tcell.ColorYellow}
		}

		if sprite.Column > 0 {
			return glyph{Main: '=', Fill: '-', Color: tcell.ColorOlive}
		}

		return glyph{Main: '-', Fill: '-', Color: tcell.ColorDimGray}
	}

	return glyph{Main: '?', Fill: ' ', Color: tcell.ColorFuchsia}
}

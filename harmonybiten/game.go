// Package harmonybiten runs a game.Game in an ebiten window.
package harmonybiten

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/oliverbestmann/harmony/game"
)

type WindowConfig struct {
	Title string

	// Scale is the integer zoom factor of the initial window size.
	Scale int

	// ShowStats prints the frame rate in the top left corner.
	ShowStats bool
}

// Run opens the window and blocks until the window is closed, the
// player quits or the game fails.
func Run(g *game.Game, win WindowConfig) error {
	ebiten.SetWindowTitle(win.Title)
	ebiten.SetWindowSize(game.ScreenWidth*max(win.Scale, 1), game.ScreenHeight*max(win.Scale, 1))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	app := &App{
		Game:     g,
		Keys:     DefaultKeys,
		win:      win,
		renderer: renderer{atlas: NewAtlas()},
	}

	var options ebiten.RunGameOptions
	options.SingleThread = true

	return ebiten.RunGameWithOptions(app, &options)
}

// App implements ebiten.Game on top of a game.Game.
type App struct {
	Game *game.Game
	Keys Keys

	win      WindowConfig
	renderer renderer
}

func (a *App) Update() error {
	input := a.Keys.poll()
	if input.Quit {
		slog.Info("Quit requested")
		return ebiten.Termination
	}

	delta := time.Second / time.Duration(ebiten.TPS())

	if err := a.Game.Update(delta, input); err != nil {
		return fmt.Errorf("update game: %w", err)
	}

	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(Background)

	if a.Game.Finished() {
		ebitenutil.DebugPrintAt(screen, "You are awake.\nThanks for playing!", 72, game.ScreenHeight/2-16)
		return
	}

	a.renderer.collect(a.Game)
	a.renderer.draw(screen)

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d: %s", a.Game.Level()+1, a.Game.LevelName()), 4, 0)

	if a.win.ShowStats {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%.0f fps", ebiten.ActualFPS()), 4, game.ScreenHeight-16)
	}
}

// Layout keeps the logical screen at the size of one room. ebiten scales it
// to the window.
func (a *App) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return game.ScreenWidth, game.ScreenHeight
}

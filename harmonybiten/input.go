package harmonybiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/oliverbestmann/harmony/game"
)

// Keys maps game actions to keyboard keys. Movement keys are held,
// all other actions trigger once when the key goes down.
type Keys struct {
	Up, Down, Left, Right []ebiten.Key

	Loop    []ebiten.Key
	Restart []ebiten.Key
	Skip    []ebiten.Key
	Quit    []ebiten.Key
}

var DefaultKeys = Keys{
	Up:      []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp},
	Down:    []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown},
	Left:    []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft},
	Right:   []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight},
	Loop:    []ebiten.Key{ebiten.KeySpace},
	Restart: []ebiten.Key{ebiten.KeyR},
	Skip:    []ebiten.Key{ebiten.KeyN},
	Quit:    []ebiten.Key{ebiten.KeyEscape},
}

func (k *Keys) poll() game.Input {
	return game.Input{
		Up:      anyPressed(k.Up),
		Down:    anyPressed(k.Down),
		Left:    anyPressed(k.Left),
		Right:   anyPressed(k.Right),
		Loop:    anyJustPressed(k.Loop),
		Restart: anyJustPressed(k.Restart),
		Skip:    anyJustPressed(k.Skip),
		Quit:    anyJustPressed(k.Quit),
	}
}

func anyPressed(keys []ebiten.Key) bool {
	for _, key := range keys {
		if ebiten.IsKeyPressed(key) {
			return true
		}
	}

	return false
}

func anyJustPressed(keys []ebiten.Key) bool {
	for _, key := range keys {
		if inpututil.IsKeyJustPressed(key) {
			return true
		}
	}

	return false
}

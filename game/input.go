package game

import "github.com/oliverbestmann/harmony/gm"

// Input is the snapshot of the keyboard taken once per frame.
type Input struct {
	Up, Down, Left, Right bool

	// Loop starts the next time loop, Restart restarts the current level.
	Loop    bool
	Restart bool
	Skip    bool
	Quit    bool
}

// Direction returns the requested step. Vertical keys win over
// horizontal ones, only one axis is used at a time.
func (in Input) Direction() gm.IVec {
	switch {
	case in.Up && !in.Down:
		return gm.Up
	case in.Down && !in.Up:
		return gm.Down
	case in.Left && !in.Right:
		return gm.Left
	case in.Right && !in.Left:
		return gm.Right
	default:
		return gm.IVec{}
	}
}

package physics

import (
	"testing"

	"github.com/oliverbestmann/harmony/gm"
	"github.com/stretchr/testify/require"
)

func TestOverlaps(t *testing.T) {
	button := TileBox(gm.Vec{X: 8, Y: 8}, 8, 1)

	// standing right on top
	require.True(t, Overlaps(button, TileBox(gm.Vec{X: 8, Y: 8}, 8, 1)))

	// half way through a move onto the button
	require.True(t, Overlaps(button, TileBox(gm.Vec{X: 12, Y: 8}, 8, 1)))

	// on the neighbouring tile
	require.False(t, Overlaps(button, TileBox(gm.Vec{X: 16, Y: 8}, 8, 1)))
	require.False(t, Overlaps(button, TileBox(gm.Vec{X: 8, Y: 0}, 8, 1)))
}

func TestContains(t *testing.T) {
	room := gm.RectWithOriginAndSize(gm.Vec{X: 0, Y: 112}, gm.Vec{X: 128, Y: 112})

	require.True(t, Contains(room, gm.Vec{X: 64, Y: 150}))
	require.False(t, Contains(room, gm.Vec{X: 64, Y: 100}))
}

package game

import (
	"testing"

	"github.com/oliverbestmann/harmony/gm"
	"github.com/stretchr/testify/require"
)

func TestGrid(t *testing.T) {
	grid := NewGrid(4, 3)

	cell := gm.IVec{X: 1, Y: 1}
	require.True(t, grid.Solid(cell))
	require.False(t, grid.Free(cell))

	grid.SetSolid(cell, false)
	require.True(t, grid.Free(cell))

	grid.PlaceBox(cell, 7)
	require.False(t, grid.Solid(cell))
	require.False(t, grid.Free(cell))

	box, ok := grid.Box(cell)
	require.True(t, ok)
	require.EqualValues(t, 7, box)

	grid.RemoveBox(cell)
	require.True(t, grid.Free(cell))

	// everything outside is solid
	require.True(t, grid.Solid(gm.IVec{X: -1, Y: 0}))
	require.True(t, grid.Solid(gm.IVec{X: 4, Y: 0}))
	require.False(t, grid.Free(gm.IVec{X: 0, Y: 3}))

	_, ok = grid.Box(gm.IVec{X: 9, Y: 9})
	require.False(t, ok)
}

package gm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVec_Lerp(t *testing.T) {
	a := Vec{X: 0, Y: 8}
	b := Vec{X: 8, Y: 16}

	require.Equal(t, a, a.Lerp(b, 0))
	require.Equal(t, b, a.Lerp(b, 1))
	require.Equal(t, Vec{X: 4, Y: 12}, a.Lerp(b, 0.5))
}

func TestVec_Floor(t *testing.T) {
	require.Equal(t, IVec{X: 1, Y: -2}, Vec{X: 1.5, Y: -1.5}.Floor())
}

func TestIVec(t *testing.T) {
	cell := IVec{X: 3, Y: 4}

	require.Equal(t, IVec{X: 3, Y: 3}, cell.Add(Up))
	require.Equal(t, Right, cell.Add(Right).Sub(cell))
	require.Equal(t, Vec{X: 24, Y: 32}, cell.Mul(8).ToVec())
	require.True(t, IVec{}.IsZero())
}

func TestRect(t *testing.T) {
	r := RectWithOriginAndSize(Vec{X: 8, Y: 8}, VecSplat(8))

	require.Equal(t, Vec{X: 12, Y: 12}, r.Center())
	require.True(t, r.Contains(Vec{X: 8, Y: 16}))
	require.False(t, r.Contains(Vec{X: 17, Y: 16}))

	inset := r.Inset(1)
	require.Equal(t, Vec{X: 6, Y: 6}, inset.Size())

	require.Equal(t, RectWithPoints(Vec{X: 16, Y: 16}, Vec{X: 8, Y: 8}), r)
}

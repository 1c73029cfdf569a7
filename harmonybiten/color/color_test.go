package color

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestColor_RGBA(t *testing.T) {
	r, g, b, a := White.RGBA()
	require.Equal(t, []uint32{0xffff, 0xffff, 0xffff, 0xffff}, []uint32{r, g, b, a})

	r, g, b, a = RGBA(1, 0, 0, 0.5).RGBA()
	require.Equal(t, uint32(0x7fff), r)
	require.Zero(t, g)
	require.Zero(t, b)
	require.Equal(t, uint32(0x7fff), a)
}

func TestColor_Scale(t *testing.T) {
	c := RGB(0.5, 0.8, 0.1).Scale(2)
	require.Equal(t, RGB(1, 1, 0.2), c)

	// alpha is not scaled
	require.InDelta(t, 0.5, RGBA(1, 1, 1, 0.5).Scale(0.5).A, 1e-6)
}

func TestColor_Mix(t *testing.T) {
	require.Equal(t, Black, Black.Mix(White, 0))
	require.Equal(t, White, Black.Mix(White, 1))
	require.Equal(t, Gray(0.5), Black.Mix(White, 0.5))
}

package gm

import (
	"fmt"
	"image"
	"math"
)

type Vec struct {
	X, Y float64
}

var VecZero = Vec{}
var VecOne = Vec{X: 1, Y: 1}

func VecSplat(value float64) Vec {
	return Vec{X: value, Y: value}
}

func (v Vec) Add(other Vec) Vec {
	v.X += other.X
	v.Y += other.Y
	return v
}

func (v Vec) Sub(other Vec) Vec {
	v.X -= other.X
	v.Y -= other.Y
	return v
}

func (v Vec) Mul(scalar float64) Vec {
	v.X *= scalar
	v.Y *= scalar
	return v
}

func (v Vec) MulEach(other Vec) Vec {
	v.X *= other.X
	v.Y *= other.Y
	return v
}

func (v Vec) LengthSqr() float64 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vec) Length() float64 {
	return math.Sqrt(v.LengthSqr())
}

// Lerp interpolates linearly between v and other. A value of t=0 returns v,
// t=1 returns other.
func (v Vec) Lerp(other Vec, t float64) Vec {
	return v.Add(other.Sub(v).Mul(t))
}

// Floor rounds both components down to the next integer.
func (v Vec) Floor() IVec {
	return IVec{
		X: int(math.Floor(v.X)),
		Y: int(math.Floor(v.Y)),
	}
}

func (v Vec) ToImagePoint() image.Point {
	return image.Point{X: int(v.X), Y: int(v.Y)}
}

func (v Vec) String() string {
	return fmt.Sprintf("vec(x=%v, y=%v)", v.X, v.Y)
}

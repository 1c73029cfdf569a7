package gm

import "fmt"

// IVec is an integer vector, used to address grid cells.
type IVec struct {
	X, Y int
}

var (
	Up    = IVec{X: 0, Y: -1}
	Down  = IVec{X: 0, Y: 1}
	Left  = IVec{X: -1, Y: 0}
	Right = IVec{X: 1, Y: 0}
)

func (v IVec) Add(other IVec) IVec {
	v.X += other.X
	v.Y += other.Y
	return v
}

func (v IVec) Sub(other IVec) IVec {
	v.X -= other.X
	v.Y -= other.Y
	return v
}

func (v IVec) Mul(scalar int) IVec {
	v.X *= scalar
	v.Y *= scalar
	return v
}

func (v IVec) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// ToVec converts the vector to float coordinates.
func (v IVec) ToVec() Vec {
	return Vec{X: float64(v.X), Y: float64(v.Y)}
}

func (v IVec) String() string {
	return fmt.Sprintf("ivec(x=%d, y=%d)", v.X, v.Y)
}

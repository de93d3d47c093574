package voxel

import (
	"cmp"
	"fmt"
)

// Coordinate is a discrete voxel position.
type Coordinate struct {
	X, Y, Z int
}

// C is shorthand for Coordinate{X: x, Y: y, Z: z}.
func C(x, y, z int) Coordinate {
	return Coordinate{X: x, Y: y, Z: z}
}

// Add returns the componentwise sum of c and o.
func (c Coordinate) Add(o Coordinate) Coordinate {
	return Coordinate{X: c.X + o.X, Y: c.Y + o.Y, Z: c.Z + o.Z}
}

// Up returns the coordinate n cells above c.
func (c Coordinate) Up(n int) Coordinate {
	return Coordinate{X: c.X, Y: c.Y + n, Z: c.Z}
}

// Down returns the coordinate n cells below c.
func (c Coordinate) Down(n int) Coordinate {
	return Coordinate{X: c.X, Y: c.Y - n, Z: c.Z}
}

// WithY returns c moved to height y.
func (c Coordinate) WithY(y int) Coordinate {
	return Coordinate{X: c.X, Y: y, Z: c.Z}
}

// Compare orders coordinates by X, then Y, then Z.
// It returns -1, 0 or +1 like [cmp.Compare].
func (c Coordinate) Compare(o Coordinate) int {
	if d := cmp.Compare(c.X, o.X); d != 0 {
		return d
	}
	if d := cmp.Compare(c.Y, o.Y); d != 0 {
		return d
	}
	return cmp.Compare(c.Z, o.Z)
}

// String returns the coordinate as "(x, y, z)".
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.X, c.Y, c.Z)
}

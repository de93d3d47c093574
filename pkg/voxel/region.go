package voxel

import (
	apperr "github.com/matzehuels/claimviz/pkg/errors"
)

// Region is an axis-aligned box with inclusive Min and Max corners.
// The zero Region is the single cell at the origin.
type Region struct {
	Min Coordinate `json:"min" toml:"min" yaml:"min"`
	Max Coordinate `json:"max" toml:"max" yaml:"max"`
}

// NewRegion returns the region spanning lo to hi.
// It fails with [apperr.ErrCodeInvalidRegion] if lo exceeds hi on any axis.
func NewRegion(lo, hi Coordinate) (Region, error) {
	r := Region{Min: lo, Max: hi}
	if err := r.Validate(); err != nil {
		return Region{}, err
	}
	return r, nil
}

// RegionOf returns the smallest region containing both corners, in any order.
func RegionOf(a, b Coordinate) Region {
	return Region{
		Min: Coordinate{X: min(a.X, b.X), Y: min(a.Y, b.Y), Z: min(a.Z, b.Z)},
		Max: Coordinate{X: max(a.X, b.X), Y: max(a.Y, b.Y), Z: max(a.Z, b.Z)},
	}
}

// Validate reports whether Min <= Max componentwise.
func (r Region) Validate() error {
	switch {
	case r.Min.X > r.Max.X:
		return apperr.New(apperr.ErrCodeInvalidRegion, "min x %d exceeds max x %d", r.Min.X, r.Max.X)
	case r.Min.Y > r.Max.Y:
		return apperr.New(apperr.ErrCodeInvalidRegion, "min y %d exceeds max y %d", r.Min.Y, r.Max.Y)
	case r.Min.Z > r.Max.Z:
		return apperr.New(apperr.ErrCodeInvalidRegion, "min z %d exceeds max z %d", r.Min.Z, r.Max.Z)
	}
	return nil
}

// Length is the inclusive span along X.
func (r Region) Length() int { return r.Max.X - r.Min.X + 1 }

// Width is the inclusive span along Z.
func (r Region) Width() int { return r.Max.Z - r.Min.Z + 1 }

// Height is the inclusive span along Y.
func (r Region) Height() int { return r.Max.Y - r.Min.Y + 1 }

// Is3D reports whether the region has vertical extent beyond a single layer.
func (r Region) Is3D() bool { return r.Height() > 1 }

// Contains reports whether c lies within r on all three axes.
func (r Region) Contains(c Coordinate) bool {
	return c.X >= r.Min.X && c.X <= r.Max.X &&
		c.Y >= r.Min.Y && c.Y <= r.Max.Y &&
		c.Z >= r.Min.Z && c.Z <= r.Max.Z
}

// ContainsColumn reports whether c lies within r on the X and Z axes.
func (r Region) ContainsColumn(c Coordinate) bool {
	return c.X >= r.Min.X && c.X <= r.Max.X &&
		c.Z >= r.Min.Z && c.Z <= r.Max.Z
}

// Intersect returns the overlap of r and o.
// The boolean is false when the boxes share no cell.
func (r Region) Intersect(o Region) (Region, bool) {
	out := Region{
		Min: Coordinate{X: max(r.Min.X, o.Min.X), Y: max(r.Min.Y, o.Min.Y), Z: max(r.Min.Z, o.Min.Z)},
		Max: Coordinate{X: min(r.Max.X, o.Max.X), Y: min(r.Max.Y, o.Max.Y), Z: min(r.Max.Z, o.Max.Z)},
	}
	if out.Validate() != nil {
		return Region{}, false
	}
	return out, true
}

// Expand grows r by n cells on every horizontal side and dy cells vertically.
func (r Region) Expand(n, dy int) Region {
	return Region{
		Min: Coordinate{X: r.Min.X - n, Y: r.Min.Y - dy, Z: r.Min.Z - n},
		Max: Coordinate{X: r.Max.X + n, Y: r.Max.Y + dy, Z: r.Max.Z + n},
	}
}

// WithYRange returns r with its vertical span replaced by [minY, maxY].
// The result may be inverted; Intersect treats that as empty.
func (r Region) WithYRange(minY, maxY int) Region {
	r.Min.Y, r.Max.Y = minY, maxY
	return r
}

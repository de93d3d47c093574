package voxel

import "strings"

// Material identifies a block type by its lower-case name, e.g. "stone",
// "water" or "oak_slab".
type Material string

// Common materials referenced by the overlay packages and tests.
const (
	Air   Material = "air"
	Water Material = "water"
	Lava  Material = "lava"
	Stone Material = "stone"
	Sand  Material = "sand"
	Dirt  Material = "dirt"
	Grass Material = "grass_block"
	Snow  Material = "snow"
)

// ParseMaterial normalizes a material name ("minecraft:Oak_Slab" -> "oak_slab").
func ParseMaterial(s string) Material {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "minecraft:")
	return Material(s)
}

// IsAir reports whether m is one of the air variants.
func (m Material) IsAir() bool {
	return m == "" || m == Air || m == "cave_air" || m == "void_air"
}

// HasSuffix reports whether the material name ends with suffix.
func (m Material) HasSuffix(suffix string) bool {
	return strings.HasSuffix(string(m), suffix)
}

// ShapeKind describes the occupied volume of a voxel.
type ShapeKind uint8

const (
	ShapeFull   ShapeKind = iota // full cube
	ShapeNone                    // no collision volume (air, plants)
	ShapeSlab                    // half-height slab
	ShapeStairs                  // stair step
	ShapeLayer                   // thin layer (snow, carpet)
	ShapeThin                    // thin vertical geometry (fences, panes, walls)
)

var shapeNames = [...]string{
	ShapeFull:   "full",
	ShapeNone:   "none",
	ShapeSlab:   "slab",
	ShapeStairs: "stairs",
	ShapeLayer:  "layer",
	ShapeThin:   "thin",
}

// String returns the lower-case shape name.
func (k ShapeKind) String() string {
	if int(k) < len(shapeNames) {
		return shapeNames[k]
	}
	return "unknown"
}

// ParseShapeKind maps a shape name back to its kind.
// Unknown names report false.
func ParseShapeKind(s string) (ShapeKind, bool) {
	for i, name := range shapeNames {
		if name == strings.ToLower(s) {
			return ShapeKind(i), true
		}
	}
	return ShapeFull, false
}

// Shape is the concrete geometry descriptor of a voxel.
type Shape struct {
	Kind        ShapeKind
	Waterlogged bool
}

// Voxel is a resolved world cell.
type Voxel struct {
	Pos      Coordinate
	Material Material
	Shape    Shape
}

// Appearance is a snapshot of what a voxel currently looks like. It is
// captured before a fake appearance is sent so the caller can revert it.
type Appearance struct {
	Material Material `json:"material"`
	Shape    Shape    `json:"-"`
}

// Appearance returns the voxel's current look.
func (v Voxel) Appearance() Appearance {
	return Appearance{Material: v.Material, Shape: v.Shape}
}

// World is the read-only terrain collaborator.
//
// MinY is the lowest addressable layer and MaxY the world's height limit;
// the top usable layer is MaxY-1. Implementations must be side-effect free.
type World interface {
	Material(c Coordinate) Material
	Shape(c Coordinate) Shape
	MinY() int
	MaxY() int
}

// TopY returns the highest usable layer of w (MaxY-1).
func TopY(w World) int {
	return w.MaxY() - 1
}

// At reads the voxel at c from w.
func At(w World, c Coordinate) Voxel {
	return Voxel{Pos: c, Material: w.Material(c), Shape: w.Shape(c)}
}

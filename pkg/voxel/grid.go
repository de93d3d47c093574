package voxel

// Default vertical bounds of a [Grid] created with zero limits.
const (
	DefaultMinY = -64
	DefaultMaxY = 320
)

type cell struct {
	material Material
	shape    Shape
}

// Grid is a sparse in-memory [World]. Unset cells read as air.
// A Grid is not safe for concurrent mutation; concurrent reads are fine.
type Grid struct {
	minY, maxY int
	cells      map[Coordinate]cell
	shapes     ShapeFunc
}

// ShapeFunc infers a default shape from a material name.
type ShapeFunc func(Material) ShapeKind

// GridOption configures a Grid.
type GridOption func(*Grid)

// WithShapeFunc overrides how Set infers shapes for materials.
func WithShapeFunc(fn ShapeFunc) GridOption {
	return func(g *Grid) {
		if fn != nil {
			g.shapes = fn
		}
	}
}

// NewGrid creates an empty grid spanning [minY, maxY).
// If minY >= maxY the default bounds are used.
func NewGrid(minY, maxY int, opts ...GridOption) *Grid {
	if minY >= maxY {
		minY, maxY = DefaultMinY, DefaultMaxY
	}
	g := &Grid{
		minY:   minY,
		maxY:   maxY,
		cells:  make(map[Coordinate]cell),
		shapes: InferShape,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// MinY implements World.
func (g *Grid) MinY() int { return g.minY }

// MaxY implements World.
func (g *Grid) MaxY() int { return g.maxY }

// Material implements World.
func (g *Grid) Material(c Coordinate) Material {
	if cl, ok := g.cells[c]; ok {
		return cl.material
	}
	return Air
}

// Shape implements World.
func (g *Grid) Shape(c Coordinate) Shape {
	if cl, ok := g.cells[c]; ok {
		return cl.shape
	}
	return Shape{Kind: ShapeNone}
}

// Set places m at c with a shape inferred from its name.
// Setting air removes the cell.
func (g *Grid) Set(c Coordinate, m Material) {
	g.SetShape(c, m, Shape{Kind: g.shapes(m)})
}

// SetShape places m at c with an explicit shape.
func (g *Grid) SetShape(c Coordinate, m Material, s Shape) {
	if m.IsAir() {
		delete(g.cells, c)
		return
	}
	g.cells[c] = cell{material: m, shape: s}
}

// Fill sets every cell in r to m.
func (g *Grid) Fill(r Region, m Material) {
	for x := r.Min.X; x <= r.Max.X; x++ {
		for y := r.Min.Y; y <= r.Max.Y; y++ {
			for z := r.Min.Z; z <= r.Max.Z; z++ {
				g.Set(C(x, y, z), m)
			}
		}
	}
}

// Column stacks materials upward starting at (x, bottom, z).
// materials[0] lands at bottom.
func (g *Grid) Column(x, z, bottom int, materials ...Material) {
	for i, m := range materials {
		g.Set(C(x, bottom+i, z), m)
	}
}

// Len returns the number of non-air cells.
func (g *Grid) Len() int { return len(g.cells) }

// Range calls fn for every non-air cell until fn returns false.
// Iteration order is unspecified.
func (g *Grid) Range(fn func(Voxel) bool) {
	for c, cl := range g.cells {
		if !fn(Voxel{Pos: c, Material: cl.material, Shape: cl.shape}) {
			return
		}
	}
}

var _ World = (*Grid)(nil)

// InferShape guesses a shape kind from common material naming conventions.
func InferShape(m Material) ShapeKind {
	switch {
	case m.IsAir():
		return ShapeNone
	case m.HasSuffix("_slab"):
		return ShapeSlab
	case m.HasSuffix("_stairs"):
		return ShapeStairs
	case m == Snow || m.HasSuffix("_carpet"):
		return ShapeLayer
	case m.HasSuffix("_fence"), m.HasSuffix("_fence_gate"), m.HasSuffix("_wall"), m.HasSuffix("_pane"):
		return ShapeThin
	}
	return ShapeFull
}

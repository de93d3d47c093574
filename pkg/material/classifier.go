package material

import (
	"github.com/matzehuels/claimviz/pkg/voxel"
)

// Classifier answers the material questions asked by the surface snapper.
// The zero value is not usable; use [Default] or [New].
type Classifier struct {
	transparentTags []Tag
	overrides       []overrideRule
	seeThrough      Tag
}

// Option customizes a Classifier.
type Option func(*Classifier)

// WithOverride prepends a rule mapping the tag's materials to o.
// Later options take precedence over earlier ones and over the defaults.
func WithOverride(t Tag, o SnapOverride) Option {
	return func(c *Classifier) {
		c.overrides = append([]overrideRule{{tag: t, override: o}}, c.overrides...)
	}
}

// WithSeeThrough adds materials to the general transparency set.
func WithSeeThrough(ms ...voxel.Material) Option {
	return func(c *Classifier) {
		c.seeThrough.Exact = append(c.seeThrough.Exact, ms...)
	}
}

// New builds a classifier from the built-in tables plus opts.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		transparentTags: []Tag{Fences, FenceGates, Signs, Walls, WallSigns},
		overrides:       append([]overrideRule(nil), overrideTable...),
		seeThrough: Tag{
			Name:     seeThrough.Name,
			Exact:    append([]voxel.Material(nil), seeThrough.Exact...),
			Suffixes: seeThrough.Suffixes,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultClassifier = New()

// Default returns the shared classifier built from the built-in tables.
func Default() *Classifier {
	return defaultClassifier
}

// IsLiquidLike reports whether v counts as liquid under mode.
//
// Liquids and the liquid-adjacent plants always count. Waterlogged shapes
// count only while water is being looked through; with opaque water they
// read as their solid shape.
func (c *Classifier) IsLiquidLike(v voxel.Voxel, mode Mode) bool {
	if Liquids.Has(v.Material) || LiquidAdjacent.Has(v.Material) {
		return true
	}
	return v.Shape.Waterlogged && mode == WaterTransparent
}

// IsPureWater reports whether v is the water material itself.
func (c *Classifier) IsPureWater(v voxel.Voxel) bool {
	return v.Material == voxel.Water
}

// Submerged reports whether a viewer whose feet occupy v is underwater.
func (c *Classifier) Submerged(v voxel.Voxel) bool {
	return c.IsPureWater(v) || v.Material == "bubble_column" || v.Shape.Waterlogged
}

// IsPartialHeight reports whether v is a slab or stair shape.
func (c *Classifier) IsPartialHeight(v voxel.Voxel) bool {
	switch v.Shape.Kind {
	case voxel.ShapeSlab, voxel.ShapeStairs:
		return true
	}
	if Slabs.Has(v.Material) || Stairs.Has(v.Material) {
		return true
	}
	return containsAny(string(v.Material), partialHeightPatterns)
}

// ResolveOverride returns the snap override for v, if any.
// The mode is accepted for symmetry with the other predicates; the table
// itself is mode independent and ColumnSurface is interpreted by the snapper.
func (c *Classifier) ResolveOverride(v voxel.Voxel, _ Mode) (SnapOverride, bool) {
	for _, r := range c.overrides {
		if r.tag.Has(v.Material) {
			return r.override, true
		}
	}
	return 0, false
}

// IsTransparentFromAbove reports whether a downward observer sees past v.
func (c *Classifier) IsTransparentFromAbove(v voxel.Voxel, mode Mode) bool {
	if c.IsLiquidLike(v, mode) {
		return mode == WaterTransparent
	}
	if _, ok := c.ResolveOverride(v, mode); ok {
		return false
	}
	if v.Material == voxel.Snow || c.IsPartialHeight(v) {
		return false
	}
	if v.Material.IsAir() {
		return true
	}
	for _, t := range c.transparentTags {
		if t.Has(v.Material) {
			return true
		}
	}
	return c.seeThrough.Has(v.Material)
}

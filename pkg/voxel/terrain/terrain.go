// Package terrain generates procedural [voxel.Grid] worlds for demos and
// scene files.
//
// Heights come from 2D Perlin noise. Columns below the sea level are
// flooded with water and floored with sand; columns above get a grass cap
// over dirt over stone:
//
//	g := terrain.Generate(terrain.Options{
//	    Area: voxel.RegionOf(voxel.C(-32, 0, -32), voxel.C(32, 0, 32)),
//	    Seed: 42,
//	})
package terrain

import (
	"math"

	"github.com/aquilax/go-perlin"

	"github.com/matzehuels/claimviz/pkg/voxel"
)

// Default generator settings.
const (
	DefaultSeaLevel  = 62
	DefaultBaseLevel = 64
	DefaultAmplitude = 8
	DefaultScale     = 0.05
	DefaultMinY      = 0
	DefaultMaxY      = 128

	perlinAlpha   = 2.0
	perlinBeta    = 2.0
	perlinOctaves = 3
)

// Options configures [Generate]. Zero fields take the package defaults.
type Options struct {
	// Area selects the X/Z columns to generate. Y is ignored.
	Area voxel.Region

	Seed      int64
	SeaLevel  int
	BaseLevel int
	Amplitude int
	Scale     float64
	MinY      int
	MaxY      int
}

func (o *Options) setDefaults() {
	if o.SeaLevel == 0 {
		o.SeaLevel = DefaultSeaLevel
	}
	if o.BaseLevel == 0 {
		o.BaseLevel = DefaultBaseLevel
	}
	if o.Amplitude == 0 {
		o.Amplitude = DefaultAmplitude
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.MinY >= o.MaxY {
		o.MinY, o.MaxY = DefaultMinY, DefaultMaxY
	}
}

// Generate builds a grid over opts.Area. The same options always yield
// the same terrain.
func Generate(opts Options) *voxel.Grid {
	opts.setDefaults()
	g := voxel.NewGrid(opts.MinY, opts.MaxY)
	noise := perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, opts.Seed)

	for x := opts.Area.Min.X; x <= opts.Area.Max.X; x++ {
		for z := opts.Area.Min.Z; z <= opts.Area.Max.Z; z++ {
			n := noise.Noise2D(float64(x)*opts.Scale, float64(z)*opts.Scale)
			h := opts.BaseLevel + int(math.Round(n*float64(opts.Amplitude)))
			h = min(max(h, opts.MinY+1), opts.MaxY-2)
			fillColumn(g, x, z, h, opts)
		}
	}
	return g
}

// fillColumn lays stone up to height, then the surface cap, then water
// up to the sea level.
func fillColumn(g *voxel.Grid, x, z, height int, opts Options) {
	g.Set(voxel.C(x, opts.MinY, z), "bedrock")
	for y := opts.MinY + 1; y < height-2; y++ {
		g.Set(voxel.C(x, y, z), voxel.Stone)
	}

	underwater := height < opts.SeaLevel
	for y := max(height-2, opts.MinY+1); y <= height; y++ {
		switch {
		case underwater:
			g.Set(voxel.C(x, y, z), voxel.Sand)
		case y == height:
			g.Set(voxel.C(x, y, z), voxel.Grass)
		default:
			g.Set(voxel.C(x, y, z), voxel.Dirt)
		}
	}

	for y := height + 1; y <= opts.SeaLevel; y++ {
		g.Set(voxel.C(x, y, z), voxel.Water)
	}
}

// SurfaceY returns the Y of the highest non-air, non-water cell in the column,
// or the world floor if none exists.
func SurfaceY(w voxel.World, x, z int) int {
	for y := voxel.TopY(w); y > w.MinY(); y-- {
		m := w.Material(voxel.C(x, y, z))
		if !m.IsAir() && m != voxel.Water {
			return y
		}
	}
	return w.MinY()
}

package snap

import (
	"github.com/matzehuels/claimviz/pkg/material"
	"github.com/matzehuels/claimviz/pkg/voxel"
)

// Reason names the rule that produced a snap result.
type Reason string

const (
	ReasonGround        Reason = "ground"
	ReasonPartialHeight Reason = "partial-height"
	ReasonShapedGlass   Reason = "transparent-shaped"
	ReasonOverrideSelf  Reason = "override-self"
	ReasonOverrideAbove Reason = "override-above"
	ReasonOverrideTwo   Reason = "override-two-above"
	ReasonLiquidSurface Reason = "liquid-surface"
	ReasonFirstWater    Reason = "first-water"
	ReasonFirstLiquid   Reason = "first-liquid"
	ReasonSeabed        Reason = "seabed"
	ReasonTransparent   Reason = "last-transparent"
)

// Result is a snapped position plus how it was reached.
type Result struct {
	Pos    voxel.Coordinate
	Reason Reason
	// Steps is the number of voxels inspected across both passes.
	Steps int
}

// Snapper resolves column surfaces against a world.
// It is safe for concurrent use when the world is.
type Snapper struct {
	World      voxel.World
	Classifier *material.Classifier
}

// New returns a Snapper over w using c, or the default classifier if c is nil.
func New(w voxel.World, c *material.Classifier) *Snapper {
	if c == nil {
		c = material.Default()
	}
	return &Snapper{World: w, Classifier: c}
}

// Snap returns the surface of start's column within the world's bounds.
func (s *Snapper) Snap(start voxel.Coordinate, mode material.Mode) voxel.Coordinate {
	return s.Trace(start, mode).Pos
}

// SnapBounded is Snap restricted to the inclusive range [minY, maxY].
func (s *Snapper) SnapBounded(start voxel.Coordinate, mode material.Mode, minY, maxY int) voxel.Coordinate {
	return s.TraceBounded(start, mode, minY, maxY).Pos
}

// Trace is Snap with diagnostics.
func (s *Snapper) Trace(start voxel.Coordinate, mode material.Mode) Result {
	return s.TraceBounded(start, mode, s.World.MinY(), voxel.TopY(s.World))
}

// TraceBounded is SnapBounded with diagnostics.
func (s *Snapper) TraceBounded(start voxel.Coordinate, mode material.Mode, minY, maxY int) Result {
	if maxY < minY {
		maxY = minY
	}
	c := s.Classifier
	at := func(y int) voxel.Voxel { return voxel.At(s.World, start.WithY(y)) }
	pos := func(y int) voxel.Coordinate { return start.WithY(y) }

	steps := 0
	y := min(max(start.Y, minY), maxY)
	for y < maxY {
		steps++
		if c.IsTransparentFromAbove(at(y), mode) {
			break
		}
		y++
	}

	// The ascend endpoint is open; it is the fallback when the descent
	// finds neither ground nor a usable liquid surface.
	sc := scan{lastTransparent: pos(y)}
	for ; y >= minY; y-- {
		steps++
		v := at(y)

		if o, ok := c.ResolveOverride(v, mode); ok {
			switch o {
			case material.Self:
				return Result{v.Pos, ReasonOverrideSelf, steps}
			case material.Above:
				if y+1 <= maxY {
					return Result{pos(y + 1), ReasonOverrideAbove, steps}
				}
				return Result{v.Pos, ReasonOverrideAbove, steps}
			case material.TwoAbove:
				switch {
				case y+2 <= maxY:
					return Result{pos(y + 2), ReasonOverrideTwo, steps}
				case y+1 <= maxY:
					return Result{pos(y + 1), ReasonOverrideTwo, steps}
				}
				return Result{v.Pos, ReasonOverrideTwo, steps}
			case material.ColumnSurface:
				if mode == material.WaterOpaque {
					return Result{v.Pos, ReasonLiquidSurface, steps}
				}
			case material.ColumnSeabed:
			}
		}

		if c.IsLiquidLike(v, mode) {
			sc.enterLiquid(v, c.IsPureWater(v))
			continue
		}
		if c.IsTransparentFromAbove(v, mode) {
			if c.IsPartialHeight(v) {
				return Result{v.Pos, ReasonShapedGlass, steps}
			}
			sc.lastTransparent = v.Pos
			continue
		}
		if c.IsPartialHeight(v) {
			return Result{v.Pos, ReasonPartialHeight, steps}
		}
		if !sc.inLiquid {
			return Result{v.Pos, ReasonGround, steps}
		}
		sc.seabed = &v.Pos
		break
	}

	r := sc.resolve(mode)
	r.Steps = steps
	return r
}

// scan holds the accumulators of one downward pass.
type scan struct {
	inLiquid        bool
	firstLiquid     *voxel.Coordinate
	firstWater      *voxel.Coordinate
	seabed          *voxel.Coordinate
	lastTransparent voxel.Coordinate
}

func (sc *scan) enterLiquid(v voxel.Voxel, water bool) {
	sc.inLiquid = true
	if sc.firstLiquid == nil {
		sc.firstLiquid = &v.Pos
	}
	if water && sc.firstWater == nil {
		sc.firstWater = &v.Pos
	}
}

func (sc *scan) resolve(mode material.Mode) Result {
	if mode == material.WaterOpaque {
		switch {
		case sc.firstWater != nil:
			return Result{Pos: *sc.firstWater, Reason: ReasonFirstWater}
		case sc.firstLiquid != nil:
			return Result{Pos: *sc.firstLiquid, Reason: ReasonFirstLiquid}
		}
	} else if sc.seabed != nil {
		return Result{Pos: *sc.seabed, Reason: ReasonSeabed}
	}
	return Result{Pos: sc.lastTransparent, Reason: ReasonTransparent}
}

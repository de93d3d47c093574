package plan

import (
	"fmt"

	"github.com/matzehuels/claimviz/pkg/style"
	"github.com/matzehuels/claimviz/pkg/voxel"
)

// Default planner parameters.
const (
	DefaultStep        = 10
	DefaultMinSideSpan = 2
	DefaultRadius      = 75
)

// Role aliases the style role so callers need only one import.
type Role = style.Role

// Roles re-exported from the style package.
const (
	Corner = style.Corner
	Side   = style.Side
)

// Placement says whether a marker keeps its planned height.
type Placement uint8

const (
	// Snapped markers are moved onto the visible surface of their column.
	Snapped Placement = iota
	// Exact markers stay at their planned coordinate.
	Exact
)

// String returns "snapped" or "exact".
func (p Placement) String() string {
	if p == Exact {
		return "exact"
	}
	return "snapped"
}

// MarshalText implements encoding.TextMarshaler.
func (p Placement) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Placement) UnmarshalText(b []byte) error {
	switch string(b) {
	case "snapped":
		*p = Snapped
	case "exact":
		*p = Exact
	default:
		return fmt.Errorf("unknown placement %q", b)
	}
	return nil
}

// Marker is one planned outline position.
type Marker struct {
	Pos       voxel.Coordinate
	Role      Role
	Placement Placement
}

// Bounds is an inclusive vertical range.
type Bounds struct {
	MinY, MaxY int
}

// WorldBounds returns the inclusive vertical bounds of w.
func WorldBounds(w voxel.World) Bounds {
	return Bounds{MinY: w.MinY(), MaxY: voxel.TopY(w)}
}

// WindowAround returns the display window: a box of the given horizontal
// radius around origin spanning the full height of b. The window is fixed
// at render time so the outline does not drift as the viewer moves.
func WindowAround(origin voxel.Coordinate, radius int, b Bounds) voxel.Region {
	if radius < 0 {
		radius = 0
	}
	return voxel.Region{
		Min: voxel.C(origin.X-radius, b.MinY, origin.Z-radius),
		Max: voxel.C(origin.X+radius, b.MaxY, origin.Z+radius),
	}
}

// Planner produces markers for a region.
type Planner struct {
	// Step is the spacing of side markers along long edges.
	Step int
	// MinSideSpan is the edge span at or below which no near-corner
	// side markers are drawn.
	MinSideSpan int
}

// New returns a planner with the default parameters.
func New() *Planner {
	return &Planner{Step: DefaultStep, MinSideSpan: DefaultMinSideSpan}
}

// Plan returns the markers for region drawn in the given style.
//
// height is the nominal y of the standard ring. window limits where
// markers may appear and bounds is the world's vertical range.
func (p *Planner) Plan(region voxel.Region, spec style.Spec, window voxel.Region, height int, bounds Bounds) []Marker {
	if spec.Uses3D && region.Is3D() {
		return p.bounded(region, window, bounds)
	}
	return p.standard(region, spec, window, height)
}

func (p *Planner) params() (step, span int) {
	step, span = p.Step, p.MinSideSpan
	if step <= 0 {
		step = DefaultStep
	}
	if span < 0 {
		span = DefaultMinSideSpan
	}
	return step, span
}

// builder collects markers, keeping the last marker written at a position
// except that a side never replaces a corner.
type builder struct {
	clip    func(voxel.Coordinate) bool
	markers []Marker
	index   map[voxel.Coordinate]int
}

func newBuilder(clip func(voxel.Coordinate) bool) *builder {
	return &builder{clip: clip, index: make(map[voxel.Coordinate]int)}
}

func (b *builder) add(c voxel.Coordinate, r Role, pl Placement) {
	if !b.clip(c) {
		return
	}
	m := Marker{Pos: c, Role: r, Placement: pl}
	if i, ok := b.index[c]; ok {
		if b.markers[i].Role == Corner && r == Side {
			return
		}
		b.markers[i] = m
		return
	}
	b.index[c] = len(b.markers)
	b.markers = append(b.markers, m)
}

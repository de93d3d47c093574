package plan

import (
	"github.com/matzehuels/claimviz/pkg/style"
	"github.com/matzehuels/claimviz/pkg/voxel"
)

// standard draws a ring at height clipped horizontally to window ∩ region.
func (p *Planner) standard(r voxel.Region, spec style.Spec, window voxel.Region, height int) []Marker {
	zone, ok := r.Intersect(window.WithYRange(r.Min.Y, r.Max.Y))
	if !ok {
		return nil
	}
	step, span := p.params()
	b := newBuilder(zone.ContainsColumn)

	side, corner := placementFor(spec, style.Side), placementFor(spec, style.Corner)
	at := func(x, z int) voxel.Coordinate { return voxel.C(x, height, z) }

	// Along x: the north and south edges.
	for x := max(r.Min.X+step, zone.Min.X); x < r.Max.X-step/2 && x < zone.Max.X; x += step {
		b.add(at(x, r.Max.Z), Side, side)
		b.add(at(x, r.Min.Z), Side, side)
	}
	if r.Length() > span {
		b.add(at(r.Min.X+1, r.Max.Z), Side, side)
		b.add(at(r.Min.X+1, r.Min.Z), Side, side)
		b.add(at(r.Max.X-1, r.Max.Z), Side, side)
		b.add(at(r.Max.X-1, r.Min.Z), Side, side)
	}

	// Along z: the west and east edges.
	for z := max(r.Min.Z+step, zone.Min.Z); z < r.Max.Z-step/2 && z < zone.Max.Z; z += step {
		b.add(at(r.Min.X, z), Side, side)
		b.add(at(r.Max.X, z), Side, side)
	}
	if r.Width() > span {
		b.add(at(r.Min.X, r.Min.Z+1), Side, side)
		b.add(at(r.Max.X, r.Min.Z+1), Side, side)
		b.add(at(r.Min.X, r.Max.Z-1), Side, side)
		b.add(at(r.Max.X, r.Max.Z-1), Side, side)
	}

	b.add(at(r.Min.X, r.Max.Z), Corner, corner)
	b.add(at(r.Min.X, r.Min.Z), Corner, corner)
	b.add(at(r.Max.X, r.Max.Z), Corner, corner)
	b.add(at(r.Max.X, r.Min.Z), Corner, corner)

	return b.markers
}

func placementFor(spec style.Spec, r Role) Placement {
	if spec.Exact(r) {
		return Exact
	}
	return Snapped
}

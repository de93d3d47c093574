package plan

import (
	"github.com/matzehuels/claimviz/pkg/voxel"
)

// bounded draws the bottom and top layers of a vertically bounded region.
// Every marker is exact and clipped in three dimensions.
func (p *Planner) bounded(r voxel.Region, window voxel.Region, bounds Bounds) []Marker {
	window = window.WithYRange(
		max(bounds.MinY, r.Min.Y-1),
		min(bounds.MaxY, r.Max.Y+1),
	)
	zone, ok := window.Intersect(r)
	if !ok {
		return nil
	}
	_, span := p.params()
	b := newBuilder(zone.Contains)

	for _, y := range []int{r.Min.Y, r.Max.Y} {
		at := func(x, z int) voxel.Coordinate { return voxel.C(x, y, z) }

		if r.Length() > span {
			b.add(at(r.Min.X+1, r.Max.Z), Side, Exact)
			b.add(at(r.Min.X+1, r.Min.Z), Side, Exact)
			b.add(at(r.Max.X-1, r.Max.Z), Side, Exact)
			b.add(at(r.Max.X-1, r.Min.Z), Side, Exact)
		}
		if r.Width() > span {
			b.add(at(r.Min.X, r.Min.Z+1), Side, Exact)
			b.add(at(r.Max.X, r.Min.Z+1), Side, Exact)
			b.add(at(r.Min.X, r.Max.Z-1), Side, Exact)
			b.add(at(r.Max.X, r.Max.Z-1), Side, Exact)
		}

		corners := []voxel.Coordinate{
			at(r.Min.X, r.Min.Z), at(r.Max.X, r.Min.Z),
			at(r.Min.X, r.Max.Z), at(r.Max.X, r.Max.Z),
		}
		for _, c := range corners {
			b.add(c, Corner, Exact)
		}

		// One indicator per corner pointing into the region.
		dy := 1
		if y == r.Max.Y {
			dy = -1
		}
		for _, c := range corners {
			b.add(c.Up(dy), Side, Exact)
		}
	}
	return b.markers
}

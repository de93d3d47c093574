package preview

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/claimviz/pkg/overlay"
	"github.com/matzehuels/claimviz/pkg/plan"
	"github.com/matzehuels/claimviz/pkg/style"
	"github.com/matzehuels/claimviz/pkg/voxel"
)

// Map glyphs.
const (
	GlyphCorner  = 'C'
	GlyphSide    = 's'
	GlyphSnapped = '~'
	GlyphEdge    = '+'
	GlyphInside  = '.'
	GlyphOutside = ' '
)

// ToText renders ins as per-layer maps of region, topmost layer first.
// Rows run along Z and columns along X. Region borders are drawn with
// [GlyphEdge]; snapped side markers use [GlyphSnapped].
func ToText(region voxel.Region, ins []overlay.PlacementInstruction) string {
	if len(ins) == 0 {
		return "(no markers)\n"
	}

	byY := make(map[int][]overlay.PlacementInstruction)
	for _, in := range ins {
		byY[in.Pos.Y] = append(byY[in.Pos.Y], in)
	}
	ys := make([]int, 0, len(byY))
	for y := range byY {
		ys = append(ys, y)
	}
	slices.SortFunc(ys, func(a, b int) int { return cmp.Compare(b, a) })

	var sb strings.Builder
	for i, y := range ys {
		if i > 0 {
			sb.WriteByte('\n')
		}
		writeLayer(&sb, region, y, byY[y])
	}
	return sb.String()
}

func writeLayer(sb *strings.Builder, region voxel.Region, y int, ins []overlay.PlacementInstruction) {
	lo, hi := region.Min, region.Max
	for _, in := range ins {
		lo.X, lo.Z = min(lo.X, in.Pos.X), min(lo.Z, in.Pos.Z)
		hi.X, hi.Z = max(hi.X, in.Pos.X), max(hi.Z, in.Pos.Z)
	}
	w, h := hi.X-lo.X+1, hi.Z-lo.Z+1

	rows := make([][]byte, h)
	for z := range rows {
		row := make([]byte, w)
		for x := range row {
			row[x] = cellGlyph(region, lo.X+x, lo.Z+z)
		}
		rows[z] = row
	}
	for _, in := range ins {
		rows[in.Pos.Z-lo.Z][in.Pos.X-lo.X] = markerGlyph(in)
	}

	fmt.Fprintf(sb, "y=%d  x=%d..%d  z=%d..%d  markers=%d\n", y, lo.X, hi.X, lo.Z, hi.Z, len(ins))
	for _, row := range rows {
		sb.WriteString(strings.TrimRight(string(row), " "))
		sb.WriteByte('\n')
	}
}

func cellGlyph(r voxel.Region, x, z int) byte {
	c := voxel.C(x, r.Min.Y, z)
	switch {
	case !r.ContainsColumn(c):
		return GlyphOutside
	case x == r.Min.X || x == r.Max.X || z == r.Min.Z || z == r.Max.Z:
		return GlyphEdge
	default:
		return GlyphInside
	}
}

func markerGlyph(in overlay.PlacementInstruction) byte {
	switch {
	case in.Role == style.Corner:
		return GlyphCorner
	case in.Placement == plan.Snapped:
		return GlyphSnapped
	default:
		return GlyphSide
	}
}

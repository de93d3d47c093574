package material

import (
	"strings"

	"github.com/matzehuels/claimviz/pkg/voxel"
)

// Tag is a named material set matched by exact name or name suffix.
type Tag struct {
	Name     string
	Exact    []voxel.Material
	Suffixes []string
}

// Has reports whether m belongs to the tag.
func (t Tag) Has(m voxel.Material) bool {
	for _, e := range t.Exact {
		if e == m {
			return true
		}
	}
	for _, s := range t.Suffixes {
		if m.HasSuffix(s) {
			return true
		}
	}
	return false
}

// Built-in tags.
var (
	Fences     = Tag{Name: "fences", Suffixes: []string{"_fence"}}
	FenceGates = Tag{Name: "fence_gates", Suffixes: []string{"_fence_gate"}}
	Signs      = Tag{Name: "signs", Suffixes: []string{"_sign"}, Exact: []voxel.Material{"sign"}}
	WallSigns  = Tag{Name: "wall_signs", Suffixes: []string{"_wall_sign", "_wall_hanging_sign"}}
	Walls      = Tag{Name: "walls", Suffixes: []string{"_wall"}}
	Slabs      = Tag{Name: "slabs", Suffixes: []string{"_slab"}}
	Stairs     = Tag{Name: "stairs", Suffixes: []string{"_stairs"}}

	Liquids        = Tag{Name: "liquids", Exact: []voxel.Material{voxel.Water, voxel.Lava}}
	LiquidAdjacent = Tag{Name: "liquid_adjacent", Exact: []voxel.Material{
		"bubble_column", "kelp", "kelp_plant", "seagrass", "tall_seagrass",
	}}
)

// partialHeightPatterns is the name-pattern fallback for slab-like shapes.
var partialHeightPatterns = []string{"slab", "stairs", "step"}

// seeThrough lists materials whose general transparency flag is set:
// they do not occlude what lies below them when viewed from above.
var seeThrough = Tag{
	Name: "see_through",
	Exact: []voxel.Material{
		"cave_air", "void_air", "glass", "tinted_glass", "glass_pane",
		"short_grass", "grass", "tall_grass", "fern", "large_fern", "dead_bush",
		"dandelion", "poppy", "torch", "wall_torch", "redstone_wire", "rail",
		"ladder", "vine", "cobweb", "sugar_cane", "barrier", "light",
	},
	Suffixes: []string{
		"_stained_glass", "_stained_glass_pane", "_sapling", "_tulip",
		"_button", "_pressure_plate", "_torch", "_rail", "_banner",
	},
}

type overrideRule struct {
	tag      Tag
	override SnapOverride
}

// overrideTable is consulted in order; the first matching rule wins.
var overrideTable = []overrideRule{
	{Tag{Exact: []voxel.Material{voxel.Lava}}, ColumnSurface},
	{LiquidAdjacent, ColumnSeabed},
	{Tag{
		Exact: []voxel.Material{
			"ice", "packed_ice", "blue_ice", "frosted_ice", voxel.Snow,
			"lily_pad", "farmland", "dirt_path", "magma_block", "soul_sand",
		},
		Suffixes: []string{"_carpet"},
	}, Self},
	{Tag{Exact: []voxel.Material{"cactus", "cake"}, Suffixes: []string{"_bed"}}, Above},
	{Tag{Suffixes: []string{"_door"}}, TwoAbove},
}

// containsAny reports whether s contains any of the patterns.
func containsAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

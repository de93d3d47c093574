package terrain

import (
	"testing"

	"github.com/matzehuels/claimviz/pkg/voxel"
)

func TestGenerateDeterministic(t *testing.T) {
	opts := Options{Area: voxel.RegionOf(voxel.C(0, 0, 0), voxel.C(15, 0, 15)), Seed: 7}

	a := Generate(opts)
	b := Generate(opts)
	if a.Len() != b.Len() {
		t.Fatalf("cell counts differ: %d vs %d", a.Len(), b.Len())
	}

	for x := 0; x <= 15; x++ {
		for z := 0; z <= 15; z++ {
			if ya, yb := SurfaceY(a, x, z), SurfaceY(b, x, z); ya != yb {
				t.Errorf("(%d,%d): surface %d vs %d", x, z, ya, yb)
			}
		}
	}
}

func TestGenerateColumnLayers(t *testing.T) {
	g := Generate(Options{Area: voxel.RegionOf(voxel.C(0, 0, 0), voxel.C(31, 0, 31)), Seed: 3})

	for x := 0; x <= 31; x++ {
		for z := 0; z <= 31; z++ {
			top := SurfaceY(g, x, z)
			m := g.Material(voxel.C(x, top, z))
			if top < DefaultSeaLevel {
				if m != voxel.Sand {
					t.Errorf("underwater floor at (%d,%d) = %q, want sand", x, z, m)
				}
				if w := g.Material(voxel.C(x, DefaultSeaLevel, z)); w != voxel.Water {
					t.Errorf("sea level at (%d,%d) = %q, want water", x, z, w)
				}
			} else if m != voxel.Grass {
				t.Errorf("surface cap at (%d,%d) = %q, want grass", x, z, m)
			}
			if b := g.Material(voxel.C(x, DefaultMinY, z)); b != "bedrock" {
				t.Errorf("floor at (%d,%d) = %q, want bedrock", x, z, b)
			}
		}
	}
}

package snap

import (
	"testing"

	"github.com/matzehuels/claimviz/pkg/material"
	"github.com/matzehuels/claimviz/pkg/voxel"
)

const (
	opaque      = material.WaterOpaque
	transparent = material.WaterTransparent
)

// column builds a small world with the given materials stacked from y=0
// upward at (0, *, 0). Everything above is air.
func column(materials ...voxel.Material) *voxel.Grid {
	g := voxel.NewGrid(0, 16)
	g.Column(0, 0, 0, materials...)
	return g
}

func at(y int) voxel.Coordinate { return voxel.C(0, y, 0) }

func expect(t *testing.T, r Result, pos voxel.Coordinate, reason Reason) {
	t.Helper()
	if r.Pos != pos || r.Reason != reason {
		t.Errorf("got %v %s, want %v %s", r.Pos, r.Reason, pos, reason)
	}
}

func TestModeSensitivity(t *testing.T) {
	s := New(column(voxel.Stone, voxel.Water), nil)

	// Opaque stands on the water; transparent sees through to the stone.
	if got := s.Snap(at(5), opaque); got != at(1) {
		t.Errorf("opaque: got %v, want %v", got, at(1))
	}
	if got := s.Snap(at(5), transparent); got != at(0) {
		t.Errorf("transparent: got %v, want %v", got, at(0))
	}
}

func TestSeabed(t *testing.T) {
	s := New(column(voxel.Stone, voxel.Sand, voxel.Water, voxel.Water), nil)

	expect(t, s.Trace(at(6), transparent), at(1), ReasonSeabed)
	// Topmost water.
	expect(t, s.Trace(at(6), opaque), at(3), ReasonFirstWater)
}

func TestGround(t *testing.T) {
	s := New(column(voxel.Stone, voxel.Dirt, voxel.Grass), nil)

	expect(t, s.Trace(at(10), opaque), at(2), ReasonGround)
}

func TestEmbeddedStartAscends(t *testing.T) {
	s := New(column(voxel.Stone, voxel.Stone, voxel.Stone, voxel.Stone, voxel.Grass), nil)

	if got := s.Snap(at(1), opaque); got != at(4) {
		t.Errorf("got %v, want %v", got, at(4))
	}
}

func TestOverrideSelf(t *testing.T) {
	tests := []struct {
		name  string
		below []voxel.Material
	}{
		{"over stone", []voxel.Material{voxel.Stone}},
		{"over water", []voxel.Material{voxel.Stone, voxel.Water, voxel.Water}},
		{"over air gap", []voxel.Material{voxel.Stone, voxel.Air, voxel.Air}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := column(append(tt.below, "ice")...)
			iceY := len(tt.below)
			s := New(g, nil)

			for _, mode := range []material.Mode{opaque, transparent} {
				for startY := iceY; startY < 16; startY++ {
					r := s.Trace(at(startY), mode)
					if r.Pos != at(iceY) || r.Reason != ReasonOverrideSelf {
						t.Fatalf("start %d mode %s: got %v %s, want %v %s",
							startY, mode, r.Pos, r.Reason, at(iceY), ReasonOverrideSelf)
					}
				}
			}
		})
	}
}

func TestOverrideAboveClamps(t *testing.T) {
	g := voxel.NewGrid(0, 4)
	g.Column(0, 0, 0, voxel.Stone, "cactus")
	s := New(g, nil)
	if got := s.Snap(at(3), opaque); got != at(2) {
		t.Errorf("got %v, want %v", got, at(2))
	}

	// Cactus on the ceiling cannot anchor above it.
	g = voxel.NewGrid(0, 4)
	g.Column(0, 0, 0, voxel.Stone, voxel.Stone, voxel.Stone, "cactus")
	s = New(g, nil)
	if got := s.Snap(at(3), opaque); got != at(3) {
		t.Errorf("ceiling: got %v, want %v", got, at(3))
	}
}

func TestOverrideTwoAboveClamps(t *testing.T) {
	tests := []struct {
		name  string
		doorY int
		want  int
	}{
		{"room to spare", 1, 3},
		{"one below ceiling", 4, 5},
		{"at ceiling", 5, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := voxel.NewGrid(0, 6)
			g.Fill(voxel.RegionOf(at(0), at(tt.doorY-1)), voxel.Stone)
			g.Set(at(tt.doorY), "oak_door")
			s := New(g, nil)

			expect(t, s.Trace(at(tt.doorY), opaque), at(tt.want), ReasonOverrideTwo)
		})
	}
}

func TestLavaSurface(t *testing.T) {
	s := New(column(voxel.Stone, voxel.Lava, voxel.Lava), nil)

	expect(t, s.Trace(at(8), opaque), at(2), ReasonLiquidSurface)
	// Looks through lava when water is transparent.
	expect(t, s.Trace(at(8), transparent), at(0), ReasonSeabed)
}

func TestKelpSeabed(t *testing.T) {
	s := New(column(voxel.Stone, voxel.Sand, "kelp_plant", "kelp", voxel.Water), nil)

	if got := s.Snap(at(9), transparent); got != at(1) {
		t.Errorf("transparent: got %v, want %v", got, at(1))
	}
	// First water wins over first liquid.
	if got := s.Snap(at(9), opaque); got != at(4) {
		t.Errorf("opaque: got %v, want %v", got, at(4))
	}
}

func TestPartialHeight(t *testing.T) {
	s := New(column(voxel.Stone, "oak_slab"), nil)
	expect(t, s.Trace(at(7), opaque), at(1), ReasonPartialHeight)

	// A slab under water is still the landing spot when looking through.
	s = New(column(voxel.Stone, "stone_slab", voxel.Water), nil)
	if got := s.Snap(at(7), transparent); got != at(1) {
		t.Errorf("under water: got %v, want %v", got, at(1))
	}
}

func TestTransparentThinShapesAreSkipped(t *testing.T) {
	s := New(column(voxel.Stone, voxel.Grass, "oak_fence", "oak_fence"), nil)
	if got := s.Snap(at(7), opaque); got != at(1) {
		t.Errorf("got %v, want %v", got, at(1))
	}
}

func TestFallbacks(t *testing.T) {
	t.Run("empty column", func(t *testing.T) {
		s := New(voxel.NewGrid(0, 8), nil)
		expect(t, s.Trace(at(5), opaque), at(0), ReasonTransparent)
	})

	t.Run("water to the floor", func(t *testing.T) {
		g := voxel.NewGrid(0, 8)
		g.Fill(voxel.RegionOf(at(0), at(3)), voxel.Water)
		s := New(g, nil)
		expect(t, s.Trace(at(6), opaque), at(3), ReasonFirstWater)
		// No seabed, so the last air wins.
		expect(t, s.Trace(at(6), transparent), at(4), ReasonTransparent)
	})

	t.Run("water to the ceiling", func(t *testing.T) {
		g := voxel.NewGrid(0, 4)
		g.Fill(voxel.RegionOf(at(0), at(3)), voxel.Water)
		// The ascend endpoint is the only open voxel seen.
		expect(t, New(g, nil).Trace(at(3), transparent), at(3), ReasonTransparent)
	})

	t.Run("start inside deep water", func(t *testing.T) {
		g := voxel.NewGrid(0, 16)
		g.Fill(voxel.RegionOf(at(0), at(5)), voxel.Water)
		expect(t, New(g, nil).Trace(at(3), transparent), at(3), ReasonTransparent)
	})
}

func TestBoundsInvariant(t *testing.T) {
	mats := []voxel.Material{
		voxel.Air, voxel.Stone, voxel.Water, voxel.Lava, "oak_slab", "ice",
		"cactus", "oak_door", "kelp", "glass", "oak_fence", "red_carpet",
	}
	const minY, maxY = -4, 8

	// Deterministic pseudo-random columns.
	seed := uint32(7)
	next := func() int {
		seed = seed*1664525 + 1013904223
		return int(seed >> 16)
	}

	for i := 0; i < 200; i++ {
		g := voxel.NewGrid(minY, maxY)
		for y := minY; y < maxY; y++ {
			g.Set(at(y), mats[next()%len(mats)])
		}
		s := New(g, nil)
		startY := minY - 3 + next()%(maxY-minY+6)
		for _, mode := range []material.Mode{opaque, transparent} {
			got := s.Snap(at(startY), mode)
			if got.Y < minY || got.Y > maxY-1 {
				t.Fatalf("column %d start %d mode %s: y=%d outside [%d, %d]", i, startY, mode, got.Y, minY, maxY-1)
			}
			if got.X != 0 || got.Z != 0 {
				t.Fatalf("column %d: snapped off column to %v", i, got)
			}
		}
	}
}

func TestSnapBounded(t *testing.T) {
	s := New(column(voxel.Stone, voxel.Stone, voxel.Stone, voxel.Stone, voxel.Stone, voxel.Grass), nil)

	// Ascend stops at the bounded ceiling.
	if got := s.SnapBounded(at(1), opaque, 0, 3); got != at(3) {
		t.Errorf("got %v, want %v", got, at(3))
	}
	if got := s.SnapBounded(at(12), opaque, 2, 9); got != at(5) {
		t.Errorf("got %v, want %v", got, at(5))
	}
}

package overlay

import (
	"cmp"
	"context"
	"slices"

	"github.com/matzehuels/claimviz/pkg/material"
	"github.com/matzehuels/claimviz/pkg/observability"
	"github.com/matzehuels/claimviz/pkg/plan"
	"github.com/matzehuels/claimviz/pkg/snap"
	"github.com/matzehuels/claimviz/pkg/style"
	"github.com/matzehuels/claimviz/pkg/voxel"
)

// Request describes one render pass.
type Request struct {
	Region voxel.Region
	Style  style.Style
	// Origin anchors the display window. It does not follow the viewer.
	Origin voxel.Coordinate
	// Height is the nominal ring height. Nil means Origin.Y.
	Height *int
	// Submerged is the viewer's submersion state. Nil means "decide from
	// the voxel at Origin".
	Submerged *bool
	// Radius is the horizontal display radius. Zero means plan.DefaultRadius.
	Radius int
}

// Renderer runs full render passes against one world.
type Renderer struct {
	World      voxel.World
	Classifier *material.Classifier
	Planner    *plan.Planner
	Factory    *Factory
}

// NewRenderer wires a renderer over w with the default classifier and
// planner. opts configure the factory.
func NewRenderer(w voxel.World, opts ...Option) *Renderer {
	c := material.Default()
	return &Renderer{
		World:      w,
		Classifier: c,
		Planner:    plan.New(),
		Factory:    NewFactory(snap.New(w, c), opts...),
	}
}

// Mode returns the transparency mode req renders under.
func (r *Renderer) Mode(req Request) material.Mode {
	if req.Submerged != nil {
		return material.ModeFor(*req.Submerged)
	}
	return material.ModeFor(r.Classifier.Submerged(voxel.At(r.World, req.Origin)))
}

// Window returns the display window of req.
func (r *Renderer) Window(req Request) voxel.Region {
	radius := req.Radius
	if radius <= 0 {
		radius = plan.DefaultRadius
	}
	return plan.WindowAround(req.Origin, radius, plan.WorldBounds(r.World))
}

// Render plans and resolves req. The result is sorted by role, corners
// first, then by position, so identical inputs give identical output.
func (r *Renderer) Render(ctx context.Context, req Request) ([]PlacementInstruction, error) {
	if err := req.Region.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	height := req.Origin.Y
	if req.Height != nil {
		height = *req.Height
	}
	mode := r.Mode(req)
	spec := r.Factory.Styles().Lookup(req.Style)
	markers := r.Planner.Plan(req.Region, spec, r.Window(req), height, plan.WorldBounds(r.World))

	hooks := observability.Overlay()
	out := make([]PlacementInstruction, 0, len(markers))
	for _, m := range markers {
		in := r.Factory.Resolve(m, req.Style, mode)
		hooks.OnMarkerResolved(ctx, req.Style.String(), in.Role.String(), string(in.Reason), in.Steps)
		out = append(out, in)
	}
	Sort(out)
	return out, nil
}

// Sort orders instructions by role, then position.
func Sort(ins []PlacementInstruction) {
	slices.SortStableFunc(ins, func(a, b PlacementInstruction) int {
		if c := cmp.Compare(a.Role, b.Role); c != 0 {
			return c
		}
		return a.Pos.Compare(b.Pos)
	})
}

package scene

import (
	"fmt"

	apperr "github.com/matzehuels/claimviz/pkg/errors"
	"github.com/matzehuels/claimviz/pkg/overlay"
	"github.com/matzehuels/claimviz/pkg/style"
	"github.com/matzehuels/claimviz/pkg/voxel"
	"github.com/matzehuels/claimviz/pkg/voxel/terrain"
)

// Scene is a loaded, validated scene.
type Scene struct {
	Name     string
	World    *voxel.Grid
	Requests []Request
}

// Request is a named overlay request.
type Request struct {
	Name string
	overlay.Request
}

// Load reads, validates and builds the scene at path.
func Load(path string) (*Scene, error) {
	f, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Build(f)
}

func (p Point) coord() voxel.Coordinate { return voxel.C(p[0], p[1], p[2]) }

// PointOf converts a coordinate to a Point.
func PointOf(c voxel.Coordinate) Point { return Point{c.X, c.Y, c.Z} }

// Build validates f and builds its world and requests.
func Build(f *File) (*Scene, error) {
	if err := apperr.ValidateSceneName(f.Name); err != nil {
		return nil, apperr.Field("name", "%s", apperr.UserMessage(err))
	}
	if len(f.Requests) == 0 {
		return nil, apperr.Field("request", "at least one request is required")
	}

	g, err := buildWorld(f)
	if err != nil {
		return nil, err
	}

	reqs := make([]Request, 0, len(f.Requests))
	seen := make(map[string]bool, len(f.Requests))
	for i, rs := range f.Requests {
		field := fmt.Sprintf("request[%d]", i)
		r, err := buildRequest(field, rs)
		if err != nil {
			return nil, err
		}
		if seen[r.Name] {
			return nil, apperr.Field(field+".name", "duplicate request name %q", r.Name)
		}
		seen[r.Name] = true
		reqs = append(reqs, r)
	}

	return &Scene{Name: f.Name, World: g, Requests: reqs}, nil
}

func buildWorld(f *File) (*voxel.Grid, error) {
	minY, maxY := f.World.MinY, f.World.MaxY
	if minY == 0 && maxY == 0 {
		minY, maxY = terrain.DefaultMinY, terrain.DefaultMaxY
	}
	if minY >= maxY {
		return nil, apperr.Field("world", "min_y %d must be below max_y %d", minY, maxY)
	}

	var g *voxel.Grid
	if t := f.Terrain; t != nil {
		area, err := voxel.NewRegion(t.Min.coord(), t.Max.coord())
		if err != nil {
			return nil, apperr.Field("terrain", "%s", apperr.UserMessage(err))
		}
		g = terrain.Generate(terrain.Options{
			Area:      area,
			Seed:      t.Seed,
			SeaLevel:  t.SeaLevel,
			BaseLevel: t.BaseLevel,
			Amplitude: t.Amplitude,
			Scale:     t.Scale,
			MinY:      minY,
			MaxY:      maxY,
		})
	} else {
		g = voxel.NewGrid(minY, maxY)
	}

	for i, fs := range f.Fills {
		field := fmt.Sprintf("fill[%d]", i)
		r, err := voxel.NewRegion(fs.Min.coord(), fs.Max.coord())
		if err != nil {
			return nil, apperr.Field(field, "%s", apperr.UserMessage(err))
		}
		if r.Min.Y < minY || r.Max.Y >= maxY {
			return nil, apperr.Field(field, "y range [%d, %d] outside world [%d, %d)", r.Min.Y, r.Max.Y, minY, maxY)
		}
		m, err := material(field+".material", fs.Material)
		if err != nil {
			return nil, err
		}
		if fs.Shape == "" && !fs.Waterlogged {
			g.Fill(r, m)
			continue
		}
		shape := voxel.Shape{Kind: voxel.InferShape(m), Waterlogged: fs.Waterlogged}
		if fs.Shape != "" {
			k, ok := voxel.ParseShapeKind(fs.Shape)
			if !ok {
				return nil, apperr.Field(field+".shape", "unknown shape %q", fs.Shape)
			}
			shape.Kind = k
		}
		for x := r.Min.X; x <= r.Max.X; x++ {
			for y := r.Min.Y; y <= r.Max.Y; y++ {
				for z := r.Min.Z; z <= r.Max.Z; z++ {
					g.SetShape(voxel.C(x, y, z), m, shape)
				}
			}
		}
	}

	for i, cs := range f.Columns {
		field := fmt.Sprintf("column[%d]", i)
		if cs.Bottom < minY || cs.Bottom+len(cs.Materials) > maxY {
			return nil, apperr.Field(field, "column [%d, %d) outside world [%d, %d)", cs.Bottom, cs.Bottom+len(cs.Materials), minY, maxY)
		}
		ms := make([]voxel.Material, len(cs.Materials))
		for j, name := range cs.Materials {
			m, err := material(fmt.Sprintf("%s.materials[%d]", field, j), name)
			if err != nil {
				return nil, err
			}
			ms[j] = m
		}
		g.Column(cs.X, cs.Z, cs.Bottom, ms...)
	}
	return g, nil
}

func material(field, name string) (voxel.Material, error) {
	if err := apperr.ValidateMaterialName(name); err != nil {
		return "", apperr.Field(field, "%s", apperr.UserMessage(err))
	}
	return voxel.ParseMaterial(name), nil
}

func buildRequest(field string, rs RequestSpec) (Request, error) {
	if err := apperr.ValidateSceneName(rs.Name); err != nil {
		return Request{}, apperr.Field(field+".name", "%s", apperr.UserMessage(err))
	}
	s := style.Claim
	if rs.Style != "" {
		var err error
		if s, err = style.Parse(rs.Style); err != nil {
			return Request{}, apperr.Field(field+".style", "%s", apperr.UserMessage(err))
		}
	}
	region, err := voxel.NewRegion(rs.Min.coord(), rs.Max.coord())
	if err != nil {
		return Request{}, apperr.Field(field, "%s", apperr.UserMessage(err))
	}
	if rs.Radius < 0 {
		return Request{}, apperr.Field(field+".radius", "radius %d must not be negative", rs.Radius)
	}

	origin := DefaultOrigin(region)
	if rs.Origin != nil {
		origin = rs.Origin.coord()
	}
	return Request{
		Name: rs.Name,
		Request: overlay.Request{
			Region:    region,
			Style:     s,
			Origin:    origin,
			Height:    rs.Height,
			Submerged: rs.Submerged,
			Radius:    rs.Radius,
		},
	}, nil
}

// DefaultOrigin is the top-center of r.
func DefaultOrigin(r voxel.Region) voxel.Coordinate {
	return voxel.C((r.Min.X+r.Max.X)/2, r.Max.Y, (r.Min.Z+r.Max.Z)/2)
}

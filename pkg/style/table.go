package style

import (
	"fmt"

	"github.com/matzehuels/claimviz/pkg/voxel"
)

// Spec is one row of the appearance table.
type Spec struct {
	Corner Template
	Side   Template
	// ExactCorners places corners at the nominal height instead of
	// snapping them to the surface.
	ExactCorners bool
	// Uses3D selects the vertically bounded planner for regions with
	// real height. All markers of that planner are exact.
	Uses3D bool
}

// Role is the position of a marker within an outline.
type Role uint8

const (
	// Corner marks one of the four outline corners.
	Corner Role = iota
	// Side marks a position along an edge between corners.
	Side
)

// String returns "corner" or "side".
func (r Role) String() string {
	if r == Side {
		return "side"
	}
	return "corner"
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(b []byte) error {
	switch string(b) {
	case "corner":
		*r = Corner
	case "side":
		*r = Side
	default:
		return fmt.Errorf("unknown role %q", b)
	}
	return nil
}

// Template returns the appearance for role.
func (s Spec) Template(r Role) Template {
	if r == Side {
		return s.Side
	}
	return s.Corner
}

// Exact reports whether markers of role r skip surface snapping.
// Every marker of a 3D style is exact, including on a flat region.
func (s Spec) Exact(r Role) bool {
	if s.Uses3D {
		return true
	}
	return r == Corner && s.ExactCorners
}

func tmpl(m voxel.Material) Template { return Template{Material: m} }

var defaultSpec = Spec{
	Corner:       tmpl("glowstone"),
	Side:         tmpl("gold_block"),
	ExactCorners: true,
}

// Table maps styles to their appearance. Styles without a row use the
// Claim row.
type Table map[Style]Spec

// DefaultTable returns a fresh copy of the built-in appearance table.
func DefaultTable() Table {
	return Table{
		Claim:          defaultSpec,
		Subdivision:    {Corner: tmpl("iron_block"), Side: tmpl("white_wool")},
		Subdivision3D:  {Corner: tmpl("iron_block"), Side: tmpl("white_wool"), Uses3D: true},
		AdminClaim:     {Corner: tmpl("glowstone"), Side: tmpl("pumpkin")},
		InitializeZone: {Corner: tmpl("diamond_block"), Side: tmpl("diamond_block")},
		ConflictZone: {
			Corner: tmpl("redstone_ore").With(func(t *Template) { t.Lit = true }),
			Side:   tmpl("netherrack"),
		},
	}
}

// Lookup returns the row for s, falling back to the Claim row and then
// to the built-in default.
func (t Table) Lookup(s Style) Spec {
	if spec, ok := t[s]; ok {
		return spec
	}
	if spec, ok := t[Claim]; ok {
		return spec
	}
	return defaultSpec
}

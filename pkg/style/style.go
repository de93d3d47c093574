// Package style maps region kinds to the fake-block appearance used to
// outline them.
//
// The mapping is a data table rather than per-style code: adding a style
// means adding a row to the table, not a new code path.
package style

import (
	"strings"

	apperr "github.com/matzehuels/claimviz/pkg/errors"
	"github.com/matzehuels/claimviz/pkg/voxel"
)

// Style is the kind of region being visualized.
type Style uint8

const (
	// Claim is an ordinary player region.
	Claim Style = iota
	// Subdivision is a child region carved out of a claim.
	Subdivision
	// Subdivision3D is a subdivision bounded vertically as well as horizontally.
	Subdivision3D
	// AdminClaim is a server-owned region.
	AdminClaim
	// InitializeZone is the area being defined while a claim is created.
	InitializeZone
	// ConflictZone marks where a new claim would overlap an existing one.
	ConflictZone
)

var names = [...]string{
	Claim:          "claim",
	Subdivision:    "subdivision",
	Subdivision3D:  "subdivision-3d",
	AdminClaim:     "admin-claim",
	InitializeZone: "initialize-zone",
	ConflictZone:   "conflict-zone",
}

// All returns every style in declaration order.
func All() []Style {
	return []Style{Claim, Subdivision, Subdivision3D, AdminClaim, InitializeZone, ConflictZone}
}

// String returns the kebab-case style name.
func (s Style) String() string {
	if int(s) < len(names) {
		return names[s]
	}
	return names[Claim]
}

// Parse resolves a style name. Underscores and case are ignored, so
// "SUBDIVISION_3D" and "subdivision-3d" are equivalent.
func Parse(name string) (Style, error) {
	n := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for i, s := range names {
		if s == n {
			return Style(i), nil
		}
	}
	return Claim, apperr.New(apperr.ErrCodeInvalidStyle, "unknown style %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Style) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Style) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Template is the appearance of a fake block.
type Template struct {
	Material voxel.Material `json:"material"`
	// Lit is the block's lit state, used by ores that glow when touched.
	Lit bool `json:"lit,omitempty"`
}

// With returns a copy of t with fn applied. The receiver is unchanged.
func (t Template) With(fn func(*Template)) Template {
	if fn != nil {
		fn(&t)
	}
	return t
}

// String returns the material name, suffixed with "[lit]" when lit.
func (t Template) String() string {
	if t.Lit {
		return string(t.Material) + "[lit]"
	}
	return string(t.Material)
}

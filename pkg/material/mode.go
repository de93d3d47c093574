package material

// Mode selects how water is interpreted during one render pass.
type Mode uint8

const (
	// WaterOpaque treats water as a surface to stand on.
	WaterOpaque Mode = iota
	// WaterTransparent looks through water to what lies beneath.
	WaterTransparent
)

// ModeFor returns the mode for a viewer with the given submersion state.
func ModeFor(submerged bool) Mode {
	if submerged {
		return WaterTransparent
	}
	return WaterOpaque
}

// String returns "water-opaque" or "water-transparent".
func (m Mode) String() string {
	if m == WaterTransparent {
		return "water-transparent"
	}
	return "water-opaque"
}

// SnapOverride is a material-specific rule that short-circuits the
// generic column scan.
type SnapOverride uint8

const (
	// Self anchors on the voxel itself.
	Self SnapOverride = iota + 1
	// Above anchors on the voxel directly above.
	Above
	// TwoAbove anchors two voxels above.
	TwoAbove
	// ColumnSurface anchors on the voxel when water is opaque and
	// otherwise falls through to liquid handling.
	ColumnSurface
	// ColumnSeabed keeps descending to find what lies beneath the liquid.
	ColumnSeabed
)

var overrideNames = map[SnapOverride]string{
	Self:          "self",
	Above:         "above",
	TwoAbove:      "two-above",
	ColumnSurface: "column-surface",
	ColumnSeabed:  "column-seabed",
}

// String returns the override's kebab-case name.
func (o SnapOverride) String() string {
	if s, ok := overrideNames[o]; ok {
		return s
	}
	return "none"
}

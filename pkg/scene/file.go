package scene

// Point is an [x, y, z] triple.
type Point [3]int

// File is the on-disk scene schema.
type File struct {
	Name     string        `toml:"name" yaml:"name" json:"name"`
	World    WorldSpec     `toml:"world" yaml:"world" json:"world"`
	Terrain  *TerrainSpec  `toml:"terrain,omitempty" yaml:"terrain,omitempty" json:"terrain,omitempty"`
	Fills    []FillSpec    `toml:"fill,omitempty" yaml:"fill,omitempty" json:"fill,omitempty"`
	Columns  []ColumnSpec  `toml:"column,omitempty" yaml:"column,omitempty" json:"column,omitempty"`
	Requests []RequestSpec `toml:"request" yaml:"request" json:"request"`
}

// WorldSpec sets the world's vertical bounds; MaxY is exclusive.
type WorldSpec struct {
	MinY int `toml:"min_y" yaml:"min_y" json:"min_y"`
	MaxY int `toml:"max_y" yaml:"max_y" json:"max_y"`
}

// TerrainSpec configures the Perlin terrain layer.
type TerrainSpec struct {
	Min       Point   `toml:"min" yaml:"min" json:"min"`
	Max       Point   `toml:"max" yaml:"max" json:"max"`
	Seed      int64   `toml:"seed" yaml:"seed" json:"seed"`
	SeaLevel  int     `toml:"sea_level,omitempty" yaml:"sea_level,omitempty" json:"sea_level,omitempty"`
	BaseLevel int     `toml:"base_level,omitempty" yaml:"base_level,omitempty" json:"base_level,omitempty"`
	Amplitude int     `toml:"amplitude,omitempty" yaml:"amplitude,omitempty" json:"amplitude,omitempty"`
	Scale     float64 `toml:"scale,omitempty" yaml:"scale,omitempty" json:"scale,omitempty"`
}

// FillSpec sets every cell of a box to one material.
type FillSpec struct {
	Min         Point  `toml:"min" yaml:"min" json:"min"`
	Max         Point  `toml:"max" yaml:"max" json:"max"`
	Material    string `toml:"material" yaml:"material" json:"material"`
	Shape       string `toml:"shape,omitempty" yaml:"shape,omitempty" json:"shape,omitempty"`
	Waterlogged bool   `toml:"waterlogged,omitempty" yaml:"waterlogged,omitempty" json:"waterlogged,omitempty"`
}

// ColumnSpec stacks materials upward from Bottom at (X, Z).
type ColumnSpec struct {
	X         int      `toml:"x" yaml:"x" json:"x"`
	Z         int      `toml:"z" yaml:"z" json:"z"`
	Bottom    int      `toml:"bottom" yaml:"bottom" json:"bottom"`
	Materials []string `toml:"materials" yaml:"materials" json:"materials"`
}

// RequestSpec is one overlay to render.
type RequestSpec struct {
	Name      string `toml:"name" yaml:"name" json:"name"`
	Style     string `toml:"style" yaml:"style" json:"style"`
	Min       Point  `toml:"min" yaml:"min" json:"min"`
	Max       Point  `toml:"max" yaml:"max" json:"max"`
	Origin    *Point `toml:"origin,omitempty" yaml:"origin,omitempty" json:"origin,omitempty"`
	Height    *int   `toml:"height,omitempty" yaml:"height,omitempty" json:"height,omitempty"`
	Submerged *bool  `toml:"submerged,omitempty" yaml:"submerged,omitempty" json:"submerged,omitempty"`
	Radius    int    `toml:"radius,omitempty" yaml:"radius,omitempty" json:"radius,omitempty"`
}

package overlay

import (
	"github.com/matzehuels/claimviz/pkg/material"
	"github.com/matzehuels/claimviz/pkg/plan"
	"github.com/matzehuels/claimviz/pkg/snap"
	"github.com/matzehuels/claimviz/pkg/style"
	"github.com/matzehuels/claimviz/pkg/voxel"
)

// PlacementInstruction is one fake block to show a viewer.
type PlacementInstruction struct {
	Pos       voxel.Coordinate `json:"pos"`
	Original  voxel.Appearance `json:"original"`
	Fake      style.Template   `json:"fake"`
	Role      style.Role       `json:"role"`
	Style     style.Style      `json:"style"`
	Placement plan.Placement   `json:"placement"`
	// Reason is the snap rule that placed a snapped marker.
	Reason snap.Reason `json:"reason,omitempty"`
	Steps  int         `json:"-"`
}

// Hook observes each resolved marker.
type Hook func(pos voxel.Coordinate, fake style.Template, s style.Style)

// Mutator adjusts a template copy before it is used for one marker.
type Mutator func(s style.Style, r style.Role, t *style.Template)

// Option configures a Factory.
type Option func(*Factory)

// WithHook registers h to be called once per resolved marker.
func WithHook(h Hook) Option {
	return func(f *Factory) {
		if h != nil {
			f.hook = h
		}
	}
}

// WithStyles replaces the appearance table.
func WithStyles(t style.Table) Option {
	return func(f *Factory) {
		if t != nil {
			f.styles = t
		}
	}
}

// WithMutator registers fn to adjust every template before use.
func WithMutator(fn Mutator) Option {
	return func(f *Factory) {
		f.mutate = fn
	}
}

// Factory resolves markers into placement instructions.
type Factory struct {
	snapper *snap.Snapper
	styles  style.Table
	hook    Hook
	mutate  Mutator
}

// NewFactory returns a factory that snaps through s.
func NewFactory(s *snap.Snapper, opts ...Option) *Factory {
	f := &Factory{
		snapper: s,
		styles:  style.DefaultTable(),
		hook:    func(voxel.Coordinate, style.Template, style.Style) {},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Styles returns the factory's appearance table.
func (f *Factory) Styles() style.Table {
	return f.styles
}

// Resolve turns m into a placement instruction for style s under mode.
func (f *Factory) Resolve(m plan.Marker, s style.Style, mode material.Mode) PlacementInstruction {
	fake := f.styles.Lookup(s).Template(m.Role)
	if f.mutate != nil {
		fake = fake.With(func(t *style.Template) { f.mutate(s, m.Role, t) })
	}

	in := PlacementInstruction{
		Pos:       m.Pos,
		Fake:      fake,
		Role:      m.Role,
		Style:     s,
		Placement: m.Placement,
	}
	if m.Placement == plan.Snapped {
		r := f.snapper.Trace(m.Pos, mode)
		in.Pos, in.Reason, in.Steps = r.Pos, r.Reason, r.Steps
	}
	in.Original = voxel.At(f.snapper.World, in.Pos).Appearance()

	f.hook(in.Pos, in.Fake, s)
	return in
}

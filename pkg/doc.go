// Package pkg holds the claimviz libraries.
//
// claimviz previews the boundary of a land claim, subdivision or zone in a
// voxel world by planning "fake" marker blocks along its edge and snapping
// each one onto the visible surface of its column. Nothing in the world is
// modified: the output is a list of placement instructions, each carrying
// the original appearance so a client can revert it.
//
// # Layout
//
//   - [voxel]: coordinates, regions, the World lookup interface and an
//     in-memory Grid; voxel/terrain generates Perlin test worlds
//   - [material]: pure classification of materials seen from above
//   - [snap]: the column scan that finds where a marker rests
//   - [style]: the style table mapping region kinds to marker appearance
//   - [plan]: marker positions for 2D rings and vertically bounded boxes
//   - [overlay]: turns a request into placement instructions
//   - [scene]: TOML/YAML scene files (world + requests)
//   - [preview]: ASCII layer maps and Graphviz top-down previews
//   - [cache]: render and artifact caches (file, Redis, MongoDB)
//   - [pipeline]: load → render → encode orchestration
//   - [observability]: hooks, Prometheus metrics and OpenTelemetry spans
//   - [errors]: coded errors shared by all of the above
//
// # Data flow
//
//	scene file
//	    ↓  [scene]
//	World + Requests
//	    ↓  [plan] + [snap] via [overlay]
//	[]PlacementInstruction
//	    ↓  [preview] / JSON
//	artifacts (json, txt, svg, png)
//
// # Quick start
//
//	sc, err := scene.Load("harbour.toml")
//	if err != nil {
//	    return err
//	}
//	r := overlay.NewRenderer(sc.World)
//	ins, err := r.Render(ctx, sc.Requests[0].Request)
//
// [voxel]: github.com/matzehuels/claimviz/pkg/voxel
// [material]: github.com/matzehuels/claimviz/pkg/material
// [snap]: github.com/matzehuels/claimviz/pkg/snap
// [style]: github.com/matzehuels/claimviz/pkg/style
// [plan]: github.com/matzehuels/claimviz/pkg/plan
// [overlay]: github.com/matzehuels/claimviz/pkg/overlay
// [scene]: github.com/matzehuels/claimviz/pkg/scene
// [preview]: github.com/matzehuels/claimviz/pkg/preview
// [cache]: github.com/matzehuels/claimviz/pkg/cache
// [pipeline]: github.com/matzehuels/claimviz/pkg/pipeline
// [observability]: github.com/matzehuels/claimviz/pkg/observability
// [errors]: github.com/matzehuels/claimviz/pkg/errors
package pkg

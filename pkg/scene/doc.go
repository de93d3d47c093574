// Package scene loads scene files: a small world plus the overlay
// requests to render against it.
//
// Scenes are written in TOML or YAML; the format is chosen by file
// extension. A scene builds its world in three layers, applied in order:
// an optional Perlin terrain, then box fills, then explicit columns.
//
//	name = "harbour"
//
//	[world]
//	min_y = 0
//	max_y = 128
//
//	[terrain]
//	min = [-40, 0, -40]
//	max = [40, 0, 40]
//	seed = 7
//
//	[[fill]]
//	min = [0, 60, 0]
//	max = [4, 63, 4]
//	material = "water"
//
//	[[request]]
//	name = "dock"
//	style = "claim"
//	min = [-10, 64, -10]
//	max = [10, 64, 10]
package scene

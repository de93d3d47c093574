// Package voxel defines the value types shared by the overlay packages:
// integer coordinates, inclusive regions, and the read-only [World]
// collaborator that answers material and shape lookups.
//
// # Coordinates and Regions
//
// [Coordinate] is a plain comparable struct, so it can be used as a map key
// and compared with ==. [Region] is an axis-aligned box whose Min and Max
// corners are both inclusive:
//
//	r, err := voxel.NewRegion(voxel.C(0, 60, 0), voxel.C(9, 60, 9))
//	r.Length() // 10 (X span)
//	r.Width()  // 10 (Z span)
//	r.Height() // 1  (Y span)
//
// Regions are validated once, at construction. Intersecting two regions
// that do not overlap is a normal outcome reported by the boolean result of
// [Region.Intersect], never an error.
//
// # Worlds
//
// [World] is the only way the overlay code reads terrain. [Grid] is a sparse
// in-memory implementation used by scene files, the CLI and tests; every
// cell not explicitly set reads as air.
package voxel

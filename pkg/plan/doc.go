// Package plan decides where outline markers go.
//
// A [Planner] turns a region and its style into a list of [Marker]s. Two
// strategies exist and are chosen per call:
//
//   - the standard strategy draws a ring at a nominal height with side
//     markers every Step blocks, near-corner markers, and the four corners.
//     Only the horizontal span of the display window clips it; the final
//     height of snapped markers is resolved later.
//   - the bounded strategy, used for vertically bounded styles on regions
//     with real height, draws flanking markers and corners at the region's
//     bottom and top layers plus one vertical indicator per corner. It
//     clips in all three dimensions and every marker is exact.
//
// Plans are pure: the same inputs always produce the same markers.
package plan

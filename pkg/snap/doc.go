// Package snap finds the visible surface of a world column.
//
// A [Snapper] performs one upward pass from the caller's anchor until it
// reaches open space, then one downward pass that lands on the first
// surface a viewer would perceive. The downward pass tracks liquid columns
// so that, depending on the [material.Mode], a marker either rests on the
// water's surface or sinks to the seabed beneath it.
//
// Snapping never fails: the result is always within the world's vertical
// bounds. When the descent finds nothing to rest on, the marker falls back
// to the last open voxel it passed, which is at worst where the upward pass
// stopped.
package snap

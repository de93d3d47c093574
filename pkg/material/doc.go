// Package material classifies voxels for surface snapping.
//
// Every predicate is pure and takes the render's [Mode] explicitly, so a
// single [Classifier] can serve any number of concurrent renders.
//
// # Transparency Modes
//
// [WaterOpaque] is used when the viewer stands on dry land: water reads as
// a surface the viewer would stand on. [WaterTransparent] is used when the
// viewer is submerged: water is looked through, and markers land on the
// seabed beneath it.
//
// # Partial-Height Shapes
//
// Slabs and stairs are detected by their shape descriptor, by the slab and
// stairs tags, and finally by a name-pattern fallback that matches "slab",
// "stairs" and "step" anywhere in the material name. The fallback exists so
// materials that are not yet tagged still snap sensibly. It can produce
// false positives for a material whose name merely contains one of the
// patterns.
//
// # Snap Overrides
//
// A small table maps materials whose correct anchor the generic scan
// cannot express (lava, ice, carpets, beds, doors, underwater plants) to a
// [SnapOverride].
package material

// Package preview draws resolved overlays for humans.
//
// Two renderings are offered. [ToText] prints one ASCII map per layer
// that holds a marker, looking down the Y axis. [ToDOT] emits a Graphviz
// graph with every marker pinned at its X/Z position; [RenderSVG] and
// [RenderPNG] lay it out with the embedded neato engine.
package preview

// Package overlay turns planned markers into fake-block placement
// instructions.
//
// A [Factory] resolves one marker at a time: it picks the appearance for
// the marker's style and role, snaps the marker to the visible surface
// when its placement asks for it, and captures the original appearance of
// the target voxel so the caller can revert the fake block later.
//
// A [Renderer] runs one full render pass: it derives the transparency
// mode from the viewer's submersion, plans the outline inside the display
// window, resolves every marker, and returns the instructions in a stable
// order. Nothing is shared between passes; a Renderer may serve many
// concurrent renders.
//
// This package never writes to the world. Sending the instructions to a
// client and reverting them is the caller's job.
package overlay

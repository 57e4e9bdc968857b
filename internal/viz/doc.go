// Package viz hosts the engine in a terminal.
//
// The engine draws into an off-screen raster; after every executed tick
// the raster is resampled onto a [Canvas] of coloured Braille cells and
// shown through Bubble Tea:
//
//   - [Model]: the live view, with a stats panel of population and edge
//     history
//   - [Canvas]: Braille cells with per-cell dot and background colours
//   - [Theme]: panel chrome derived from the light or dark palette
//
// # Key Bindings
//
//	Space - Stop/Start the engine
//	T     - Toggle light/dark theme
//	S     - Save an SVG snapshot of the last frame
//	G     - Toggle GIF recording
//	P     - Toggle the stats panel
//	?     - Show help overlay
//
// Mouse motion over the canvas moves the pointer; the wheel scrolls.
package viz

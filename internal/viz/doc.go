// Package viz renders a trail session in the terminal.
//
// The package implements a render adapter on the Bubble Tea framework:
//
//   - [Model]: feeds mouse motion and clicks into a session and draws each
//     frame's snapshot
//   - [Canvas]: Braille-based pixel canvas with per-cell color
//   - Theme selection with 5 built-in color schemes
//
// Terminal cells map to a 2x4 grid of sub-pixels, and the session works in
// sub-pixel coordinates, so the cursor, particles and ripples move at Braille
// resolution even though the mouse reports whole cells.
//
// # Key Bindings
//
//	Space - Freeze/unfreeze the display
//	Z     - Toggle the hot zone
//	T     - Cycle color themes
//	?     - Show help overlay
//	Q     - Quit
package viz

// Package viz draws electric field lines in the terminal.
//
//   - [App]: interactive Bubble Tea editor for placing charges and tuning the tracer
//   - [Canvas]: braille pixel canvas with per-cell glyph overlays
//   - [Viewport]: maps world coordinates onto a canvas, keeping the aspect ratio
//   - [Draw]: plots gridlines, field lines, arrows and charges
//
// # Key Bindings
//
//	arrows/hjkl - move the cursor one grid cell
//	enter/space - place a charge at the cursor
//	s, tab      - select the charge under the cursor, cycle charges
//	+ / -       - adjust the selected magnitude
//	m           - type a magnitude
//	d, i, a     - edit ds, max iterations, arrow increment
//	x, c        - remove the selected charge, clear all
//	1-4         - load a preset
//	r, t, ?     - re-render, cycle theme, help
//	q           - quit
package viz

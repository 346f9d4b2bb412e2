// Package renderer draws editor snapshots on a terminal.
//
// The Renderer lays each block out as one or more rows wrapped to the
// screen width, draws the block gutter (the quote bar, the code indent),
// paints every rune with the style resolved from its inline styles and its
// block type, and places the terminal cursor at the caret. The last row is
// a status line.
//
// Drawing goes through Surface, a subset of tcell.Screen, so tests can
// render into a plain cell grid.
package renderer

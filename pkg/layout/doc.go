// Package layout composes a chart's decorations around its plotting area.
//
// # Edge components
//
// Titles, tick labels and legends are [EdgeComponent] values stacked along
// the four sides of the outer rectangle. A component is plain data until the
// chart resolves it against its shared attributes ([Env]); the [Resolved]
// form reports a reactive thickness and renders itself into the bounds it is
// given. [Compose] subtracts every side's thickness from the outer rectangle
// and publishes the remaining inner rectangle together with the slot each
// component was assigned.
//
// Components are declared in visual reading order: top to bottom for the top
// and bottom edges, left to right for the left and right edges. On the top
// and left edges that order runs outermost first, so those lists are
// reversed internally; every stored side list is innermost first.
//
// # Thickness
//
// Thickness is reactive and may depend on data. Left and right components
// receive the vertical span left over by the top and bottom edges, which is
// what a vertical axis needs to generate its ticks before it can measure its
// widest label. Top and bottom components receive the outer width and must
// not depend on the inner width; their thickness is normally one line of
// text plus padding.
//
// # Inner overlays
//
// [InnerComponent] values are drawn inside the finished inner rectangle:
// inset legends, grid lines and axis markers. [Inset] places a box of known
// size against one inner edge. Overlays do not affect each other or the edge
// stack.
//
// # Attributes
//
// Font, padding and the debug flag ([Attr]) resolve with the precedence
// component setting > chart default > library default.
package layout

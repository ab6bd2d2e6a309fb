// Package geom provides the value types shared by every layout stage.
//
// All types here are small immutable values that are copied freely. Pixel
// space has its origin at the top-left corner with y growing downward, which
// matches SVG user space.
//
// # Bounds
//
// [Bounds] is an axis-aligned rectangle. Operations never produce a negative
// width or height and never propagate NaN: degenerate inputs collapse to a
// zero-size rectangle instead of failing.
//
//	outer := geom.New(800, 400)
//	inner := outer.Shrink(50, 0, 0, 0) // top_y=50, bottom_y=400
//
// # Edges and anchors
//
// [Edge] names one side of a rectangle and [Anchor] is a one-dimensional
// alignment along a side. Together they place labels, legends and inset
// overlays.
//
// # Data ranges
//
// [Interval] and [Extent] describe ranges in data space. They are kept apart
// from [Bounds] because data space has y growing upward.
package geom

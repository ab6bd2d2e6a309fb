// Package ticks places labelled tick marks along an axis.
//
// # Overview
//
// A [Generator] takes a data range and a [Span] (the pixel length of the axis
// plus a way to measure labels) and returns a [Set] of ticks. Generators pick
// "nice" values: multiples of 1 or 5 times a power of ten for numbers
// ([AlignedFloats], the levels of a go-moremath scale.Linear) and calendar
// periods from milliseconds to millennia aligned to their boundaries for
// timestamps ([Timestamps]).
//
// # Selection
//
// Candidate steps are tried from the densest admissible one upward and the
// first whose labels do not collide is used. Two neighbouring labels collide
// when their extents, centred on their positions, come closer than the span's
// gap. Because fewer ticks never collide more than a superset would, the
// search returns the densest non-overlapping set.
//
// # Guarantees
//
// Positions are strictly increasing. A degenerate range (first == last) yields
// at most one tick. A zero-length span or non-finite input yields no ticks.
// Generators never panic on bad input.
//
// # Values
//
// Axis values are either float64 or time.Time ([Value]). [Position] maps both
// onto the float64 line used by projection; timestamps become Unix seconds
// with a fractional part.
package ticks

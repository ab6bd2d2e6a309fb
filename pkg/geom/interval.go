package geom

import "math"

// Interval is a closed range in data space.
type Interval struct {
	Min, Max float64
}

// EmptyInterval is the identity for Union: it contains nothing.
var EmptyInterval = Interval{Min: math.Inf(1), Max: math.Inf(-1)}

// Len returns Max - Min, or zero for an empty interval.
func (i Interval) Len() float64 {
	if i.IsEmpty() {
		return 0
	}
	return i.Max - i.Min
}

// IsEmpty reports whether the interval contains no value.
func (i Interval) IsEmpty() bool { return !(i.Min <= i.Max) }

// IsDegenerate reports whether the interval spans no distance (empty or a
// single value).
func (i Interval) IsDegenerate() bool { return i.Len() == 0 }

// Contains reports whether v lies inside the interval.
func (i Interval) Contains(v float64) bool { return v >= i.Min && v <= i.Max }

// Include widens the interval to contain v. NaN values are ignored.
func (i Interval) Include(v float64) Interval {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return i
	}
	return Interval{Min: math.Min(i.Min, v), Max: math.Max(i.Max, v)}
}

// Union returns the smallest interval containing both.
func (i Interval) Union(o Interval) Interval {
	switch {
	case o.IsEmpty():
		return i
	case i.IsEmpty():
		return o
	}
	return Interval{Min: math.Min(i.Min, o.Min), Max: math.Max(i.Max, o.Max)}
}

// OrZero returns the interval, or the zero interval when it is empty.
func (i Interval) OrZero() Interval {
	if i.IsEmpty() {
		return Interval{}
	}
	return i
}

// Extent is a two-dimensional range in data space.
type Extent struct {
	X, Y Interval
}

// EmptyExtent contains nothing on either axis.
var EmptyExtent = Extent{X: EmptyInterval, Y: EmptyInterval}

// Union returns the smallest extent containing both.
func (e Extent) Union(o Extent) Extent {
	return Extent{X: e.X.Union(o.X), Y: e.Y.Union(o.Y)}
}

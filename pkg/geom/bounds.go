package geom

import (
	"fmt"
	"math"
)

// Bounds is an axis-aligned rectangle in pixel space.
// Right >= Left and Bottom >= Top always hold for values built by this package.
type Bounds struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// New returns bounds of the given size with the origin at (0, 0).
func New(width, height float64) Bounds {
	return FromPoints(0, 0, width, height)
}

// FromPoints returns the bounds spanning the given edges. Non-finite
// coordinates are treated as zero and inverted edges collapse onto the
// left/top edge so the result is never negative in size.
func FromPoints(left, top, right, bottom float64) Bounds {
	left, top = finite(left), finite(top)
	right, bottom = finite(right), finite(bottom)
	return Bounds{
		Top:    top,
		Right:  math.Max(left, right),
		Bottom: math.Max(top, bottom),
		Left:   left,
	}
}

// Width returns the horizontal extent.
func (b Bounds) Width() float64 { return b.Right - b.Left }

// Height returns the vertical extent.
func (b Bounds) Height() float64 { return b.Bottom - b.Top }

// CentreX returns the horizontal centre.
func (b Bounds) CentreX() float64 { return b.Left + b.Width()/2 }

// CentreY returns the vertical centre.
func (b Bounds) CentreY() float64 { return b.Top + b.Height()/2 }

// IsEmpty reports whether the bounds have zero area.
func (b Bounds) IsEmpty() bool { return b.Width() == 0 || b.Height() == 0 }

// Contains reports whether (x, y) lies inside b, edges included.
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.Left && x <= b.Right && y >= b.Top && y <= b.Bottom
}

// Shrink insets b by the four margins. Negative or NaN margins count as zero
// and an inset larger than the available extent clamps it to zero.
func (b Bounds) Shrink(top, right, bottom, left float64) Bounds {
	top, right = margin(top), margin(right)
	bottom, left = margin(bottom), margin(left)

	l := math.Min(b.Left+left, b.Right)
	t := math.Min(b.Top+top, b.Bottom)
	return Bounds{
		Top:    t,
		Right:  math.Max(l, b.Right-right),
		Bottom: math.Max(t, b.Bottom-bottom),
		Left:   l,
	}
}

// SplitTop returns the slice of height offset along the top edge and the
// remainder below it. offset is clamped to [0, Height].
func (b Bounds) SplitTop(offset float64) (slice, rest Bounds) {
	offset = math.Min(margin(offset), b.Height())
	return b.Shrink(0, 0, b.Height()-offset, 0), b.Shrink(offset, 0, 0, 0)
}

// SplitBottom returns the slice of height offset along the bottom edge and
// the remainder above it.
func (b Bounds) SplitBottom(offset float64) (slice, rest Bounds) {
	offset = math.Min(margin(offset), b.Height())
	return b.Shrink(b.Height()-offset, 0, 0, 0), b.Shrink(0, 0, offset, 0)
}

// SplitLeft returns the slice of width offset along the left edge and the
// remainder to its right.
func (b Bounds) SplitLeft(offset float64) (slice, rest Bounds) {
	offset = math.Min(margin(offset), b.Width())
	return b.Shrink(0, b.Width()-offset, 0, 0), b.Shrink(0, 0, 0, offset)
}

// SplitRight returns the slice of width offset along the right edge and the
// remainder to its left.
func (b Bounds) SplitRight(offset float64) (slice, rest Bounds) {
	offset = math.Min(margin(offset), b.Width())
	return b.Shrink(0, 0, 0, b.Width()-offset), b.Shrink(0, offset, 0, 0)
}

// Split divides b along edge: slice is the part of thickness offset touching
// edge and rest is what remains.
func (b Bounds) Split(edge Edge, offset float64) (slice, rest Bounds) {
	switch edge {
	case Top:
		return b.SplitTop(offset)
	case Bottom:
		return b.SplitBottom(offset)
	case Left:
		return b.SplitLeft(offset)
	default:
		return b.SplitRight(offset)
	}
}

func (b Bounds) String() string {
	return fmt.Sprintf("{top=%g right=%g bottom=%g left=%g}", b.Top, b.Right, b.Bottom, b.Left)
}

// finite maps NaN and infinities to zero.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// margin maps anything that is not a finite non-negative number to zero.
func margin(v float64) float64 {
	v = finite(v)
	if v < 0 {
		return 0
	}
	return v
}

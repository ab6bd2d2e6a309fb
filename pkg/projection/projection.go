// Package projection maps between data space and the pixel space of a
// chart's inner plotting area.
//
// Data y grows upward and pixel y grows downward, so the y axis is
// inverted: the data minimum sits on the inner bottom edge.
package projection

import (
	"github.com/aclements/go-moremath/scale"

	"github.com/matzehuels/chartistry/pkg/geom"
	"github.com/matzehuels/chartistry/pkg/reactive"
)

// Projection is an affine map from a data extent onto a pixel rectangle.
type Projection struct {
	inner geom.Bounds
	data  geom.Extent
}

// New returns the projection of data onto inner. An empty data interval is
// treated as the zero interval.
func New(inner geom.Bounds, data geom.Extent) Projection {
	return Projection{
		inner: inner,
		data:  geom.Extent{X: data.X.OrZero(), Y: data.Y.OrZero()},
	}
}

// Memo derives a projection that follows the inner rectangle and data range.
func Memo(s *reactive.Scope, inner reactive.Reader[geom.Bounds], data reactive.Reader[geom.Extent]) *reactive.Memo[Projection] {
	return reactive.NewMemo(s, func() Projection {
		return New(inner.Get(), data.Get())
	}, reactive.WithName[Projection]("projection"), reactive.WithEqual(reactive.Eq[Projection]))
}

// Inner returns the pixel rectangle.
func (p Projection) Inner() geom.Bounds { return p.inner }

// Data returns the data extent.
func (p Projection) Data() geom.Extent { return p.data }

// ToPixel maps a data point to pixels. A degenerate data interval maps to the
// centre of the pixel span.
func (p Projection) ToPixel(x, y float64) (px, py float64) {
	px = toPixel(x, p.data.X, p.inner.Left, p.inner.Right)
	py = toPixel(y, p.data.Y, p.inner.Bottom, p.inner.Top)
	return px, py
}

// ToData maps a pixel point back to data space. A degenerate data interval
// maps every pixel to the interval minimum.
func (p Projection) ToData(px, py float64) (x, y float64) {
	x = toData(px, p.data.X, p.inner.Left, p.inner.Right)
	y = toData(py, p.data.Y, p.inner.Bottom, p.inner.Top)
	return x, y
}

// X maps a data x value to a pixel column.
func (p Projection) X(x float64) float64 { return toPixel(x, p.data.X, p.inner.Left, p.inner.Right) }

// Y maps a data y value to a pixel row.
func (p Projection) Y(y float64) float64 { return toPixel(y, p.data.Y, p.inner.Bottom, p.inner.Top) }

// toPixel maps v from d onto [from, to].
func toPixel(v float64, d geom.Interval, from, to float64) float64 {
	if d.IsDegenerate() {
		return from + (to-from)/2
	}
	data := scale.Linear{Min: d.Min, Max: d.Max}
	pixel := scale.Linear{Min: from, Max: to}
	return pixel.Unmap(data.Map(v))
}

// toData maps a pixel coordinate back into d.
func toData(px float64, d geom.Interval, from, to float64) float64 {
	if d.IsDegenerate() || to == from {
		return d.Min
	}
	data := scale.Linear{Min: d.Min, Max: d.Max}
	pixel := scale.Linear{Min: from, Max: to}
	return data.Unmap(pixel.Map(px))
}

package series

import (
	"math"

	"github.com/matzehuels/chartistry/pkg/geom"
	"github.com/matzehuels/chartistry/pkg/reactive"
	"github.com/matzehuels/chartistry/pkg/ticks"
)

// Point is a datum in position space (see ticks.Position).
type Point struct {
	X, Y float64
}

// Entry describes a line for legends and tooltips.
type Entry struct {
	Index   int
	Name    string
	Colour  string
	Width   float64
	Visible bool
}

// Range is a typed data range.
type Range[V ticks.Value] struct {
	Min, Max V
	// Valid is false when there was nothing to measure.
	Valid bool
}

// Data is a series bound to reactive data.
type Data[T any, X, Y ticks.Value] struct {
	series  Series[T, X, Y]
	visible []*reactive.Signal[bool]

	// Positions holds one slice of points per line, in data order.
	Positions *reactive.Memo[[][]Point]
	// PositionRange is the extent of every visible, finite point with the
	// series overrides applied.
	PositionRange *reactive.Memo[geom.Extent]
	XRange        *reactive.Memo[Range[X]]
	YRange        *reactive.Memo[Range[Y]]
	// Entries lists the lines in declaration order.
	Entries *reactive.Memo[[]Entry]
}

// NewData derives positions, ranges and legend entries for series over data.
// Every line starts visible.
func NewData[T any, X, Y ticks.Value](s *reactive.Scope, series Series[T, X, Y], data reactive.Reader[[]T]) *Data[T, X, Y] {
	d := &Data[T, X, Y]{series: series}
	for _, line := range series.Lines {
		d.visible = append(d.visible, reactive.NewSignal(s, true, reactive.WithName[bool]("visible:"+line.Name)))
	}

	d.Positions = reactive.NewMemo(s, func() [][]Point {
		return positions(series, data.Get())
	}, reactive.WithName[[][]Point]("positions"))

	d.PositionRange = reactive.NewMemo(s, func() geom.Extent {
		ext := geom.EmptyExtent
		for i, pts := range d.Positions.Get() {
			if !d.visible[i].Get() {
				continue
			}
			for _, p := range pts {
				if !finite(p.X) || !finite(p.Y) {
					continue
				}
				ext.X = ext.X.Include(p.X)
				ext.Y = ext.Y.Include(p.Y)
			}
		}
		ext.X = override(ext.X, series.XRange)
		ext.Y = override(ext.Y, series.YRange)
		return ext
	}, reactive.WithName[geom.Extent]("position_range"), reactive.WithEqual(reactive.Eq[geom.Extent]))

	d.XRange = reactive.NewMemo(s, func() Range[X] {
		return typed[X](d.PositionRange.Get().X)
	}, reactive.WithName[Range[X]]("x_range"))

	d.YRange = reactive.NewMemo(s, func() Range[Y] {
		return typed[Y](d.PositionRange.Get().Y)
	}, reactive.WithName[Range[Y]]("y_range"))

	d.Entries = reactive.NewMemo(s, func() []Entry {
		entries := make([]Entry, len(series.Lines))
		for i, line := range series.Lines {
			entries[i] = Entry{
				Index:   i,
				Name:    line.Name,
				Colour:  colour(line.Colour, i),
				Width:   width(line.Width),
				Visible: d.visible[i].Get(),
			}
		}
		return entries
	}, reactive.WithName[[]Entry]("entries"))

	return d
}

// Series returns the bound series description.
func (d *Data[T, X, Y]) Series() Series[T, X, Y] { return d.series }

// Len returns the number of lines.
func (d *Data[T, X, Y]) Len() int { return len(d.visible) }

// Visible returns the visibility signal of line i, or nil when out of range.
func (d *Data[T, X, Y]) Visible(i int) *reactive.Signal[bool] {
	if i < 0 || i >= len(d.visible) {
		return nil
	}
	return d.visible[i]
}

// Toggle flips the visibility of line i.
func (d *Data[T, X, Y]) Toggle(i int) {
	if v := d.Visible(i); v != nil {
		v.Update(func(b bool) bool { return !b })
	}
}

// Nearest is the datum closest to a queried x position.
type Nearest[X, Y ticks.Value] struct {
	Index  int
	X      X
	Values []NearestValue[Y]
}

// NearestValue is one visible line's value at a Nearest datum.
type NearestValue[Y ticks.Value] struct {
	Entry Entry
	Y     Y
	// Position is Y in position space; NaN when the line has no value.
	Position float64
}

// Nearest finds the datum whose x position is closest to x, reporting the
// value of every visible line there. ok is false when there is no data.
// Reads are tracked.
func (d *Data[T, X, Y]) Nearest(x float64) (Nearest[X, Y], bool) {
	pts := d.Positions.Get()
	entries := d.Entries.Get()
	if len(pts) == 0 || math.IsNaN(x) {
		return Nearest[X, Y]{}, false
	}

	best, bestDist := -1, math.Inf(1)
	for i, p := range pts[0] {
		if !finite(p.X) {
			continue
		}
		if dist := math.Abs(p.X - x); dist < bestDist {
			best, bestDist = i, dist
		}
	}
	if best < 0 {
		return Nearest[X, Y]{}, false
	}

	n := Nearest[X, Y]{Index: best, X: ticks.FromPosition[X](pts[0][best].X)}
	for i, e := range entries {
		if !e.Visible {
			continue
		}
		pos := pts[i][best].Y
		n.Values = append(n.Values, NearestValue[Y]{Entry: e, Y: ticks.FromPosition[Y](pos), Position: pos})
	}
	return n, true
}

func positions[T any, X, Y ticks.Value](series Series[T, X, Y], data []T) [][]Point {
	out := make([][]Point, len(series.Lines))
	xs := make([]float64, len(data))
	for i, datum := range data {
		xs[i] = math.NaN()
		if series.X != nil {
			xs[i] = ticks.Position(series.X(datum))
		}
	}
	for li, line := range series.Lines {
		pts := make([]Point, len(data))
		for i, datum := range data {
			y := math.NaN()
			if line.Y != nil {
				y = ticks.Position(line.Y(datum))
			}
			pts[i] = Point{X: xs[i], Y: y}
		}
		out[li] = pts
	}
	return out
}

func override[V ticks.Value](iv geom.Interval, b Bound[V]) geom.Interval {
	if b.HasMin {
		if p := ticks.Position(b.Min); finite(p) {
			iv.Min = p
		}
	}
	if b.HasMax {
		if p := ticks.Position(b.Max); finite(p) {
			iv.Max = p
		}
	}
	return iv
}

func typed[V ticks.Value](iv geom.Interval) Range[V] {
	if iv.IsEmpty() {
		return Range[V]{}
	}
	return Range[V]{
		Min:   ticks.FromPosition[V](iv.Min),
		Max:   ticks.FromPosition[V](iv.Max),
		Valid: true,
	}
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Package series describes the lines of a chart and aggregates their data
// into reactive positions, ranges and legend entries.
//
// A [Series] is the static description: how to read X from a datum and one
// [Line] per plotted Y. [NewData] binds a series to a reactive slice of data
// and derives everything layout and rendering need from it.
package series

import (
	"github.com/matzehuels/chartistry/pkg/ticks"
)

// Palette is the colour cycle used for lines without an explicit colour.
var Palette = []string{
	"#268bd2", // blue
	"#dc322f", // red
	"#859900", // green
	"#b58900", // yellow
	"#6c71c4", // violet
	"#2aa198", // cyan
	"#cb4b16", // orange
	"#d33682", // magenta
}

// DefaultLineWidth is the stroke width of lines without an explicit width.
const DefaultLineWidth = 2.0

// Line is one plotted Y of a series.
type Line[T any, Y ticks.Value] struct {
	Name   string
	Y      func(T) Y
	Colour string
	Width  float64
}

// Bound is an optional range override.
type Bound[V ticks.Value] struct {
	Min, Max       V
	HasMin, HasMax bool
}

// Series describes how to plot a slice of T.
type Series[T any, X, Y ticks.Value] struct {
	X      func(T) X
	Lines  []Line[T, Y]
	XRange Bound[X]
	YRange Bound[Y]
}

// New starts a series reading X with x.
func New[T any, X, Y ticks.Value](x func(T) X) Series[T, X, Y] {
	return Series[T, X, Y]{X: x}
}

// WithLine appends a line with default styling.
func (s Series[T, X, Y]) WithLine(name string, y func(T) Y) Series[T, X, Y] {
	return s.WithLines(Line[T, Y]{Name: name, Y: y})
}

// WithLines appends lines.
func (s Series[T, X, Y]) WithLines(lines ...Line[T, Y]) Series[T, X, Y] {
	s.Lines = append(append([]Line[T, Y](nil), s.Lines...), lines...)
	return s
}

// WithXRange fixes both ends of the x range.
func (s Series[T, X, Y]) WithXRange(min, max X) Series[T, X, Y] {
	s.XRange = Bound[X]{Min: min, Max: max, HasMin: true, HasMax: true}
	return s
}

// WithYRange fixes both ends of the y range.
func (s Series[T, X, Y]) WithYRange(min, max Y) Series[T, X, Y] {
	s.YRange = Bound[Y]{Min: min, Max: max, HasMin: true, HasMax: true}
	return s
}

// WithMinY fixes the bottom of the y range, e.g. to start at zero.
func (s Series[T, X, Y]) WithMinY(min Y) Series[T, X, Y] {
	s.YRange.Min, s.YRange.HasMin = min, true
	return s
}

// WithMaxY fixes the top of the y range.
func (s Series[T, X, Y]) WithMaxY(max Y) Series[T, X, Y] {
	s.YRange.Max, s.YRange.HasMax = max, true
	return s
}

// colour returns the line colour, falling back to the palette.
func colour(explicit string, i int) string {
	if explicit != "" {
		return explicit
	}
	return Palette[i%len(Palette)]
}

func width(explicit float64) float64 {
	if explicit > 0 {
		return explicit
	}
	return DefaultLineWidth
}

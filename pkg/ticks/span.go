package ticks

import "github.com/matzehuels/chartistry/pkg/fonts"

// Span describes the pixel room ticks are laid out in.
type Span interface {
	// Length is the axis length in pixels.
	Length() float64
	// Extent is the room a label takes along the axis.
	Extent(label string) float64
	// Gap is the minimum distance between neighbouring labels.
	Gap() float64
}

// HorizontalSpan is a horizontal axis: labels take their text width.
type HorizontalSpan struct {
	Width   float64
	Metrics fonts.Metrics
	Padding float64
}

func (s HorizontalSpan) Length() float64 { return s.Width }

func (s HorizontalSpan) Extent(label string) float64 { return metrics(s.Metrics).TextWidth(label) }

func (s HorizontalSpan) Gap() float64 { return s.Padding }

// VerticalSpan is a vertical axis: labels take one line height.
type VerticalSpan struct {
	Height  float64
	Metrics fonts.Metrics
	Padding float64
}

func (s VerticalSpan) Length() float64 { return s.Height }

func (s VerticalSpan) Extent(string) float64 { return metrics(s.Metrics).LineHeight() }

func (s VerticalSpan) Gap() float64 { return s.Padding }

func metrics(m fonts.Metrics) fonts.Metrics {
	if m == nil {
		return fonts.Default()
	}
	return m
}

package chart

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartistry/pkg/aspect"
	"github.com/matzehuels/chartistry/pkg/fonts"
	"github.com/matzehuels/chartistry/pkg/geom"
	"github.com/matzehuels/chartistry/pkg/layout"
	"github.com/matzehuels/chartistry/pkg/reactive"
	"github.com/matzehuels/chartistry/pkg/series"
	"github.com/matzehuels/chartistry/pkg/ticks"
)

// Placeholder is the text drawn while the container is unmeasured.
const Placeholder = "Loading..."

// Options configures a chart. Every reactive input may be nil.
type Options[T any, X, Y ticks.Value] struct {
	// AspectRatio decides the outer size. Nil takes the container size.
	AspectRatio reactive.Reader[aspect.Ratio]
	// Font is the chart-wide font. Nil uses the 10x16 default.
	Font reactive.Reader[fonts.Font]
	// Padding is the chart-wide component padding. Nil pads by one
	// character width on every side.
	Padding reactive.Reader[geom.Padding]
	// Debug outlines every component's bounds.
	Debug reactive.Reader[bool]

	// Edge components in visual reading order: top to bottom for Top and
	// Bottom, left to right for Left and Right.
	Top, Right, Bottom, Left []layout.EdgeComponent
	// Inner overlays, drawn in order above the series.
	Inner []layout.InnerComponent

	// Tooltip enables the pointer tooltip.
	Tooltip bool

	Series series.Series[T, X, Y]
	Data   reactive.Reader[[]T]

	Logger *log.Logger
}

func (o *Options[T, X, Y]) setDefaults() {
	if o.AspectRatio == nil {
		o.AspectRatio = reactive.Of(aspect.Env())
	}
	if o.Font == nil {
		o.Font = reactive.Of(fonts.Default())
	}
	if o.Debug == nil {
		o.Debug = reactive.Of(false)
	}
	if o.Data == nil {
		o.Data = reactive.Of[[]T](nil)
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}

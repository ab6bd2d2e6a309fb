package layout

import (
	"math"

	"github.com/matzehuels/chartistry/pkg/fonts"
	"github.com/matzehuels/chartistry/pkg/geom"
	"github.com/matzehuels/chartistry/pkg/reactive"
	"github.com/matzehuels/chartistry/pkg/scene"
	"github.com/matzehuels/chartistry/pkg/series"
)

// hiddenColour draws the swatch of a line that is toggled off.
const hiddenColour = "#cccccc"

// Legend lists the chart's lines along an edge: in a row on the top and
// bottom, in a column on the left and right.
type Legend struct {
	Anchor geom.Anchor
	Attr   Attr
}

// NewLegend returns a legend aligned by anchor along its edge.
func NewLegend(anchor geom.Anchor) *Legend { return &Legend{Anchor: anchor} }

func (l *Legend) Resolve(env Env) Resolved {
	entries := env.Entries
	if entries == nil {
		entries = reactive.Of[[]series.Entry](nil)
	}
	return &resolvedLegend{
		scope:   env.Scope,
		edge:    env.Edge,
		entries: entries,
		anchor:  l.Anchor,
		attr:    l.Attr.Inherit(env.Attr),
	}
}

type resolvedLegend struct {
	scope   *reactive.Scope
	edge    geom.Edge
	entries reactive.Reader[[]series.Entry]
	anchor  geom.Anchor
	attr    Attr
}

func (r *resolvedLegend) Thickness(reactive.Reader[float64]) reactive.Reader[float64] {
	return reactive.NewMemo(r.scope, func() float64 {
		w, h := legendSize(r.entries.Get(), r.attr.font(), r.attr.padding(), !r.edge.IsHorizontal())
		if r.edge.IsHorizontal() {
			return h
		}
		return w
	}, reactive.WithName[float64]("thickness:legend"))
}

func (r *resolvedLegend) Render(ctx RenderContext) *scene.Node {
	b := ctx.Bounds
	n := scene.New("legend", b).WithDebug(r.attr.debug())
	entries := r.entries.Get()
	font, pad := r.attr.font(), r.attr.padding()
	vertical := !ctx.Edge.IsHorizontal()

	w, h := legendSize(entries, font, pad, vertical)
	var box geom.Bounds
	if vertical {
		top := r.anchor.MapPoints(b.Top, b.CentreY()-h/2, b.Bottom-h)
		box = geom.FromPoints(b.Left, top, b.Right, top+h)
	} else {
		left := r.anchor.MapPoints(b.Left, b.CentreX()-w/2, b.Right-w)
		box = geom.FromPoints(left, b.Top, left+w, b.Bottom)
	}
	drawLegend(n, entries, font, pad, box, vertical)
	return n
}

// swatchWidth is the length of the line sample in front of each name.
func swatchWidth(font fonts.Font) float64 { return 2 * font.CharWidth() }

func entryWidth(e series.Entry, font fonts.Font) float64 {
	return swatchWidth(font) + font.CharWidth()/2 + font.TextWidth(e.Name)
}

// legendSize measures a legend block including padding. Rows separate
// entries by one character width.
func legendSize(entries []series.Entry, font fonts.Font, pad geom.Padding, vertical bool) (w, h float64) {
	if len(entries) == 0 {
		return 0, 0
	}
	line := font.LineHeight()
	if vertical {
		for _, e := range entries {
			w = math.Max(w, entryWidth(e, font))
		}
		return w + pad.Width(), float64(len(entries))*line + pad.Height()
	}
	for i, e := range entries {
		if i > 0 {
			w += font.CharWidth()
		}
		w += entryWidth(e, font)
	}
	return w + pad.Width(), line + pad.Height()
}

func drawLegend(n *scene.Node, entries []series.Entry, font fonts.Font, pad geom.Padding, box geom.Bounds, vertical bool) {
	line := font.LineHeight()
	x, y := box.Left+pad.Left, box.Top+pad.Top
	for _, e := range entries {
		colour := e.Colour
		if !e.Visible {
			colour = hiddenColour
		}
		mid := y + line/2
		n.Add(
			scene.Line{X1: x, Y1: mid, X2: x + swatchWidth(font), Y2: mid, Colour: colour, Width: e.Width},
			scene.Text{X: x + swatchWidth(font) + font.CharWidth()/2, Y: mid, Text: e.Name, Anchor: geom.Start, Size: font.FontSize()},
		)
		if vertical {
			y += line
		} else {
			x += entryWidth(e, font) + font.CharWidth()
		}
	}
}

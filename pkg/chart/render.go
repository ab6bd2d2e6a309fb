package chart

import (
	"math"
	"strconv"
	"time"

	"github.com/matzehuels/chartistry/pkg/geom"
	"github.com/matzehuels/chartistry/pkg/layout"
	"github.com/matzehuels/chartistry/pkg/projection"
	"github.com/matzehuels/chartistry/pkg/scene"
	"github.com/matzehuels/chartistry/pkg/series"
	"github.com/matzehuels/chartistry/pkg/ticks"
)

const (
	tooltipGuide  = "#999999"
	tooltipMarker = 3.0
)

// draw builds the scene. It is the body of the scene memo.
func (c *Chart[T, X, Y]) draw() *scene.Node {
	d := c.dims.Get()
	if !d.ok {
		font := c.font.Get()
		return scene.New("placeholder", geom.Bounds{}).
			Add(scene.Text{Text: Placeholder, Anchor: geom.Start, Y: font.LineHeight() / 2, Size: font.FontSize()})
	}
	c.advance(Measured)

	root := scene.New("chart", d.known.Bounds())
	edges := c.layout.Render()
	c.advance(LaidOut)

	proj := c.proj.Get()
	ctx := layout.InnerContext{Inner: proj.Inner(), Projection: proj}

	root.Append(c.drawSeries(proj))
	for _, o := range c.overlays {
		root.Append(o.Render(ctx))
	}
	root.Append(edges...)
	if c.opts.Tooltip {
		root.Append(c.drawTooltip(proj))
	}
	return root
}

// drawSeries draws every visible line. Lines break at missing values; an
// isolated value is drawn as a dot.
func (c *Chart[T, X, Y]) drawSeries(proj projection.Projection) *scene.Node {
	n := scene.New("series", proj.Inner())
	entries := c.data.Entries.Get()
	for i, pts := range c.data.Positions.Get() {
		e := entries[i]
		if !e.Visible {
			continue
		}
		for _, run := range segments(pts) {
			if len(run) == 1 {
				x, y := proj.ToPixel(run[0].X, run[0].Y)
				n.Add(scene.Circle{X: x, Y: y, R: e.Width, Fill: e.Colour})
				continue
			}
			line := make([]scene.Point, len(run))
			for j, p := range run {
				line[j].X, line[j].Y = proj.ToPixel(p.X, p.Y)
			}
			n.Add(scene.Polyline{Points: line, Colour: e.Colour, Width: e.Width})
		}
	}
	return n
}

// segments splits pts into runs of finite points.
func segments(pts []series.Point) [][]series.Point {
	var out [][]series.Point
	start := -1
	for i, p := range pts {
		ok := finite(p.X) && finite(p.Y)
		switch {
		case ok && start < 0:
			start = i
		case !ok && start >= 0:
			out = append(out, pts[start:i])
			start = -1
		}
	}
	if start >= 0 {
		out = append(out, pts[start:])
	}
	return out
}

// drawTooltip draws a guide at the datum nearest the pointer and a box with
// its values. It returns nil while the pointer is outside the plotting area.
func (c *Chart[T, X, Y]) drawTooltip(proj projection.Projection) *scene.Node {
	p := c.pointer.Get()
	inner := proj.Inner()
	if !p.Active || !inner.Contains(p.X, p.Y) {
		return nil
	}
	x, _ := proj.ToData(p.X, p.Y)
	near, ok := c.data.Nearest(x)
	if !ok {
		return nil
	}

	font, pad := c.font.Get(), c.padding.Get()
	gx := proj.X(ticks.Position(near.X))
	n := scene.New("tooltip", inner)
	n.Add(scene.Line{X1: gx, Y1: inner.Top, X2: gx, Y2: inner.Bottom, Colour: tooltipGuide, Dash: "3,3"})

	lines := []string{format(near.X)}
	for _, v := range near.Values {
		lines = append(lines, v.Entry.Name+": "+format(v.Y))
		if finite(v.Position) {
			n.Add(scene.Circle{X: gx, Y: proj.Y(v.Position), R: tooltipMarker, Fill: v.Entry.Colour})
		}
	}

	w := 0.0
	for _, l := range lines {
		w = math.Max(w, font.TextWidth(l))
	}
	w += pad.Width()
	h := float64(len(lines))*font.LineHeight() + pad.Height()

	left := gx + font.CharWidth()
	if left+w > inner.Right {
		left = gx - font.CharWidth() - w
	}
	left = math.Max(inner.Left, left)
	top := math.Max(inner.Top, math.Min(p.Y-h/2, inner.Bottom-h))
	box := geom.FromPoints(left, top, left+w, top+h)

	n.Add(scene.Rect{Bounds: box, Fill: "#ffffff", Stroke: tooltipGuide})
	for i, l := range lines {
		n.Add(scene.Text{
			X:      box.Left + pad.Left,
			Y:      box.Top + pad.Top + (float64(i)+0.5)*font.LineHeight(),
			Text:   l,
			Anchor: geom.Start,
			Size:   font.FontSize(),
		})
	}
	return n
}

// format renders a tooltip value.
func format[V ticks.Value](v V) string {
	switch x := any(v).(type) {
	case float64:
		if math.IsNaN(x) {
			return "-"
		}
		return strconv.FormatFloat(x, 'g', 6, 64)
	case time.Time:
		if x.IsZero() {
			return "-"
		}
		return x.Format(time.DateTime)
	}
	return ""
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

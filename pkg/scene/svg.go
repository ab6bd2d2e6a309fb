package scene

import (
	"fmt"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo/float"

	"github.com/matzehuels/chartistry/pkg/fonts"
)

// Debug outline drawn around nodes with Debug set.
const debugStyle = "fill:none;stroke:#d33682;stroke-width:1;stroke-dasharray:4,2"

// SVGOption configures WriteSVG.
type SVGOption func(*svgWriter)

type svgWriter struct {
	canvas     *svg.SVG
	background string
	title      string
	css        string
	fontFamily string
}

// WithBackground fills the canvas before drawing.
func WithBackground(colour string) SVGOption {
	return func(w *svgWriter) { w.background = colour }
}

// WithTitle sets the document title.
func WithTitle(title string) SVGOption { return func(w *svgWriter) { w.title = title } }

// WithStyleSheet embeds CSS in the document.
func WithStyleSheet(css string) SVGOption { return func(w *svgWriter) { w.css = css } }

// WithFontFamily overrides the CSS font family of text.
func WithFontFamily(family string) SVGOption {
	return func(w *svgWriter) { w.fontFamily = family }
}

// WriteSVG serialises the scene rooted at root as an SVG document of the
// given size.
func WriteSVG(w io.Writer, root *Node, width, height float64, opts ...SVGOption) error {
	cw := &countingWriter{w: w}
	sw := &svgWriter{canvas: svg.New(cw), fontFamily: fonts.FontFamily}
	for _, opt := range opts {
		opt(sw)
	}

	sw.canvas.Start(clean(width), clean(height))
	if sw.title != "" {
		sw.canvas.Title(sw.title)
	}
	if sw.css != "" {
		fmt.Fprintf(cw, "<style>\n%s\n</style>\n", sw.css)
	}
	if sw.background != "" {
		sw.canvas.Rect(0, 0, clean(width), clean(height), "fill:"+sw.background)
	}
	sw.node(root)
	sw.canvas.End()
	return cw.err
}

func (sw *svgWriter) node(n *Node) {
	if n == nil {
		return
	}
	if n.Class != "" {
		sw.canvas.Group(fmt.Sprintf(`class="%s"`, escapeAttr(n.Class)))
	} else {
		sw.canvas.Group()
	}
	if n.Debug {
		b := n.Bounds
		sw.canvas.Rect(b.Left, b.Top, b.Width(), b.Height(), debugStyle)
	}
	for _, op := range n.Ops {
		sw.op(op)
	}
	for _, c := range n.Children {
		sw.node(c)
	}
	sw.canvas.Gend()
}

func (sw *svgWriter) op(op Op) {
	c := sw.canvas
	switch o := op.(type) {
	case Text:
		if o.Text == "" {
			return
		}
		size := o.Size
		if size <= 0 {
			size = fonts.DefaultHeight
		}
		style := fmt.Sprintf("text-anchor:%s;dominant-baseline:middle;font-size:%gpx;font-family:%s;fill:%s",
			o.Anchor.SVGTextAnchor(), size, sw.fontFamily, or(o.Colour, "#333"))
		if o.Rotate != 0 {
			c.Text(o.X, o.Y, o.Text, fmt.Sprintf(`transform="rotate(%g %g %g)"`, o.Rotate, o.X, o.Y), style)
			return
		}
		c.Text(o.X, o.Y, o.Text, style)
	case Line:
		c.Line(o.X1, o.Y1, o.X2, o.Y2, stroke(o.Colour, o.Width, o.Dash))
	case Polyline:
		if len(o.Points) < 2 {
			return
		}
		xs, ys := make([]float64, len(o.Points)), make([]float64, len(o.Points))
		for i, p := range o.Points {
			xs[i], ys[i] = p.X, p.Y
		}
		c.Polyline(xs, ys, "fill:none;stroke-linejoin:round;"+stroke(o.Colour, o.Width, ""))
	case Rect:
		b := o.Bounds
		style := "fill:" + or(o.Fill, "none")
		if o.Stroke != "" {
			style += ";" + stroke(o.Stroke, o.Width, o.Dash)
		}
		c.Rect(b.Left, b.Top, b.Width(), b.Height(), style)
	case Circle:
		style := "fill:" + or(o.Fill, "none")
		if o.Stroke != "" {
			style += ";stroke:" + o.Stroke
		}
		c.Circle(o.X, o.Y, o.R, style)
	}
}

func stroke(colour string, width float64, dash string) string {
	if width <= 0 {
		width = 1
	}
	s := fmt.Sprintf("stroke:%s;stroke-width:%g", or(colour, "#333"), width)
	if dash != "" {
		s += ";stroke-dasharray:" + dash
	}
	return s
}

func or(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func clean(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

var attrEscaper = strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `"`, "&quot;")

func escapeAttr(s string) string { return attrEscaper.Replace(s) }

// countingWriter remembers the first write error; svgo does not report them.
type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	if err != nil {
		c.err = err
	}
	return n, err
}

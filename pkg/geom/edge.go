package geom

import (
	"fmt"
	"strings"
)

// Edge identifies one side of a rectangle.
type Edge int

const (
	Top Edge = iota
	Right
	Bottom
	Left
)

// Edges lists every edge in clockwise order starting at the top.
var Edges = [...]Edge{Top, Right, Bottom, Left}

// IsHorizontal reports whether components on this edge are stacked
// vertically, i.e. the edge itself runs horizontally (top and bottom).
func (e Edge) IsHorizontal() bool { return e == Top || e == Bottom }

func (e Edge) String() string {
	switch e {
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	}
	return fmt.Sprintf("edge(%d)", int(e))
}

// ParseEdge parses the lower-case edge names produced by String.
func ParseEdge(s string) (Edge, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top":
		return Top, nil
	case "right":
		return Right, nil
	case "bottom":
		return Bottom, nil
	case "left":
		return Left, nil
	}
	return Top, fmt.Errorf("invalid edge: %q (must be one of: top, right, bottom, left)", s)
}

// Anchor is a one-dimensional alignment: the near edge, the centre or the far
// edge of a span.
type Anchor int

const (
	Start Anchor = iota
	Middle
	End
)

// MapPoints picks the interpolation point matching the anchor.
func (a Anchor) MapPoints(start, middle, end float64) float64 {
	switch a {
	case Middle:
		return middle
	case End:
		return end
	default:
		return start
	}
}

// SVGTextAnchor returns the SVG text-anchor attribute value.
func (a Anchor) SVGTextAnchor() string {
	switch a {
	case Middle:
		return "middle"
	case End:
		return "end"
	default:
		return "start"
	}
}

func (a Anchor) String() string { return a.SVGTextAnchor() }

// ParseAnchor parses "start", "middle" or "end".
func ParseAnchor(s string) (Anchor, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "start":
		return Start, nil
	case "middle", "centre", "center":
		return Middle, nil
	case "end":
		return End, nil
	}
	return Start, fmt.Errorf("invalid anchor: %q (must be one of: start, middle, end)", s)
}

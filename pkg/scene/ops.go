package scene

import "github.com/matzehuels/chartistry/pkg/geom"

// Op is a drawing operation. The concrete types are Text, Line, Polyline,
// Rect and Circle.
type Op interface {
	isOp()
}

// Text draws a single line of text anchored at (X, Y). Rotate is in degrees,
// clockwise, around the anchor point.
type Text struct {
	X, Y   float64
	Text   string
	Anchor geom.Anchor
	Rotate float64
	Size   float64
	Colour string
}

// Line draws a straight segment.
type Line struct {
	X1, Y1, X2, Y2 float64
	Colour         string
	Width          float64
	Dash           string
}

// Point is a pixel coordinate.
type Point struct {
	X, Y float64
}

// Polyline draws connected segments through Points.
type Polyline struct {
	Points []Point
	Colour string
	Width  float64
}

// Rect draws a rectangle.
type Rect struct {
	Bounds geom.Bounds
	Fill   string
	Stroke string
	Width  float64
	Dash   string
}

// Circle draws a circle centred on (X, Y).
type Circle struct {
	X, Y, R float64
	Fill    string
	Stroke  string
}

func (Text) isOp()     {}
func (Line) isOp()     {}
func (Polyline) isOp() {}
func (Rect) isOp()     {}
func (Circle) isOp()   {}

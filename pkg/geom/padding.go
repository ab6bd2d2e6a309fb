package geom

// Padding is spacing applied inside a rectangle.
type Padding struct {
	Top    float64 `json:"top" toml:"top"`
	Right  float64 `json:"right" toml:"right"`
	Bottom float64 `json:"bottom" toml:"bottom"`
	Left   float64 `json:"left" toml:"left"`
}

// Uniform returns the same padding on all four sides.
func Uniform(v float64) Padding {
	return Padding{Top: v, Right: v, Bottom: v, Left: v}
}

// Symmetric returns vertical padding v on top and bottom and horizontal
// padding h on left and right.
func Symmetric(v, h float64) Padding {
	return Padding{Top: v, Right: h, Bottom: v, Left: h}
}

// Height is the combined top and bottom padding.
func (p Padding) Height() float64 { return margin(p.Top) + margin(p.Bottom) }

// Width is the combined left and right padding.
func (p Padding) Width() float64 { return margin(p.Left) + margin(p.Right) }

// Apply returns b shrunk by the padding.
func (p Padding) Apply(b Bounds) Bounds {
	return b.Shrink(p.Top, p.Right, p.Bottom, p.Left)
}
